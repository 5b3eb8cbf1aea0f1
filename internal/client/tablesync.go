package client

import (
	"fmt"

	"github.com/studentportal/portal-api/internal/gradebook"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

// ManagementRow is the editable view of a course: name, credits and grade.
// The course code is not editable here and survives edits unchanged.
type ManagementRow struct {
	Name    string
	Credits models.Credits
	Grade   string
}

// DisplayRow is the read-only view shown on the student card.
type DisplayRow struct {
	Code    string
	Name    string
	Grade   string
	Credits models.Credits
}

// TableSyncEngine keeps a fixed number of course rows synchronized between
// the editable management view and the read-only display view. Both views
// project one canonical list; the display is always derived from the
// management side, never the other way round.
type TableSyncEngine struct {
	session *Session
	courses *CourseStore

	rowCount   int
	activeCode string
	rows       []models.Course
	display    []DisplayRow
	quickGPA   float64
}

// NewTableSyncEngine builds an engine with rowCount visible rows.
func NewTableSyncEngine(session *Session, courses *CourseStore, rowCount int) *TableSyncEngine {
	if rowCount <= 0 {
		rowCount = 6
	}
	e := &TableSyncEngine{
		session:  session,
		courses:  courses,
		rowCount: rowCount,
		rows:     make([]models.Course, rowCount),
		display:  make([]DisplayRow, rowCount),
	}
	return e
}

// Load populates the table from the stored course list for code. Row i takes
// stored course i; rows beyond the stored list are cleared. Courses beyond
// the fixed row count are not reachable through the views.
func (e *TableSyncEngine) Load(code string) {
	stored := e.courses.Get(code)
	e.activeCode = code
	for i := 0; i < e.rowCount; i++ {
		if i < len(stored) {
			e.rows[i] = stored[i]
		} else {
			e.rows[i] = models.Course{}
		}
	}
	e.SyncManagementToDisplay()
}

// ManagementRows returns a copy of the editable view.
func (e *TableSyncEngine) ManagementRows() []ManagementRow {
	out := make([]ManagementRow, e.rowCount)
	for i, c := range e.rows {
		out[i] = ManagementRow{Name: c.Name, Credits: c.Credits, Grade: c.Grade}
	}
	return out
}

// DisplayRows returns a copy of the display view.
func (e *TableSyncEngine) DisplayRows() []DisplayRow {
	out := make([]DisplayRow, e.rowCount)
	copy(out, e.display)
	return out
}

// QuickGPA returns the unweighted mean over the grades currently visible in
// the display view.
func (e *TableSyncEngine) QuickGPA() float64 {
	return e.quickGPA
}

// SetRow applies an edit to one management row. The edit persists through
// the course store first; only after a successful save does the display view
// and quick GPA update. A failed save leaves everything as it was.
func (e *TableSyncEngine) SetRow(index int, row ManagementRow) error {
	if !e.session.CanEditRecords() {
		return appErrors.Clone(appErrors.ErrForbidden, "this account cannot edit the course table")
	}
	if index < 0 || index >= e.rowCount {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d is out of range", index))
	}
	if e.activeCode == "" {
		return appErrors.Clone(appErrors.ErrValidation, "no student loaded")
	}

	prev := e.rows[index]
	e.rows[index].Name = row.Name
	e.rows[index].Credits = row.Credits
	e.rows[index].Grade = row.Grade

	if err := e.Save(); err != nil {
		e.rows[index] = prev
		return err
	}
	e.SyncManagementToDisplay()
	return nil
}

// SetCode updates the course code on one row. Codes live only in the display
// view but follow the same permission and save-through rules.
func (e *TableSyncEngine) SetCode(index int, code string) error {
	if !e.session.CanEditRecords() {
		return appErrors.Clone(appErrors.ErrForbidden, "this account cannot edit the course table")
	}
	if index < 0 || index >= e.rowCount {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d is out of range", index))
	}

	prev := e.rows[index].Code
	e.rows[index].Code = code
	if err := e.Save(); err != nil {
		e.rows[index].Code = prev
		return err
	}
	e.SyncManagementToDisplay()
	return nil
}

// SyncManagementToDisplay copies the management rows into the display view
// by index, then recomputes the quick GPA from the rows now visible.
func (e *TableSyncEngine) SyncManagementToDisplay() {
	grades := make([]string, 0, e.rowCount)
	for i, c := range e.rows {
		e.display[i] = DisplayRow{Code: c.Code, Name: c.Name, Grade: c.Grade, Credits: c.Credits}
		if c.Grade != "" {
			grades = append(grades, c.Grade)
		}
	}
	e.quickGPA = gradebook.ComputeQuickGPA(grades)
}

// Save writes the full ordered row list, empty rows included, through the
// course store. Keeping blanks preserves row positions across reloads.
func (e *TableSyncEngine) Save() error {
	if e.activeCode == "" {
		return appErrors.Clone(appErrors.ErrValidation, "no student loaded")
	}
	out := make([]models.Course, e.rowCount)
	copy(out, e.rows)
	return e.courses.Set(e.activeCode, out)
}
