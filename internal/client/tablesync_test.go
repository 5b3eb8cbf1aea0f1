package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/models"
)

func newEngine(t *testing.T, organizer string) (*TableSyncEngine, *CourseStore) {
	t.Helper()
	store, _ := tempStore(t)
	session := RestoreSession(store)
	if organizer != "" {
		require.NoError(t, session.SignInOrganizer(organizer, "tok"))
	} else {
		require.NoError(t, session.SignInStudent("20231234", "tok"))
	}
	courses := NewCourseStore(store)
	return NewTableSyncEngine(session, courses, 6), courses
}

func TestLoadFillsAndClearsRows(t *testing.T) {
	engine, courses := newEngine(t, identity.OrganizerMohamed)
	require.NoError(t, courses.Set("20231234", []models.Course{
		{Code: "CS101", Name: "Programming", Credits: 3, Grade: "A"},
		{Code: "MA102", Name: "Calculus", Credits: 4, Grade: "B+"},
	}))

	engine.Load("20231234")
	display := engine.DisplayRows()
	require.Len(t, display, 6)
	assert.Equal(t, "CS101", display[0].Code)
	assert.Equal(t, "Calculus", display[1].Name)
	for i := 2; i < 6; i++ {
		assert.Empty(t, display[i].Code)
		assert.Empty(t, display[i].Grade)
	}
}

func TestRowsBeyondFixedCountUnreachable(t *testing.T) {
	engine, courses := newEngine(t, identity.OrganizerMohamed)
	many := make([]models.Course, 10)
	for i := range many {
		many[i] = models.Course{Code: "C", Grade: "A"}
	}
	require.NoError(t, courses.Set("20231234", many))

	engine.Load("20231234")
	assert.Len(t, engine.DisplayRows(), 6)
	assert.Error(t, engine.SetRow(6, ManagementRow{Name: "x"}))
	assert.Error(t, engine.SetRow(-1, ManagementRow{Name: "x"}))
}

func TestEditSavesThenRecomputes(t *testing.T) {
	engine, courses := newEngine(t, identity.OrganizerMohamed)
	engine.Load("20231234")

	require.NoError(t, engine.SetRow(0, ManagementRow{Name: "Algorithms", Credits: 3, Grade: "A-"}))

	// Quick GPA over the single visible grade.
	assert.InDelta(t, 3.7, engine.QuickGPA(), 1e-9)

	// The edit went through the store, not just the view.
	stored := courses.Get("20231234")
	require.Len(t, stored, 6)
	assert.Equal(t, "Algorithms", stored[0].Name)
	assert.Equal(t, "A-", stored[0].Grade)
}

func TestQuickGPAIsUnweighted(t *testing.T) {
	engine, _ := newEngine(t, identity.OrganizerMohamed)
	engine.Load("20231234")

	require.NoError(t, engine.SetRow(0, ManagementRow{Name: "One", Credits: 1, Grade: "A"}))
	require.NoError(t, engine.SetRow(1, ManagementRow{Name: "Two", Credits: 10, Grade: "F"}))

	// (4.0 + 0.0) / 2 regardless of credits.
	assert.InDelta(t, 2.0, engine.QuickGPA(), 1e-9)
}

func TestAuditorCannotEdit(t *testing.T) {
	engine, courses := newEngine(t, identity.OrganizerAhmed)
	require.NoError(t, courses.Set("20231234", []models.Course{
		{Code: "CS101", Name: "Programming", Credits: 3, Grade: "A"},
	}))
	engine.Load("20231234")

	err := engine.SetRow(0, ManagementRow{Name: "Tampered"})
	require.Error(t, err)

	stored := courses.Get("20231234")
	assert.Equal(t, "Programming", stored[0].Name)
}

func TestStudentCannotEdit(t *testing.T) {
	engine, _ := newEngine(t, "")
	engine.Load("20231234")
	assert.Error(t, engine.SetRow(0, ManagementRow{Name: "Nope"}))
}

func TestEditPreservesCourseCode(t *testing.T) {
	engine, courses := newEngine(t, identity.OrganizerMohamed)
	require.NoError(t, courses.Set("20231234", []models.Course{
		{Code: "CS101", Name: "Programming", Credits: 3, Grade: "A"},
	}))
	engine.Load("20231234")

	require.NoError(t, engine.SetRow(0, ManagementRow{Name: "Programming II", Credits: 3, Grade: "B"}))
	assert.Equal(t, "CS101", engine.DisplayRows()[0].Code)
}

func TestSaveKeepsEmptyRowPositions(t *testing.T) {
	engine, courses := newEngine(t, identity.OrganizerMohamed)
	engine.Load("20231234")

	require.NoError(t, engine.SetRow(3, ManagementRow{Name: "Late Course", Credits: 2, Grade: "C"}))

	stored := courses.Get("20231234")
	require.Len(t, stored, 6)
	assert.True(t, stored[0].IsBlank())
	assert.Equal(t, "Late Course", stored[3].Name)

	engine.Load("20231234")
	assert.Equal(t, "Late Course", engine.DisplayRows()[3].Name)
}
