package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/studentportal/portal-api/internal/gradebook"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
	"github.com/studentportal/portal-api/pkg/export"
)

type exportStudentRepo interface {
	FindByCode(ctx context.Context, code string) (*models.Student, error)
}

// ExportService renders student records into downloadable documents.
type ExportService struct {
	students exportStudentRepo
	cards    *export.CardPDF
	csv      *export.TranscriptCSV
	logger   *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(students exportStudentRepo, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students: students,
		cards:    export.NewCardPDF(),
		csv:      export.NewTranscriptCSV(),
		logger:   logger,
	}
}

// Card renders the identity card PDF for the given student.
func (s *ExportService) Card(ctx context.Context, code string) ([]byte, error) {
	student, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}
	data, err := s.cards.Render(export.Card{
		Code:     student.Code,
		Name:     student.Name,
		NID:      student.NID,
		Level:    student.Level,
		Major:    student.Major,
		Division: student.Division,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render card")
	}
	s.logger.Info("card exported", zap.String("code", code))
	return data, nil
}

// Transcript renders the course list plus GPA as CSV.
func (s *ExportService) Transcript(ctx context.Context, code string) ([]byte, error) {
	student, err := s.load(ctx, code)
	if err != nil {
		return nil, err
	}

	rows := make([]export.TranscriptRow, 0, len(student.Courses))
	graded := make([]models.Course, 0, len(student.Courses))
	for _, c := range student.Courses {
		if c.IsBlank() {
			continue
		}
		rows = append(rows, export.TranscriptRow{
			Code:    c.Code,
			Name:    c.Name,
			Credits: fmt.Sprintf("%g", float64(c.Credits)),
			Grade:   c.Grade,
		})
		graded = append(graded, c)
	}

	data, err := s.csv.Render(export.Transcript{
		StudentCode: student.Code,
		StudentName: student.Name,
		Rows:        rows,
		GPA:         gradebook.Format(gradebook.ComputeGPA(graded)),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	s.logger.Info("transcript exported", zap.String("code", code))
	return data, nil
}

func (s *ExportService) load(ctx context.Context, code string) (*models.Student, error) {
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing student code")
	}
	student, err := s.students.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}
