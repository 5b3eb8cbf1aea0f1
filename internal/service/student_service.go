package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

type studentRepo interface {
	FindByCode(ctx context.Context, code string) (*models.Student, error)
	Upsert(ctx context.Context, student *models.Student) error
}

// SaveStudentRequest replaces a student record and its full course list.
type SaveStudentRequest struct {
	Code     string          `json:"code" validate:"required"`
	Name     string          `json:"name"`
	NID      string          `json:"nid"`
	Level    string          `json:"level"`
	Major    string          `json:"major"`
	Division string          `json:"division"`
	Photo    string          `json:"photo"`
	Courses  []models.Course `json:"courses"`
}

// StudentService orchestrates student record reads and writes.
type StudentService struct {
	students  studentRepo
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(students studentRepo, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, cache: cache, validator: validate, logger: logger}
}

func studentCacheKey(code string) string {
	return "student:" + code
}

// Get fetches a student record by code, preferring the cache.
func (s *StudentService) Get(ctx context.Context, code string) (*models.Student, error) {
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing student code")
	}

	var cached models.Student
	if s.cache.Enabled() {
		if hit, _ := s.cache.Get(ctx, studentCacheKey(code), &cached); hit {
			return &cached, nil
		}
	}

	student, err := s.students.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, studentCacheKey(code), student, 0)
	}
	return student, nil
}

// Save replaces a student record. Only organizers permitted to edit academic
// data may call this; the auditing organizer is refused before any write.
func (s *StudentService) Save(ctx context.Context, actor *models.JWTClaims, req SaveStudentRequest) (*models.Student, error) {
	if !actor.IsOrganizer() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only organizers can save changes")
	}
	if !identity.CanEditRecords(actor.OrganizerName) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "this organizer cannot edit student data")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing student code")
	}

	student := &models.Student{
		Code:     req.Code,
		Name:     req.Name,
		NID:      req.NID,
		Level:    req.Level,
		Major:    req.Major,
		Division: req.Division,
		Photo:    req.Photo,
		Courses:  req.Courses,
	}
	if student.Courses == nil {
		student.Courses = []models.Course{}
	}

	if err := s.students.Upsert(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
	}

	s.cache.Invalidate(ctx, studentCacheKey(req.Code))
	s.logger.Info("student saved",
		zap.String("code", req.Code),
		zap.String("organizer", actor.OrganizerName),
		zap.Int("courses", len(student.Courses)))
	return student, nil
}
