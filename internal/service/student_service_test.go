package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

type mockStudentRepo struct {
	student   *models.Student
	findErr   error
	upserted  *models.Student
	upsertErr error
}

func (m *mockStudentRepo) FindByCode(ctx context.Context, code string) (*models.Student, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.student, nil
}

func (m *mockStudentRepo) Upsert(ctx context.Context, student *models.Student) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = student
	return nil
}

func organizerClaims(name string) *models.JWTClaims {
	return &models.JWTClaims{Role: models.RoleOrganizer, OrganizerName: name}
}

func TestGetStudent(t *testing.T) {
	repo := &mockStudentRepo{student: &models.Student{
		Code: "20231234",
		Name: "Sara Adel",
		Courses: []models.Course{
			{Code: "CS101", Name: "Programming", Credits: 3, Grade: "A"},
		},
	}}
	svc := NewStudentService(repo, nil, nil, nil)

	student, err := svc.Get(context.Background(), "20231234")
	require.NoError(t, err)
	assert.Equal(t, "Sara Adel", student.Name)
	assert.Len(t, student.Courses, 1)
}

func TestGetStudentMissingCode(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGetStudentNotFound(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{findErr: sql.ErrNoRows}, nil, nil, nil)

	_, err := svc.Get(context.Background(), "99999999")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestSaveStudentAsEditor(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil, nil)

	student, err := svc.Save(context.Background(), organizerClaims(identity.OrganizerMohamed), SaveStudentRequest{
		Code:  "20231234",
		Name:  "Sara Adel",
		Level: "2",
		Courses: []models.Course{
			{Code: "CS201", Name: "Algorithms", Credits: 3, Grade: "A-"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, "20231234", repo.upserted.Code)
	assert.Equal(t, student, repo.upserted)
}

func TestSaveStudentAuditorDenied(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil, nil)

	_, err := svc.Save(context.Background(), organizerClaims(identity.OrganizerAhmed), SaveStudentRequest{
		Code: "20231234",
		Name: "Changed",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.upserted, "no write may happen for the auditing organizer")
}

func TestSaveStudentStudentDenied(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil, nil)

	actor := &models.JWTClaims{Role: models.RoleStudent, StudentCode: "20231234"}
	_, err := svc.Save(context.Background(), actor, SaveStudentRequest{Code: "20231234"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.upserted)
}

func TestSaveStudentNormalisesNilCourses(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, nil, nil, nil)

	student, err := svc.Save(context.Background(), organizerClaims(identity.OrganizerMohamed), SaveStudentRequest{
		Code: "20231234",
	})
	require.NoError(t, err)
	assert.NotNil(t, student.Courses)
	assert.Empty(t, student.Courses)
}
