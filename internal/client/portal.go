package client

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/studentportal/portal-api/internal/client/localstore"
	"github.com/studentportal/portal-api/internal/models"
	"github.com/studentportal/portal-api/pkg/config"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

// Portal ties the client pieces together: session, API access, the course
// store, the table engine and the notification channel.
type Portal struct {
	Session       *Session
	Courses       *CourseStore
	Table         *TableSyncEngine
	Notifications *NotificationChannel

	api    *APIClient
	logger *zap.Logger
}

// NewPortal restores persisted state from cfg.StatePath and wires the
// client against cfg.BaseURL.
func NewPortal(cfg config.ClientConfig, logger *zap.Logger) (*Portal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := localstore.Open(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	session := RestoreSession(store)
	api := NewAPIClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, session.Token, logger)
	courses := NewCourseStore(store)

	p := &Portal{
		Session:       session,
		Courses:       courses,
		Table:         NewTableSyncEngine(session, courses, cfg.TableRows),
		Notifications: NewNotificationChannel(session, api),
		api:           api,
		logger:        logger,
	}
	return p, nil
}

// Login signs a student in and loads their table.
func (p *Portal) Login(ctx context.Context, email, password string) error {
	res, err := p.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := p.Session.SignInStudent(res.Code, res.Token); err != nil {
		return err
	}
	if res.Code != "" {
		p.Table.Load(res.Code)
	}
	p.logger.Info("student signed in", zap.String("code", res.Code))
	return nil
}

// Register creates a login account.
func (p *Portal) Register(ctx context.Context, email, password, code string) error {
	return p.api.Register(ctx, email, password, code)
}

// OrganizerSignIn signs an organizer in.
func (p *Portal) OrganizerSignIn(ctx context.Context, email, password string) error {
	res, err := p.api.OrganizerLogin(ctx, email, password)
	if err != nil {
		return err
	}
	if err := p.Session.SignInOrganizer(res.OrganizerName, res.Token); err != nil {
		return err
	}
	p.logger.Info("organizer signed in", zap.String("organizer", res.OrganizerName))
	return nil
}

// Logout clears the session in one step.
func (p *Portal) Logout() error {
	return p.Session.Logout()
}

// SearchStudent fetches a student from the server, overwrites the local
// course cache with the server's copy, and loads the table.
func (p *Portal) SearchStudent(ctx context.Context, code string) (*models.Student, error) {
	if !p.Session.Authenticated() {
		return nil, appErrors.ErrUnauthorized
	}
	student, err := p.api.GetStudent(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := p.Courses.LoadFromServer(student.Code, student.Courses); err != nil {
		return nil, err
	}
	p.Table.Load(student.Code)
	return student, nil
}

// SaveStudent pushes a record edit to the server. The session must be an
// organizer allowed to edit; the server checks again.
func (p *Portal) SaveStudent(ctx context.Context, student *models.Student) error {
	if !p.Session.CanEditRecords() {
		return appErrors.Clone(appErrors.ErrForbidden, "this account cannot edit student data")
	}
	return p.api.SaveStudent(ctx, student)
}
