package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

type notificationRepo interface {
	List(ctx context.Context) ([]models.Notification, error)
	CreateIfNoPending(ctx context.Context, n *models.Notification) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	FindByIndex(ctx context.Context, index int) (*models.Notification, error)
	SetResponse(ctx context.Context, id string, resp models.NotificationResponse) (bool, error)
	SetPaid(ctx context.Context, id string) (bool, error)
}

// The timestamp layout the legacy clients render verbatim.
const notificationTimeLayout = "2006-01-02 15:04:05"

const notificationsCacheKey = "notifications"

// DefaultPayMessage is attached when a request arrives without a message.
const DefaultPayMessage = "Student wants to pay."

// PayRequest creates a payment-request notification.
type PayRequest struct {
	StudentCode string `json:"studentCode" validate:"required"`
	Message     string `json:"message"`
}

// RespondRequest records the organizer's quote. Either the stable ID or the
// legacy positional index addresses the notification.
type RespondRequest struct {
	NotificationID    string  `json:"notificationId"`
	NotificationIndex *int    `json:"notificationIndex"`
	Hours             float64 `json:"hours"`
	Price             float64 `json:"price"`
}

// ConfirmRequest marks a responded notification as paid.
type ConfirmRequest struct {
	NotificationID    string `json:"notificationId"`
	NotificationIndex *int   `json:"notificationIndex"`
}

// NotificationService drives the Created -> Responded -> Paid workflow. All
// transitions go through the repository; nothing moves state locally.
type NotificationService struct {
	notifications notificationRepo
	cache         *CacheService
	validator     *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
}

// NewNotificationService constructs NotificationService.
func NewNotificationService(notifications notificationRepo, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: notifications,
		cache:         cache,
		validator:     validate,
		logger:        logger,
		now:           time.Now,
	}
}

// List returns every notification in creation order, preferring the cache.
// Filtering by actor is a view concern and happens in the clients.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	var cached []models.Notification
	if s.cache.Enabled() {
		if hit, _ := s.cache.Get(ctx, notificationsCacheKey, &cached); hit {
			return cached, nil
		}
	}

	list, err := s.notifications.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, notificationsCacheKey, list, 0)
	}
	return list, nil
}

// RequestPayment creates a notification unless the student already has an
// unanswered one outstanding.
func (s *NotificationService) RequestPayment(ctx context.Context, req PayRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing student code")
	}
	if req.Message == "" {
		req.Message = DefaultPayMessage
	}

	n := &models.Notification{
		StudentCode: req.StudentCode,
		Message:     req.Message,
		Timestamp:   s.now().Format(notificationTimeLayout),
	}
	created, err := s.notifications.CreateIfNoPending(ctx, n)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notification")
	}
	if !created {
		return nil, appErrors.ErrPendingRequest
	}

	s.cache.Invalidate(ctx, notificationsCacheKey)
	s.logger.Info("payment requested", zap.String("studentCode", req.StudentCode))
	return n, nil
}

// Respond records the auditing organizer's quote on a waiting notification.
func (s *NotificationService) Respond(ctx context.Context, actor *models.JWTClaims, req RespondRequest) (*models.Notification, error) {
	if !identity.CanRespond(actor.OrganizerName) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the auditing organizer can respond")
	}
	if req.Hours <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hours must be greater than zero")
	}
	if req.Price <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "price must be greater than zero")
	}

	n, err := s.resolve(ctx, req.NotificationID, req.NotificationIndex)
	if err != nil {
		return nil, err
	}
	if n.Response != nil {
		return nil, appErrors.ErrAlreadyResponded
	}

	resp := models.NotificationResponse{
		Hours: req.Hours,
		Price: req.Price,
		Total: fmt.Sprintf("%.2f", req.Hours*req.Price),
	}
	updated, err := s.notifications.SetResponse(ctx, n.ID, resp)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save response")
	}
	if !updated {
		return nil, appErrors.ErrAlreadyResponded
	}

	n.Response = &resp
	s.cache.Invalidate(ctx, notificationsCacheKey)
	s.logger.Info("notification responded",
		zap.String("id", n.ID),
		zap.String("studentCode", n.StudentCode),
		zap.String("total", resp.Total))
	return n, nil
}

// Confirm marks a responded notification as paid. Students only.
func (s *NotificationService) Confirm(ctx context.Context, actor *models.JWTClaims, req ConfirmRequest) (*models.Notification, error) {
	if actor.IsOrganizer() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can confirm payments")
	}

	n, err := s.resolve(ctx, req.NotificationID, req.NotificationIndex)
	if err != nil {
		return nil, err
	}
	if n.Response == nil {
		return nil, appErrors.ErrNoResponse
	}

	updated, err := s.notifications.SetPaid(ctx, n.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to confirm payment")
	}
	if !updated {
		return nil, appErrors.ErrNoResponse
	}

	n.Paid = true
	s.cache.Invalidate(ctx, notificationsCacheKey)
	s.logger.Info("payment confirmed", zap.String("id", n.ID), zap.String("studentCode", n.StudentCode))
	return n, nil
}

func (s *NotificationService) resolve(ctx context.Context, id string, index *int) (*models.Notification, error) {
	var (
		n   *models.Notification
		err error
	)
	switch {
	case id != "":
		n, err = s.notifications.FindByID(ctx, id)
	case index != nil:
		n, err = s.notifications.FindByIndex(ctx, *index)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing notification identifier")
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notification")
	}
	return n, nil
}
