package client

import (
	"context"

	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

// NotificationChannel runs the payment-request workflow from the client
// side. It never caches: every operation fetches fresh state from the
// server, so a reopened notification list always reflects reality.
type NotificationChannel struct {
	session *Session
	api     *APIClient
}

// NewNotificationChannel wires the channel to a session and API client.
func NewNotificationChannel(session *Session, api *APIClient) *NotificationChannel {
	return &NotificationChannel{session: session, api: api}
}

// RequestPayment sends a payment request for the signed-in student. The
// client checks for an outstanding unanswered request before posting; the
// server enforces the same rule, so a race still fails cleanly.
func (nc *NotificationChannel) RequestPayment(ctx context.Context, message string) (*models.Notification, error) {
	if !nc.session.CanRequestPayment() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only signed-in students can request payments")
	}

	existing, err := nc.api.GetNotifications(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range existing {
		if n.StudentCode == nc.session.StudentCode() && n.Response == nil {
			return nil, appErrors.ErrPendingRequest
		}
	}

	return nc.api.PayNotification(ctx, nc.session.StudentCode(), message)
}

// ListForActor fetches the notifications this session should see, newest
// first. The auditing organizer sees every unanswered request; a student
// sees their own requests in every state.
func (nc *NotificationChannel) ListForActor(ctx context.Context) ([]models.Notification, error) {
	if !nc.session.CanSeeNotifications() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "this account has no notifications view")
	}

	all, err := nc.api.GetNotifications(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Notification, 0, len(all))
	for _, n := range all {
		if nc.session.CanRespond() {
			if n.Response == nil {
				out = append(out, n)
			}
		} else if n.StudentCode == nc.session.StudentCode() {
			out = append(out, n)
		}
	}

	// Server order is oldest first; the view wants newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Respond sends the auditing organizer's quote for a request.
func (nc *NotificationChannel) Respond(ctx context.Context, id string, hours, price float64) (*models.Notification, error) {
	if !nc.session.CanRespond() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the auditing organizer can respond")
	}
	if hours <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hours must be greater than zero")
	}
	if price <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "price must be greater than zero")
	}
	return nc.api.RespondNotification(ctx, id, hours, price)
}

// ConfirmPayment marks a responded request as paid, then re-fetches the
// actor's list so the caller renders the server's state, not a guess.
func (nc *NotificationChannel) ConfirmPayment(ctx context.Context, id string) ([]models.Notification, error) {
	if !nc.session.CanConfirmPayment() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can confirm payments")
	}
	if _, err := nc.api.ConfirmPayment(ctx, id); err != nil {
		return nil, err
	}
	return nc.ListForActor(ctx)
}
