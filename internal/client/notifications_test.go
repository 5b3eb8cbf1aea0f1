package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

// notificationServer is a minimal in-memory backend for channel tests.
type notificationServer struct {
	notifications []models.Notification
}

func (ns *notificationServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/get-notifications", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, ns.notifications)
	})
	mux.HandleFunc("/pay-notification", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		n := models.Notification{
			ID:          fmt.Sprintf("n-%d", len(ns.notifications)+1),
			StudentCode: body["studentCode"],
			Message:     body["message"],
		}
		if n.Message == "" {
			n.Message = "Student wants to pay."
		}
		ns.notifications = append(ns.notifications, n)
		writeEnvelope(w, http.StatusCreated, n)
	})
	mux.HandleFunc("/respond-notification", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			NotificationID string `json:"notificationId"`
			Response       struct {
				Hours float64 `json:"hours"`
				Price float64 `json:"price"`
			} `json:"response"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range ns.notifications {
			if ns.notifications[i].ID == body.NotificationID {
				ns.notifications[i].Response = &models.NotificationResponse{
					Hours: body.Response.Hours,
					Price: body.Response.Price,
					Total: fmt.Sprintf("%.2f", body.Response.Hours*body.Response.Price),
				}
				writeEnvelope(w, http.StatusOK, ns.notifications[i])
				return
			}
		}
		writeEnvelopeError(w, appErrors.ErrNotFound)
	})
	mux.HandleFunc("/confirm-payment", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range ns.notifications {
			if ns.notifications[i].ID == body["notificationId"] {
				if ns.notifications[i].Response == nil {
					writeEnvelopeError(w, appErrors.ErrNoResponse)
					return
				}
				ns.notifications[i].Paid = true
				writeEnvelope(w, http.StatusOK, ns.notifications[i])
				return
			}
		}
		writeEnvelopeError(w, appErrors.ErrNotFound)
	})
	return mux
}

func newChannel(t *testing.T, ns *notificationServer, organizer, studentCode string) *NotificationChannel {
	t.Helper()
	srv := httptest.NewServer(ns.handler())
	t.Cleanup(srv.Close)

	store, _ := tempStore(t)
	session := RestoreSession(store)
	if organizer != "" {
		require.NoError(t, session.SignInOrganizer(organizer, "tok"))
	} else {
		require.NoError(t, session.SignInStudent(studentCode, "tok"))
	}
	api := NewAPIClient(srv.URL, srv.Client(), session.Token, nil)
	return NewNotificationChannel(session, api)
}

func TestRequestPaymentCreates(t *testing.T) {
	ns := &notificationServer{}
	ch := newChannel(t, ns, "", "20231234")

	n, err := ch.RequestPayment(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Student wants to pay.", n.Message)
	assert.Equal(t, "20231234", n.StudentCode)
}

func TestRequestPaymentBlockedByPending(t *testing.T) {
	ns := &notificationServer{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234"},
	}}
	ch := newChannel(t, ns, "", "20231234")

	_, err := ch.RequestPayment(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPendingRequest.Code, appErrors.FromError(err).Code)
	assert.Len(t, ns.notifications, 1, "no second request may be posted")
}

func TestRequestPaymentAllowedAfterResponse(t *testing.T) {
	ns := &notificationServer{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234", Response: &models.NotificationResponse{Hours: 1, Price: 1, Total: "1.00"}},
	}}
	ch := newChannel(t, ns, "", "20231234")

	_, err := ch.RequestPayment(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, ns.notifications, 2)
}

func TestRequestPaymentForbiddenForOrganizers(t *testing.T) {
	ch := newChannel(t, &notificationServer{}, identity.OrganizerAhmed, "")

	_, err := ch.RequestPayment(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestListForAuditorUnansweredNewestFirst(t *testing.T) {
	ns := &notificationServer{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "a"},
		{ID: "n-2", StudentCode: "b", Response: &models.NotificationResponse{Total: "1.00"}},
		{ID: "n-3", StudentCode: "c"},
	}}
	ch := newChannel(t, ns, identity.OrganizerAhmed, "")

	list, err := ch.ListForActor(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n-3", list[0].ID, "newest first")
	assert.Equal(t, "n-1", list[1].ID)
}

func TestListForStudentOwnAllStates(t *testing.T) {
	ns := &notificationServer{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234"},
		{ID: "n-2", StudentCode: "other"},
		{ID: "n-3", StudentCode: "20231234", Paid: true,
			Response: &models.NotificationResponse{Hours: 10, Price: 5, Total: "50.00"}},
	}}
	ch := newChannel(t, ns, "", "20231234")

	list, err := ch.ListForActor(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "n-3", list[0].ID)
	assert.Equal(t, models.NotificationPaid, list[0].Status())
	assert.Equal(t, models.NotificationWaiting, list[1].Status())
}

func TestListForEditorForbidden(t *testing.T) {
	ch := newChannel(t, &notificationServer{}, identity.OrganizerMohamed, "")

	_, err := ch.ListForActor(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestRespondComputesServerTotal(t *testing.T) {
	ns := &notificationServer{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234"},
	}}
	ch := newChannel(t, ns, identity.OrganizerAhmed, "")

	n, err := ch.Respond(context.Background(), "n-1", 10, 5)
	require.NoError(t, err)
	require.NotNil(t, n.Response)
	assert.Equal(t, "50.00", n.Response.Total)
}

func TestRespondValidatesQuote(t *testing.T) {
	ch := newChannel(t, &notificationServer{}, identity.OrganizerAhmed, "")

	_, err := ch.Respond(context.Background(), "n-1", 0, 5)
	require.Error(t, err)
	_, err = ch.Respond(context.Background(), "n-1", 5, -1)
	require.Error(t, err)
}

func TestRespondDeniedForEditor(t *testing.T) {
	ch := newChannel(t, &notificationServer{}, identity.OrganizerMohamed, "")

	_, err := ch.Respond(context.Background(), "n-1", 1, 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestConfirmPaymentReFetches(t *testing.T) {
	ns := &notificationServer{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234",
			Response: &models.NotificationResponse{Hours: 10, Price: 5, Total: "50.00"}},
	}}
	ch := newChannel(t, ns, "", "20231234")

	list, err := ch.ConfirmPayment(context.Background(), "n-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Paid, "returned list reflects server state after payment")
}

func TestConfirmPaymentWithoutResponse(t *testing.T) {
	ns := &notificationServer{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234"},
	}}
	ch := newChannel(t, ns, "", "20231234")

	_, err := ch.ConfirmPayment(context.Background(), "n-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoResponse.Code, appErrors.FromError(err).Code)
}
