package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/middleware"
	"github.com/studentportal/portal-api/internal/models"
	"github.com/studentportal/portal-api/internal/service"
	"github.com/studentportal/portal-api/pkg/response"
)

type notificationRepoMock struct {
	notifications []models.Notification
	blocked       bool
	responded     map[string]models.NotificationResponse
	paid          map[string]bool
}

func (m *notificationRepoMock) List(ctx context.Context) ([]models.Notification, error) {
	return m.notifications, nil
}

func (m *notificationRepoMock) CreateIfNoPending(ctx context.Context, n *models.Notification) (bool, error) {
	if m.blocked {
		return false, nil
	}
	n.ID = "n-created"
	m.notifications = append(m.notifications, *n)
	return true, nil
}

func (m *notificationRepoMock) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			n := m.notifications[i]
			return &n, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *notificationRepoMock) FindByIndex(ctx context.Context, index int) (*models.Notification, error) {
	if index < 0 || index >= len(m.notifications) {
		return nil, sql.ErrNoRows
	}
	n := m.notifications[index]
	return &n, nil
}

func (m *notificationRepoMock) SetResponse(ctx context.Context, id string, resp models.NotificationResponse) (bool, error) {
	if m.responded == nil {
		m.responded = make(map[string]models.NotificationResponse)
	}
	m.responded[id] = resp
	return true, nil
}

func (m *notificationRepoMock) SetPaid(ctx context.Context, id string) (bool, error) {
	if m.paid == nil {
		m.paid = make(map[string]bool)
	}
	m.paid[id] = true
	return true, nil
}

func postJSON(t *testing.T, claims *models.JWTClaims, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestNotificationHandlerPay(t *testing.T) {
	repo := &notificationRepoMock{}
	h := NewNotificationHandler(service.NewNotificationService(repo, nil, nil, nil))

	c, w := postJSON(t, &models.JWTClaims{Role: models.RoleStudent, StudentCode: "20231234"},
		gin.H{"studentCode": "20231234"})
	h.Pay(c)

	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "Student wants to pay.", data["message"])
}

func TestNotificationHandlerPayBlocked(t *testing.T) {
	repo := &notificationRepoMock{blocked: true}
	h := NewNotificationHandler(service.NewNotificationService(repo, nil, nil, nil))

	c, w := postJSON(t, &models.JWTClaims{Role: models.RoleStudent, StudentCode: "20231234"},
		gin.H{"studentCode": "20231234"})
	h.Pay(c)

	require.Equal(t, http.StatusConflict, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "PENDING_REQUEST", env.Error.Code)
}

func TestNotificationHandlerRespondNestedPayload(t *testing.T) {
	repo := &notificationRepoMock{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234"},
	}}
	h := NewNotificationHandler(service.NewNotificationService(repo, nil, nil, nil))

	c, w := postJSON(t,
		&models.JWTClaims{Role: models.RoleOrganizer, OrganizerName: identity.OrganizerAhmed},
		gin.H{"notificationId": "n-1", "response": gin.H{"hours": 10, "price": 5}})
	h.Respond(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "50.00", repo.responded["n-1"].Total)
}

func TestNotificationHandlerRespondWrongOrganizer(t *testing.T) {
	repo := &notificationRepoMock{notifications: []models.Notification{{ID: "n-1"}}}
	h := NewNotificationHandler(service.NewNotificationService(repo, nil, nil, nil))

	c, w := postJSON(t,
		&models.JWTClaims{Role: models.RoleOrganizer, OrganizerName: identity.OrganizerMohamed},
		gin.H{"notificationId": "n-1", "response": gin.H{"hours": 1, "price": 1}})
	h.Respond(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.responded)
}

func TestNotificationHandlerConfirmWithoutResponse(t *testing.T) {
	repo := &notificationRepoMock{notifications: []models.Notification{
		{ID: "n-1", StudentCode: "20231234"},
	}}
	h := NewNotificationHandler(service.NewNotificationService(repo, nil, nil, nil))

	c, w := postJSON(t,
		&models.JWTClaims{Role: models.RoleStudent, StudentCode: "20231234"},
		gin.H{"notificationId": "n-1"})
	h.Confirm(c)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, repo.paid)
}
