// Package client is the portal's embedded client core: session state, the
// course cache and table views, and the payment-notification workflow. It
// talks to the backend over the JSON API and persists everything it needs
// across restarts in a local file store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
)

// LoginResult is the server's answer to a student login.
type LoginResult struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

// OrganizerLoginResult names the resolved organizer and carries their token.
type OrganizerLoginResult struct {
	OrganizerName string `json:"organizerName"`
	Token         string `json:"token"`
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

// APIClient issues portal API calls. Every request runs under the caller's
// context plus the configured timeout; there are no automatic retries.
type APIClient struct {
	baseURL string
	http    *http.Client
	token   func() string
	logger  *zap.Logger
}

// NewAPIClient builds a client against baseURL. token supplies the current
// session token for authenticated calls and may return "".
func NewAPIClient(baseURL string, httpClient *http.Client, token func() string, logger *zap.Logger) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if token == nil {
		token = func() string { return "" }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIClient{baseURL: baseURL, http: httpClient, token: token, logger: logger}
}

// Login authenticates a student account. Blank credentials are rejected
// before any network traffic.
func (c *APIClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}
	var out LoginResult
	if err := c.post(ctx, "/login", map[string]string{"email": email, "password": password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a login account, optionally linked to a student code.
func (c *APIClient) Register(ctx context.Context, email, password, code string) error {
	if email == "" || password == "" {
		return appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}
	payload := map[string]string{"email": email, "password": password}
	if code != "" {
		payload["code"] = code
	}
	return c.post(ctx, "/save-user", payload, nil)
}

// OrganizerLogin resolves organizer credentials.
func (c *APIClient) OrganizerLogin(ctx context.Context, email, password string) (*OrganizerLoginResult, error) {
	if email == "" || password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}
	var out OrganizerLoginResult
	if err := c.post(ctx, "/organizer-login", map[string]string{"email": email, "password": password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStudent fetches a student record with courses.
func (c *APIClient) GetStudent(ctx context.Context, code string) (*models.Student, error) {
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "missing student code")
	}
	var out models.Student
	if err := c.get(ctx, "/get-student?code="+url.QueryEscape(code), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveStudent replaces a student record and its full course list.
func (c *APIClient) SaveStudent(ctx context.Context, student *models.Student) error {
	return c.post(ctx, "/save-student", student, nil)
}

// GetNotifications fetches the full notification list.
func (c *APIClient) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.get(ctx, "/get-notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PayNotification posts a payment request for the student.
func (c *APIClient) PayNotification(ctx context.Context, studentCode, message string) (*models.Notification, error) {
	var out models.Notification
	payload := map[string]string{"studentCode": studentCode}
	if message != "" {
		payload["message"] = message
	}
	if err := c.post(ctx, "/pay-notification", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RespondNotification records the organizer's quote.
func (c *APIClient) RespondNotification(ctx context.Context, id string, hours, price float64) (*models.Notification, error) {
	var out models.Notification
	payload := map[string]interface{}{
		"notificationId": id,
		"response":       map[string]float64{"hours": hours, "price": price},
	}
	if err := c.post(ctx, "/respond-notification", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPayment marks a responded notification as paid.
func (c *APIClient) ConfirmPayment(ctx context.Context, id string) (*models.Notification, error) {
	var out models.Notification
	if err := c.post(ctx, "/confirm-payment", map[string]string{"notificationId": id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	return c.do(req, out)
}

func (c *APIClient) post(ctx context.Context, path string, payload, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out interface{}) error {
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("url", req.URL.String()), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "could not reach the server")
	}
	defer res.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "unreadable server response")
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	// The server answered, so a failed status is a server error even when an
	// intermediary replaced the body with something that is not our envelope.
	if res.StatusCode >= http.StatusBadRequest {
		if decodeErr == nil && env.Error != nil {
			return env.Error
		}
		return appErrors.New(appErrors.ErrInternal.Code, res.StatusCode, fmt.Sprintf("server returned %d", res.StatusCode))
	}

	if decodeErr != nil {
		return appErrors.Wrap(decodeErr, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "unreadable server response")
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "unexpected response shape")
		}
	}
	return nil
}
