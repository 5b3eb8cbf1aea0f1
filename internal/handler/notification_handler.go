package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentportal/portal-api/internal/middleware"
	"github.com/studentportal/portal-api/internal/service"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
	"github.com/studentportal/portal-api/pkg/response"
)

// NotificationHandler exposes the payment-request workflow.
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new handler.
func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// respondPayload mirrors the legacy wire shape: the quote arrives nested
// under "response". The server recomputes the total and ignores any sent
// by the client.
type respondPayload struct {
	NotificationID    string `json:"notificationId"`
	NotificationIndex *int   `json:"notificationIndex"`
	Response          struct {
		Hours float64 `json:"hours"`
		Price float64 `json:"price"`
	} `json:"response"`
}

// List godoc
// @Summary List payment notifications
// @Description Return every notification in creation order
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /get-notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Pay godoc
// @Summary Request a payment
// @Description Create a payment-request notification for a student
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.PayRequest true "Payment request"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /pay-notification [post]
func (h *NotificationHandler) Pay(c *gin.Context) {
	var req service.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}

	n, err := h.service.RequestPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, n)
}

// Respond godoc
// @Summary Respond to a payment request
// @Description Record the auditing organizer's hours/price quote
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body respondPayload true "Response payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /respond-notification [post]
func (h *NotificationHandler) Respond(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload respondPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid response payload"))
		return
	}

	n, err := h.service.Respond(c.Request.Context(), claims, service.RespondRequest{
		NotificationID:    payload.NotificationID,
		NotificationIndex: payload.NotificationIndex,
		Hours:             payload.Response.Hours,
		Price:             payload.Response.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, n, nil)
}

// Confirm godoc
// @Summary Confirm a payment
// @Description Mark a responded notification as paid
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.ConfirmRequest true "Confirmation payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /confirm-payment [post]
func (h *NotificationHandler) Confirm(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid confirmation payload"))
		return
	}

	n, err := h.service.Confirm(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, n, nil)
}
