package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentportal/portal-api/internal/service"
	"github.com/studentportal/portal-api/pkg/response"
)

// ExportHandler serves downloadable student documents.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Card godoc
// @Summary Export a student identity card
// @Description Render the student's identity card as a PDF download
// @Tags Exports
// @Produce application/pdf
// @Param code query string true "Student code"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /export-card [get]
func (h *ExportHandler) Card(c *gin.Context) {
	code := c.Query("code")
	data, err := h.service.Card(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=card-%s.pdf", code))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Transcript godoc
// @Summary Export a student transcript
// @Description Render the student's course list and GPA as CSV
// @Tags Exports
// @Produce text/csv
// @Param code query string true "Student code"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /export-transcript [get]
func (h *ExportHandler) Transcript(c *gin.Context) {
	code := c.Query("code")
	data, err := h.service.Transcript(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transcript-%s.csv", code))
	c.Data(http.StatusOK, "text/csv", data)
}
