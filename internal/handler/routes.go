package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studentportal/portal-api/internal/middleware"
	"github.com/studentportal/portal-api/internal/models"
	"github.com/studentportal/portal-api/internal/service"
)

// Handlers bundles everything route registration needs.
type Handlers struct {
	Auth          *AuthHandler
	Students      *StudentHandler
	Notifications *NotificationHandler
	Exports       *ExportHandler
	AuthService   *service.AuthService
}

// RegisterRoutes mounts the portal API under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	// Public endpoints.
	api.POST("/login", h.Auth.Login)
	api.POST("/save-user", h.Auth.Register)
	api.POST("/organizer-login", h.Auth.OrganizerLogin)

	// Everything below requires a valid token.
	authed := api.Group("")
	authed.Use(middleware.JWT(h.AuthService))

	authed.GET("/get-student", h.Students.Get)
	authed.POST("/save-student", middleware.RequireEditor(), h.Students.Save)

	authed.GET("/get-notifications", h.Notifications.List)
	authed.POST("/pay-notification", middleware.RequireRoles(models.RoleStudent), h.Notifications.Pay)
	authed.POST("/respond-notification", middleware.RequireRoles(models.RoleOrganizer), h.Notifications.Respond)
	authed.POST("/confirm-payment", middleware.RequireRoles(models.RoleStudent), h.Notifications.Confirm)

	authed.GET("/export-card", h.Exports.Card)
	authed.GET("/export-transcript", h.Exports.Transcript)
}
