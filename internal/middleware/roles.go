package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/studentportal/portal-api/internal/identity"
	"github.com/studentportal/portal-api/internal/models"
	appErrors "github.com/studentportal/portal-api/pkg/errors"
	"github.com/studentportal/portal-api/pkg/response"
)

// RequireRoles allows only the listed roles through.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireEditor admits only organizers allowed to edit student records. The
// auditing organizer holds an organizer token but is refused here.
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !claims.IsOrganizer() || !identity.CanEditRecords(claims.OrganizerName) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "this account cannot edit student data"))
			c.Abort()
			return
		}
		c.Next()
	}
}
