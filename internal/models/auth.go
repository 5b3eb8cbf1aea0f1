package models

import "github.com/golang-jwt/jwt/v5"

// UserRole separates the two actor kinds the portal knows about.
type UserRole string

const (
	RoleStudent   UserRole = "STUDENT"
	RoleOrganizer UserRole = "ORGANIZER"
)

// JWTClaims carries the portal's token payload.
type JWTClaims struct {
	UserID        string   `json:"uid,omitempty"`
	Email         string   `json:"email,omitempty"`
	Role          UserRole `json:"role"`
	OrganizerName string   `json:"organizerName,omitempty"`
	StudentCode   string   `json:"studentCode,omitempty"`
	jwt.RegisteredClaims
}

// IsOrganizer reports whether the token belongs to an organizer.
func (c *JWTClaims) IsOrganizer() bool {
	return c != nil && c.Role == RoleOrganizer
}
