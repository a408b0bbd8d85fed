package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role names carried in token claims.
const (
	RoleAdmin = "admin"
	RoleOrga  = "orga"
)

// Claims are the JWT claims issued by the identity service.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Roles  []string  `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Actor is the authenticated principal performing a request.
type Actor struct {
	UserID uuid.UUID
	Roles  []string
}

// HasRole reports whether the actor carries the given role claim.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor bypasses per-larp organizer checks.
func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

type contextKey string

// Context keys under which the auth middleware stores the principal.
const (
	UserContextKey  contextKey = "userID"
	RolesContextKey contextKey = "roles"
)
