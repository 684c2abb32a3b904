package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates actor roles recognised on the admin surface.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleDirector UserRole = "DIRECTOR"
	RoleTeacher  UserRole = "TEACHER"
)

// Valid returns true for supported roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleDirector, RoleTeacher:
		return true
	default:
		return false
	}
}

// JWTClaims carries the request-scoped identity extracted from a bearer
// token. Tokens are issued by the account service; this API only
// validates them and threads the claims into store operations.
type JWTClaims struct {
	UserID string   `json:"uid"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
