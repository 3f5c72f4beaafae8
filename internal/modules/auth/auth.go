// Package auth signs administrators in against the remote catalog API.
package auth

import (
	"context"

	"github.com/georgemunganga/autek-admin/internal/modules/session"
)

// Credentials is the login form as validated before it reaches the API.
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Identity is what a successful login yields: the bearer credential and
// the administrator it belongs to.
type Identity struct {
	Token   string
	Profile session.Profile
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, c Credentials) (*Identity, error)
}
