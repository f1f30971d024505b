package ports

import (
	"context"

	"github.com/partsquote/gateway/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed credential and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the credential described by claims.
	Logout(ctx context.Context, claims *domain.Claims) error
}
