package ports

import (
	"context"

	"github.com/partsquote/gateway/internal/core/domain"
)

// UserRepository defines persistence for issuer accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
