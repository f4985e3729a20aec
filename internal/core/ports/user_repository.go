package ports

import (
	"context"

	"github.com/crmlite/crm-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Email uniqueness is
// enforced by the store; Create returns domain.ErrEmailTaken on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
