package ports

import (
	"context"

	"github.com/crmlite/crm-api/internal/core/domain"
)

// AuthService covers signup, login and the /me lookup. Both Register and
// Login return a signed bearer token alongside the public user view.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
