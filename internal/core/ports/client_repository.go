package ports

import (
	"context"
	"time"

	"github.com/crmlite/crm-api/internal/core/domain"
)

// ClientUpdate carries the writable client fields for an update. Name, email,
// phone, address and tags always overwrite; Status is applied only when
// non-empty (SetStatus distinguishes "keep" from "overwrite with empty").
type ClientUpdate struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	Tags      []string
	Status    domain.ClientStatus
	SetStatus bool
}

// ClientRepository defines persistence for clients. Every lookup and mutation
// takes the owner id and filters by it at the query level, so a client owned
// by someone else is indistinguishable from an absent one
// (domain.ErrClientNotFound either way).
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)

	// FindByID fetches a single owned client regardless of status; inactive
	// clients remain reachable by direct id.
	FindByID(ctx context.Context, clientID, ownerID string) (*domain.Client, error)

	// FindByIdempotencyKey retrieves an earlier creation by the same owner
	// with the same idempotency key, if any.
	FindByIdempotencyKey(ctx context.Context, ownerID, key string) (*domain.Client, error)

	// ListByOwner returns the owner's clients with status != INACTIVE,
	// ordered by creation time descending.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Client, error)

	// Update applies upd as a single conditional write scoped to the owner
	// and returns the updated record.
	Update(ctx context.Context, clientID, ownerID string, upd ClientUpdate) (*domain.Client, error)

	// Deactivate sets status = INACTIVE as a single conditional write and
	// returns the record. Already-inactive clients deactivate again cleanly.
	Deactivate(ctx context.Context, clientID, ownerID string) (*domain.Client, error)
}

// CreateClientInput carries the fields accepted when creating a client.
type CreateClientInput struct {
	Name           string
	Email          string
	Phone          string
	Address        string
	Tags           []string
	Status         domain.ClientStatus
	NextContact    *time.Time
	IdempotencyKey string
}
