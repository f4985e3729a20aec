package ports

import (
	"context"

	"github.com/crmlite/crm-api/internal/core/domain"
)

// UpdateClientInput carries the writable fields for an update request. Status
// is applied only when non-empty; everything else overwrites unconditionally
// (omitted tags collapse to the empty set, matching the legacy wire contract).
type UpdateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Tags    []string
	Status  domain.ClientStatus
}

// ClientService defines the ownership-scoped use cases over clients and their
// notes. ownerID is always the verified acting user from the auth middleware;
// any cross-owner access surfaces as domain.ErrClientNotFound.
type ClientService interface {
	Create(ctx context.Context, ownerID string, in CreateClientInput) (*domain.Client, error)
	List(ctx context.Context, ownerID string) ([]domain.Client, error)
	Get(ctx context.Context, ownerID, clientID string) (*domain.Client, error)
	Update(ctx context.Context, ownerID, clientID string, in UpdateClientInput) (*domain.Client, error)
	Deactivate(ctx context.Context, ownerID, clientID string) (*domain.Client, error)

	AddNote(ctx context.Context, ownerID, clientID, authorID, content, noteType string) (*domain.Note, error)
	ListNotes(ctx context.Context, ownerID, clientID string) ([]domain.Note, error)
	DeleteNote(ctx context.Context, ownerID, clientID, noteID string) error
}
