package ports

import (
	"context"

	"github.com/crmlite/crm-api/internal/core/domain"
)

// NoteRepository defines persistence for client notes.
type NoteRepository interface {
	// Create inserts the note only if a client with note.ClientID owned by
	// ownerID exists; the check and the insert are atomic (one transaction),
	// so a concurrent deactivation cannot slip between them. Returns
	// domain.ErrClientNotFound when the ownership check fails.
	Create(ctx context.Context, note *domain.Note, ownerID string) (*domain.Note, error)

	// ListByClient returns the client's notes newest first. Ownership is the
	// caller's responsibility (the service guards before listing).
	ListByClient(ctx context.Context, clientID string) ([]domain.Note, error)

	// Delete hard-deletes the note conditional on it belonging to clientID.
	// Returns domain.ErrNoteNotFound when nothing matched.
	Delete(ctx context.Context, noteID, clientID string) error
}
