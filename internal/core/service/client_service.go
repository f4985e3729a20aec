package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crmlite/crm-api/internal/core/domain"
	"github.com/crmlite/crm-api/internal/core/ports"
)

// SubmissionGuard abstracts the short-lived double-submit store (Redis).
// A hit means the same owner already submitted this idempotency key recently.
type SubmissionGuard interface {
	IsDuplicate(ctx context.Context, ownerID, key string) (bool, error)
	Mark(ctx context.Context, ownerID, key string) error
}

// ClientService implements the ownership-scoped client and note use cases.
type ClientService struct {
	clients ports.ClientRepository
	notes   ports.NoteRepository
	users   ports.UserRepository
	guard   SubmissionGuard
	logger  zerolog.Logger
}

func NewClientService(
	clients ports.ClientRepository,
	notes ports.NoteRepository,
	users ports.UserRepository,
	guard SubmissionGuard,
	logger zerolog.Logger,
) *ClientService {
	return &ClientService{clients: clients, notes: notes, users: users, guard: guard, logger: logger}
}

// ownedClient is the single authorization guard: load by id scoped to the
// owner, or ErrClientNotFound. Cross-owner access never yields a distinct
// forbidden signal.
func (s *ClientService) ownedClient(ctx context.Context, ownerID, clientID string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, clientID, ownerID)
}

// Create persists a new client owned by ownerID. Status defaults to NEW and
// the reserved INACTIVE marker is rejected. When an idempotency key is
// supplied and already seen, the earlier record is returned unchanged.
func (s *ClientService) Create(ctx context.Context, ownerID string, in ports.CreateClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	if in.Status == domain.StatusInactive {
		return nil, domain.ErrStatusReserved
	}

	if in.IdempotencyKey != "" {
		dup, err := s.guard.IsDuplicate(ctx, ownerID, in.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("submission guard check failed, processing anyway")
		} else if dup {
			existing, err := s.clients.FindByIdempotencyKey(ctx, ownerID, in.IdempotencyKey)
			if err == nil && existing != nil {
				s.logger.Info().
					Str("client_id", existing.ID).
					Str("idempotency_key", in.IdempotencyKey).
					Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	status := in.Status
	if status == "" {
		status = domain.StatusNew
	}

	client := &domain.Client{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Tags:           in.Tags,
		Status:         status,
		NextContact:    in.NextContact,
		OwnerID:        ownerID,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create client")
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := s.guard.Mark(ctx, ownerID, in.IdempotencyKey); err != nil {
			s.logger.Warn().Err(err).Str("client_id", created.ID).Msg("failed to mark submission")
		}
	}

	s.logger.Info().Str("client_id", created.ID).Str("owner_id", ownerID).Msg("client created")
	return created, nil
}

// List returns the owner's active clients, newest first.
func (s *ClientService) List(ctx context.Context, ownerID string) ([]domain.Client, error) {
	return s.clients.ListByOwner(ctx, ownerID)
}

// Get fetches a single owned client by id, including inactive ones.
func (s *ClientService) Get(ctx context.Context, ownerID, clientID string) (*domain.Client, error) {
	return s.ownedClient(ctx, ownerID, clientID)
}

// Update overwrites name, email, phone, address and tags unconditionally and
// applies status only when a non-empty value was supplied. Unknown status
// strings are stored verbatim; only the reserved INACTIVE is rejected.
func (s *ClientService) Update(ctx context.Context, ownerID, clientID string, in ports.UpdateClientInput) (*domain.Client, error) {
	if in.Status == domain.StatusInactive {
		return nil, domain.ErrStatusReserved
	}

	updated, err := s.clients.Update(ctx, clientID, ownerID, ports.ClientUpdate{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Tags:      in.Tags,
		Status:    in.Status,
		SetStatus: in.Status != "",
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", clientID).Str("status", string(updated.Status)).Msg("client updated")
	return updated, nil
}

// Deactivate soft-deletes the client by setting status = INACTIVE. Calling it
// again on an already-inactive client succeeds with the same result; there is
// no reactivate path.
func (s *ClientService) Deactivate(ctx context.Context, ownerID, clientID string) (*domain.Client, error) {
	client, err := s.clients.Deactivate(ctx, clientID, ownerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", clientID).Str("owner_id", ownerID).Msg("client deactivated")
	return client, nil
}

// AddNote appends an activity note to an owned client. The ownership check
// and the insert run atomically in the repository, so a concurrent
// deactivation cannot interleave. The returned note carries the author view.
func (s *ClientService) AddNote(ctx context.Context, ownerID, clientID, authorID, content, noteType string) (*domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrContentRequired
	}
	if noteType == "" {
		noteType = domain.NoteTypeNote
	}

	note := &domain.Note{
		Content:   content,
		Type:      noteType,
		ClientID:  clientID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.notes.Create(ctx, note, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.attachAuthors(ctx, []*domain.Note{created}); err != nil {
		s.logger.Warn().Err(err).Str("note_id", created.ID).Msg("failed to resolve note author")
	}

	s.logger.Info().Str("note_id", created.ID).Str("client_id", clientID).Str("type", noteType).Msg("note added")
	return created, nil
}

// ListNotes returns the client's notes newest first with denormalized author
// views, after the ownership guard.
func (s *ClientService) ListNotes(ctx context.Context, ownerID, clientID string) ([]domain.Note, error) {
	if _, err := s.ownedClient(ctx, ownerID, clientID); err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	refs := make([]*domain.Note, len(notes))
	for i := range notes {
		refs[i] = &notes[i]
	}
	if err := s.attachAuthors(ctx, refs); err != nil {
		s.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to resolve note authors")
	}
	return notes, nil
}

// DeleteNote hard-deletes a note after verifying the full chain: the client
// belongs to the owner and the note belongs to the client.
func (s *ClientService) DeleteNote(ctx context.Context, ownerID, clientID, noteID string) error {
	if _, err := s.ownedClient(ctx, ownerID, clientID); err != nil {
		return err
	}

	if err := s.notes.Delete(ctx, noteID, clientID); err != nil {
		return err
	}

	s.logger.Info().Str("note_id", noteID).Str("client_id", clientID).Msg("note deleted")
	return nil
}

// attachAuthors resolves the {id, name, email} author snapshot per note.
// Authors are looked up once each; a missing author leaves the view nil.
func (s *ClientService) attachAuthors(ctx context.Context, notes []*domain.Note) error {
	cache := make(map[string]*domain.NoteAuthor)
	for _, n := range notes {
		author, ok := cache[n.AuthorID]
		if !ok {
			user, err := s.users.FindByID(ctx, n.AuthorID)
			if err != nil {
				if err == domain.ErrUserNotFound {
					cache[n.AuthorID] = nil
					continue
				}
				return err
			}
			author = &domain.NoteAuthor{ID: user.ID, Name: user.Name, Email: user.Email}
			cache[n.AuthorID] = author
		}
		n.Author = author
	}
	return nil
}
