package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crmlite/crm-api/internal/core/domain"
)

const collectionNotes = "client_notes"

// NoteRepository implements ports.NoteRepository using MongoDB.
type NoteRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{db: db, coll: db.Collection(collectionNotes)}
}

type mongoNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Content   string             `bson:"content"`
	Type      string             `bson:"type"`
	ClientID  string             `bson:"client_id"`
	AuthorID  string             `bson:"author_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Create verifies client ownership and inserts the note inside one session
// transaction, so a deactivation or deletion racing the insert cannot detach
// the note from its ownership check.
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note, ownerID string) (*domain.Note, error) {
	clientOID, err := primitive.ObjectIDFromHex(note.ClientID)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	doc := mongoNote{
		Content:   note.Content,
		Type:      note.Type,
		ClientID:  note.ClientID,
		AuthorID:  note.AuthorID,
		CreatedAt: note.CreatedAt,
	}

	insertedID, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		clients := r.db.Collection(collectionClients)
		err := clients.FindOne(sc, bson.M{"_id": clientOID, "owner_id": ownerID}).Err()
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrClientNotFound
			}
			return nil, fmt.Errorf("check client ownership: %w", err)
		}

		res, err := r.coll.InsertOne(sc, doc)
		if err != nil {
			return nil, fmt.Errorf("insert note: %w", err)
		}
		return res.InsertedID, nil
	})
	if err != nil {
		return nil, err
	}

	created := *note
	created.ID = insertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NoteRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	notes := []domain.Note{}
	for cur.Next(ctx) {
		var mn mongoNote
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, *mn.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Delete hard-deletes the note, conditional on it belonging to clientID.
func (r *NoteRepository) Delete(ctx context.Context, noteID, clientID string) error {
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "client_id": clientID})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the index backing newest-first note listings.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (mn *mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        mn.ID.Hex(),
		Content:   mn.Content,
		Type:      mn.Type,
		ClientID:  mn.ClientID,
		AuthorID:  mn.AuthorID,
		CreatedAt: mn.CreatedAt.UTC(),
	}
}
