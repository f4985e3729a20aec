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
	"github.com/crmlite/crm-api/internal/core/ports"
)

const collectionClients = "clients"

// ClientRepository implements ports.ClientRepository using MongoDB. Ownership
// scoping happens at the query level: every filter includes owner_id, so a
// foreign client behaves exactly like a missing one.
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(collectionClients)}
}

type mongoClient struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email"`
	Phone          string             `bson:"phone"`
	Address        string             `bson:"address"`
	Tags           []string           `bson:"tags"`
	Status         string             `bson:"status"`
	NextContact    *time.Time         `bson:"next_contact,omitempty"`
	OwnerID        string             `bson:"owner_id"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClient{
		Name:           client.Name,
		Email:          client.Email,
		Phone:          client.Phone,
		Address:        client.Address,
		Tags:           client.Tags,
		Status:         string(client.Status),
		NextContact:    client.NextContact,
		OwnerID:        client.OwnerID,
		IdempotencyKey: client.IdempotencyKey,
		CreatedAt:      client.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	created := *client
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, clientID, ownerID string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClient
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) FindByIdempotencyKey(ctx context.Context, ownerID, key string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClient
	err := r.coll.FindOne(ctx, bson.M{"owner_id": ownerID, "idempotency_key": key}).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client by idempotency key: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"owner_id": ownerID,
		"status":   bson.M{"$ne": string(domain.StatusInactive)},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	clients := []domain.Client{}
	for cur.Next(ctx) {
		var mc mongoClient
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, *mc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Update applies the writable fields as one conditional write scoped to the
// owner. Tags always overwrite (an omitted wire value arrives as the empty
// set); status is included only when SetStatus is true.
func (r *ClientRepository) Update(ctx context.Context, clientID, ownerID string, upd ports.ClientUpdate) (*domain.Client, error) {
	set := bson.M{
		"name":    upd.Name,
		"email":   upd.Email,
		"phone":   upd.Phone,
		"address": upd.Address,
		"tags":    upd.Tags,
	}
	if upd.SetStatus {
		set["status"] = string(upd.Status)
	}
	return r.findOneAndSet(ctx, clientID, ownerID, set)
}

// Deactivate marks the client INACTIVE. Deactivating an already-inactive
// client matches the same document again, keeping the operation idempotent.
func (r *ClientRepository) Deactivate(ctx context.Context, clientID, ownerID string) (*domain.Client, error) {
	return r.findOneAndSet(ctx, clientID, ownerID, bson.M{"status": string(domain.StatusInactive)})
}

func (r *ClientRepository) findOneAndSet(ctx context.Context, clientID, ownerID string, set bson.M) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "owner_id": ownerID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mc mongoClient
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	return mc.toDomain(), nil
}

// EnsureIndexes creates the indexes backing owner-scoped listings and
// idempotent replays.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "idempotency_key", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mc *mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:             mc.ID.Hex(),
		Name:           mc.Name,
		Email:          mc.Email,
		Phone:          mc.Phone,
		Address:        mc.Address,
		Tags:           mc.Tags,
		Status:         domain.ClientStatus(mc.Status),
		NextContact:    mc.NextContact,
		OwnerID:        mc.OwnerID,
		IdempotencyKey: mc.IdempotencyKey,
		CreatedAt:      mc.CreatedAt.UTC(),
	}
}
