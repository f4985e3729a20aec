package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionTTL = 24 * time.Hour

// SubmissionGuard provides short-lived double-submit detection backed by
// Redis, keyed per owner so idempotency keys cannot collide across accounts.
// Key format: submit:<owner_id>:<idempotency_key>
type SubmissionGuard struct {
	client *redis.Client
}

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
func NewSubmissionGuard(client *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{client: client}
}

// IsDuplicate reports whether this owner already submitted this key recently.
func (g *SubmissionGuard) IsDuplicate(ctx context.Context, ownerID, key string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(ownerID, key)).Result()
	if err != nil {
		return false, fmt.Errorf("submission check: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission (expires after submissionTTL).
func (g *SubmissionGuard) Mark(ctx context.Context, ownerID, key string) error {
	return g.client.Set(ctx, g.key(ownerID, key), "1", submissionTTL).Err()
}

func (g *SubmissionGuard) key(ownerID, key string) string {
	return fmt.Sprintf("submit:%s:%s", ownerID, key)
}
