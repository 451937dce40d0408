package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key of the current tenant
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key. A key the tenant already holds
	// returns ErrDuplicate.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Complete records the response of a pending key
	Complete(ctx context.Context, id uuid.UUID, code int, body string) error
	// Delete releases a key
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes keys that expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
