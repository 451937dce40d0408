package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// CountExisting returns how many of ids exist in the tenant
	CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Category, error)
	// InUse reports whether any item or modifier still references the category
	InUse(ctx context.Context, id uuid.UUID) (bool, error)
}

// ItemRepository defines the interface for item data operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	// GetByIDs retrieves multiple items by their IDs in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error)
	// Update saves catalog fields; stock is only changed by SetStock and the ledger
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ItemFilterParams) ([]entity.Item, error)
	// SetStock overwrites the stock level and turns tracking on
	SetStock(ctx context.Context, id uuid.UUID, stock int) error
}

// ItemFilterParams contains filtering parameters for item queries
type ItemFilterParams struct {
	CategoryID *uuid.UUID
	Search     string
}

// ModifierRepository defines the interface for modifier data operations
type ModifierRepository interface {
	// Create stores the modifier and its category links
	Create(ctx context.Context, modifier *entity.Modifier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Modifier, error)
	// Update saves the modifier and replaces its category links
	Update(ctx context.Context, modifier *entity.Modifier) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns modifiers, optionally only those linked to categoryID
	List(ctx context.Context, categoryID *uuid.UUID) ([]entity.Modifier, error)
}
