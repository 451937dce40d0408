package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/pkg/pagination"
)

// OrderRepository is the ledger store. Every mutating method runs in a
// single transaction together with its stock adjustments.
type OrderRepository interface {
	// Create assigns the tenant's next order number, inserts the order with
	// its lines and decrements stock for lines flagged StockDeducted. An
	// *InsufficientStockError rolls everything back.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID returns the order with its lines ordered by line index
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ReturnLines marks the given lines returned while the order is still
	// completed and every line is still unreturned, then restocks. Otherwise
	// nothing changes and ErrStaleState is returned. Only lines whose sale
	// deducted stock are restocked.
	ReturnLines(ctx context.Context, orderID uuid.UUID, lineIndexes []int, at time.Time) error
	// Refund moves a completed order to refunded, marks every line returned
	// and restocks the stock-deducted lines that were not returned before.
	// ErrStaleState when the order was already refunded.
	Refund(ctx context.Context, orderID, refundedBy uuid.UUID, at time.Time) error
}

// OrderFilterParams contains filtering parameters for order queries.
// StartDate and EndDate are inclusive bounds on created_at.
type OrderFilterParams struct {
	Page       *pagination.Params
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortOrder  string
}
