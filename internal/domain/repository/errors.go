package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrDuplicate is returned when a write violates a unique index
	ErrDuplicate = errors.New("duplicate record")
	// ErrStaleState is returned when a conditional update matched no row
	// because another request changed the record first
	ErrStaleState = errors.New("record state changed concurrently")
)

// InsufficientStockError lists the tracked items whose stock could not cover
// an order. The whole order is rolled back when it is returned.
type InsufficientStockError struct {
	ItemIDs []uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d item(s)", len(e.ItemIDs))
}
