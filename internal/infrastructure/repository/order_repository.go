package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// Create runs numbering, insertion and stock decrements in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return errors.New("tenant context required")
	}
	order.TenantID = tenantID

	var failedIDs []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextOrderSequence(tx, tenantID, order.CreatedAt)
		if err != nil {
			return err
		}
		order.OrderNumber = entity.FormatOrderNumber(seq)

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		for i := range order.Lines {
			order.Lines[i].OrderID = order.ID
			order.Lines[i].TenantID = tenantID
			order.Lines[i].LineIndex = i
			order.Lines[i].Returned = false
			order.Lines[i].ReturnedAt = nil
		}
		if len(order.Lines) > 0 {
			if err := tx.Create(&order.Lines).Error; err != nil {
				return err
			}
		}

		decrements := deductedQuantities(order.Lines)
		for _, id := range sortedIDs(decrements) {
			amount := decrements[id]
			result := tx.Model(&entity.Item{}).
				Where("id = ? AND tenant_id = ? AND track_stock = ? AND stock >= ?", id, tenantID, true, amount).
				Update("stock", gorm.Expr("stock - ?", amount))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		// If any items failed, rollback entire transaction
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}
		return nil
	})

	if errors.Is(err, gorm.ErrInvalidTransaction) && len(failedIDs) > 0 {
		return &domainRepo.InsufficientStockError{ItemIDs: failedIDs}
	}
	return translateError(err)
}

// nextOrderSequence bumps the tenant counter with an upsert and reads it
// back. The row lock taken by the upsert serialises concurrent creators
// until commit.
func nextOrderSequence(tx *gorm.DB, tenantID uuid.UUID, now time.Time) (int64, error) {
	seq := entity.OrderSequence{TenantID: tenantID, LastValue: 1, UpdatedAt: now}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_value": gorm.Expr("order_sequences.last_value + 1"),
			"updated_at": now,
		}),
	}).Create(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("bump order sequence: %w", err)
	}

	var current entity.OrderSequence
	if err := tx.First(&current, "tenant_id = ?", tenantID).Error; err != nil {
		return 0, fmt.Errorf("read order sequence: %w", err)
	}
	return current.LastValue, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Lines", orderLines).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	orders := []entity.Order{}
	var total int64

	if params == nil {
		params = &domainRepo.OrderFilterParams{}
	}

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(TenantScope(ctx))
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	query = query.Order("created_at " + sortOrder).Order("order_number " + sortOrder)

	if params.Page != nil {
		params.Page.Normalize()
		query = query.Offset(params.Page.Offset()).Limit(params.Page.Limit())
	}

	err := query.Preload("Lines", orderLines).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) ReturnLines(ctx context.Context, orderID uuid.UUID, lineIndexes []int, at time.Time) error {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return errors.New("tenant context required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Touching the order row first serialises with a concurrent refund.
		result := tx.Model(&entity.Order{}).
			Where("id = ? AND tenant_id = ? AND status = ?", orderID, tenantID, enum.OrderStatusCompleted).
			Update("updated_at", at)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrStaleState
		}

		result = tx.Model(&entity.OrderLine{}).
			Where("order_id = ? AND tenant_id = ? AND line_index IN ? AND returned = ?", orderID, tenantID, lineIndexes, false).
			Updates(map[string]interface{}{"returned": true, "returned_at": at})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(lineIndexes)) {
			return domainRepo.ErrStaleState
		}

		var returned []entity.OrderLine
		if err := tx.Where("order_id = ? AND tenant_id = ? AND line_index IN ?", orderID, tenantID, lineIndexes).
			Find(&returned).Error; err != nil {
			return err
		}
		return restockItems(tx, tenantID, deductedQuantities(returned))
	})
}

func (r *orderRepository) Refund(ctx context.Context, orderID, refundedBy uuid.UUID, at time.Time) error {
	tenantID, ok := GetTenantID(ctx)
	if !ok {
		return errors.New("tenant context required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Order{}).
			Where("id = ? AND tenant_id = ? AND status = ?", orderID, tenantID, enum.OrderStatusCompleted).
			Updates(map[string]interface{}{
				"status":      enum.OrderStatusRefunded,
				"refunded_at": at,
				"refunded_by": refundedBy,
				"updated_at":  at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrStaleState
		}

		var pending []entity.OrderLine
		if err := tx.Where("order_id = ? AND tenant_id = ? AND returned = ?", orderID, tenantID, false).
			Find(&pending).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.OrderLine{}).
			Where("order_id = ? AND tenant_id = ? AND returned = ?", orderID, tenantID, false).
			Updates(map[string]interface{}{"returned": true, "returned_at": at}).Error; err != nil {
			return err
		}

		return restockItems(tx, tenantID, deductedQuantities(pending))
	})
}

// deductedQuantities sums quantities per item over lines whose sale took
// stock
func deductedQuantities(lines []entity.OrderLine) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, l := range lines {
		if l.StockDeducted {
			out[l.ItemID] += l.Quantity
		}
	}
	return out
}

// restockItems adds quantities back to tracked items. Untracked or deleted
// items are skipped.
func restockItems(tx *gorm.DB, tenantID uuid.UUID, increments map[uuid.UUID]int) error {
	for _, id := range sortedIDs(increments) {
		if err := tx.Model(&entity.Item{}).
			Where("id = ? AND tenant_id = ? AND track_stock = ?", id, tenantID, true).
			Update("stock", gorm.Expr("stock + ?", increments[id])).Error; err != nil {
			return err
		}
	}
	return nil
}

func orderLines(db *gorm.DB) *gorm.DB {
	return db.Order("line_index ASC")
}

// sortedIDs gives a stable lock order for multi-row stock updates.
func sortedIDs(m map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
