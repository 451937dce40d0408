package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/eventbus"
	"github.com/sangkips/gopos-api/pkg/money"
	"github.com/sangkips/gopos-api/pkg/pagination"
)

// OrderService is the order ledger: it records sales and applies returns
// and refunds.
type OrderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	publisher eventbus.Publisher
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	publisher eventbus.Publisher,
) *OrderService {
	if publisher == nil {
		publisher = eventbus.NewNullPublisher()
	}
	return &OrderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// OrderLineInput represents one line of a new order. Prices are in cents and
// are taken as given; the live catalog is not consulted.
type OrderLineInput struct {
	ItemID    uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	Modifiers []entity.LineModifier
}

// CreateOrderInput represents the create order input. Money is in cents.
type CreateOrderInput struct {
	UserID             uuid.UUID
	SalesPersonName    string
	Lines              []OrderLineInput
	Subtotal           int64
	DiscountPercentage float64
	DiscountAmount     int64
	Total              int64
	PaymentMethod      enum.PaymentMethod
	CashAmount         *int64
	ChangeAmount       *int64
	QRImage            *string
}

// CreateOrder records a sale. Numbering, line inserts and stock decrements
// happen in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	order := &entity.Order{
		TenantID:           tenantID,
		Subtotal:           input.Subtotal,
		DiscountPercentage: input.DiscountPercentage,
		DiscountAmount:     input.DiscountAmount,
		Total:              input.Total,
		PaymentMethod:      input.PaymentMethod,
		Status:             enum.OrderStatusCompleted,
		CreatedBy:          input.UserID,
		SalesPersonName:    input.SalesPersonName,
		CreatedAt:          s.now(),
		Lines:              make([]entity.OrderLine, 0, len(input.Lines)),
	}

	switch input.PaymentMethod {
	case enum.PaymentMethodCash:
		order.CashAmount = input.CashAmount
		order.ChangeAmount = input.ChangeAmount
		if order.ChangeAmount == nil && order.CashAmount != nil {
			change := *order.CashAmount - order.Total
			if change < 0 {
				change = 0
			}
			order.ChangeAmount = &change
		}
	case enum.PaymentMethodQR:
		order.QRImage = input.QRImage
	}

	for _, line := range input.Lines {
		order.Lines = append(order.Lines, entity.OrderLine{
			ItemID:    line.ItemID,
			Name:      strings.TrimSpace(line.Name),
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Modifiers: line.Modifiers,
		})
	}

	tracked, err := s.trackedItems(ctx, order.Lines)
	if err != nil {
		return nil, err
	}
	for i := range order.Lines {
		_, order.Lines[i].StockDeducted = tracked[order.Lines[i].ItemID]
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		var stockErr *repository.InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, insufficientStock(stockErr, tracked)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, eventbus.OrderCreated, order, input.UserID, map[string]interface{}{
		"total":          order.Total,
		"payment_method": order.PaymentMethod,
		"lines":          len(order.Lines),
	})

	return order, nil
}

// GetOrder retrieves an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists the tenant's orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.Page[entity.Order], error) {
	if params == nil {
		params = &repository.OrderFilterParams{}
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	page, perPage := 1, len(orders)
	if params.Page != nil {
		page, perPage = params.Page.Page, params.Page.PerPage
	}
	return pagination.NewPage(orders, pagination.NewInfo(page, perPage, total)), nil
}

// ReturnItemsInput represents the return items input
type ReturnItemsInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	ItemIDs []uuid.UUID
}

// ReturnItems marks the order lines carrying any of the given item ids as
// returned and restocks them. It returns the number of lines marked.
func (s *OrderService) ReturnItems(ctx context.Context, input *ReturnItemsInput) (int, error) {
	order, err := s.GetOrder(ctx, input.OrderID)
	if err != nil {
		return 0, err
	}
	if order.IsRefunded() {
		return 0, apperror.NewConflictError("Cannot return items from refunded order")
	}

	wanted := make(map[uuid.UUID]bool, len(input.ItemIDs))
	for _, id := range input.ItemIDs {
		wanted[id] = true
	}

	var matched []entity.OrderLine
	for _, line := range order.Lines {
		if !wanted[line.ItemID] {
			continue
		}
		if line.Returned {
			return 0, apperror.NewConflictError(fmt.Sprintf("Item %s already returned", line.Name))
		}
		matched = append(matched, line)
	}
	if len(matched) == 0 {
		return 0, apperror.NewBadRequestError("No matching items found in order")
	}

	indexes := make([]int, len(matched))
	for i, line := range matched {
		indexes[i] = line.LineIndex
	}

	if err := s.orderRepo.ReturnLines(ctx, order.ID, indexes, s.now()); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return 0, apperror.NewConflictError("Order was changed by another request")
		}
		return 0, fmt.Errorf("return items: %w", err)
	}

	s.publish(ctx, eventbus.OrderItemsReturned, order, input.UserID, map[string]interface{}{
		"line_indexes": indexes,
	})

	return len(matched), nil
}

// RefundOrder reverses a whole order. It is terminal.
func (s *OrderService) RefundOrder(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsRefunded() {
		return nil, apperror.NewConflictError("Order already refunded")
	}

	if err := s.orderRepo.Refund(ctx, order.ID, userID, s.now()); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, apperror.NewConflictError("Order already refunded")
		}
		return nil, fmt.Errorf("refund order: %w", err)
	}

	refunded, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.OrderRefunded, refunded, userID, map[string]interface{}{
		"total": refunded.Total,
	})

	return refunded, nil
}

// trackedItems returns the stock-tracked catalog items referenced by lines
func (s *OrderService) trackedItems(ctx context.Context, lines []entity.OrderLine) (map[uuid.UUID]entity.Item, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	items, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	tracked := make(map[uuid.UUID]entity.Item)
	for _, item := range items {
		if item.TrackStock {
			tracked[item.ID] = item
		}
	}
	return tracked, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *entity.Order, actor uuid.UUID, data interface{}) {
	event := eventbus.Event{
		ID:          uuid.New(),
		Type:        eventType,
		TenantID:    order.TenantID,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		ActorID:     actor,
		OccurredAt:  s.now(),
		Data:        data,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("eventbus: %s for order %s not published: %v", eventType, order.OrderNumber, err)
	}
}

func insufficientStock(err *repository.InsufficientStockError, tracked map[uuid.UUID]entity.Item) error {
	names := make([]string, 0, len(err.ItemIDs))
	for _, id := range err.ItemIDs {
		if item, ok := tracked[id]; ok {
			names = append(names, item.Name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return apperror.NewBadRequestError("Insufficient stock")
	}
	return apperror.NewBadRequestError("Insufficient stock for " + strings.Join(names, ", "))
}

func validateOrderInput(input *CreateOrderInput) error {
	var fieldErrors []apperror.FieldError
	add := func(field, message string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: message})
	}

	if len(input.Lines) == 0 {
		add("items", "at least one item is required")
	}
	for i, line := range input.Lines {
		if line.ItemID == uuid.Nil {
			add(fmt.Sprintf("items[%d].item_id", i), "item_id is required")
		}
		if line.Quantity <= 0 {
			add(fmt.Sprintf("items[%d].quantity", i), "quantity must be greater than zero")
		}
		if line.Quantity > money.MaxQuantity {
			add(fmt.Sprintf("items[%d].quantity", i), fmt.Sprintf("quantity must be at most %d", money.MaxQuantity))
		}
		if line.UnitPrice < 0 {
			add(fmt.Sprintf("items[%d].price", i), "price must not be negative")
		}
		if line.UnitPrice > money.MaxCents {
			add(fmt.Sprintf("items[%d].price", i), "price is out of range")
		}
		for j, m := range line.Modifiers {
			if m.Cost < 0 {
				add(fmt.Sprintf("items[%d].modifiers[%d].cost", i, j), "cost must not be negative")
			}
		}
	}
	if !input.PaymentMethod.IsValid() {
		add("payment_method", "payment_method must be cash or qr")
	}
	if input.Subtotal < 0 {
		add("subtotal", "subtotal must not be negative")
	}
	if input.DiscountAmount < 0 {
		add("discount_amount", "discount_amount must not be negative")
	}
	if input.Total < 0 {
		add("total", "total must not be negative")
	}
	if input.DiscountPercentage < 0 || input.DiscountPercentage > 100 {
		add("discount_percentage", "discount_percentage must be between 0 and 100")
	}
	if input.CashAmount != nil && *input.CashAmount < 0 {
		add("cash_amount", "cash_amount must not be negative")
	}
	if input.ChangeAmount != nil && *input.ChangeAmount < 0 {
		add("change_amount", "change_amount must not be negative")
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	appErr := apperror.NewBadRequestError(fieldErrors[0].Field + ": " + fieldErrors[0].Message)
	appErr.Errors = fieldErrors
	return appErr
}
