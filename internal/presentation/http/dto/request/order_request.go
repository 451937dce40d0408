package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModifierRequest is a modifier snapshot on an order line
type OrderModifierRequest struct {
	ModifierID uuid.UUID       `json:"modifier_id" swaggertype:"string" format:"uuid"`
	Name       string          `json:"name" binding:"max=255"`
	Cost       decimal.Decimal `json:"cost" swaggertype:"number"`
}

// OrderItemRequest is one line of a new order. Name and price are what the
// register showed at sale time.
type OrderItemRequest struct {
	ItemID    uuid.UUID              `json:"item_id" swaggertype:"string" format:"uuid"`
	Name      string                 `json:"name" binding:"required,max=255" example:"Iced Latte"`
	Price     decimal.Decimal        `json:"price" swaggertype:"number" example:"3.50"`
	Quantity  int                    `json:"quantity" binding:"max=10000" example:"2"`
	Modifiers []OrderModifierRequest `json:"modifiers" binding:"dive"`
}

// CreateOrderRequest represents a create order request
type CreateOrderRequest struct {
	Items              []OrderItemRequest `json:"items" binding:"dive"`
	Subtotal           decimal.Decimal    `json:"subtotal" swaggertype:"number" example:"7.00"`
	DiscountPercentage float64            `json:"discount_percentage" example:"0"`
	DiscountAmount     decimal.Decimal    `json:"discount_amount" swaggertype:"number" example:"0"`
	Total              decimal.Decimal    `json:"total" swaggertype:"number" example:"7.00"`
	PaymentMethod      string             `json:"payment_method" binding:"required" example:"cash"`
	CashAmount         *decimal.Decimal   `json:"cash_amount" swaggertype:"number" example:"10.00"`
	ChangeAmount       *decimal.Decimal   `json:"change_amount" swaggertype:"number" example:"3.00"`
	QRImage            *string            `json:"qr_image"`
}

// ReturnItemRequest names the items to return, either one item_id or a list
type ReturnItemRequest struct {
	ItemID *uuid.UUID  `json:"item_id" swaggertype:"string" format:"uuid"`
	Items  []uuid.UUID `json:"items" swaggertype:"array,string"`
}

// ItemIDs merges item_id and items
func (r *ReturnItemRequest) ItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Items)+1)
	if r.ItemID != nil {
		ids = append(ids, *r.ItemID)
	}
	return append(ids, r.Items...)
}

// OrderListRequest holds the orders query parameters
type OrderListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PerPage   int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status" binding:"omitempty,oneof=completed refunded all"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// ReportWindowRequest holds the date parameters of report endpoints
type ReportWindowRequest struct {
	Date      string `form:"date"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Status    string `form:"status"`
}
