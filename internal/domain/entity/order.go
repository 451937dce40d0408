package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/pkg/money"
	"gorm.io/gorm"
)

// OrderNumberPrefix prefixes every tenant-scoped order number
const OrderNumberPrefix = "ORD"

// FormatOrderNumber renders a sequence value as ORD00001
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%05d", OrderNumberPrefix, seq)
}

// Order represents a completed sale. Orders are never deleted; the only
// mutations are line returns and the terminal refund.
type Order struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID           uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_orders_tenant_number,priority:1;index:idx_orders_tenant_created,priority:1" json:"-"`
	OrderNumber        string             `gorm:"size:32;not null;uniqueIndex:idx_orders_tenant_number,priority:2" json:"order_number"`
	Subtotal           int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountPercentage float64            `gorm:"not null;default:0" json:"discount_percentage"`
	DiscountAmount     int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Total              int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod      enum.PaymentMethod `gorm:"size:10;not null" json:"payment_method"`
	CashAmount         *int64             `json:"-"` // Stored in cents, excluded from JSON
	ChangeAmount       *int64             `json:"-"` // Stored in cents, excluded from JSON
	QRImage            *string            `gorm:"type:text" json:"qr_image,omitempty"`
	Status             enum.OrderStatus   `gorm:"not null;default:0;index" json:"status"`
	CreatedBy          uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	SalesPersonName    string             `gorm:"size:255" json:"sales_person_name"`
	CreatedAt          time.Time          `gorm:"index:idx_orders_tenant_created,priority:2" json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	RefundedAt         *time.Time         `json:"refunded_at,omitempty"`
	RefundedBy         *uuid.UUID         `gorm:"type:uuid" json:"refunded_by,omitempty"`

	// Relationships
	Lines []OrderLine `gorm:"foreignKey:OrderID" json:"items"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal       float64  `json:"subtotal"`
		DiscountAmount float64  `json:"discount_amount"`
		Total          float64  `json:"total"`
		CashAmount     *float64 `json:"cash_amount,omitempty"`
		ChangeAmount   *float64 `json:"change_amount,omitempty"`
	}{
		Alias:          Alias(o),
		Subtotal:       money.ToFloat(o.Subtotal),
		DiscountAmount: money.ToFloat(o.DiscountAmount),
		Total:          money.ToFloat(o.Total),
		CashAmount:     optionalAmount(o.CashAmount),
		ChangeAmount:   optionalAmount(o.ChangeAmount),
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsRefunded reports whether the order reached its terminal state
func (o *Order) IsRefunded() bool {
	return o.Status == enum.OrderStatusRefunded
}

// ReturnedLines counts the lines already marked returned
func (o *Order) ReturnedLines() int {
	n := 0
	for _, l := range o.Lines {
		if l.Returned {
			n++
		}
	}
	return n
}

// OrderLine is one entry of an order, addressed by (order_id, line_index).
// Item id, name and price are snapshots taken at sale time.
type OrderLine struct {
	OrderID    uuid.UUID      `gorm:"type:uuid;primaryKey;autoIncrement:false" json:"-"`
	LineIndex  int            `gorm:"primaryKey;autoIncrement:false" json:"line_index"`
	TenantID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	ItemID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	UnitPrice  int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity   int            `gorm:"not null" json:"quantity"`
	Returned   bool           `gorm:"not null;default:false" json:"returned"`
	ReturnedAt *time.Time     `json:"returned_at,omitempty"`
	Modifiers  []LineModifier `gorm:"type:text;serializer:json" json:"-"`
	// StockDeducted records that the sale took Quantity off the item's
	// stock. Only such lines are restocked on return or refund.
	StockDeducted bool `gorm:"not null;default:false" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l OrderLine) MarshalJSON() ([]byte, error) {
	type Alias OrderLine
	mods := make([]lineModifierJSON, 0, len(l.Modifiers))
	for _, m := range l.Modifiers {
		mods = append(mods, lineModifierJSON{ModifierID: m.ModifierID, Name: m.Name, Cost: money.ToFloat(m.Cost)})
	}
	return json.Marshal(&struct {
		Alias
		Price     float64            `json:"price"`
		Modifiers []lineModifierJSON `json:"modifiers"`
	}{
		Alias:     Alias(l),
		Price:     money.ToFloat(l.UnitPrice),
		Modifiers: mods,
	})
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// Revenue returns unit price times quantity, in cents
func (l *OrderLine) Revenue() int64 {
	return money.Times(l.UnitPrice, l.Quantity)
}

// LineModifier is the modifier snapshot stored with a line. Cost is in cents.
type LineModifier struct {
	ModifierID uuid.UUID `json:"modifier_id"`
	Name       string    `json:"name"`
	Cost       int64     `json:"cost"`
}

type lineModifierJSON struct {
	ModifierID uuid.UUID `json:"modifier_id"`
	Name       string    `json:"name"`
	Cost       float64   `json:"cost"`
}

// OrderSequence holds the last order number handed out per tenant
type OrderSequence struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// TableName returns the table name for the OrderSequence model
func (OrderSequence) TableName() string {
	return "order_sequences"
}

func optionalAmount(cents *int64) *float64 {
	if cents == nil {
		return nil
	}
	f := money.ToFloat(*cents)
	return &f
}
