package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/pkg/money"
	"gorm.io/gorm"
)

// Item is a sellable catalog entry. Stock is only enforced when TrackStock
// is set.
type Item struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_items_tenant_name,priority:1" json:"-"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Name       string    `gorm:"size:255;not null;uniqueIndex:idx_items_tenant_name,priority:2" json:"name"`
	Price      int64     `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Image      *string   `gorm:"type:text" json:"image,omitempty"`
	TrackStock bool      `gorm:"not null;default:false" json:"track_stock"`
	Stock      int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: money.ToFloat(i.Price),
	})
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "items"
}
