package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/pkg/money"
	"gorm.io/gorm"
)

// Modifier is an add-on (extra shot, no sugar, ...) offered for the items of
// one or more categories.
type Modifier struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_modifiers_tenant_name,priority:1" json:"-"`
	Name       string             `gorm:"size:255;not null;uniqueIndex:idx_modifiers_tenant_name,priority:2" json:"name"`
	Cost       int64              `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Categories []ModifierCategory `gorm:"foreignKey:ModifierID;constraint:OnDelete:CASCADE" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal and flatten the
// category links into ids
func (m Modifier) MarshalJSON() ([]byte, error) {
	type Alias Modifier
	return json.Marshal(&struct {
		Alias
		Cost        float64     `json:"cost"`
		CategoryIDs []uuid.UUID `json:"category_ids"`
	}{
		Alias:       Alias(m),
		Cost:        money.ToFloat(m.Cost),
		CategoryIDs: m.CategoryIDs(),
	})
}

// CategoryIDs returns the ids of the linked categories
func (m *Modifier) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m.Categories))
	for _, c := range m.Categories {
		ids = append(ids, c.CategoryID)
	}
	return ids
}

// BeforeCreate generates a UUID before creating a new modifier
func (m *Modifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Modifier model
func (Modifier) TableName() string {
	return "modifiers"
}

// ModifierCategory links a modifier to a category it applies to
type ModifierCategory struct {
	ModifierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName returns the table name for the ModifierCategory model
func (ModifierCategory) TableName() string {
	return "modifier_categories"
}
