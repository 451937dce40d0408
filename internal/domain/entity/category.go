package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups items on the POS screen
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_tenant_name,priority:1" json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_categories_tenant_name,priority:2" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
