package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicate orders
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_tenant_key,priority:1"`
	Key          string    `gorm:"column:idempotency_key;size:255;not null;uniqueIndex:idx_idempotency_tenant_key,priority:2"` // The idempotency key from client
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`                                            // User who made the request
	Endpoint     string    `gorm:"size:255;not null"`                                                   // API endpoint (e.g., "POST /api/orders")
	RequestHash  string    `gorm:"size:64"`                                                             // SHA256 hash of request body
	ResponseCode int       `gorm:"not null"`                                                            // HTTP status code of original response, 0 while in flight
	ResponseBody string    `gorm:"type:text"`                                                           // JSON response body (cached)
	CreatedAt    time.Time
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// BeforeCreate generates a UUID before storing the key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsPending reports whether the request holding the key has not finished yet
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}
