package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is any account that can log in: the platform super admin, a client
// (a shop owner, which is also a tenant) or a staff member of a client.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Phone          string     `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Role           enum.Role  `gorm:"size:20;not null;index" json:"role"`
	CompanyName    *string    `gorm:"size:255" json:"company_name,omitempty"`
	Address        *string    `gorm:"type:text" json:"address,omitempty"`
	QRPaymentImage *string    `gorm:"type:text" json:"qr_payment_image,omitempty"`
	ClientID       *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// TenantID returns the data partition owned by the user. Clients and the
// super admin own their own partition; staff work inside their client's.
func (u *User) TenantID() uuid.UUID {
	if u.Role == enum.RoleStaff && u.ClientID != nil {
		return *u.ClientID
	}
	return u.ID
}
