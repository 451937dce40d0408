package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// TenantIDKey is the context key for tenant ID
const TenantIDKey ctxKey = "tenant_id"

// TenantScope returns a GORM scope that filters by tenant.
// It must be applied to every query on a tenant-owned table.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			// Fail-safe: return no results if tenant context missing
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok && tenantID != uuid.Nil
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	return err
}
