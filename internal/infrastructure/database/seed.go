package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/sangkips/gopos-api/internal/config"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/pkg/utils"
	"gorm.io/gorm"
)

// SeedDefaultData creates the super admin account when ADMIN_PHONE and
// ADMIN_PASSWORD are configured and no user owns that phone yet.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	if admin.Phone == "" || admin.Password == "" {
		log.Println("Admin credentials not configured, skipping super admin seed")
		return nil
	}

	var existing entity.User
	err := db.Where("phone = ?", admin.Phone).First(&existing).Error
	if err == nil {
		log.Printf("Super admin user already exists: %s", admin.Phone)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Super Admin"
	}

	adminUser := entity.User{
		Phone:    admin.Phone,
		Password: hashedPassword,
		Name:     name,
		Role:     enum.RoleSuperAdmin,
	}
	if err := db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create super admin user: %w", err)
	}

	log.Printf("Super admin user created: %s", admin.Phone)
	return nil
}
