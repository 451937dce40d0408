package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Model(user).
		Select("phone", "password", "name", "company_name", "address", "qr_payment_image", "updated_at").
		Updates(user).Error
	return translateError(err)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id).Error
}

func (r *userRepository) ListByRole(ctx context.Context, role enum.Role, clientID *uuid.UUID) ([]entity.User, error) {
	users := []entity.User{}
	query := r.db.WithContext(ctx).Where("role = ?", role)
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}
	err := query.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) DeleteClient(ctx context.Context, clientID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ? AND role = ?", clientID, enum.RoleStaff).
			Delete(&entity.User{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND role = ?", clientID, enum.RoleClient).
			Delete(&entity.User{}).Error
	})
}
