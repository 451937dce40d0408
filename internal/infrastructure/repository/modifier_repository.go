package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type modifierRepository struct {
	db *gorm.DB
}

// NewModifierRepository creates a new modifier repository
func NewModifierRepository(db *gorm.DB) domainRepo.ModifierRepository {
	return &modifierRepository{db: db}
}

func (r *modifierRepository) Create(ctx context.Context, modifier *entity.Modifier) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(modifier).Error; err != nil {
			return err
		}
		return insertModifierLinks(tx, modifier)
	})
	return translateError(err)
}

func (r *modifierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Modifier, error) {
	var modifier entity.Modifier
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Categories").
		First(&modifier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &modifier, err
}

func (r *modifierRepository) Update(ctx context.Context, modifier *entity.Modifier) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(modifier).Scopes(TenantScope(ctx)).
			Select("name", "cost", "updated_at").
			Updates(modifier)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("modifier_id = ?", modifier.ID).
			Delete(&entity.ModifierCategory{}).Error; err != nil {
			return err
		}
		return insertModifierLinks(tx, modifier)
	})
	return translateError(err)
}

func (r *modifierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Scopes(TenantScope(ctx)).Delete(&entity.Modifier{}, "id = ?", id)
		if result.Error != nil || result.RowsAffected == 0 {
			return result.Error
		}
		return tx.Where("modifier_id = ?", id).Delete(&entity.ModifierCategory{}).Error
	})
}

func (r *modifierRepository) List(ctx context.Context, categoryID *uuid.UUID) ([]entity.Modifier, error) {
	modifiers := []entity.Modifier{}
	query := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Preload("Categories")
	if categoryID != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&entity.ModifierCategory{}).Select("modifier_id").Where("category_id = ?", *categoryID))
	}
	err := query.Order("name ASC").Find(&modifiers).Error
	return modifiers, err
}

func insertModifierLinks(tx *gorm.DB, modifier *entity.Modifier) error {
	if len(modifier.Categories) == 0 {
		return nil
	}
	for i := range modifier.Categories {
		modifier.Categories[i].ModifierID = modifier.ID
	}
	return tx.Create(&modifier.Categories).Error
}
