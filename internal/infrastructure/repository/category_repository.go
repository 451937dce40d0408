package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Category{}).Scopes(TenantScope(ctx)).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	err := r.db.WithContext(ctx).Model(category).Scopes(TenantScope(ctx)).
		Select("name", "updated_at").
		Updates(category).Error
	return translateError(err)
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	categories := []entity.Category{}
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) InUse(ctx context.Context, id uuid.UUID) (bool, error) {
	var items int64
	if err := r.db.WithContext(ctx).Model(&entity.Item{}).Scopes(TenantScope(ctx)).
		Where("category_id = ?", id).
		Count(&items).Error; err != nil {
		return false, err
	}
	if items > 0 {
		return true, nil
	}

	var links int64
	err := r.db.WithContext(ctx).Model(&entity.ModifierCategory{}).
		Where("category_id = ?", id).
		Count(&links).Error
	return links > 0, err
}
