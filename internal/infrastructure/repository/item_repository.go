package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) domainRepo.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return translateError(r.db.WithContext(ctx).Create(item).Error)
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetByIDs retrieves multiple items by their IDs in a single query
func (r *itemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	if len(ids) == 0 {
		return []entity.Item{}, nil
	}
	var items []entity.Item
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	err := r.db.WithContext(ctx).Model(item).Scopes(TenantScope(ctx)).
		Select("category_id", "name", "price", "image", "updated_at").
		Updates(item).Error
	return translateError(err)
}

func (r *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.Item{}, "id = ?", id).Error
}

func (r *itemRepository) List(ctx context.Context, params *domainRepo.ItemFilterParams) ([]entity.Item, error) {
	items := []entity.Item{}
	query := r.db.WithContext(ctx).Scopes(TenantScope(ctx))

	if params != nil {
		if params.CategoryID != nil {
			query = query.Where("category_id = ?", *params.CategoryID)
		}
		if params.Search != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
		}
	}

	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

// SetStock overwrites the stock level and turns tracking on
func (r *itemRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	return r.db.WithContext(ctx).Model(&entity.Item{}).Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{"stock": stock, "track_stock": true}).Error
}
