package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
)

// ItemService handles item-related operations
type ItemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateItemInput represents the create item input. Price is in cents.
type CreateItemInput struct {
	CategoryID uuid.UUID
	Name       string
	Price      int64
	Image      *string
	TrackStock bool
	Stock      int
}

// CreateItem creates a new item
func (s *ItemService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.Item, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	name, err := validateItemFields(input.Name, input.Price, input.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	item := &entity.Item{
		TenantID:   tenantID,
		CategoryID: input.CategoryID,
		Name:       name,
		Price:      input.Price,
		Image:      input.Image,
		TrackStock: input.TrackStock,
		Stock:      input.Stock,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Item with this name already exists")
		}
		return nil, err
	}

	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists items, optionally filtered by category
func (s *ItemService) ListItems(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, error) {
	return s.itemRepo.List(ctx, params)
}

// UpdateItemInput represents the update item input
type UpdateItemInput struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Price      int64
	Image      *string
}

// UpdateItem replaces an item's catalog fields. Stock is managed by UpdateStock.
func (s *ItemService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.Item, error) {
	item, err := s.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	name, err := validateItemFields(input.Name, input.Price, 0)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != item.CategoryID {
		if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = input.CategoryID
	}

	item.Name = name
	item.Price = input.Price
	item.Image = input.Image

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Item with this name already exists")
		}
		return nil, err
	}

	return item, nil
}

// UpdateStock sets the stock level of an item and enables stock tracking
func (s *ItemService) UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*entity.Item, error) {
	if stock < 0 {
		return nil, apperror.NewBadRequestError("Stock must not be negative")
	}
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SetStock(ctx, id, stock); err != nil {
		return nil, err
	}
	return s.GetItem(ctx, id)
}

// DeleteItem deletes an item. Past orders keep their snapshots.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *ItemService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return nil
}

func validateItemFields(name string, price int64, stock int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.NewBadRequestError("Item name is required")
	}
	if price < 0 {
		return "", apperror.NewBadRequestError("Price must not be negative")
	}
	if stock < 0 {
		return "", apperror.NewBadRequestError("Stock must not be negative")
	}
	return name, nil
}
