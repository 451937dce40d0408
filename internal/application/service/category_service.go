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

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name string
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	// Extract tenant ID from context
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category := &entity.Category{
		TenantID: tenantID,
		Name:     name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists the categories of the current tenant
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	ID   uuid.UUID
	Name string
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}
	category.Name = name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category that no item or modifier references
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	inUse, err := s.categoryRepo.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperror.NewConflictError("Category is in use by items or modifiers")
	}

	return s.categoryRepo.Delete(ctx, id)
}
