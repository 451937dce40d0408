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

// ModifierService handles modifier-related operations
type ModifierService struct {
	modifierRepo repository.ModifierRepository
	categoryRepo repository.CategoryRepository
}

// NewModifierService creates a new modifier service
func NewModifierService(modifierRepo repository.ModifierRepository, categoryRepo repository.CategoryRepository) *ModifierService {
	return &ModifierService{
		modifierRepo: modifierRepo,
		categoryRepo: categoryRepo,
	}
}

// ModifierInput represents the create and update modifier input. Cost is in cents.
type ModifierInput struct {
	Name        string
	Cost        int64
	CategoryIDs []uuid.UUID
}

// CreateModifier creates a modifier linked to one or more categories
func (s *ModifierService) CreateModifier(ctx context.Context, input *ModifierInput) (*entity.Modifier, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	modifier := &entity.Modifier{TenantID: tenantID}
	if err := s.apply(ctx, modifier, input); err != nil {
		return nil, err
	}

	if err := s.modifierRepo.Create(ctx, modifier); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Modifier with this name already exists")
		}
		return nil, err
	}
	return modifier, nil
}

// ListModifiers lists modifiers, optionally only those of a category
func (s *ModifierService) ListModifiers(ctx context.Context, categoryID *uuid.UUID) ([]entity.Modifier, error) {
	return s.modifierRepo.List(ctx, categoryID)
}

// UpdateModifier replaces a modifier's name, cost and categories
func (s *ModifierService) UpdateModifier(ctx context.Context, id uuid.UUID, input *ModifierInput) (*entity.Modifier, error) {
	modifier, err := s.getModifier(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, modifier, input); err != nil {
		return nil, err
	}

	if err := s.modifierRepo.Update(ctx, modifier); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Modifier with this name already exists")
		}
		return nil, err
	}
	return modifier, nil
}

// DeleteModifier deletes a modifier and its category links
func (s *ModifierService) DeleteModifier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getModifier(ctx, id); err != nil {
		return err
	}
	return s.modifierRepo.Delete(ctx, id)
}

func (s *ModifierService) getModifier(ctx context.Context, id uuid.UUID) (*entity.Modifier, error) {
	modifier, err := s.modifierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if modifier == nil {
		return nil, apperror.NewNotFoundError("Modifier")
	}
	return modifier, nil
}

// apply validates input and copies it onto modifier
func (s *ModifierService) apply(ctx context.Context, modifier *entity.Modifier, input *ModifierInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return apperror.NewBadRequestError("Modifier name is required")
	}
	if input.Cost < 0 {
		return apperror.NewBadRequestError("Cost must not be negative")
	}

	ids := uniqueIDs(input.CategoryIDs)
	if len(ids) == 0 {
		return apperror.NewBadRequestError("At least one category is required")
	}
	found, err := s.categoryRepo.CountExisting(ctx, ids)
	if err != nil {
		return err
	}
	if found != int64(len(ids)) {
		return apperror.NewNotFoundError("Category")
	}

	modifier.Name = name
	modifier.Cost = input.Cost
	modifier.Categories = make([]entity.ModifierCategory, 0, len(ids))
	for _, id := range ids {
		modifier.Categories = append(modifier.Categories, entity.ModifierCategory{ModifierID: modifier.ID, CategoryID: id})
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
