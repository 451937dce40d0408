package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	infraRepo "github.com/sangkips/gopos-api/internal/infrastructure/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/utils"
)

// EmployeeService manages the staff accounts of the caller's tenant
type EmployeeService struct {
	userRepo repository.UserRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(userRepo repository.UserRepository) *EmployeeService {
	return &EmployeeService{userRepo: userRepo}
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	Phone    string
	Password string
	Name     string
}

// CreateEmployee adds a staff account to the current tenant
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.User, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	phone := strings.TrimSpace(input.Phone)
	if err := ensurePhoneFree(ctx, s.userRepo, phone, uuid.Nil); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Phone:    phone,
		Password: hashedPassword,
		Name:     strings.TrimSpace(input.Name),
		Role:     enum.RoleStaff,
		ClientID: &tenantID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errPhoneTaken
		}
		return nil, err
	}
	return user, nil
}

// ListEmployees returns the staff of the current tenant
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]entity.User, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	return s.userRepo.ListByRole(ctx, enum.RoleStaff, &tenantID)
}

// UpdateEmployeeInput represents the update employee input.
// Password is only changed when set.
type UpdateEmployeeInput struct {
	ID       uuid.UUID
	Name     string
	Password *string
}

// UpdateEmployee renames a staff member and optionally sets a new password
func (s *EmployeeService) UpdateEmployee(ctx context.Context, input *UpdateEmployeeInput) (*entity.User, error) {
	user, err := s.getEmployee(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteEmployee removes a staff account of the current tenant
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getEmployee(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// getEmployee hides staff of other tenants behind a not found error
func (s *EmployeeService) getEmployee(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != enum.RoleStaff || user.ClientID == nil || *user.ClientID != tenantID {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return user, nil
}
