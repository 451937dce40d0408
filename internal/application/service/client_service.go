package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/utils"
)

var errPhoneTaken = apperror.NewConflictError("Phone number already registered")

// ClientService manages client accounts. Each client is its own tenant.
type ClientService struct {
	userRepo repository.UserRepository
}

// NewClientService creates a new client service
func NewClientService(userRepo repository.UserRepository) *ClientService {
	return &ClientService{userRepo: userRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Phone          string
	Password       string
	Name           string
	CompanyName    string
	Address        *string
	QRPaymentImage *string
}

// CreateClient registers a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.User, error) {
	phone := strings.TrimSpace(input.Phone)
	if err := ensurePhoneFree(ctx, s.userRepo, phone, uuid.Nil); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	company := strings.TrimSpace(input.CompanyName)
	user := &entity.User{
		Phone:          phone,
		Password:       hashedPassword,
		Name:           strings.TrimSpace(input.Name),
		Role:           enum.RoleClient,
		CompanyName:    &company,
		Address:        input.Address,
		QRPaymentImage: input.QRPaymentImage,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errPhoneTaken
		}
		return nil, err
	}
	return user, nil
}

// ListClients returns every client, newest first
func (s *ClientService) ListClients(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.ListByRole(ctx, enum.RoleClient, nil)
}

// UpdateClientInput represents the update client input.
// Nil fields are left unchanged.
type UpdateClientInput struct {
	ID             uuid.UUID
	Phone          *string
	Password       *string
	Name           *string
	CompanyName    *string
	Address        *string
	QRPaymentImage *string
}

// UpdateClient updates a client's profile
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.User, error) {
	user, err := s.getClient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != user.Phone {
			if err := ensurePhoneFree(ctx, s.userRepo, phone, user.ID); err != nil {
				return nil, err
			}
			user.Phone = phone
		}
	}
	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.CompanyName != nil {
		user.CompanyName = input.CompanyName
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.QRPaymentImage != nil {
		user.QRPaymentImage = input.QRPaymentImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errPhoneTaken
		}
		return nil, err
	}
	return user, nil
}

// DeleteClient removes a client and its staff accounts
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getClient(ctx, id); err != nil {
		return err
	}
	return s.userRepo.DeleteClient(ctx, id)
}

// ResetPassword sets the client's password back to the default
func (s *ClientService) ResetPassword(ctx context.Context, id uuid.UUID) error {
	user, err := s.getClient(ctx, id)
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(utils.DefaultResetPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

func (s *ClientService) getClient(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != enum.RoleClient {
		return nil, apperror.NewNotFoundError("Client")
	}
	return user, nil
}

// ensurePhoneFree fails with a conflict when phone belongs to a user other
// than self.
func ensurePhoneFree(ctx context.Context, repo repository.UserRepository, phone string, self uuid.UUID) error {
	existing, err := repo.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return errPhoneTaken
	}
	return nil
}
