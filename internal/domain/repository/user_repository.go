package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/entity"
	"github.com/sangkips/gopos-api/internal/domain/enum"
)

// UserRepository defines the interface for user data operations.
// Users are global rows; callers scope staff lookups by client id.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByRole returns users of a role, newest first. A non-nil clientID
	// restricts the result to that client's staff.
	ListByRole(ctx context.Context, role enum.Role, clientID *uuid.UUID) ([]entity.User, error)
	// DeleteClient removes a client together with its staff accounts
	DeleteClient(ctx context.Context, clientID uuid.UUID) error
}
