package repositories

import (
	"context"

	"github.com/google/uuid"
	"trust-fund.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, search string) ([]*entities.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
