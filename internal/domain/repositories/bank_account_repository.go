package repositories

import (
	"context"

	"github.com/google/uuid"
	"trust-fund.backend/internal/domain/entities"
)

// BankAccountRepository defines bank account data operations
type BankAccountRepository interface {
	Create(ctx context.Context, account *entities.BankAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.BankAccount, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.BankAccount, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BankAccountStatus, note string) error
}
