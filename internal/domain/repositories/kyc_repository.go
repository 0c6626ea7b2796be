package repositories

import (
	"context"

	"github.com/google/uuid"
	"trust-fund.backend/internal/domain/entities"
)

// KYCRepository defines KYC submission data operations
type KYCRepository interface {
	Create(ctx context.Context, kyc *entities.UserKYC) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserKYC, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, reviewedBy string) error
	List(ctx context.Context, status entities.KYCStatus) ([]*entities.UserKYC, error)
}
