package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/domain/repositories"
)

// KYCUsecase handles know-your-customer submissions and reviews
type KYCUsecase struct {
	kycRepo  repositories.KYCRepository
	userRepo repositories.UserRepository
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(kycRepo repositories.KYCRepository, userRepo repositories.UserRepository) *KYCUsecase {
	return &KYCUsecase{kycRepo: kycRepo, userRepo: userRepo}
}

// Submit files a KYC submission for the user. One submission per user: a
// pending or approved record blocks a new one.
func (u *KYCUsecase) Submit(ctx context.Context, userID uuid.UUID, input *entities.SubmitKYCInput) (*entities.UserKYC, error) {
	existing, err := u.kycRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status != entities.KYCRejected {
		return nil, domainerrors.Conflict("KYC submission already exists")
	}

	kyc := &entities.UserKYC{
		UserID:      userID,
		IDNumber:    input.IDNumber,
		FullName:    input.FullName,
		DateOfBirth: input.DateOfBirth,
		Status:      entities.KYCPending,
	}
	if err := u.kycRepo.Create(ctx, kyc); err != nil {
		return nil, err
	}
	return kyc, nil
}

// GetByUserID returns the user's KYC submission.
func (u *KYCUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserKYC, error) {
	return u.kycRepo.GetByUserID(ctx, userID)
}

// Review records a staff decision on a submission.
func (u *KYCUsecase) Review(ctx context.Context, id uuid.UUID, input *entities.UpdateKYCStatusInput, reviewerEmail string) error {
	if input.Status != entities.KYCApproved && input.Status != entities.KYCRejected {
		return domainerrors.BadRequest("status must be APPROVED or REJECTED")
	}
	return u.kycRepo.UpdateStatus(ctx, id, input.Status, reviewerEmail)
}

// List lists submissions, optionally filtered by status.
func (u *KYCUsecase) List(ctx context.Context, status entities.KYCStatus) ([]*entities.UserKYC, error) {
	return u.kycRepo.List(ctx, status)
}
