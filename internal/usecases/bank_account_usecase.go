package usecases

import (
	"context"

	"github.com/google/uuid"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/domain/repositories"
)

// BankAccountUsecase handles payout bank accounts
type BankAccountUsecase struct {
	bankRepo repositories.BankAccountRepository
}

// NewBankAccountUsecase creates a new bank account usecase
func NewBankAccountUsecase(bankRepo repositories.BankAccountRepository) *BankAccountUsecase {
	return &BankAccountUsecase{bankRepo: bankRepo}
}

// Create attaches a new bank account to the user, pending verification.
func (u *BankAccountUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateBankAccountInput) (*entities.BankAccount, error) {
	account := &entities.BankAccount{
		UserID:        userID,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AccountHolder: input.AccountHolder,
		Status:        entities.BankAccountPending,
	}
	if err := u.bankRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListByUserID lists the user's bank accounts.
func (u *BankAccountUsecase) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.BankAccount, error) {
	return u.bankRepo.ListByUserID(ctx, userID)
}

// Review records a staff verification decision. Ownership is not checked
// here: review is a staff operation gated at the route level.
func (u *BankAccountUsecase) Review(ctx context.Context, id uuid.UUID, input *entities.UpdateBankAccountStatusInput) error {
	if input.Status != entities.BankAccountVerified && input.Status != entities.BankAccountRejected {
		return domainerrors.BadRequest("status must be VERIFIED or REJECTED")
	}
	return u.bankRepo.UpdateStatus(ctx, id, input.Status, input.Note)
}

// GetOwned returns the account if it belongs to the user.
func (u *BankAccountUsecase) GetOwned(ctx context.Context, userID, id uuid.UUID) (*entities.BankAccount, error) {
	account, err := u.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}
	return account, nil
}
