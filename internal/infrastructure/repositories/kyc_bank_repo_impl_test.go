package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
)

func TestKYCRepository_CreateGetUpdate(t *testing.T) {
	db := newTestDB(t)
	createUserKYCTable(t, db)
	repo := NewKYCRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	kyc := &entities.UserKYC{
		UserID:      userID,
		IDNumber:    "123456789",
		FullName:    "Test User",
		DateOfBirth: "1990-01-01",
	}
	require.NoError(t, repo.Create(ctx, kyc))
	assert.Equal(t, entities.KYCPending, kyc.Status)

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, kyc.ID, got.ID)

	require.NoError(t, repo.UpdateStatus(ctx, kyc.ID, entities.KYCApproved, "staff@mail.com"))

	got, err = repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entities.KYCApproved, got.Status)
	assert.Equal(t, "staff@mail.com", got.ReviewedBy.String)
}

func TestKYCRepository_Missing(t *testing.T) {
	db := newTestDB(t)
	createUserKYCTable(t, db)
	repo := NewKYCRepository(db)
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.UpdateStatus(ctx, uuid.New(), entities.KYCRejected, "staff@mail.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestKYCRepository_ListByStatus(t *testing.T) {
	db := newTestDB(t)
	createUserKYCTable(t, db)
	repo := NewKYCRepository(db)
	ctx := context.Background()

	first := &entities.UserKYC{UserID: uuid.New(), IDNumber: "111111", FullName: "A", DateOfBirth: "1990-01-01"}
	second := &entities.UserKYC{UserID: uuid.New(), IDNumber: "222222", FullName: "B", DateOfBirth: "1991-01-01"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.UpdateStatus(ctx, second.ID, entities.KYCApproved, "staff@mail.com"))

	pending, err := repo.List(ctx, entities.KYCPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBankAccountRepository_CreateListUpdate(t *testing.T) {
	db := newTestDB(t)
	createBankAccountTable(t, db)
	repo := NewBankAccountRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	account := &entities.BankAccount{
		UserID:        userID,
		BankName:      "Test Bank",
		AccountNumber: "0123456789",
		AccountHolder: "Test User",
	}
	require.NoError(t, repo.Create(ctx, account))
	assert.Equal(t, entities.BankAccountPending, account.Status)

	got, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Bank", got.BankName)

	accounts, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	require.NoError(t, repo.UpdateStatus(ctx, account.ID, entities.BankAccountVerified, "looks good"))

	got, err = repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.BankAccountVerified, got.Status)
	assert.Equal(t, "looks good", got.Note.String)
}

func TestBankAccountRepository_Missing(t *testing.T) {
	db := newTestDB(t)
	createBankAccountTable(t, db)
	repo := NewBankAccountRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.UpdateStatus(ctx, uuid.New(), entities.BankAccountRejected, "")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
