package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/infrastructure/models"
)

// BankAccountRepository implements bank account storage on gorm
type BankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *gorm.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

// Create stores a new bank account pending verification
func (r *BankAccountRepository) Create(ctx context.Context, account *entities.BankAccount) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	m := &models.BankAccount{
		ID:            account.ID,
		UserID:        account.UserID,
		BankName:      account.BankName,
		AccountNumber: account.AccountNumber,
		AccountHolder: account.AccountHolder,
		Status:        string(entities.BankAccountPending),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	account.Status = entities.BankAccountPending
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a bank account by ID
func (r *BankAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.BankAccount, error) {
	var m models.BankAccount
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toBankAccountEntity(&m), nil
}

// ListByUserID lists all bank accounts for a user
func (r *BankAccountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.BankAccount, error) {
	var accountModels []models.BankAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accountModels).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*entities.BankAccount, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, toBankAccountEntity(&accountModels[i]))
	}
	return accounts, nil
}

// UpdateStatus records a verification decision
func (r *BankAccountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BankAccountStatus, note string) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if note != "" {
		updates["note"] = note
	}

	result := r.db.WithContext(ctx).Model(&models.BankAccount{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toBankAccountEntity(m *models.BankAccount) *entities.BankAccount {
	return &entities.BankAccount{
		ID:            m.ID,
		UserID:        m.UserID,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		AccountHolder: m.AccountHolder,
		Status:        entities.BankAccountStatus(m.Status),
		Note:          null.StringFromPtr(m.Note),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
