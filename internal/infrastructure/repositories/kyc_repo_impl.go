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

// KYCRepository implements KYC submission storage on gorm
type KYCRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) *KYCRepository {
	return &KYCRepository{db: db}
}

// Create stores a new KYC submission
func (r *KYCRepository) Create(ctx context.Context, kyc *entities.UserKYC) error {
	if kyc.ID == uuid.Nil {
		kyc.ID = uuid.New()
	}
	m := &models.UserKYC{
		ID:          kyc.ID,
		UserID:      kyc.UserID,
		IDNumber:    kyc.IDNumber,
		FullName:    kyc.FullName,
		DateOfBirth: kyc.DateOfBirth,
		Status:      string(entities.KYCPending),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	kyc.Status = entities.KYCPending
	kyc.CreatedAt = m.CreatedAt
	kyc.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByUserID returns the most recent submission for a user
func (r *KYCRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserKYC, error) {
	var m models.UserKYC
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toKYCEntity(&m), nil
}

// UpdateStatus records a review decision
func (r *KYCRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, reviewedBy string) error {
	result := r.db.WithContext(ctx).Model(&models.UserKYC{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      string(status),
		"reviewed_by": reviewedBy,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists submissions, optionally filtered by status
func (r *KYCRepository) List(ctx context.Context, status entities.KYCStatus) ([]*entities.UserKYC, error) {
	var kycModels []models.UserKYC
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Find(&kycModels).Error; err != nil {
		return nil, err
	}

	result := make([]*entities.UserKYC, 0, len(kycModels))
	for i := range kycModels {
		result = append(result, toKYCEntity(&kycModels[i]))
	}
	return result, nil
}

func toKYCEntity(m *models.UserKYC) *entities.UserKYC {
	return &entities.UserKYC{
		ID:          m.ID,
		UserID:      m.UserID,
		IDNumber:    m.IDNumber,
		FullName:    m.FullName,
		DateOfBirth: m.DateOfBirth,
		Status:      entities.KYCStatus(m.Status),
		ReviewedBy:  null.StringFromPtr(m.ReviewedBy),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
