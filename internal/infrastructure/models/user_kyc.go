package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserKYC struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	IDNumber    string    `gorm:"type:varchar(20);not null"`
	FullName    string    `gorm:"type:varchar(100);not null"`
	DateOfBirth string    `gorm:"type:varchar(10);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ReviewedBy  *string   `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	// Associations
	User User `gorm:"foreignKey:UserID"`
}

func (UserKYC) TableName() string {
	return "user_kyc"
}
