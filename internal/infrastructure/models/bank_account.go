package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BankAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	BankName      string    `gorm:"type:varchar(100);not null"`
	AccountNumber string    `gorm:"type:varchar(34);not null"`
	AccountHolder string    `gorm:"type:varchar(100);not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Note          *string   `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	// Associations
	User User `gorm:"foreignKey:UserID"`
}
