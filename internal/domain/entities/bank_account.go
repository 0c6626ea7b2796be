package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BankAccountStatus represents the verification state of a bank account
type BankAccountStatus string

const (
	BankAccountPending  BankAccountStatus = "PENDING"
	BankAccountVerified BankAccountStatus = "VERIFIED"
	BankAccountRejected BankAccountStatus = "REJECTED"
)

// BankAccount represents a payout bank account attached to a user
type BankAccount struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"userId"`
	BankName      string            `json:"bankName"`
	AccountNumber string            `json:"accountNumber"`
	AccountHolder string            `json:"accountHolder"`
	Status        BankAccountStatus `json:"status"`
	Note          null.String       `json:"note,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// CreateBankAccountInput represents input for adding a bank account
type CreateBankAccountInput struct {
	BankName      string `json:"bankName" binding:"required,min=2,max=100"`
	AccountNumber string `json:"accountNumber" binding:"required,min=6,max=34"`
	AccountHolder string `json:"accountHolder" binding:"required,min=2,max=100"`
}

// UpdateBankAccountStatusInput represents a staff review decision
type UpdateBankAccountStatusInput struct {
	Status BankAccountStatus `json:"status" binding:"required,oneof=VERIFIED REJECTED"`
	Note   string            `json:"note" binding:"omitempty,max=255"`
}
