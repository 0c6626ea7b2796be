package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus represents the review state of a KYC submission
type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCApproved KYCStatus = "APPROVED"
	KYCRejected KYCStatus = "REJECTED"
)

// UserKYC represents a know-your-customer submission
type UserKYC struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"userId"`
	IDNumber    string      `json:"idNumber"`
	FullName    string      `json:"fullName"`
	DateOfBirth string      `json:"dateOfBirth"`
	Status      KYCStatus   `json:"status"`
	ReviewedBy  null.String `json:"reviewedBy,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// SubmitKYCInput represents input for a KYC submission
type SubmitKYCInput struct {
	IDNumber    string `json:"idNumber" binding:"required,min=6,max=20"`
	FullName    string `json:"fullName" binding:"required,min=2,max=100"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
}

// UpdateKYCStatusInput represents a staff review decision
type UpdateKYCStatusInput struct {
	Status KYCStatus `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}
