package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"trust-fund.backend/internal/domain/entities"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock OtpRepository
type MockOtpRepository struct {
	mock.Mock
}

func (m *MockOtpRepository) Replace(ctx context.Context, otp *entities.OtpToken) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOtpRepository) Consume(ctx context.Context, email, code string, purpose entities.OtpPurpose) error {
	args := m.Called(ctx, email, code, purpose)
	return args.Error(0)
}

func (m *MockOtpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock KYCRepository
type MockKYCRepository struct {
	mock.Mock
}

func (m *MockKYCRepository) Create(ctx context.Context, kyc *entities.UserKYC) error {
	args := m.Called(ctx, kyc)
	return args.Error(0)
}

func (m *MockKYCRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserKYC, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserKYC), args.Error(1)
}

func (m *MockKYCRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, reviewedBy string) error {
	args := m.Called(ctx, id, status, reviewedBy)
	return args.Error(0)
}

func (m *MockKYCRepository) List(ctx context.Context, status entities.KYCStatus) ([]*entities.UserKYC, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserKYC), args.Error(1)
}

// Mock BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) Create(ctx context.Context, account *entities.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.BankAccountStatus, note string) error {
	args := m.Called(ctx, id, status, note)
	return args.Error(0)
}

// stubEmailSender records the last delivery and signals on a channel so tests
// can wait for the fire-and-forget send.
type stubEmailSender struct {
	sent    chan sentEmail
	sendErr error
}

type sentEmail struct {
	to      string
	code    string
	name    string
	purpose entities.OtpPurpose
}

func newStubEmailSender() *stubEmailSender {
	return &stubEmailSender{sent: make(chan sentEmail, 1)}
}

func (s *stubEmailSender) SendOtpEmail(_ context.Context, to, code, displayName string, purpose entities.OtpPurpose) error {
	s.sent <- sentEmail{to: to, code: code, name: displayName, purpose: purpose}
	return s.sendErr
}

// stubVerifier returns a fixed identity or error.
type stubVerifier struct {
	identity *entities.ExternalIdentity
	err      error
	lastRaw  string
}

func (s *stubVerifier) Verify(_ context.Context, rawToken string) (*entities.ExternalIdentity, error) {
	s.lastRaw = rawToken
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}
