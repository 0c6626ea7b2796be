package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"trust-fund.backend/internal/domain/entities"
	"trust-fund.backend/internal/interfaces/http/middleware"
	"trust-fund.backend/pkg/crypto"
	"trust-fund.backend/pkg/jwt"
)

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

type nopEmailSender struct{}

func (nopEmailSender) SendOtpEmail(context.Context, string, string, string, entities.OtpPurpose) error {
	return nil
}

type stubVerifier struct {
	identity *entities.ExternalIdentity
	err      error
}

func (s *stubVerifier) Verify(context.Context, string) (*entities.ExternalIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func newTestJWT(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.New("handler-test-secret", 15*time.Minute, 7*24*time.Hour, 10*time.Minute)
	require.NoError(t, err)
	return svc
}

func testUser(t *testing.T, role entities.UserRole) *entities.User {
	t.Helper()
	hash, err := crypto.HashPassword("correct-password")
	require.NoError(t, err)
	return &entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		FullName:     "Test User",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
}

// asAuthenticated injects the identity the auth middleware would have set.
func asAuthenticated(user *entities.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.UserEmailKey, user.Email)
		c.Set(middleware.UserRoleKey, user.Role)
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func init() {
	gin.SetMode(gin.TestMode)
}
