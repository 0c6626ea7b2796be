package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/domain/repositories"
	"trust-fund.backend/pkg/crypto"
	"trust-fund.backend/pkg/jwt"
	"trust-fund.backend/pkg/logger"
)

// EmailSender delivers OTP codes. Implementations are best-effort: a delivery
// failure is logged, never surfaced to the caller.
type EmailSender interface {
	SendOtpEmail(ctx context.Context, to, code, displayName string, purpose entities.OtpPurpose) error
}

// ExternalVerifier verifies a token issued by an external identity provider
// against that provider's own trust material and returns the asserted identity.
type ExternalVerifier interface {
	Verify(ctx context.Context, rawToken string) (*entities.ExternalIdentity, error)
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo         repositories.UserRepository
	otpRepo          repositories.OtpRepository
	jwtService       *jwt.Service
	emailSender      EmailSender
	googleVerifier   ExternalVerifier
	supabaseVerifier ExternalVerifier
	otpTTL           time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	otpRepo repositories.OtpRepository,
	jwtService *jwt.Service,
	emailSender EmailSender,
	googleVerifier ExternalVerifier,
	supabaseVerifier ExternalVerifier,
	otpTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:         userRepo,
		otpRepo:          otpRepo,
		jwtService:       jwtService,
		emailSender:      emailSender,
		googleVerifier:   googleVerifier,
		supabaseVerifier: supabaseVerifier,
		otpTTL:           otpTTL,
	}
}

// Register creates a local-credential account and logs it in.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	exists, err := u.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.Conflict("email is already registered")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		FullName:     input.FullName,
		PhoneNumber:  null.NewString(input.PhoneNumber, input.PhoneNumber != ""),
		PasswordHash: passwordHash,
		Role:         entities.RoleUser,
		IsActive:     true,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email is already registered")
		}
		return nil, err
	}

	return u.issueTokens(user)
}

// Login authenticates local credentials and returns a token pair.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountDeactivated
	}

	return u.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The account
// is re-fetched so deactivation and role changes take effect immediately.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.VerifyPurpose(refreshToken, jwt.TokenRefresh)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountDeactivated
	}

	return u.issueTokens(user)
}

// GoogleLogin verifies a Google ID token and logs the asserted identity in.
func (u *AuthUsecase) GoogleLogin(ctx context.Context, input *entities.GoogleLoginInput) (*entities.AuthResponse, error) {
	identity, err := u.googleVerifier.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid google id token")
	}
	return u.resolveExternal(ctx, identity)
}

// SupabaseLogin verifies a Supabase access token and logs the asserted
// identity in.
func (u *AuthUsecase) SupabaseLogin(ctx context.Context, input *entities.SupabaseLoginInput) (*entities.AuthResponse, error) {
	identity, err := u.supabaseVerifier.Verify(ctx, input.AccessToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid supabase token")
	}
	return u.resolveExternal(ctx, identity)
}

// resolveExternal maps a verified external identity onto a local account,
// creating one on first login. Accounts are keyed by email across providers.
func (u *AuthUsecase) resolveExternal(ctx context.Context, identity *entities.ExternalIdentity) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, identity.Email)
	if err == nil {
		if !user.IsActive {
			return nil, domainerrors.ErrAccountDeactivated
		}
		return u.issueTokens(user)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	// The provider attested the address, so the account starts verified. The
	// password hash is random material: it satisfies the schema but can never
	// be used to log in.
	placeholder, err := crypto.GeneratePlaceholderPassword()
	if err != nil {
		return nil, err
	}

	fullName := identity.Name
	if fullName == "" {
		fullName = identity.Email
	}

	user = &entities.User{
		Email:        identity.Email,
		FullName:     fullName,
		PasswordHash: placeholder,
		Role:         entities.RoleUser,
		IsActive:     true,
		Verified:     true,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// Lost a first-login race for the same address; the winner's account
		// is the one to use.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			user, err = u.userRepo.GetByEmail(ctx, identity.Email)
			if err != nil {
				return nil, err
			}
			if !user.IsActive {
				return nil, domainerrors.ErrAccountDeactivated
			}
			return u.issueTokens(user)
		}
		return nil, err
	}

	return u.issueTokens(user)
}

// SendOtp issues a fresh OTP for the email, invalidating any previous one, and
// mails the code. Email delivery is fire-and-forget.
func (u *AuthUsecase) SendOtp(ctx context.Context, input *entities.SendOtpInput) (*entities.OtpResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("no account with this email")
		}
		return nil, err
	}

	code, err := crypto.GenerateOtpCode()
	if err != nil {
		return nil, err
	}

	purpose := input.Purpose
	if purpose == "" {
		purpose = entities.OtpPurposeResetPassword
	}

	otp := &entities.OtpToken{
		Email:     input.Email,
		Otp:       code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(u.otpTTL),
	}
	if err := u.otpRepo.Replace(ctx, otp); err != nil {
		return nil, err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := u.emailSender.SendOtpEmail(sendCtx, user.Email, code, user.FullName, purpose); err != nil {
			logger.GetLogger().Error("failed to send otp email",
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
	}()

	return &entities.OtpResponse{
		Success: true,
		Message: "OTP sent to email",
	}, nil
}

// VerifyOtp consumes the OTP and, on success, mints the short-lived token for
// the requested purpose. Codes are bound to the purpose they were issued for
// and cannot be replayed afterwards.
func (u *AuthUsecase) VerifyOtp(ctx context.Context, input *entities.VerifyOtpInput) (*entities.OtpResponse, error) {
	purpose := input.Purpose
	if purpose == "" {
		purpose = entities.OtpPurposeResetPassword
	}

	if err := u.otpRepo.Consume(ctx, input.Email, input.Otp, purpose); err != nil {
		return nil, err
	}

	var token string
	var err error
	switch purpose {
	case entities.OtpPurposeVerifyEmail:
		token, err = u.jwtService.GenerateEmailVerifyToken(input.Email)
	default:
		token, err = u.jwtService.GeneratePasswordResetToken(input.Email)
	}
	if err != nil {
		return nil, err
	}

	return &entities.OtpResponse{
		Success: true,
		Message: "OTP verified",
		Token:   token,
	}, nil
}

// ResetPassword sets a new password after proving a completed OTP exchange via
// the password-reset token. Tokens of any other type are rejected.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	claims, err := u.jwtService.VerifyPurpose(input.Token, jwt.TokenPasswordReset)
	if err != nil {
		return domainerrors.Unauthorized("invalid or expired reset token")
	}

	user, err := u.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, user.ID, passwordHash)
}

// VerifyEmail marks the account verified after proving a completed OTP
// exchange via the email-verify token.
func (u *AuthUsecase) VerifyEmail(ctx context.Context, input *entities.VerifyEmailInput) error {
	claims, err := u.jwtService.VerifyPurpose(input.Token, jwt.TokenEmailVerify)
	if err != nil {
		return domainerrors.Unauthorized("invalid or expired verification token")
	}

	user, err := u.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return err
	}

	return u.userRepo.SetVerified(ctx, user.ID, true)
}

// CheckEmail reports whether an account exists for the email.
func (u *AuthUsecase) CheckEmail(ctx context.Context, email string) (bool, error) {
	return u.userRepo.ExistsByEmail(ctx, email)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *AuthUsecase) issueTokens(user *entities.User) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    u.jwtService.AccessTTL().Milliseconds(),
		User:         user,
	}, nil
}
