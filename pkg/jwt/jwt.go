package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// TokenType tags a token with the single purpose it was minted for.
// A token of one type must never be honored by an endpoint expecting another.
type TokenType string

const (
	TokenAccess        TokenType = "access"
	TokenRefresh       TokenType = "refresh"
	TokenPasswordReset TokenType = "password_reset"
	TokenEmailVerify   TokenType = "email_verify"
)

// Claims represents the claim set embedded in every token issued by this
// service. Subject carries the user id for access/refresh tokens and the
// email address for recovery tokens.
type Claims struct {
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role,omitempty"`
	Type  TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service signs and verifies bearer tokens with a symmetric HMAC-SHA256 key.
// It is stateless: every verification recomputes the signature from scratch.
type Service struct {
	secret      []byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
	recoveryTTL time.Duration
}

var signToken = func(token *jwt.Token, secret []byte) (string, error) {
	return token.SignedString(secret)
}

// New creates a token service. The secret is required configuration: an empty
// secret is a startup error, never replaced by a baked-in default.
func New(secret string, accessTTL, refreshTTL, recoveryTTL time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	return &Service{
		secret:      []byte(secret),
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
		recoveryTTL: recoveryTTL,
	}, nil
}

// AccessTTL returns the configured access-token lifetime.
func (s *Service) AccessTTL() time.Duration {
	return s.accessTTL
}

// GenerateAccessToken mints an access token carrying the full principal.
func (s *Service) GenerateAccessToken(userID uuid.UUID, email, role string) (string, error) {
	return s.generate(userID.String(), email, role, TokenAccess, s.accessTTL)
}

// GenerateRefreshToken mints a refresh token. It deliberately carries only the
// user id: consumers needing email or role must re-fetch the account.
func (s *Service) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generate(userID.String(), "", "", TokenRefresh, s.refreshTTL)
}

// GenerateTokenPair mints a matching access and refresh token.
func (s *Service) GenerateTokenPair(userID uuid.UUID, email, role string) (*TokenPair, error) {
	accessToken, err := s.GenerateAccessToken(userID, email, role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GeneratePasswordResetToken mints a short-lived token proving a completed OTP
// exchange for the given email.
func (s *Service) GeneratePasswordResetToken(email string) (string, error) {
	return s.generate(email, "", "", TokenPasswordReset, s.recoveryTTL)
}

// GenerateEmailVerifyToken mints a short-lived email-verification token. It is
// a distinct type from password_reset so the two purposes are not
// interchangeable.
func (s *Service) GenerateEmailVerifyToken(email string) (string, error) {
	return s.generate(email, "", "", TokenEmailVerify, s.recoveryTTL)
}

// Verify checks signature and expiry and returns the parsed claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// VerifyPurpose verifies the token and additionally requires an exact token
// type match. Wrong-type tokens fail exactly like forged ones.
func (s *Service) VerifyPurpose(tokenString string, want TokenType) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != want {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ExtractClaim returns a single raw claim from a correctly signed token
// without running claim validation, so callers can inspect e.g. the type of an
// already-expired token. The signature is still required.
func (s *Service) ExtractClaim(tokenString string, selector func(claims jwt.MapClaims) interface{}) (interface{}, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrTokenMalformed
		}
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return selector(mapClaims), nil
}

func (s *Service) generate(subject, email, role string, tokenType TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signToken(token, s.secret)
}
