package federation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"trust-fund.backend/internal/domain/entities"
)

const (
	// GoogleJWKSURL is Google's published signing-key set for ID tokens.
	GoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

	googleIssuer       = "https://accounts.google.com"
	googleIssuerLegacy = "accounts.google.com"
)

// GoogleConfig holds Google ID-token verification settings
type GoogleConfig struct {
	ClientID string
	// JWKSURL overrides the key-set endpoint, used in tests.
	JWKSURL string
}

// GoogleVerifier verifies Google-issued ID tokens against Google's JWKS.
// Trust material is Google's rotating RSA keys, never this service's secret.
type GoogleVerifier struct {
	clientID string
	jwks     *keyfunc.JWKS
}

type googleClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// NewGoogleVerifier creates a verifier that keeps Google's key set cached and
// refreshed in the background.
func NewGoogleVerifier(cfg GoogleConfig) (*GoogleVerifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("federation: google client id is required")
	}
	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		jwksURL = GoogleJWKSURL
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			// Background refresh failures are survivable while cached keys
			// remain valid; the next verification surfaces a hard failure.
		},
	})
	if err != nil {
		return nil, fmt.Errorf("federation: failed to load google jwks: %w", err)
	}

	return &GoogleVerifier{clientID: cfg.ClientID, jwks: jwks}, nil
}

// Verify implements usecases.ExternalVerifier for Google ID tokens.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*entities.ExternalIdentity, error) {
	claims := &googleClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("federation: invalid google id token: %w", err)
	}

	if claims.Issuer != googleIssuer && claims.Issuer != googleIssuerLegacy {
		return nil, fmt.Errorf("federation: unexpected google issuer %q", claims.Issuer)
	}
	if claims.Email == "" {
		return nil, errors.New("federation: google id token has no email claim")
	}

	return &entities.ExternalIdentity{
		Provider: "google",
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
	}, nil
}
