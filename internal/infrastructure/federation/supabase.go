package federation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"trust-fund.backend/internal/domain/entities"
)

const supabaseAudience = "authenticated"

// SupabaseConfig holds Supabase token verification settings
type SupabaseConfig struct {
	// ProjectURL is the project base URL, e.g. https://<project>.supabase.co
	ProjectURL string
	// JWTSecret is the project's JWT secret. It is distinct trust material
	// from this service's own signing secret and from Google's keys.
	JWTSecret string
}

// SupabaseVerifier verifies Supabase-issued access tokens (HS256, signed with
// the project JWT secret).
type SupabaseVerifier struct {
	secret []byte
	issuer string
}

type supabaseClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// NewSupabaseVerifier creates a verifier for Supabase-issued JWTs.
func NewSupabaseVerifier(cfg SupabaseConfig) (*SupabaseVerifier, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("federation: supabase jwt secret is required")
	}
	if cfg.ProjectURL == "" {
		return nil, errors.New("federation: supabase project url is required")
	}

	return &SupabaseVerifier{
		secret: []byte(cfg.JWTSecret),
		issuer: strings.TrimRight(cfg.ProjectURL, "/") + "/auth/v1",
	}, nil
}

// Verify implements usecases.ExternalVerifier for Supabase access tokens.
func (v *SupabaseVerifier) Verify(ctx context.Context, rawToken string) (*entities.ExternalIdentity, error) {
	claims := &supabaseClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("federation: unexpected signing method %q", token.Method.Alg())
		}
		return v.secret, nil
	},
		jwt.WithAudience(supabaseAudience),
		jwt.WithIssuer(v.issuer),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("federation: invalid supabase token: %w", err)
	}

	if claims.Email == "" {
		return nil, errors.New("federation: supabase token has no email claim")
	}

	name := claims.UserMetadata.FullName
	if name == "" {
		name = claims.UserMetadata.Name
	}

	return &entities.ExternalIdentity{
		Provider: "supabase",
		Subject:  claims.Subject,
		Email:    claims.Email,
		Name:     name,
	}, nil
}
