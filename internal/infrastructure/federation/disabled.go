package federation

import (
	"context"
	"fmt"

	"trust-fund.backend/internal/domain/entities"
)

// Disabled returns a verifier that rejects every token. Used when a provider's
// trust material is not configured, so the login endpoint stays up but always
// answers 401.
func Disabled(provider string) DisabledVerifier {
	return DisabledVerifier{provider: provider}
}

// DisabledVerifier rejects all tokens for an unconfigured provider.
type DisabledVerifier struct {
	provider string
}

// Verify implements usecases.ExternalVerifier.
func (v DisabledVerifier) Verify(ctx context.Context, rawToken string) (*entities.ExternalIdentity, error) {
	return nil, fmt.Errorf("federation: %s login is not configured", v.provider)
}
