package jwt

import (
	"strings"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New("secret", 15*time.Minute, 7*24*time.Hour, 15*time.Minute)
	require.NoError(t, err)
	return svc
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New("", time.Minute, time.Minute, time.Minute)
	assert.Error(t, err)
}

func TestService_GenerateAndVerifyAccessToken(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "test@mail.com", "USER")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "test@mail.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, TokenAccess, claims.Type)
	assert.Equal(t, 15*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestService_RefreshTokenOmitsEmailAndRole(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
	assert.Equal(t, TokenRefresh, claims.Type)
}

func TestService_GenerateTokenPair(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.GenerateTokenPair(uuid.New(), "pair@mail.com", "ADMIN")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestService_VerifyTamperedSignature(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateAccessToken(uuid.New(), "x@y.z", "USER")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flip one bit in the signature segment.
	sig := []byte(parts[2])
	sig[0] ^= 0x01
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	claims, err := svc.Verify(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestService_VerifyExpiredToken(t *testing.T) {
	svc, err := New("secret", -time.Second, -time.Second, -time.Second)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(uuid.New(), "expired@mail.com", "USER")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestService_VerifyMalformedToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestService_VerifyWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := New("other-secret", 15*time.Minute, time.Hour, 15*time.Minute)
	require.NoError(t, err)

	token, err := other.GenerateAccessToken(uuid.New(), "x@y.z", "USER")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestService_VerifyWrongSigningMethod(t *testing.T) {
	svc := newTestService(t)

	claims := gjwt.MapClaims{
		"sub":  "someone",
		"type": "access",
		"exp":  time.Now().Add(time.Minute).Unix(),
		"iat":  time.Now().Unix(),
	}
	unsigned := gjwt.NewWithClaims(gjwt.SigningMethodNone, claims)
	tokenStr, err := unsigned.SignedString(gjwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestService_VerifyPurpose(t *testing.T) {
	svc := newTestService(t)

	resetToken, err := svc.GeneratePasswordResetToken("a@x.com")
	require.NoError(t, err)
	verifyToken, err := svc.GenerateEmailVerifyToken("a@x.com")
	require.NoError(t, err)

	claims, err := svc.VerifyPurpose(resetToken, TokenPasswordReset)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)

	// Purposes are not interchangeable in either direction.
	_, err = svc.VerifyPurpose(resetToken, TokenEmailVerify)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = svc.VerifyPurpose(verifyToken, TokenPasswordReset)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.VerifyPurpose(verifyToken, TokenEmailVerify)
	assert.NoError(t, err)
}

func TestService_ExtractClaim(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GeneratePasswordResetToken("a@x.com")
	require.NoError(t, err)

	got, err := svc.ExtractClaim(token, func(claims gjwt.MapClaims) interface{} {
		return claims["type"]
	})
	require.NoError(t, err)
	assert.Equal(t, "password_reset", got)
}

func TestService_ExtractClaimSkipsExpiryValidation(t *testing.T) {
	expired, err := New("secret", -time.Second, -time.Second, -time.Second)
	require.NoError(t, err)
	svc := newTestService(t)

	token, err := expired.GenerateAccessToken(uuid.New(), "x@y.z", "USER")
	require.NoError(t, err)

	// Verify rejects the expired token, ExtractClaim still reads it.
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	got, err := svc.ExtractClaim(token, func(claims gjwt.MapClaims) interface{} {
		return claims["type"]
	})
	require.NoError(t, err)
	assert.Equal(t, "access", got)
}

func TestService_ExtractClaimStillChecksSignature(t *testing.T) {
	svc := newTestService(t)
	other, err := New("other-secret", time.Minute, time.Minute, time.Minute)
	require.NoError(t, err)

	token, err := other.GenerateAccessToken(uuid.New(), "x@y.z", "USER")
	require.NoError(t, err)

	_, err = svc.ExtractClaim(token, func(claims gjwt.MapClaims) interface{} {
		return claims["type"]
	})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
