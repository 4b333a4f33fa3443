package security

import (
	"context"
	"testing"
	"time"

	"wastetrack/internal/auth/config"
	"wastetrack/internal/auth/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, ttl time.Duration) *JWTokenService {
	t.Helper()
	svc, err := NewJWTokenService(&config.Config{
		JWTSecretKey:   "test-secret-key-test-secret-key",
		JWTIssuer:      "test-issuer",
		AccessTokenTTL: ttl,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTokenService_RejectsBadConfig(t *testing.T) {
	_, err := NewJWTokenService(&config.Config{JWTIssuer: "i", AccessTokenTTL: time.Minute})
	assert.Error(t, err)

	_, err = NewJWTokenService(&config.Config{JWTSecretKey: "s", AccessTokenTTL: time.Minute})
	assert.Error(t, err)

	_, err = NewJWTokenService(&config.Config{JWTSecretKey: "s", JWTIssuer: "i"})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t, 15*time.Minute)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "user-1", "admin@city.gov", model.RoleAdmin, "colombo-01")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@city.gov", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "colombo-01", claims.CityID)
	assert.True(t, claims.HasRole(model.RoleAdmin))
	assert.True(t, claims.HasAnyRole(model.RoleDispatcher, model.RoleAdmin))
	assert.False(t, claims.HasAnyRole(model.RoleHouseholder))
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t, time.Nanosecond)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "user-1", "a@b.c", model.RoleCollector, "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(t, time.Minute)
	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_WrongKey(t *testing.T) {
	svc := newTestService(t, time.Minute)
	other, err := NewJWTokenService(&config.Config{
		JWTSecretKey:   "another-secret-key-entirely",
		JWTIssuer:      "test-issuer",
		AccessTokenTTL: time.Minute,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), "user-1", "a@b.c", model.RoleAdmin, "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}
