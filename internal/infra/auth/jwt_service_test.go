package auth

import (
	"testing"
	"time"

	"trailhub/config"
	"trailhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:     2 * time.Hour,
		RefreshTokenTTL:    7 * 24 * time.Hour,
		RememberRefreshTTL: 30 * 24 * time.Hour,
	}

	return cfg
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := testJWTConfig()
	cfg.SecretKey.Refresh = ""

	_, err := NewJWTService(cfg)
	require.Error(t, err)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	accountID := uuid.New()

	token, err := svc.IssueAccessToken(accountID, entity.RoleVendor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, entity.RoleVendor, claims.Role)
}

func TestJWTService_SecretsAreIndependent(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	accountID := uuid.New()

	accessToken, err := svc.IssueAccessToken(accountID, entity.RoleUser)
	require.NoError(t, err)
	refreshToken, err := svc.IssueRefreshToken(accountID, entity.RoleUser, false)
	require.NoError(t, err)

	// A token issued for one purpose must never verify for the other.
	_, err = svc.VerifyRefreshToken(accessToken)
	assert.Error(t, err)
	_, err = svc.VerifyAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Auth.AccessTokenTTL = -time.Minute

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RememberExtendsRefreshLifetime(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Auth.RefreshTokenTTL = -time.Minute
	cfg.Auth.RememberRefreshTTL = time.Hour

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	accountID := uuid.New()

	plain, err := svc.IssueRefreshToken(accountID, entity.RoleUser, false)
	require.NoError(t, err)
	remembered, err := svc.IssueRefreshToken(accountID, entity.RoleUser, true)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(plain)
	assert.Error(t, err, "default lifetime should apply without remember")

	claims, err := svc.VerifyRefreshToken(remembered)
	require.NoError(t, err, "remember lifetime should apply with remember")
	assert.Equal(t, accountID, claims.AccountID)
}

func TestJWTService_MalformedTokenRejected(t *testing.T) {
	svc, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.VerifyAccessToken(token)
		assert.Error(t, err)
	}
}
