package auth

import (
	"testing"
	"time"

	"github.com/foodcrm/backend/internal/domain/identity"
	"github.com/foodcrm/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-which-is-long-enough",
		TokenExpiration: expiration,
		Issuer:          "foodcrm-test",
	})
}

func newTestUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	user, err := identity.NewUser(uuid.New(), "chef@example.com", "s3cretpass", role)
	require.NoError(t, err)
	return user
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestService(12 * time.Hour)
	user := newTestUser(t, identity.RoleSales)

	issued, err := svc.IssueToken(user)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), issued.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)

	tenantID, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, user.TenantID, tenantID)

	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	assert.Equal(t, identity.RoleSales, claims.GetRole())
	assert.True(t, claims.HasPermission("deals:update"))
	assert.False(t, claims.HasPermission("po:read"))
}

func TestValidateTokenErrors(t *testing.T) {
	svc := newTestService(12 * time.Hour)
	user := newTestUser(t, identity.RoleOwner)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:          "another-secret-entirely-here!!",
			TokenExpiration: time.Hour,
			Issuer:          "foodcrm-test",
		})
		issued, err := other.IssueToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		issued, err := expired.IssueToken(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(issued.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
