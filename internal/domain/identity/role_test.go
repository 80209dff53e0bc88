package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Run("accepts known roles", func(t *testing.T) {
		for _, s := range []string{"owner", "admin", "sales", "ops", "viewer"} {
			role, err := ParseRole(s)
			assert.NoError(t, err)
			assert.Equal(t, Role(s), role)
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		role, err := ParseRole("  Admin ")
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := ParseRole("superuser")
		assert.Error(t, err)
	})
}

func TestRoleHasPermission(t *testing.T) {
	t.Run("owner has everything", func(t *testing.T) {
		assert.True(t, RoleOwner.HasPermission("companies:delete"))
		assert.True(t, RoleOwner.HasPermission("emails:send"))
	})

	t.Run("resource wildcard covers all actions", func(t *testing.T) {
		assert.True(t, RoleAdmin.HasPermission("quotes:create"))
		assert.True(t, RoleAdmin.HasPermission("quotes:delete"))
		assert.True(t, RoleSales.HasPermission("deals:update"))
	})

	t.Run("exact grant only covers that action", func(t *testing.T) {
		assert.True(t, RoleSales.HasPermission("companies:read"))
		assert.False(t, RoleSales.HasPermission("companies:create"))
		assert.True(t, RoleOps.HasPermission("emails:send"))
		assert.False(t, RoleOps.HasPermission("emails:read"))
	})

	t.Run("sales cannot touch purchase orders or items", func(t *testing.T) {
		assert.False(t, RoleSales.HasPermission("po:read"))
		assert.False(t, RoleSales.HasPermission("items:read"))
	})

	t.Run("viewer is read only", func(t *testing.T) {
		assert.True(t, RoleViewer.HasPermission("quotes:read"))
		assert.True(t, RoleViewer.HasPermission("deals:read"))
		assert.True(t, RoleViewer.HasPermission("emails:read"))
		assert.False(t, RoleViewer.HasPermission("quotes:create"))
		assert.False(t, RoleViewer.HasPermission("emails:send"))
	})

	t.Run("unknown role has nothing", func(t *testing.T) {
		assert.False(t, Role("ghost").HasPermission("companies:read"))
	})
}

func TestUserPassword(t *testing.T) {
	tenantID := newTestTenantID(t)

	t.Run("hashes and verifies", func(t *testing.T) {
		user, err := NewUser(tenantID, "chef@example.com", "s3cretpass", RoleOwner)
		assert.NoError(t, err)
		assert.NotEqual(t, "s3cretpass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cretpass"))
		assert.False(t, user.VerifyPassword("wrongpass1"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "chef@example.com", "short", RoleOwner)
		assert.Error(t, err)
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := NewUser(tenantID, "not-an-email", "s3cretpass", RoleOwner)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(tenantID, "chef@example.com", "s3cretpass", Role("root"))
		assert.Error(t, err)
	})
}
