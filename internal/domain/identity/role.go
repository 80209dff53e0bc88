package identity

import (
	"strings"

	"github.com/foodcrm/backend/internal/domain/shared"
)

// Role is one of the fixed set of roles a user can hold within a tenant.
// Grants are static and compiled in; there is no role administration surface.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleSales  Role = "sales"
	RoleOps    Role = "ops"
	RoleViewer Role = "viewer"
)

// rolePerms maps each role to its grant set. A grant is either
// "resource:action", a resource wildcard "resource:*", or the global
// wildcard "*".
var rolePerms = map[Role][]string{
	RoleOwner: {"*"},
	RoleAdmin: {
		"companies:*", "contacts:*", "items:*", "pricelists:*",
		"quotes:*", "po:*", "emails:*", "deals:*", "activities:*",
	},
	RoleSales: {
		"companies:read", "contacts:*", "deals:*", "activities:*",
		"quotes:*", "emails:*",
	},
	RoleOps: {
		"companies:read", "contacts:read", "items:*", "pricelists:*",
		"po:*", "emails:send",
	},
	RoleViewer: {
		"companies:read", "contacts:read", "deals:read",
		"activities:read", "items:read", "pricelists:read",
		"quotes:read", "po:read", "emails:read",
	},
}

// ParseRole validates a role string
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rolePerms[role]; !ok {
		return "", shared.NewDomainError("INVALID_ROLE", "Unknown role: "+s)
	}
	return role, nil
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	_, ok := rolePerms[r]
	return ok
}

// Permissions returns a copy of the role's grant set
func (r Role) Permissions() []string {
	perms := rolePerms[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission checks a "resource:action" permission against the role's
// grants. Match order: exact grant, global wildcard, resource wildcard.
func (r Role) HasPermission(permission string) bool {
	perms, ok := rolePerms[r]
	if !ok {
		return false
	}
	resource, _, found := strings.Cut(permission, ":")
	for _, p := range perms {
		if p == permission || p == "*" {
			return true
		}
		if found && p == resource+":*" {
			return true
		}
	}
	return false
}
