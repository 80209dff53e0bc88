package identity

import (
	"context"
	"strings"
	"time"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant represents an organization in the multi-tenant system.
// Every other aggregate in the application belongs to exactly one tenant.
type Tenant struct {
	shared.BaseAggregateRoot
	Name   string
	Status TenantStatus
}

// NewTenant creates a new active tenant
func NewTenant(name string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            TenantStatusActive,
	}, nil
}

// Rename changes the tenant name
func (t *Tenant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}

	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Suspend marks the tenant as suspended
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// IsActive reports whether the tenant can be used for authentication
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// TenantRepository defines persistence operations for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
}

// RegistrationRepository persists a new tenant together with its owner
// user in one transaction. A failure leaves neither behind.
type RegistrationRepository interface {
	CreateTenantWithOwner(ctx context.Context, tenant *Tenant, owner *User) error
}
