package partner

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	shared.TenantRepository[Company]
	// FindByEmailForTenant matches a company by its contact email,
	// case-insensitively. Used to auto-link inbound mail.
	FindByEmailForTenant(ctx context.Context, tenantID uuid.UUID, email string) (*Company, error)
}

// ContactRepository defines persistence operations for contacts
type ContactRepository interface {
	shared.TenantRepository[Contact]
	FindByCompanyForTenant(ctx context.Context, tenantID, companyID uuid.UUID) ([]Contact, error)
}
