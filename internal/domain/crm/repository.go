package crm

import (
	"github.com/foodcrm/backend/internal/domain/shared"
)

// DealRepository defines persistence operations for deals
type DealRepository interface {
	shared.TenantRepository[Deal]
}

// ActivityRepository defines persistence operations for activities
type ActivityRepository interface {
	shared.TenantRepository[Activity]
}
