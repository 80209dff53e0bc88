package catalog

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for catalog items
type ItemRepository interface {
	shared.TenantRepository[Item]
	FindBySKUForTenant(ctx context.Context, tenantID uuid.UUID, sku string) (*Item, error)
}

// PriceListRepository defines persistence operations for price lists.
// Save persists the header and its lines atomically.
type PriceListRepository interface {
	shared.TenantRepository[PriceList]
}
