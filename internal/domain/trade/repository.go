package trade

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuoteRepository defines persistence operations for quotes.
// Save persists the header and all lines in one transaction; a failed
// save leaves nothing behind.
type QuoteRepository interface {
	shared.TenantRepository[Quote]
	FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*Quote, error)
}

// PurchaseOrderRepository defines persistence operations for purchase
// orders with the same atomicity guarantees as QuoteRepository.
type PurchaseOrderRepository interface {
	shared.TenantRepository[PurchaseOrder]
	FindByNumberForTenant(ctx context.Context, tenantID uuid.UUID, number string) (*PurchaseOrder, error)
}
