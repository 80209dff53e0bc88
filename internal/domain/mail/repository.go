package mail

import (
	"context"

	"github.com/foodcrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MessageRepository defines persistence operations for email log rows
type MessageRepository interface {
	shared.TenantRepository[Message]
	// ExistsByProviderID reports whether an inbound message with this
	// provider id was already ingested for the tenant.
	ExistsByProviderID(ctx context.Context, tenantID uuid.UUID, providerMsgID string) (bool, error)
}
