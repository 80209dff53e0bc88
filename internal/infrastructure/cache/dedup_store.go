package cache

import (
	"context"
	"time"
)

// DedupStore remembers keys for a bounded time so mailbox polling can
// skip messages it already picked up in a recent cycle. The database
// unique index on (tenant_id, provider_msg_id) remains the source of
// truth; the store only saves redundant fetches.
type DedupStore interface {
	// Reserve marks a key as seen with a TTL. Returns true if the key
	// was newly reserved, false if it was already present.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsSeen checks whether a key is currently reserved.
	IsSeen(ctx context.Context, key string) (bool, error)

	// Release drops a reservation so the key can be claimed again.
	// Used when storing the message failed and it must be retried.
	Release(ctx context.Context, key string) error

	// Close releases store resources.
	Close() error
}
