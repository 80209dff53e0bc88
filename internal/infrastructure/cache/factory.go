package cache

import (
	"github.com/foodcrm/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewDedupStore creates a dedup store from configuration. When Redis
// is enabled but unreachable it falls back to the in-memory store so a
// cache outage never blocks mailbox polling.
func NewDedupStore(cfg config.RedisConfig, log *zap.Logger) DedupStore {
	if log == nil {
		log = zap.NewNop()
	}

	if !cfg.Enabled {
		log.Info("Redis disabled, using in-memory dedup store")
		return NewInMemoryDedupStore()
	}

	store, err := NewRedisDedupStore(RedisOptions{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory dedup store",
			zap.String("host", cfg.Host),
			zap.Error(err))
		return NewInMemoryDedupStore()
	}

	log.Info("Using Redis dedup store", zap.String("host", cfg.Host))
	return store
}
