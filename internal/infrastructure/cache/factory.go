package cache

import (
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/application/report"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

// New returns a Redis-backed cache when Redis is enabled and reachable,
// falling back to the in-memory cache otherwise.
func New(cfg config.RedisConfig, logger *zap.Logger) report.Cache {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled {
		logger.Info("redis disabled, using in-memory report cache")
		return NewMemoryCache()
	}

	redisCache, err := NewRedisCache(cfg)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory report cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err))
		return NewMemoryCache()
	}

	logger.Info("using redis report cache", zap.String("addr", cfg.Addr()))
	return redisCache
}
