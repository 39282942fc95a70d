package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wanderplan/internal/config"
	"wanderplan/internal/infra"
	mem "wanderplan/pkg/memcache"
)

var Module = fx.Provide(provideDraftStore)

// provideDraftStore prefers Redis and falls back to process memory when REDIS_ADDR is empty.
func provideDraftStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (mem.DraftStore, error) {
	client, err := infra.InitRedis(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Info("Draft store: in memory", zap.Duration("ttl", cfg.DraftTTL))
		return mem.NewMemoryDrafts(cfg.DraftTTL), nil
	}

	lc.Append(fx.StopHook(client.Close))
	log.Info("Draft store: redis", zap.Duration("ttl", cfg.DraftTTL))
	return mem.NewRedisDrafts(client, cfg.DraftTTL), nil
}
