package cli

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"hei-calculator/repository"
	"hei-calculator/service"
)

// services is the object graph shared by every subcommand.
type services struct {
	projection  *service.ProjectionService
	sensitivity *service.SensitivityService
	settlement  *service.SettlementService
	narrative   *service.NarrativeService
	close       func()
}

// buildServices connects to Redis when an address is configured and falls
// back to an in-process cache if it is unreachable.
func (o *RootOptions) buildServices(ctx context.Context) *services {
	cfg := o.Config
	var cache repository.CacheRepository = repository.NewMemoryCache(cfg.Cache.TTL)
	closeFn := func() {}

	if cfg.Cache.RedisAddr != "" {
		redisCache := repository.NewRedisCache(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		}, cfg.Cache.TTL, o.Log)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := redisCache.Ping(pingCtx); err != nil {
			o.Log.WithError(err).Warn("redis unavailable, using in-memory cache")
			_ = redisCache.Close()
		} else {
			o.Log.WithField("addr", cfg.Cache.RedisAddr).Info("using redis projection cache")
			cache = redisCache
			closeFn = func() { _ = redisCache.Close() }
		}
	}

	projection := service.NewProjectionService(cache, o.Log)
	narrative := service.NewNarrativeService(cfg.Narrative, o.Log)
	return &services{
		projection:  projection,
		sensitivity: service.NewSensitivityService(o.Log),
		settlement:  service.NewSettlementService(projection, narrative),
		narrative:   narrative,
		close:       closeFn,
	}
}
