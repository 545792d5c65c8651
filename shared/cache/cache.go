package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"bilateral/infras/otel"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	Nil                   = redis.Nil
)

// Counter keeps fixed-window counters. Slot views are never cached; this only backs the
// request limiter.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCounter(client *redis.Client, ot otel.Otel) Counter {
	return &redisCounter{
		client: client,
		otel:   ot,
	}
}

// Increment bumps key and starts its window on the first hit of the window.
func (cache *redisCounter) Increment(ctx context.Context, key string, window time.Duration) (count int64, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	count, err = cache.client.Incr(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCounter", "Increment").Msg("failed to incr counter")

		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		if err = cache.client.Expire(ctx, key, window).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Str("RedisCounter", "Increment").Msg("failed to set counter window")

			return count, fmt.Errorf("failed to set counter window: %w", err)
		}
	}

	return count, nil
}
