// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shop-assistant/internal/common/logger"
)

// Limiter is a fixed-window request limiter backed by Redis. It fails
// open: if Redis is unreachable the request is allowed, because the chat
// contract never surfaces infrastructure faults to the widget.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger logger.Logger
}

func New(client *redis.Client, limit int, window time.Duration, log logger.Logger) *Limiter {
	return &Limiter{client: client, limit: limit, window: window, logger: log}
}

// Allow reports whether the caller identified by key may proceed in the
// current window.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true
	}

	bucket := time.Now().Unix() / int64(l.window.Seconds())
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	count, err := l.client.Incr(ctx, windowKey).Result()
	if err != nil {
		l.logger.WithError(err).Warn("rate limiter unavailable, allowing request", map[string]interface{}{
			"key": key,
		})
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, windowKey, l.window)
	}
	return count <= int64(l.limit)
}
