// internal/ratelimit/limiter_test.go
package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-assistant/internal/common/logger"
)

func newTestLimiter(t *testing.T, limit int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, limit, time.Minute, logger.NewNoOpLogger()), mr
}

func TestAllowWithinLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(ctx, "1.2.3.4"), "request %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))
}

func TestAllowSeparateKeys(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.True(t, limiter.Allow(ctx, "5.6.7.8"))
}

func TestAllowFailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	mr.Close()

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
}

func TestAllowDisabledLimiter(t *testing.T) {
	ctx := context.Background()

	disabled := New(nil, 0, 0, logger.NewNoOpLogger())
	assert.True(t, disabled.Allow(ctx, "1.2.3.4"))
	assert.True(t, disabled.Allow(ctx, "1.2.3.4"))
}
