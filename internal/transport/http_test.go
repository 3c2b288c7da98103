// internal/transport/http_test.go
package transport

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-assistant/internal/chat"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"
	"shop-assistant/internal/ratelimit"
)

type emptyCatalog struct{}

func (emptyCatalog) PriceStatistics(ctx context.Context) (*models.PriceStats, error) {
	return nil, nil
}

func (emptyCatalog) BestSellers(ctx context.Context, limit, windowDays int) ([]models.ProductSummary, error) {
	return nil, nil
}

func (emptyCatalog) SuggestedProducts(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	return nil, nil
}

func (emptyCatalog) NewestProducts(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	return nil, nil
}

func (emptyCatalog) NewestCategories(ctx context.Context, limit int) ([]models.Category, error) {
	return nil, nil
}

type noLinks struct{}

func (noLinks) ProductURL(slug string) string  { return "" }
func (noLinks) CategoryURL(slug string) string { return "" }
func (noLinks) ImageURL(path string) string    { return "" }

func newTestServer(t *testing.T, limiter *ratelimit.Limiter) *Server {
	t.Helper()

	composer := chat.NewComposer(true, "THETHAO SPORTS", noLinks{})
	temporal := chat.NewTemporalResponder(
		chat.SystemClock{}, time.UTC,
		[]string{"Chủ nhật", "Thứ hai", "Thứ ba", "Thứ tư", "Thứ năm", "Thứ sáu", "Thứ bảy"},
		true, "", "",
	)
	service := chat.NewService(emptyCatalog{}, composer, temporal, chat.Limits{
		BestSellers: 5, Suggest: 6, Newest: 5, DefaultDaysBack: 90,
	}, logger.NewNoOpLogger())

	if limiter == nil {
		limiter = ratelimit.New(nil, 0, 0, logger.NewNoOpLogger())
	}

	server, err := NewServer(service, limiter, 5*time.Second, 5*time.Second, logger.NewNoOpLogger())
	require.NoError(t, err)
	return server
}

func postChat(t *testing.T, server *Server, body string) (int, models.Reply) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/ai/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var reply models.Reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	return resp.StatusCode, reply
}

func TestChatEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("greeting", func(t *testing.T) {
		status, reply := postChat(t, server, `{"message":"xin chào"}`)
		assert.Equal(t, 200, status)
		assert.Equal(t, "Chào bạn.", reply.Text)
	})

	t.Run("empty message", func(t *testing.T) {
		status, reply := postChat(t, server, `{"message":""}`)
		assert.Equal(t, 200, status)
		assert.Empty(t, reply.Text)
	})

	t.Run("malformed json behaves like empty message", func(t *testing.T) {
		status, reply := postChat(t, server, `{"message":`)
		assert.Equal(t, 200, status)
		assert.Empty(t, reply.Text)
	})

	t.Run("missing message field behaves like empty message", func(t *testing.T) {
		status, reply := postChat(t, server, `{"text":"hello"}`)
		assert.Equal(t, 200, status)
		assert.Empty(t, reply.Text)
	})

	t.Run("fallback for unknown question", func(t *testing.T) {
		status, reply := postChat(t, server, `{"message":"blah blah"}`)
		assert.Equal(t, 200, status)
		assert.Equal(t, "Mình chưa hiểu câu này.", reply.Text)
	})

	t.Run("request id header set", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/ai/chat", strings.NewReader(`{"message":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := server.App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})
}

func TestChatEndpointRateLimited(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := ratelimit.New(client, 1, time.Minute, logger.NewNoOpLogger())
	server := newTestServer(t, limiter)

	status, _ := postChat(t, server, `{"message":"xin chào"}`)
	assert.Equal(t, 200, status)

	req := httptest.NewRequest("POST", "/api/ai/chat", strings.NewReader(`{"message":"xin chào"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 429, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
}
