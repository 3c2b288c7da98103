// internal/chat/service_test.go
package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"
)

// fakeCatalog returns canned results and records the arguments it saw.
type fakeCatalog struct {
	stats      *models.PriceStats
	best       []models.ProductSummary
	suggested  []models.ProductSummary
	newest     []models.ProductSummary
	categories []models.Category
	err        error

	bestLimit  int
	bestWindow int
	panicOn    string
}

func (f *fakeCatalog) PriceStatistics(ctx context.Context) (*models.PriceStats, error) {
	if f.panicOn == "price" {
		panic("boom")
	}
	return f.stats, f.err
}

func (f *fakeCatalog) BestSellers(ctx context.Context, limit, windowDays int) ([]models.ProductSummary, error) {
	f.bestLimit = limit
	f.bestWindow = windowDays
	return f.best, f.err
}

func (f *fakeCatalog) SuggestedProducts(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	return f.suggested, f.err
}

func (f *fakeCatalog) NewestProducts(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	return f.newest, f.err
}

func (f *fakeCatalog) NewestCategories(ctx context.Context, limit int) ([]models.Category, error) {
	return f.categories, f.err
}

func newTestService(t *testing.T, catalog *fakeCatalog, strict bool) *Service {
	t.Helper()
	composer := NewComposer(strict, "THETHAO SPORTS", testLinks{})
	temporal := NewTemporalResponder(SystemClock{}, time.UTC, testWeekdays, strict, "", "")
	return NewService(catalog, composer, temporal, Limits{
		BestSellers:     5,
		Suggest:         6,
		Newest:          5,
		DefaultDaysBack: 90,
	}, logger.NewNoOpLogger())
}

func TestHandleMessageEmptyInput(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{}, false)

	for _, input := range []string{"", "   ", "\t\n"} {
		reply := svc.HandleMessage(context.Background(), input)
		assert.Equal(t, models.Reply{}, reply)
	}
}

func TestHandleMessageGreeting(t *testing.T) {
	svc := newTestService(t, &fakeCatalog{}, false)

	reply := svc.HandleMessage(context.Background(), "Xin chào!")
	assert.Equal(t, "Chào bạn! Mình là trợ lý của THETHAO SPORTS.", reply.Text)
	assert.Empty(t, reply.Cards)
}

func TestHandleMessagePriceStats(t *testing.T) {
	catalog := &fakeCatalog{
		stats: &models.PriceStats{Count: 10, Min: 50000, Max: 900000, Avg: 200000},
	}
	svc := newTestService(t, catalog, true)

	reply := svc.HandleMessage(context.Background(), "Giá sản phẩm cao nhất là bao nhiêu?")
	assert.Equal(t, "SP: 10 | Thấp nhất: 50.000đ | Cao nhất: 900.000đ | TB: 200.000đ", reply.Text)
}

func TestHandleMessageBestSellersWindow(t *testing.T) {
	catalog := &fakeCatalog{
		best: []models.ProductSummary{{ID: 1, Name: "Giày", Slug: "giay", Qty: 3}},
	}
	svc := newTestService(t, catalog, false)

	reply := svc.HandleMessage(context.Background(), "sản phẩm bán chạy 30 ngày qua")
	assert.Equal(t, "Top bán chạy 30 ngày", reply.Text)
	assert.Equal(t, 5, catalog.bestLimit)
	assert.Equal(t, 30, catalog.bestWindow)
	require.Len(t, reply.Cards, 1)

	// No window in the message means the configured default.
	svc.HandleMessage(context.Background(), "sản phẩm bán chạy")
	assert.Equal(t, 90, catalog.bestWindow)
}

func TestHandleMessageCatalogErrorDegrades(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	svc := newTestService(t, catalog, false)

	reply := svc.HandleMessage(context.Background(), "gợi ý sản phẩm")
	assert.Equal(t, models.Reply{}, reply)
}

func TestHandleMessagePanicDegrades(t *testing.T) {
	catalog := &fakeCatalog{panicOn: "price"}
	svc := newTestService(t, catalog, false)

	reply := svc.HandleMessage(context.Background(), "giá cao nhất")
	assert.Equal(t, models.Reply{}, reply)
}

func TestHandleMessageFallbackNeverQueries(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("must not be called")}
	svc := newTestService(t, catalog, true)

	reply := svc.HandleMessage(context.Background(), "thời tiết hôm nay thế nào")
	assert.Equal(t, "Mình chưa hiểu câu này.", reply.Text)
}
