// internal/chat/service.go
package chat

import (
	"context"
	"strings"
	"time"

	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/models"
)

// CatalogReader is the read side of the catalog the service consults.
type CatalogReader interface {
	PriceStatistics(ctx context.Context) (*models.PriceStats, error)
	BestSellers(ctx context.Context, limit, windowDays int) ([]models.ProductSummary, error)
	SuggestedProducts(ctx context.Context, limit int) ([]models.ProductSummary, error)
	NewestProducts(ctx context.Context, limit int) ([]models.ProductSummary, error)
	NewestCategories(ctx context.Context, limit int) ([]models.Category, error)
}

// Limits bound the result sizes per intent.
type Limits struct {
	BestSellers     int
	Suggest         int
	Newest          int
	DefaultDaysBack int
}

// Service is the message-handling boundary: normalize, classify, query,
// compose. It never surfaces a fault to the caller; anything that goes
// wrong inside degrades to an empty reply.
type Service struct {
	catalog  CatalogReader
	composer *Composer
	temporal *TemporalResponder
	limits   Limits
	logger   logger.Logger
}

func NewService(catalog CatalogReader, composer *Composer, temporal *TemporalResponder, limits Limits, log logger.Logger) *Service {
	return &Service{
		catalog:  catalog,
		composer: composer,
		temporal: temporal,
		limits:   limits,
		logger:   log,
	}
}

// HandleMessage resolves one customer message to a reply. Empty input
// short-circuits to an empty reply without classification.
func (s *Service) HandleMessage(ctx context.Context, text string) (reply models.Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("chat handler panicked", map[string]interface{}{
				"panic": r,
			})
			metrics.ChatFailuresTotal.WithLabelValues("panic").Inc()
			reply = models.Reply{}
		}
	}()

	if strings.TrimSpace(text) == "" {
		return models.Reply{}
	}

	norm := Normalize(text)
	intent := Classify(norm)

	start := time.Now()
	defer func() {
		metrics.ChatHandleDuration.WithLabelValues(string(intent)).Observe(time.Since(start).Seconds())
	}()
	metrics.ChatMessagesTotal.WithLabelValues(string(intent)).Inc()

	switch intent {
	case models.IntentGreeting:
		return s.composer.Greeting()

	case models.IntentShopName:
		return s.composer.ShopName()

	case models.IntentWhatProducts:
		cats, err := s.catalog.NewestCategories(ctx, s.limits.Newest)
		if err != nil {
			return s.degrade("newest_categories", err)
		}
		products, err := s.catalog.NewestProducts(ctx, s.limits.Newest)
		if err != nil {
			return s.degrade("newest_products", err)
		}
		return s.composer.WhatProducts(cats, products)

	case models.IntentTimeQuery:
		return models.Reply{Text: s.temporal.NowSummary()}

	case models.IntentPriceStats:
		stats, err := s.catalog.PriceStatistics(ctx)
		if err != nil {
			return s.degrade("price_statistics", err)
		}
		return s.composer.PriceStats(stats)

	case models.IntentBestSellers:
		days, ok := ParseDaysWindow(norm)
		if !ok {
			days = s.limits.DefaultDaysBack
		}
		products, err := s.catalog.BestSellers(ctx, s.limits.BestSellers, days)
		if err != nil {
			return s.degrade("best_sellers", err)
		}
		return s.composer.BestSellers(products, days)

	case models.IntentSuggestProducts:
		products, err := s.catalog.SuggestedProducts(ctx, s.limits.Suggest)
		if err != nil {
			return s.degrade("suggested_products", err)
		}
		return s.composer.Suggestions(products)
	}

	return s.composer.Fallback()
}

func (s *Service) degrade(stage string, err error) models.Reply {
	s.logger.WithError(err).Error("catalog query failed", map[string]interface{}{
		"stage": stage,
	})
	metrics.ChatFailuresTotal.WithLabelValues(stage).Inc()
	return models.Reply{}
}
