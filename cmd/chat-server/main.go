// cmd/chat-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/chat"
	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/database"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/ratelimit"
	"shop-assistant/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting chat server", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	pg, err := connectPostgres(cfg, log)
	if err != nil {
		log.WithError(err).Error("postgres unavailable, giving up", nil)
		os.Exit(1)
	}
	defer pg.Close()

	var limiter *ratelimit.Limiter
	if cfg.Server.RateLimit > 0 {
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			log.WithError(err).Error("redis unavailable, giving up", nil)
			os.Exit(1)
		}
		defer redisClient.Close()
		limiter = ratelimit.New(
			redisClient.GetClient(),
			cfg.Server.RateLimit,
			time.Duration(cfg.Server.RateWindowSecs)*time.Second,
			log,
		)
	} else {
		limiter = ratelimit.New(nil, 0, 0, log)
	}

	location, err := time.LoadLocation(cfg.Chat.Timezone)
	if err != nil {
		log.WithError(err).Error("invalid timezone", map[string]interface{}{
			"timezone": cfg.Chat.Timezone,
		})
		os.Exit(1)
	}

	doneStatuses := make([]int64, 0, len(cfg.Chat.OrderStatusDone))
	for _, s := range cfg.Chat.OrderStatusDone {
		doneStatuses = append(doneStatuses, int64(s))
	}

	catalogCfg := catalog.Config{
		ProductTable:    cfg.Catalog.ProductTable,
		OrderTable:      cfg.Catalog.OrderTable,
		OrderLineTable:  cfg.Catalog.OrderLineTable,
		CategoryTable:   cfg.Catalog.CategoryTable,
		PriceColumn:     cfg.Chat.ProductPriceColumn,
		SaleColumn:      cfg.Chat.ProductSaleColumn,
		OrderStatusDone: doneStatuses,
	}
	if err := catalogCfg.Validate(); err != nil {
		log.WithError(err).Error("invalid catalog config", nil)
		os.Exit(1)
	}

	store := catalog.NewStore(pg.GetDB(), catalog.NewPostgresIntrospector(pg.GetDB()), catalogCfg, log)

	links := &catalog.LinkBuilder{
		Origin:       cfg.Chat.FrontendOrigin,
		ProductPath:  cfg.Chat.FrontendProductPath,
		CategoryPath: cfg.Chat.FrontendCategoryPath,
		AssetOrigin:  cfg.Chat.AssetOrigin,
	}

	composer := chat.NewComposer(cfg.Chat.StrictMode, cfg.Chat.ShopName, links)
	temporal := chat.NewTemporalResponder(
		chat.SystemClock{},
		location,
		cfg.Chat.WeekdayNames,
		cfg.Chat.StrictMode,
		cfg.Chat.ShopOpen,
		cfg.Chat.ShopClose,
	)

	service := chat.NewService(store, composer, temporal, chat.Limits{
		BestSellers:     cfg.Chat.BestSellerLimit,
		Suggest:         cfg.Chat.SuggestLimit,
		Newest:          cfg.Chat.NewestLimit,
		DefaultDaysBack: cfg.Chat.DefaultDaysBack,
	}, log)

	server, err := transport.NewServer(
		service,
		limiter,
		config.GetDuration(cfg.Server.ReadTimeout),
		config.GetDuration(cfg.Server.WriteTimeout),
		log,
	)
	if err != nil {
		log.WithError(err).Error("failed to build http server", nil)
		os.Exit(1)
	}

	if cfg.Server.MetricsAddress != "" {
		go serveMetrics(cfg.Server.MetricsAddress, log)
	}

	go func() {
		log.Info("listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.Listen(cfg.Server.Address); err != nil {
			log.WithError(err).Error("http server stopped", nil)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed", nil)
	}
}

// connectPostgres retries with backoff so the server survives a database
// that comes up slower than it does.
func connectPostgres(cfg *config.Config, log logger.Logger) (*database.PostgresClient, error) {
	var client *database.PostgresClient
	var lastErr error

	backoff := time.Second
	for attempt := 1; attempt <= 5; attempt++ {
		client, lastErr = database.NewPostgres(cfg.Database.Postgres)
		if lastErr == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			lastErr = client.Ping(ctx)
			cancel()
			if lastErr == nil {
				return client, nil
			}
			client.Close()
		}

		log.WithError(lastErr).Warn("postgres connect failed, retrying", map[string]interface{}{
			"attempt": attempt,
			"backoff": backoff.String(),
		})
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, lastErr
}

func serveMetrics(address string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("metrics listening", map[string]interface{}{"address": address})
	if err := http.ListenAndServe(address, mux); err != nil {
		log.WithError(err).Error("metrics server stopped", nil)
	}
}
