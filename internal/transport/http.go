// internal/transport/http.go
package transport

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"shop-assistant/internal/chat"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/models"
	"shop-assistant/internal/ratelimit"
)

const chatRequestSchema = `{
	"type": "object",
	"properties": {
		"message": {"type": "string", "maxLength": 2000}
	},
	"required": ["message"],
	"additionalProperties": true
}`

// Server exposes the chat service over HTTP.
type Server struct {
	app     *fiber.App
	service *chat.Service
	limiter *ratelimit.Limiter
	schema  *gojsonschema.Schema
	logger  logger.Logger
}

func NewServer(service *chat.Service, limiter *ratelimit.Limiter, readTimeout, writeTimeout time.Duration, log logger.Logger) (*Server, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(chatRequestSchema))
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		DisableStartupMessage: true,
	})

	s := &Server{
		app:     app,
		service: service,
		limiter: limiter,
		schema:  schema,
		logger:  log,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Post("/api/ai/chat", s.handleChat)
}

// handleChat is the single chat endpoint. It always answers HTTP 200 with
// a success-shaped body; a malformed request behaves like an empty
// message. Only the rate limiter may reject with a non-200 status.
func (s *Server) handleChat(c *fiber.Ctx) error {
	requestID := uuid.New().String()
	c.Set("X-Request-ID", requestID)

	if !s.limiter.Allow(c.Context(), c.IP()) {
		metrics.ChatRateLimited.Inc()
		s.logger.Warn("request rate limited", map[string]interface{}{
			"request_id": requestID,
			"client_ip":  c.IP(),
		})
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "too many requests",
		})
	}

	body := c.Body()
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil || !result.Valid() {
		s.logger.Warn("invalid chat request body", map[string]interface{}{
			"request_id": requestID,
		})
		return c.JSON(models.Reply{})
	}

	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(models.Reply{})
	}

	reply := s.service.HandleMessage(c.Context(), req.Message)
	return c.JSON(reply)
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(address string) error {
	return s.app.Listen(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
