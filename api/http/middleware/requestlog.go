package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	localsLogger    = "logger"
	localsRequestID = "requestId"
)

// RequestLogger tags each request with an id, stores a request-scoped logger in
// the context, and logs the outcome. Errors returned by the chain are rendered
// here through the app's ErrorHandler so the logged status is the final one.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		log := base.With("request_id", requestID)
		c.Locals(localsRequestID, requestID)
		c.Locals(localsLogger, log)

		if err := c.Next(); err != nil {
			log.Error("unhandled error", "error", err)
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("request finished",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.IP(),
		)
		return nil
	}
}

// Logger returns the request-scoped logger, or slog.Default outside RequestLogger.
func Logger(c *fiber.Ctx) *slog.Logger {
	if log, ok := c.Locals(localsLogger).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// RequestID returns the id assigned by RequestLogger.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsRequestID).(string)
	return id
}
