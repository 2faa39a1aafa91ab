package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerAssignsAndEchoesID(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	app.Get("/", func(c *fiber.Ctx) error {
		Logger(c).Info("inside")
		return c.SendString(RequestID(c))
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "req-42", resp.Header.Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"status":200`)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
}

func TestRequestLoggerRendersChainErrors(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	app.Get("/", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLoggerFallsBackToDefault(t *testing.T) {
	app := fiber.New()
	var got *slog.Logger
	app.Get("/", func(c *fiber.Ctx) error {
		got = Logger(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Same(t, slog.Default(), got)
}
