package http

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/juanlvs21/sanble-functions/api/http/middleware"
	"github.com/juanlvs21/sanble-functions/api/http/presenter"
)

type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// CORSAllowOrigins enables the CORS middleware when non-empty.
	CORSAllowOrigins string
}

// NewApp builds the Fiber app with logging, panic recovery and optional CORS.
func NewApp(opts Options, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	if opts.CORSAllowOrigins != "" {
		app.Use(preflightOK(cors.New(cors.Config{
			AllowOrigins: opts.CORSAllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
			AllowMethods: "GET,POST,OPTIONS",
		})))
	}
	return app
}

// preflightOK keeps the OPTIONS contract for preflights answered by the CORS
// middleware: 200 with an empty body instead of 204, Allow-* headers untouched.
func preflightOK(corsHandler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := corsHandler(c); err != nil {
			return err
		}
		if c.Method() == fiber.MethodOptions && c.Response().StatusCode() == fiber.StatusNoContent {
			c.Response().ResetBody()
			c.Status(fiber.StatusOK)
		}
		return nil
	}
}

// errorHandler renders errors that escaped the handlers in the response envelope.
// Only fiber errors keep their message; anything else is an opaque 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenter.Error(c, fe.Code, fe.Message)
	}
	return presenter.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
}
