// @title         sanble-functions API
// @version       1.0
// @description   Registro de cuentas de usuario con verificación de correo electrónico.
// @BasePath      /api/v1
// @schemes       http https
// @host          localhost:8080
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"

	_ "github.com/juanlvs21/sanble-functions/docs"

	// internal imports
	apphttp "github.com/juanlvs21/sanble-functions/api/http"
	"github.com/juanlvs21/sanble-functions/api/http/handlers"
	"github.com/juanlvs21/sanble-functions/pkg/config"
	"github.com/juanlvs21/sanble-functions/pkg/health"
	healthpg "github.com/juanlvs21/sanble-functions/pkg/health/checkers"
	"github.com/juanlvs21/sanble-functions/pkg/identity/firebase"
	"github.com/juanlvs21/sanble-functions/pkg/identity/local"
	"github.com/juanlvs21/sanble-functions/pkg/logging"
	"github.com/juanlvs21/sanble-functions/pkg/mail/logmail"
	"github.com/juanlvs21/sanble-functions/pkg/mail/sendgrid"
	"github.com/juanlvs21/sanble-functions/pkg/registration"
	pgrepo "github.com/juanlvs21/sanble-functions/pkg/repository/postgres"
	"github.com/juanlvs21/sanble-functions/pkg/security/jwt"
	"github.com/juanlvs21/sanble-functions/pkg/storage/postgres"
	"github.com/juanlvs21/sanble-functions/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration from env/.env
	cfg := config.Load()

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		slog.Error("init logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	err = run(cfg, logger)
	if err != nil {
		logger.Error("server stopped", "error", err)
	}
	_ = closeLog.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Identity provider: Firebase Auth or the local PostgreSQL store.
	var (
		provider registration.IdentityProvider
		verify   *handlers.VerifyHandler
		checkers []health.Checker
	)
	switch cfg.IdentityProvider {
	case config.ProviderLocal:
		if err := postgres.Migrate(ctx, cfg.Database.URL, logger); err != nil {
			return err
		}
		pool, err := postgres.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer pool.Close()

		tokens := jwt.NewVerificationTokens(cfg.VerifyToken.Secret, cfg.VerifyToken.Issuer,
			time.Duration(cfg.VerifyToken.TTLMinutes)*time.Minute)
		lp := local.NewProvider(pgrepo.NewUserRepository(pool), tokens, cfg.PublicBaseURL+"/api/v1/auth/verify")
		provider = lp
		verify = handlers.NewVerifyHandler(lp)
		checkers = append(checkers, healthpg.NewPostgresChecker(pool))
	default:
		fp, err := firebase.New(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return err
		}
		provider = fp
	}

	var mailer registration.EmailSender
	if cfg.Mail.Mock {
		mailer = logmail.New(logger)
	} else {
		mailer = sendgrid.New(cfg.Mail.SendGridAPIKey, cfg.Mail.From, cfg.Mail.FromName, cfg.Mail.TemplateID)
	}

	registrationUC := registration.NewService(validation.New(), provider, mailer, registration.WithLogger(logger))

	app := apphttp.NewApp(apphttp.Options{
		AppName:          cfg.AppName,
		ReadTimeout:      cfg.HTTPReadTimeout,
		WriteTimeout:     cfg.HTTPWriteTimeout,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	}, logger)
	apphttp.Register(app,
		handlers.NewRegisterHandler(registrationUC),
		handlers.NewHealthHandler(health.NewService(checkers...)),
		verify,
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", cfg.Port, "identity_provider", cfg.IdentityProvider)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newLogger builds the process logger; the returned closer flushes Fluent Bit.
func newLogger(cfg config.Config) (*slog.Logger, io.Closer, error) {
	opts := logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if !cfg.Log.FluentEnabled {
		return logging.New(opts), nopCloser{}, nil
	}
	client, err := logging.NewFluentClient(cfg.Log.FluentHost, cfg.Log.FluentPort, cfg.AppName)
	if err != nil {
		return nil, nil, err
	}
	opts.Fluent = client
	return logging.New(opts), client, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
