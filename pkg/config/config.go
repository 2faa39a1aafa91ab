package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Identity provider backends selectable with IDENTITY_PROVIDER.
const (
	ProviderFirebase = "firebase"
	ProviderLocal    = "local"
)

type Config struct {
	AppName          string
	Port             string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	CORSAllowOrigins string
	PublicBaseURL    string

	IdentityProvider string
	Firebase         FirebaseConfig
	Database         DatabaseConfig
	VerifyToken      VerifyTokenConfig

	Mail MailConfig
	Log  LogConfig
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
}

type VerifyTokenConfig struct {
	Secret     string
	Issuer     string
	TTLMinutes int
}

type MailConfig struct {
	SendGridAPIKey string
	TemplateID     string
	From           string
	FromName       string
	Mock           bool
}

type LogConfig struct {
	Level  string
	Format string

	FluentEnabled bool
	FluentHost    string
	FluentPort    int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		AppName:          getEnv("APP_NAME", "sanble-functions"),
		Port:             getEnv("PORT", "8080"),
		HTTPReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		CORSAllowOrigins: os.Getenv("CORS_ALLOW_ORIGINS"),
		PublicBaseURL:    strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		IdentityProvider: strings.ToLower(getEnv("IDENTITY_PROVIDER", ProviderFirebase)),
		Firebase: FirebaseConfig{
			ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
			CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			MaxConns: getEnvInt("DATABASE_MAX_CONNS", 10),
		},
		VerifyToken: VerifyTokenConfig{
			Secret:     os.Getenv("VERIFY_TOKEN_SECRET"),
			Issuer:     getEnv("VERIFY_TOKEN_ISSUER", "sanble"),
			TTLMinutes: getEnvInt("VERIFY_TOKEN_TTL_MINUTES", 24*60),
		},
		Mail: MailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			TemplateID:     os.Getenv("SENDGRID_TEMPLATE_ID"),
			From:           getEnv("MAIL_FROM", "no-reply@sanble.app"),
			FromName:       getEnv("MAIL_FROM_NAME", "Sanble"),
			Mock:           getEnvBool("MAIL_MOCK", false),
		},
		Log: LogConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        getEnv("LOG_FORMAT", "text"),
			FluentEnabled: getEnvBool("FLUENTBIT_ENABLED", false),
			FluentHost:    os.Getenv("FLUENTBIT_HOST"),
			FluentPort:    getEnvInt("FLUENTBIT_PORT", 24224),
		},
	}
	return cfg
}

// Validate reports settings that the selected backends cannot run without.
func (c Config) Validate() error {
	var errs []error
	switch c.IdentityProvider {
	case ProviderFirebase:
		// Project id and credentials may come from Application Default Credentials.
	case ProviderLocal:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the local identity provider"))
		}
		if c.VerifyToken.Secret == "" {
			errs = append(errs, errors.New("VERIFY_TOKEN_SECRET is required for the local identity provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_PROVIDER %q is not supported", c.IdentityProvider))
	}
	if !c.Mail.Mock && c.Mail.SendGridAPIKey == "" {
		errs = append(errs, errors.New("SENDGRID_API_KEY is required unless MAIL_MOCK=true"))
	}
	if c.Log.FluentEnabled && c.Log.FluentHost == "" {
		errs = append(errs, errors.New("FLUENTBIT_HOST is required when FLUENTBIT_ENABLED=true"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
