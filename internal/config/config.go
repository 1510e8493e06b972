package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/miguelbonilla1/ai-automation/internal/database"
)

const (
	defaultPort           = "8080"
	defaultWebhookTimeout = 10 * time.Second
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")
	ErrMissingDatabaseKey = errors.New("DATABASE_KEY environment variable is required")
)

type Config struct {
	DatabaseDriver string
	DatabaseDSN    string
	Port           string
	EnhanceSecret  string
	WebhookURL     string
	WebhookToken   string
	WebhookTimeout time.Duration
	LogLevel       slog.Level
}

// Load reads the process configuration from the environment, after
// merging a .env file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(getenv func(string) string) (*Config, error) {
	databaseURL := strings.TrimSpace(getenv("DATABASE_URL"))
	if databaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	driver, dsn, err := resolveDatabase(databaseURL, getenv("DATABASE_KEY"))
	if err != nil {
		return nil, err
	}

	port := getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	webhookTimeout := defaultWebhookTimeout
	if raw := getenv("WEBHOOK_TIMEOUT"); raw != "" {
		webhookTimeout, err = time.ParseDuration(raw)
		if err != nil || webhookTimeout <= 0 {
			return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT %q", raw)
		}
	}

	level, err := parseLevel(getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		Port:           port,
		EnhanceSecret:  getenv("TASK_ENHANCE_SECRET"),
		WebhookURL:     strings.TrimSpace(getenv("WEBHOOK_URL")),
		WebhookToken:   getenv("WEBHOOK_BEARER_TOKEN"),
		WebhookTimeout: webhookTimeout,
		LogLevel:       level,
	}, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func resolveDatabase(rawURL, key string) (string, string, error) {
	switch {
	case rawURL == ":memory:" || strings.HasPrefix(rawURL, "file:"):
		return database.DriverSQLite, rawURL, nil
	case strings.HasPrefix(rawURL, "sqlite://"):
		return database.DriverSQLite, strings.TrimPrefix(rawURL, "sqlite://"), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", "", fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
	}

	if _, hasPassword := u.User.Password(); !hasPassword {
		if key == "" {
			return "", "", ErrMissingDatabaseKey
		}
		username := ""
		if u.User != nil {
			username = u.User.Username()
		}
		u.User = url.UserPassword(username, key)
	}

	return database.DriverPostgres, u.String(), nil
}

func parseLevel(raw string) (slog.Level, error) {
	if raw == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
	return level, nil
}
