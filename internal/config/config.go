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

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// AuthConfig groups session, token and bootstrap account settings.
type AuthConfig struct {
	Session SessionConfig
	Token   TokenConfig
	Admin   AdminConfig
}

// SessionConfig controls the cookie session and its backing store.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
	// RedisURL switches the session store from memory to redis when set.
	RedisURL string
}

// TokenConfig configures bearer tokens for the JSON API. An empty secret
// disables token issuance.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// AdminConfig describes the superuser seeded on startup.
type AdminConfig struct {
	Username string
	Password string
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load inspects the environment and builds a Config value. A .env file in the
// working directory is read first; variables already set in the process win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.Auth = AuthConfig{
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "kitchen_session"),
			CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), true),
			RedisURL:     strings.TrimSpace(os.Getenv("SESSION_REDIS_URL")),
		},
		Token: TokenConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    parseDurationWithDefault(os.Getenv("JWT_TTL"), 24*time.Hour),
		},
		Admin: AdminConfig{
			Username: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}

	cfg.Metrics = MetricsConfig{
		Enabled: parseBoolWithDefault(os.Getenv("METRICS_ENABLED"), true),
		Path:    firstNonEmpty(os.Getenv("METRICS_PATH"), "/metrics"),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return Config{}, fmt.Errorf("metrics path must start with /: %q", cfg.Metrics.Path)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := time.ParseDuration(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return def
	}
	return parsed
}
