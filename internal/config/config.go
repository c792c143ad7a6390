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

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	API     APIConfig
	Session SessionConfig
	DB      DatabaseConfig
	Redis   RedisConfig
}

// APIConfig points the console at the inventory REST API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Session storage backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Validation failure policies.
const (
	PolicyFailOpen   = "fail-open"
	PolicyFailClosed = "fail-closed"
)

// SessionConfig controls browser sessions and their server-side storage.
type SessionConfig struct {
	Secret           string
	Backend          string
	TTL              time.Duration
	RevalidateAfter  time.Duration
	ValidationPolicy string
	GuardInitWait    time.Duration
	CookieSecure     bool
	SweepInterval    time.Duration
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "3000")
	cfg.Env = getEnv("ENV", "development")

	// Inventory API
	cfg.API.BaseURL = getEnv("INVENTORY_API_BASE_URL", "http://localhost:8080/api/v1")

	// Session
	cfg.Session = SessionConfig{
		Secret:           getEnv("SESSION_SECRET", ""),
		Backend:          strings.ToLower(getEnv("SESSION_BACKEND", BackendRedis)),
		ValidationPolicy: strings.ToLower(getEnv("SESSION_VALIDATION_POLICY", PolicyFailOpen)),
		CookieSecure:     getEnvBool("COOKIE_SECURE", false),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Durations
	var err error
	if cfg.API.Timeout, err = parseDurationEnv("INVENTORY_API_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid INVENTORY_API_TIMEOUT: %w", err)
	}
	if cfg.Session.TTL, err = parseDurationEnv("SESSION_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Session.RevalidateAfter, err = parseDurationEnv("SESSION_REVALIDATE_AFTER", "5m"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_REVALIDATE_AFTER: %w", err)
	}
	if cfg.Session.GuardInitWait, err = parseDurationEnv("GUARD_INIT_WAIT", "2s"); err != nil {
		return nil, fmt.Errorf("invalid GUARD_INIT_WAIT: %w", err)
	}
	if cfg.Session.SweepInterval, err = parseDurationEnv("SESSION_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET must be set for cookie signing")
	}
	if len(c.Session.Secret) < 16 {
		return errors.New("SESSION_SECRET must be at least 16 characters")
	}

	switch c.Session.Backend {
	case BackendRedis, BackendMemory:
	case BackendPostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
			return errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of redis, postgres, memory (got %q)", c.Session.Backend)
	}

	switch c.Session.ValidationPolicy {
	case PolicyFailOpen, PolicyFailClosed:
	default:
		return fmt.Errorf("SESSION_VALIDATION_POLICY must be fail-open or fail-closed (got %q)", c.Session.ValidationPolicy)
	}

	if c.Session.TTL == 0 {
		return errors.New("SESSION_TTL must be > 0")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
