package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gateway  GatewayConfig
	Cache    CacheConfig
	Store    StoreConfig
	App      AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

// GatewayConfig describes how the client reaches the records API.
type GatewayConfig struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

type CacheConfig struct {
	Backend       string
	Dir           string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// StoreConfig selects the ownership model and batch behaviour of the client store.
type StoreConfig struct {
	WorkspaceMode         string
	PersistGeneratedTasks bool
	DuplicateConcurrency  int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

const (
	WorkspaceModeLocal  = "local"
	WorkspaceModeRemote = "remote"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "workdesk"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Gateway: GatewayConfig{
			BaseURL:   getEnv("API_BASE_URL", "http://localhost:8080/api"),
			Token:     getEnv("API_TOKEN", ""),
			Timeout:   getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
			RateLimit: getEnvAsFloat("RATE_LIMIT_RPS", 0),
			Burst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "file"),
			Dir:           getEnv("CACHE_DIR", ".workdesk"),
			SQLitePath:    getEnv("CACHE_SQLITE_PATH", ".workdesk/cache.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			RedisPrefix:   getEnv("REDIS_PREFIX", "workdesk:cache:"),
		},
		Store: StoreConfig{
			WorkspaceMode:         getEnv("WORKSPACE_MODE", WorkspaceModeLocal),
			PersistGeneratedTasks: getEnvAsBool("PERSIST_GENERATED_TASKS", false),
			DuplicateConcurrency:  getEnvAsInt("DUPLICATE_CONCURRENCY", 8),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.WorkspaceMode {
	case WorkspaceModeLocal, WorkspaceModeRemote:
	default:
		return fmt.Errorf("WORKSPACE_MODE must be %q or %q, got %q", WorkspaceModeLocal, WorkspaceModeRemote, c.Store.WorkspaceMode)
	}

	switch c.Cache.Backend {
	case "file", "redis", "sqlite", "memory":
	default:
		return fmt.Errorf("CACHE_BACKEND %q is not supported", c.Cache.Backend)
	}

	if c.Store.DuplicateConcurrency < 1 {
		return fmt.Errorf("DUPLICATE_CONCURRENCY must be positive")
	}

	return nil
}

// Configured reports whether a PostgreSQL database was set up, either through
// DB_DSN or through DB_PASSWORD and the other DB_* parts.
func (c *DatabaseConfig) Configured() bool {
	return c.DSN != "" || c.Password != ""
}

// DatabaseURL returns DB_DSN when set, otherwise a DSN assembled from the DB_* parts.
func (c *DatabaseConfig) DatabaseURL() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		slog.Warn("invalid number, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
