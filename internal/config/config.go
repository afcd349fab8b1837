package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreBackendMemory   = "memory"
	StoreBackendFile     = "file"
	StoreBackendPostgres = "postgres"
)

// Postgres drivers registered with database/sql
const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// maxProviderParams mirrors gateway.MaxParams; config does not import gateway.
const maxProviderParams = 4

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Provider ProviderConfig
	App      AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver is the database/sql driver name, postgres (lib/pq) or pgx
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	// ConnectAttempts is how many times the first ping is tried at startup
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

// StoreConfig selects where cards and transactions are kept
type StoreConfig struct {
	Backend  string
	FilePath string
}

// ProviderConfig selects the gateway provider
type ProviderConfig struct {
	ID     string
	Type   string
	Params []string
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	// simulator chaos settings, used when PROVIDER_PARAMS is empty
	FailureRate  float64
	MinLatencyMS int
	MaxLatencyMS int

	AuthExpiry       time.Duration
	IdempotencyTTL   time.Duration
	DefaultPrincipal string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load loads configuration from environment variables with sensible defaults.
// Values from a .env file in the working directory are used for variables
// that are not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     parseEnv("SERVER_READ_TIMEOUT", 15*time.Second, time.ParseDuration),
			WriteTimeout:    parseEnv("SERVER_WRITE_TIMEOUT", 30*time.Second, time.ParseDuration),
			IdleTimeout:     parseEnv("SERVER_IDLE_TIMEOUT", 60*time.Second, time.ParseDuration),
			ShutdownTimeout: parseEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second, time.ParseDuration),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPQ)),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "processor"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    parseEnv("DB_MAX_OPEN_CONNS", 25, strconv.Atoi),
			MaxIdleConns:    parseEnv("DB_MAX_IDLE_CONNS", 5, strconv.Atoi),
			ConnMaxLifetime: parseEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute, time.ParseDuration),
			ConnectAttempts: parseEnv("DB_CONNECT_ATTEMPTS", 5, strconv.Atoi),
			ConnectBackoff:  parseEnv("DB_CONNECT_BACKOFF", time.Second, time.ParseDuration),
		},
		Store: StoreConfig{
			Backend:  strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMemory)),
			FilePath: getEnv("STORE_FILE_PATH", "processor.store"),
		},
		Provider: ProviderConfig{
			ID:     getEnv("PROVIDER_ID", "simulator"),
			Type:   getEnv("PROVIDER_TYPE", "simulator"),
			Params: getEnvAsList("PROVIDER_PARAMS"),
		},
		App: AppConfig{
			FailureRate:      parseEnv("FAILURE_RATE", 0.05, parseFloat),
			MinLatencyMS:     parseEnv("MIN_LATENCY_MS", 100, strconv.Atoi),
			MaxLatencyMS:     parseEnv("MAX_LATENCY_MS", 2000, strconv.Atoi),
			AuthExpiry:       parseEnv("AUTH_EXPIRY", 168*time.Hour, time.ParseDuration),
			IdempotencyTTL:   parseEnv("IDEMPOTENCY_TTL", 24*time.Hour, time.ParseDuration),
			DefaultPrincipal: getEnv("DEFAULT_PRINCIPAL", "api"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", LogFormatJSON)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendFile:
		if c.Store.FilePath == "" {
			return fmt.Errorf("store file path cannot be empty for the file backend")
		}
	case StoreBackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
		if c.Database.Driver != DriverPQ && c.Database.Driver != DriverPGX {
			return fmt.Errorf("invalid database driver: %s (must be postgres or pgx)", c.Database.Driver)
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be memory, file, or postgres)", c.Store.Backend)
	}

	if c.Provider.ID == "" {
		return fmt.Errorf("provider id cannot be empty")
	}
	if c.Provider.Type == "" {
		return fmt.Errorf("provider type cannot be empty")
	}
	if len(c.Provider.Params) > maxProviderParams {
		return fmt.Errorf("at most %d provider params are allowed, got %d", maxProviderParams, len(c.Provider.Params))
	}

	if c.App.FailureRate < 0 || c.App.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %f", c.App.FailureRate)
	}

	if c.App.MinLatencyMS < 0 {
		return fmt.Errorf("min latency cannot be negative")
	}
	if c.App.MaxLatencyMS < c.App.MinLatencyMS {
		return fmt.Errorf("max latency (%d) must be >= min latency (%d)", c.App.MaxLatencyMS, c.App.MinLatencyMS)
	}
	if c.App.AuthExpiry <= 0 {
		return fmt.Errorf("auth expiry must be positive")
	}
	if c.App.IdempotencyTTL <= 0 {
		return fmt.Errorf("idempotency ttl must be positive")
	}
	if c.App.DefaultPrincipal == "" {
		return fmt.Errorf("default principal cannot be empty")
	}

	if _, ok := logLevels[strings.ToLower(c.Logger.Level)]; !ok {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != LogFormatJSON && c.Logger.Format != LogFormatText {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logger.Format)
	}

	return nil
}

// ProviderParams returns the params handed to the provider factory. An
// unconfigured simulator gets the App chaos settings.
func (c *Config) ProviderParams() []string {
	if len(c.Provider.Params) > 0 || c.Provider.Type != "simulator" {
		return c.Provider.Params
	}
	return []string{
		strconv.FormatFloat(c.App.FailureRate, 'f', -1, 64),
		strconv.Itoa(c.App.MinLatencyMS),
		strconv.Itoa(c.App.MaxLatencyMS),
		c.App.AuthExpiry.String(),
	}
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseEnv reads key with parse, falling back to defaultValue when the
// variable is unset or does not parse.
func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// getEnvAsList splits a comma separated value, keeping empty items so that
// positional params can be skipped.
func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
