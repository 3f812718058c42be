package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the backend server
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Recommend RecommendConfig
	CORS      CORSConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Keys accepted for wait-sample ingestion
}

type StorageConfig struct {
	Driver      string // memory or postgres
	AutoMigrate bool
	DB          DBConfig
}

type DBConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RecommendConfig struct {
	OpenAIKey       string
	Model           string
	MaxDailyQueries int
}

type CORSConfig struct {
	AllowedOrigins []string
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Load reads server configuration from the environment, after an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			Host:            getEnv("HOST", "127.0.0.1"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"camtest"}),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE", StorageMemory)),
			AutoMigrate: getEnvAsBool("AUTO_MIGRATE", false),
			DB: DBConfig{
				URL:      getEnv("DATABASE_URL", ""),
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnvAsInt("DB_PORT", 5432),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", ""),
				Database: getEnv("DB_NAME", "gaucho"),
			},
		},
		Recommend: RecommendConfig{
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			Model:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxDailyQueries: getEnvAsInt("MAX_DAILY_QUERIES", 25),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:8081"}),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory or postgres)", c.Storage.Driver)
	}

	if c.Recommend.MaxDailyQueries < 0 {
		return fmt.Errorf("MAX_DAILY_QUERIES must not be negative")
	}

	return validateLogLevel(c.LogLevel)
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.Database,
	)
}

// ClientConfig holds configuration for the gaucho command-line client
type ClientConfig struct {
	BackendURL      string
	UserID          int64
	RefreshInterval time.Duration
	RequestTimeout  time.Duration
	MenuCacheTTL    time.Duration
	LogLevel        string
}

// LoadClient reads client configuration from the environment, after an optional .env file
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{
		BackendURL:      strings.TrimRight(getEnv("GAUCHO_BACKEND_URL", "http://127.0.0.1:5000"), "/"),
		UserID:          int64(getEnvAsInt("GAUCHO_USER_ID", 1)),
		RefreshInterval: getEnvAsDuration("GAUCHO_REFRESH_INTERVAL", 5*time.Minute),
		RequestTimeout:  getEnvAsDuration("GAUCHO_REQUEST_TIMEOUT", 10*time.Second),
		MenuCacheTTL:    getEnvAsDuration("GAUCHO_MENU_CACHE_TTL", 0),
		LogLevel:        getEnv("LOG_LEVEL", "warn"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the client configuration is valid
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend URL: %q", c.BackendURL)
	}

	if c.UserID <= 0 {
		return fmt.Errorf("GAUCHO_USER_ID must be positive")
	}

	if c.RefreshInterval <= 0 {
		return fmt.Errorf("GAUCHO_REFRESH_INTERVAL must be positive")
	}

	if c.RequestTimeout < 0 || c.MenuCacheTTL < 0 {
		return fmt.Errorf("timeouts and TTLs must not be negative")
	}

	return validateLogLevel(c.LogLevel)
}

func validateLogLevel(level string) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
	return nil
}

// Helper functions for reading environment variables

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
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
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
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
