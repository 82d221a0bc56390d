package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Twitter     TwitterConfig
	Fetch       FetchConfig
	Archive     ArchiveConfig
	Events      EventsConfig
	Report      ReportConfig
	Log         LogConfig
}

// TwitterConfig holds the data provider credentials. All four secrets are
// required to establish a session; validation of their presence is deferred
// to the session provider so a missing credential surfaces as a setup
// failure, not a config error.
type TwitterConfig struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
	Host         string
}

// FetchConfig holds retrieval configuration
type FetchConfig struct {
	PageSize int
	Language string
}

// ArchiveConfig holds the optional run archive database configuration
type ArchiveConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// EventsConfig holds the optional progress event bus configuration
type EventsConfig struct {
	Enabled        bool
	URL            string
	Topic          string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// ReportConfig holds visualization output configuration
type ReportConfig struct {
	OutputDir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Twitter: TwitterConfig{
			APIKey:       getEnv("TWITTER_API_KEY", ""),
			APISecret:    getEnv("TWITTER_API_SECRET_KEY", ""),
			AccessToken:  getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessSecret: getEnv("TWITTER_ACCESS_SECRET_TOKEN", ""),
			Host:         getEnv("TWITTER_API_HOST", "https://api.twitter.com"),
		},
		Fetch: FetchConfig{
			PageSize: getEnvAsInt("FETCH_PAGE_SIZE", 100),
			Language: getEnv("FETCH_LANGUAGE", "en"),
		},
		Archive: ArchiveConfig{
			Enabled:      getEnvAsBool("ARCHIVE_ENABLED", false),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "sentiment"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 5),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Events: EventsConfig{
			Enabled:        getEnvAsBool("EVENTS_ENABLED", false),
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			Topic:          getEnv("EVENTS_TOPIC", "sentiment"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Report: ReportConfig{
			OutputDir: getEnv("REPORT_OUTPUT_DIR", "."),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Fetch.PageSize < 1 || config.Fetch.PageSize > 100 {
		return fmt.Errorf("fetch page size must be between 1 and 100, got %d", config.Fetch.PageSize)
	}

	if config.Fetch.Language == "" {
		return fmt.Errorf("fetch language must not be empty")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
