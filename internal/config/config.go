// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Auth         AuthConfig
	Analytics    AnalyticsConfig
	Jobs         JobsConfig
	Logging      LoggingConfig
	Notification NotificationConfig
	Crypto       CryptoConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret     string
	TokenExpiry   time.Duration
	APIKeyEnabled bool
}

// AnalyticsConfig holds analysis window defaults.
type AnalyticsConfig struct {
	HistoryMonths       int // revenue/cost months fed to the engines
	ForecastDaysDefault int
	ForecastDaysMax     int
	SnapshotRetention   time.Duration
}

// JobsConfig holds background job settings.
type JobsConfig struct {
	NightlyAnalysisSchedule string
	AlertCheckSchedule      string
	SnapshotPruneSchedule   string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	SlackWebhookURL string
	EmailSMTPHost   string
	EmailSMTPPort   int
	EmailFrom       string
	EmailPassword   string
	WebhookURLs     string // comma-separated
}

// CryptoConfig holds settings for credentials encrypted at rest.
type CryptoConfig struct {
	EncryptionKey string // 32 bytes
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "hotelmind"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "hotelmind"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDuration("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenExpiry:   getEnvDuration("JWT_EXPIRY", 24*time.Hour),
			APIKeyEnabled: getEnvBool("API_KEY_ENABLED", true),
		},
		Analytics: AnalyticsConfig{
			HistoryMonths:       getEnvInt("ANALYTICS_HISTORY_MONTHS", 12),
			ForecastDaysDefault: getEnvInt("FORECAST_DAYS_DEFAULT", 30),
			ForecastDaysMax:     getEnvInt("FORECAST_DAYS_MAX", 90),
			SnapshotRetention:   getEnvDuration("SNAPSHOT_RETENTION", 90*24*time.Hour),
		},
		Jobs: JobsConfig{
			NightlyAnalysisSchedule: getEnv("JOB_NIGHTLY_ANALYSIS", "0 0 3 * * *"),
			AlertCheckSchedule:      getEnv("JOB_ALERT_CHECK", "0 0 */6 * * *"),
			SnapshotPruneSchedule:   getEnv("JOB_SNAPSHOT_PRUNE", "0 0 4 * * 0"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Notification: NotificationConfig{
			SlackWebhookURL: getEnv("NOTIFICATION_SLACK_WEBHOOK", ""),
			EmailSMTPHost:   getEnv("NOTIFICATION_EMAIL_SMTP_HOST", ""),
			EmailSMTPPort:   getEnvInt("NOTIFICATION_EMAIL_SMTP_PORT", 587),
			EmailFrom:       getEnv("NOTIFICATION_EMAIL_FROM", ""),
			EmailPassword:   getEnv("NOTIFICATION_EMAIL_PASSWORD", ""),
			WebhookURLs:     getEnv("NOTIFICATION_WEBHOOK_URLS", ""),
		},
		Crypto: CryptoConfig{
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Analytics.ForecastDaysDefault > c.Analytics.ForecastDaysMax {
		return fmt.Errorf("FORECAST_DAYS_DEFAULT cannot exceed FORECAST_DAYS_MAX")
	}
	return nil
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Helper functions
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
