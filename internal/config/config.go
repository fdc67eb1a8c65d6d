package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Sweep    SweepConfig
}

type ServerConfig struct {
	HTTPPort    string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string

	// TestingMode swaps the SMTP notifier for the recording mock.
	TestingMode bool
}

type SweepConfig struct {
	Cooldown time.Duration
}

// Load reads configuration from environment variables with development
// defaults.
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			HTTPPort:    getEnv("HTTP_PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "agencyos"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", "localhost"),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USER", ""),
			Password:    getEnv("SMTP_PASS", ""),
			FromEmail:   getEnv("SMTP_FROM", "noreply@agencyos.local"),
			FromName:    getEnv("SMTP_FROM_NAME", "AgencyOS"),
			TestingMode: getEnvAsBool("EMAIL_TESTING_MODE", false),
		},
		Sweep: SweepConfig{
			Cooldown: getEnvAsDuration("SWEEP_COOLDOWN", 24*time.Hour),
		},
	}, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}
