// Package config provides configuration management for the results collector.
package config

import (
	"fmt"
	"time"

	"github.com/yourusername/results-collector/internal/models"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	IRacing   IRacingConfig   `mapstructure:"iracing" validate:"required"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFile     string `mapstructure:"log_file"`
}

// DatabaseConfig represents database connection configuration. Postgres uses
// the connection fields, SQLite only Path.
type DatabaseConfig struct {
	Driver         string `mapstructure:"driver" validate:"required,dbdriver"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	Path           string `mapstructure:"path"`
}

// IRacingConfig represents the member stats site client configuration
type IRacingConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	Username          string  `mapstructure:"username" validate:"required"`
	Password          string  `mapstructure:"password" validate:"required"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	CarsPath          string  `mapstructure:"cars_path" validate:"required"`
	CarClassesPath    string  `mapstructure:"car_classes_path" validate:"required"`
	TracksPath        string  `mapstructure:"tracks_path" validate:"required"`
}

// Timeout returns the per-request timeout.
func (c IRacingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IngestionConfig represents which seasons are collected and how often
type IngestionConfig struct {
	Seasons               []string `mapstructure:"seasons" validate:"dive,season"`
	Schedule              string   `mapstructure:"schedule"`
	UnavailableTTLMinutes int      `mapstructure:"unavailable_ttl_minutes" validate:"gte=0"`
	ShowProgress          bool     `mapstructure:"show_progress"`
}

// UnavailableTTL is how long an unavailable session is remembered.
func (c IngestionConfig) UnavailableTTL() time.Duration {
	return time.Duration(c.UnavailableTTLMinutes) * time.Minute
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// SecretsConfig enables the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Seasons parses the configured season list.
func (c *Config) Seasons() ([]models.Season, error) {
	return models.ParseSeasons(c.Ingestion.Seasons)
}
