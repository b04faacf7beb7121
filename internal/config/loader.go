package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// RESULTS_COLLECTOR_IRACING_USERNAME.
const EnvPrefix = "RESULTS_COLLECTOR"

// DefaultConfigPath is used when no path is given.
const DefaultConfigPath = "config/config.yaml"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "collect-results")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "database.sqlite3")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("iracing.base_url", "https://members.iracing.com")
	v.SetDefault("iracing.timeout_seconds", 30)
	v.SetDefault("iracing.max_retries", 3)
	v.SetDefault("iracing.rate_limit", 2.0)
	v.SetDefault("iracing.circuit_breaker_max", 5)
	v.SetDefault("iracing.cars_path", "/membersite/member/GetCars")
	v.SetDefault("iracing.car_classes_path", "/membersite/member/GetCarClasses")
	v.SetDefault("iracing.tracks_path", "/membersite/member/GetTracks")
	v.SetDefault("ingestion.schedule", "0 0 4 * * *")
	v.SetDefault("ingestion.unavailable_ttl_minutes", 360)
	v.SetDefault("ingestion.show_progress", true)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
	// Bound so AutomaticEnv can supply credentials that appear nowhere in the file.
	v.SetDefault("iracing.username", "")
	v.SetDefault("iracing.password", "")
}
