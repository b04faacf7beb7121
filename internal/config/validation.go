package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yourusername/results-collector/internal/models"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("season", validateSeason)
	_ = v.RegisterValidation("dbdriver", validateDBDriver)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateSeason accepts "YYYY-Q".
func validateSeason(fl validator.FieldLevel) bool {
	_, err := models.ParseSeason(fl.Field().String())
	return err == nil
}

func validateDBDriver(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case DriverPostgres, DriverSQLite:
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	switch cfg.Database.Driver {
	case DriverPostgres:
		var missing []string
		if cfg.Database.Host == "" {
			missing = append(missing, "host")
		}
		if cfg.Database.Port == 0 {
			missing = append(missing, "port")
		}
		if cfg.Database.Name == "" {
			missing = append(missing, "name")
		}
		if cfg.Database.User == "" {
			missing = append(missing, "user")
		}
		if len(missing) > 0 {
			return fmt.Errorf("postgres database requires: %s", strings.Join(missing, ", "))
		}
		if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	case DriverSQLite:
		if cfg.Database.Path == "" {
			return fmt.Errorf("sqlite database requires a path")
		}
	}

	if cfg.Metrics.Enabled && (cfg.Metrics.Port == 0 || cfg.Metrics.Path == "") {
		return fmt.Errorf("metrics enabled but port or path is missing")
	}

	if cfg.Secrets.Enabled && (cfg.Secrets.Region == "" || cfg.Secrets.SecretName == "") {
		return fmt.Errorf("secrets overlay enabled but region or secret_name is missing")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "season":
			errMsg += fmt.Sprintf("- Field '%s' must be a season in YYYY-Q form, got '%v'\n", fieldError.Namespace(), value)
		case "dbdriver":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: postgres, sqlite\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: %s\n", field, fieldError.Param())
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
