// Package config provides configuration management for the tt-value service.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("timezone", validateTimezone)

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
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateTimezone validates IANA time zone names
func validateTimezone(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Window.StartHour >= cfg.Window.EndHour {
		return fmt.Errorf("window start_hour must be before end_hour")
	}

	switch cfg.Market.Source {
	case "http":
		if cfg.Market.FeedURL == "" {
			return fmt.Errorf("market feed_url is required when market source is 'http'")
		}
	case "browser":
		if cfg.Market.Browser.URL == "" {
			return fmt.Errorf("market browser.url is required when market source is 'browser'")
		}
	case "static":
		if cfg.Market.StaticFile == "" {
			return fmt.Errorf("market static_file is required when market source is 'static'")
		}
	}

	if cfg.Stats.Source == "postgres" {
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return fmt.Errorf("database host, name and user are required when stats source is 'postgres'")
		}
		// Validate connection pool settings
		if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
			return fmt.Errorf("max_idle_connections cannot exceed max_connections")
		}
	}

	if cfg.Scheduler.Enabled {
		if _, err := cron.ParseStandard(cfg.Scheduler.WarmSchedule); err != nil {
			return fmt.Errorf("invalid scheduler warm_schedule %q: %w", cfg.Scheduler.WarmSchedule, err)
		}
	}

	if cfg.Alerts.Enabled && (cfg.Alerts.TelegramToken == "" || cfg.Alerts.ChatID == 0) {
		return fmt.Errorf("alerts require telegram_token and chat_id when enabled")
	}

	if cfg.Secrets.Enabled && (cfg.Secrets.Region == "" || cfg.Secrets.SecretName == "") {
		return fmt.Errorf("secrets overlay requires region and secret_name when enabled")
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
		case "timezone":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid time zone, got '%v'\n", field, value)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		case "nefield":
			errMsg += fmt.Sprintf("- Field '%s' must differ from %s\n", field, fieldError.Param())
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		// Production must have SSL enabled
		if cfg.Stats.Source == "postgres" && cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires database SSL mode to be 'require' or 'verify-full'")
		}

		// Production should not have test credentials
		if cfg.Alerts.Enabled && isTestCredential(cfg.Alerts.TelegramToken) {
			return fmt.Errorf("production environment should not use test Telegram credentials")
		}
	}

	return nil
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	testPatterns := []string{
		"test", "demo", "example", "placeholder", "YOUR_",
	}

	for _, pattern := range testPatterns {
		if match, _ := regexp.MatchString("(?i)"+pattern, credential); match {
			return true
		}
	}

	return false
}
