// Package config provides configuration management for the tt-value service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides (TT_VALUE_SERVER_PORT)
const EnvPrefix = "TT_VALUE"

const defaultConfigPath = "config/config.yaml"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()

	// Read the expanded configuration
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// ReloadFromEnv reloads the configuration from TT_VALUE_CONFIG_PATH when set
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv(EnvPrefix + "_CONFIG_PATH"); envPath != "" {
		newCfg, err := LoadWithDefaults(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults registers values for every optional setting
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tt-value")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 90)
	v.SetDefault("server.cache_ttl_seconds", 300)

	v.SetDefault("window.start_hour", 7)
	v.SetDefault("window.end_hour", 20)
	v.SetDefault("window.timezone", "Local")

	v.SetDefault("market.source", "browser")
	v.SetDefault("market.min_listed_price", 1.6)
	v.SetDefault("market.http.timeout_seconds", 30)
	v.SetDefault("market.http.max_retries", 3)
	v.SetDefault("market.http.rate_limit", 2.0)
	v.SetDefault("market.http.circuit_breaker_max", 5)
	v.SetDefault("market.http.circuit_open_seconds", 60)
	v.SetDefault("market.browser.timeout_seconds", 45)
	v.SetDefault("market.browser.wait_seconds", 5)
	v.SetDefault("market.browser.headless", true)

	v.SetDefault("stats.source", "file")
	v.SetDefault("stats.players_file", "players.json")
	v.SetDefault("stats.history_file", "match_history.json")
	v.SetDefault("stats.reload_interval_seconds", 60)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("engine.detector", "rule_based")
	v.SetDefault("engine.min_edge", 0.05)
	v.SetDefault("engine.min_rating_gap", 50.0)
	v.SetDefault("engine.min_price", 1.5)
	v.SetDefault("engine.first_outcome", "H")
	v.SetDefault("engine.second_outcome", "V")
	v.SetDefault("engine.include_estimates", true)
	v.SetDefault("engine.form_length", 5)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.warm_schedule", "@every 5m")

	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.min_score", 10)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
