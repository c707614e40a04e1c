// Package config provides configuration management for the tt-value service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Window    WindowConfig    `mapstructure:"window" validate:"required"`
	Market    MarketConfig    `mapstructure:"market" validate:"required"`
	Stats     StatsConfig     `mapstructure:"stats" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP serving boundary
type ServerConfig struct {
	Host                string `mapstructure:"host"`
	Port                int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	CacheTTLSeconds     int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	StaticDir           string `mapstructure:"static_dir"`
}

// WindowConfig represents the daily active window during which live data is served
type WindowConfig struct {
	StartHour int    `mapstructure:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int    `mapstructure:"end_hour" validate:"gte=1,lte=24"`
	Timezone  string `mapstructure:"timezone" validate:"required,timezone"`
}

// MarketConfig represents where listings are fetched from
type MarketConfig struct {
	Source         string             `mapstructure:"source" validate:"required,oneof=http browser static"`
	FeedURL        string             `mapstructure:"feed_url" validate:"omitempty,url"`
	StaticFile     string             `mapstructure:"static_file"`
	MinListedPrice float64            `mapstructure:"min_listed_price" validate:"gt=1"`
	HTTP           HTTPClientSettings `mapstructure:"http"`
	Browser        BrowserSettings    `mapstructure:"browser"`
}

// HTTPClientSettings represents the resilient HTTP client used for feeds
type HTTPClientSettings struct {
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit          float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CircuitBreakerMax  int     `mapstructure:"circuit_breaker_max" validate:"gte=0"`
	CircuitOpenSeconds int     `mapstructure:"circuit_open_seconds" validate:"gte=0"`
}

// BrowserSettings represents the headless browser scraper
type BrowserSettings struct {
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	WaitSeconds    int    `mapstructure:"wait_seconds" validate:"gte=0"`
	UserAgent      string `mapstructure:"user_agent"`
	Headless       bool   `mapstructure:"headless"`
}

// StatsConfig represents the player and match history datasets
type StatsConfig struct {
	Source                string `mapstructure:"source" validate:"required,oneof=file postgres"`
	PlayersFile           string `mapstructure:"players_file"`
	HistoryFile           string `mapstructure:"history_file"`
	ReloadIntervalSeconds int    `mapstructure:"reload_interval_seconds" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// EngineConfig represents value detection thresholds
type EngineConfig struct {
	Detector         string  `mapstructure:"detector" validate:"required,oneof=rule_based model_edge"`
	MinEdge          float64 `mapstructure:"min_edge" validate:"gte=0,lt=1"`
	MinRatingGap     float64 `mapstructure:"min_rating_gap" validate:"gt=0"`
	MinPrice         float64 `mapstructure:"min_price" validate:"gt=1"`
	FirstOutcome     string  `mapstructure:"first_outcome" validate:"required"`
	SecondOutcome    string  `mapstructure:"second_outcome" validate:"required,nefield=FirstOutcome"`
	IncludeEstimates bool    `mapstructure:"include_estimates"`
	FormLength       int     `mapstructure:"form_length" validate:"gte=0"`
}

// SchedulerConfig represents the cache warming schedule
type SchedulerConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	WarmSchedule string `mapstructure:"warm_schedule"`
}

// AlertsConfig represents Telegram notifications for new value signals
type AlertsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	TelegramToken string `mapstructure:"telegram_token"`
	ChatID        int64  `mapstructure:"chat_id"`
	MinScore      int    `mapstructure:"min_score" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SecretsConfig represents the optional AWS Secrets Manager overlay
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

// Location returns the time zone of the active window
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Window.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid window timezone %q: %w", c.Window.Timezone, err)
	}
	return loc, nil
}

// CacheTTL returns the result cache time-to-live
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLSeconds) * time.Second
}

// ReloadInterval returns how long a loaded stats snapshot is reused
func (c *Config) ReloadInterval() time.Duration {
	return time.Duration(c.Stats.ReloadIntervalSeconds) * time.Second
}

// ListenAddress returns host:port for the HTTP server
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
