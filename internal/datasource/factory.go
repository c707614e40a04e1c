package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/config"
)

// SourceType represents the type of market source
type SourceType string

const (
	// HTTPSourceType reads a JSON feed
	HTTPSourceType SourceType = "http"
	// BrowserSourceType scrapes the bookmaker page with headless Chrome
	BrowserSourceType SourceType = "browser"
	// StaticSourceType reads listings from a local file
	StaticSourceType SourceType = "static"
)

// Factory creates MarketSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config config.MarketConfig
}

// NewFactory creates a new market source factory
func NewFactory(cfg config.MarketConfig, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// Create creates the configured market source
func (f *Factory) Create() (MarketSource, error) {
	sourceType := SourceType(f.config.Source)
	var (
		source MarketSource
		err    error
	)

	switch sourceType {
	case HTTPSourceType:
		source, err = f.createHTTPSource()
	case BrowserSourceType:
		source, err = f.createBrowserSource()
	case StaticSourceType:
		source, err = f.createStaticSource()
	default:
		return nil, fmt.Errorf("unknown market source type %q (available: %v)", sourceType, f.ListAvailableSources())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create market source %s: %w", sourceType, err)
	}

	f.logger.WithField("source", source.Name()).Info("Created market source")
	return source, nil
}

func (f *Factory) createHTTPSource() (MarketSource, error) {
	if f.config.FeedURL == "" {
		return nil, fmt.Errorf("feed URL is required")
	}
	httpCfg := DefaultHTTPClientConfig()
	settings := f.config.HTTP
	if settings.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(settings.TimeoutSeconds) * time.Second
	}
	if settings.MaxRetries > 0 {
		httpCfg.MaxRetries = settings.MaxRetries
	}
	if settings.RateLimit > 0 {
		httpCfg.RateLimit = settings.RateLimit
	}
	if settings.CircuitBreakerMax > 0 {
		httpCfg.CircuitBreakerMax = settings.CircuitBreakerMax
	}
	if settings.CircuitOpenSeconds > 0 {
		httpCfg.CircuitOpenFor = time.Duration(settings.CircuitOpenSeconds) * time.Second
	}

	client := NewRateLimitedHTTPClient(httpCfg, f.logger)
	return NewHTTPMarketSource(client, f.config.FeedURL, f.config.MinListedPrice, f.logger), nil
}

func (f *Factory) createBrowserSource() (MarketSource, error) {
	if f.config.Browser.URL == "" {
		return nil, fmt.Errorf("browser URL is required")
	}
	return NewBrowserMarketSource(BrowserConfig{
		URL:         f.config.Browser.URL,
		Timeout:     time.Duration(f.config.Browser.TimeoutSeconds) * time.Second,
		WaitTimeout: time.Duration(f.config.Browser.WaitSeconds) * time.Second,
		UserAgent:   f.config.Browser.UserAgent,
		Headless:    f.config.Browser.Headless,
		MinPrice:    f.config.MinListedPrice,
	}, f.logger), nil
}

func (f *Factory) createStaticSource() (MarketSource, error) {
	if f.config.StaticFile == "" {
		return nil, fmt.Errorf("static file is required")
	}
	return LoadStaticMarketSource(f.config.StaticFile, f.logger)
}

// ListAvailableSources returns the source types this build can create
func (f *Factory) ListAvailableSources() []SourceType {
	return []SourceType{HTTPSourceType, BrowserSourceType, StaticSourceType}
}
