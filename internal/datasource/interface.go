package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/models"
)

// MarketSource defines the interface for fetching upcoming match listings from a bookmaker
type MarketSource interface {
	// FetchListings retrieves the currently listed two-way matches with their prices
	FetchListings(ctx context.Context) ([]models.Listing, error)

	// Name returns the name of the market source
	Name() string
}

// MinListedPrice drops listings where no outcome is priced at or above it
const MinListedPrice = 1.6

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error to errors.Is / errors.As
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeCircuitOpen       = "circuit_open"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeBrowserError      = "browser_error"
	ErrCodeUnknown           = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// validateListing reports why a listing cannot be analysed
func validateListing(l models.Listing) error {
	switch {
	case l.Time == "":
		return fmt.Errorf("%w: missing start time", models.ErrInvalidListing)
	case l.PlayerA == "" || l.PlayerB == "":
		return fmt.Errorf("%w: missing player name", models.ErrInvalidListing)
	}
	return nil
}

// filterListed keeps listings with at least one price worth considering
func filterListed(listings []models.Listing, minPrice float64, logger *logrus.Entry) []models.Listing {
	kept := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if err := validateListing(l); err != nil {
			logger.WithError(err).WithField("listing", l.Title()).Debug("Dropping listing")
			continue
		}
		if l.Odds.MaxPrice() >= minPrice {
			kept = append(kept, l)
		}
	}
	return kept
}
