package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/yourusername/tt-value/internal/models"
)

// HTTPMarketSource fetches listings from a JSON feed
type HTTPMarketSource struct {
	httpClient *RateLimitedHTTPClient
	feedURL    string
	minPrice   float64
	now        func() time.Time
	logger     *logrus.Entry
}

// feedListing is the wire form of a listing in the JSON feed
type feedListing struct {
	Time    string                     `json:"time"`
	PlayerA string                     `json:"playerA"`
	PlayerB string                     `json:"playerB"`
	Odds    map[string]json.RawMessage `json:"odds"`
}

// NewHTTPMarketSource creates a new JSON feed market source
func NewHTTPMarketSource(httpClient *RateLimitedHTTPClient, feedURL string, minPrice float64, logger *logrus.Logger) *HTTPMarketSource {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if minPrice <= 0 {
		minPrice = MinListedPrice
	}
	return &HTTPMarketSource{
		httpClient: httpClient,
		feedURL:    feedURL,
		minPrice:   minPrice,
		now:        time.Now,
		logger:     logger.WithField("source", "http"),
	}
}

// Name returns the name of the market source
func (s *HTTPMarketSource) Name() string {
	return "http"
}

// Ping reports an error while the feed's circuit breaker is open
func (s *HTTPMarketSource) Ping(ctx context.Context) error {
	if s.httpClient.State() == gobreaker.StateOpen {
		return NewDataSourceError(s.Name(), ErrCodeCircuitOpen, "circuit breaker open", gobreaker.ErrOpenState)
	}
	return ctx.Err()
}

// FetchListings retrieves and decodes the feed
func (s *HTTPMarketSource) FetchListings(ctx context.Context) ([]models.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, "failed to fetch listings", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(s.Name(), ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, NewDataSourceError(s.Name(), ErrCodeNotFound, "feed not found", ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(s.Name(), ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), ErrServerError)
	}

	var entries []feedListing
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeInvalidData, "failed to parse response", err)
	}

	scrapedAt := s.now().UTC()
	listings := make([]models.Listing, 0, len(entries))
	for _, e := range entries {
		listings = append(listings, models.Listing{
			Time:      e.Time,
			PlayerA:   e.PlayerA,
			PlayerB:   e.PlayerB,
			Odds:      decodeFeedOdds(e.Odds, s.logger),
			ScrapedAt: scrapedAt,
		})
	}

	kept := filterListed(listings, s.minPrice, s.logger)
	s.logger.WithFields(logrus.Fields{
		"received": len(entries),
		"kept":     len(kept),
	}).Debug("Feed listings fetched")
	return kept, nil
}
