package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/models"
)

// StaticMarketSource serves a fixed set of listings
type StaticMarketSource struct {
	listings []models.Listing
}

// NewStaticMarketSource creates a source over in-memory listings
func NewStaticMarketSource(listings []models.Listing) *StaticMarketSource {
	return &StaticMarketSource{listings: listings}
}

// LoadStaticMarketSource reads listings from a JSON file in the feed format
func LoadStaticMarketSource(path string, log *logrus.Logger) (*StaticMarketSource, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	logger := log.WithFields(logrus.Fields{"source": "static", "file": path})
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}
	var entries []feedListing
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, NewDataSourceError("static", ErrCodeInvalidData, "failed to parse listings file", err)
	}
	listings := make([]models.Listing, 0, len(entries))
	for _, e := range entries {
		listings = append(listings, models.Listing{Time: e.Time, PlayerA: e.PlayerA, PlayerB: e.PlayerB, Odds: decodeFeedOdds(e.Odds, logger)})
	}
	return NewStaticMarketSource(listings), nil
}

// Name returns the name of the market source
func (s *StaticMarketSource) Name() string {
	return "static"
}

// FetchListings returns a copy of the configured listings
func (s *StaticMarketSource) FetchListings(ctx context.Context) ([]models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out, nil
}
