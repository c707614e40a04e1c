package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tt-value/internal/config"
	"github.com/yourusername/tt-value/internal/models"
)

func testClientConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.Name = "test-feed"
	cfg.Timeout = 2 * time.Second
	cfg.MaxRetries = 0
	cfg.RateLimit = 1000
	cfg.CircuitBreakerMax = 2
	cfg.CircuitOpenFor = time.Minute
	return cfg
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"1.75", 1.75, false},
		{"1,75", 1.75, false},
		{" 2,1 ", 2.1, false},
		{"10", 10, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1,5", 0, true},
		{"0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidData))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHTTPMarketSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"time": "18:30", "playerA": "J. Medek", "playerB": "P. Novak", "odds": {"H": "1,75", "V": 2.05}},
			{"time": "18:45", "playerA": "A. Short", "playerB": "B. Price", "odds": {"H": 1.2, "V": 1.55}},
			{"time": "", "playerA": "No", "playerB": "Time", "odds": {"H": 3.0}},
			{"time": "19:00", "playerA": "C. Dash", "playerB": "D. Line", "odds": {"H": "-", "V": "2,4"}},
			{"time": "19:15", "playerA": "E. Null", "playerB": "F. Neg", "odds": {"H": null, "V": -3}}
		]`))
	}))
	defer server.Close()

	source := NewHTTPMarketSource(NewRateLimitedHTTPClient(testClientConfig(), nil), server.URL, 0, nil)
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	source.now = func() time.Time { return fixed }

	listings, err := source.FetchListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)

	l := listings[0]
	assert.Equal(t, "18:30", l.Time)
	assert.Equal(t, "J. Medek", l.PlayerA)
	assert.Equal(t, "P. Novak", l.PlayerB)
	assert.InDelta(t, 1.75, l.Odds.Price("H"), 1e-9)
	assert.InDelta(t, 2.05, l.Odds.Price("V"), 1e-9)
	assert.Equal(t, fixed, l.ScrapedAt)
	assert.Equal(t, "http", source.Name())

	mixed := listings[1]
	assert.Equal(t, "C. Dash", mixed.PlayerA)
	_, hasH := mixed.Odds["H"]
	assert.False(t, hasH, "unparseable price is dropped")
	assert.InDelta(t, 2.4, mixed.Odds.Price("V"), 1e-9)
}

func TestParseFeedPrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{`1.8`, 1.8, false},
		{`"1,8"`, 1.8, false},
		{`"-"`, 0, true},
		{`null`, 0, true},
		{`-2`, 0, true},
		{`0`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseFeedPrice([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidData)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValidateListing(t *testing.T) {
	assert.NoError(t, validateListing(models.Listing{Time: "10:00", PlayerA: "A", PlayerB: "B"}))
	assert.ErrorIs(t, validateListing(models.Listing{PlayerA: "A", PlayerB: "B"}), models.ErrInvalidListing)
	assert.ErrorIs(t, validateListing(models.Listing{Time: "10:00", PlayerA: "A"}), models.ErrInvalidListing)

	kept := filterListed([]models.Listing{
		{Time: "10:00", PlayerA: "A", PlayerB: "", Odds: models.Odds{"H": 3}},
		{Time: "10:15", PlayerA: "C", PlayerB: "D", Odds: models.Odds{"H": 3}},
	}, MinListedPrice, logrus.NewEntry(logrus.New()))
	require.Len(t, kept, 1)
	assert.Equal(t, "C", kept[0].PlayerA)
}

func TestHTTPMarketSourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantErr  error
	}{
		{"server error", http.StatusInternalServerError, "boom", ErrCodeServerError, ErrServerError},
		{"rate limited", http.StatusTooManyRequests, "", ErrCodeRateLimitExceeded, ErrRateLimitExceeded},
		{"not found", http.StatusNotFound, "", ErrCodeNotFound, ErrNotFound},
		{"bad payload", http.StatusOK, "{not json", ErrCodeInvalidData, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			source := NewHTTPMarketSource(NewRateLimitedHTTPClient(testClientConfig(), nil), server.URL, 0, nil)
			_, err := source.FetchListings(context.Background())
			require.Error(t, err)

			var dsErr DataSourceError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, tt.wantCode, dsErr.Code)
			assert.Equal(t, "http", dsErr.Source)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestRateLimitedHTTPClientCircuitBreaker(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRateLimitedHTTPClient(testClientConfig(), logrus.New())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := client.Get(ctx, server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Equal(t, gobreaker.StateOpen, client.State())

	_, err := client.Get(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "open breaker must not reach the server")
}

func TestRateLimitedHTTPClientRetries(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 3
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 5 * time.Millisecond
	client := NewRateLimitedHTTPClient(cfg, nil)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestRowsToListings(t *testing.T) {
	scrapedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := []scrapedRow{
		{Time: "18:30", Name: "Medek J. - Novak P.", Prices: []scrapedPrice{{"H", "1,75"}, {"V", "2,05"}}},
		{Time: "18:45", Name: "Low A. - Price B.", Prices: []scrapedPrice{{"H", "1,20"}, {"V", "1,55"}}},
		{Time: "", Name: "No - Time", Prices: []scrapedPrice{{"H", "3,00"}}},
		{Time: "19:00", Name: "Missing separator", Prices: []scrapedPrice{{"H", "3,00"}}},
		{Time: "19:15", Name: "Bad A. - Price C.", Prices: []scrapedPrice{{"H", "-"}, {"V", "1,90"}}},
	}

	listings := rowsToListings(rows, scrapedAt, MinListedPrice, logrus.NewEntry(logrus.New()))
	require.Len(t, listings, 2)

	assert.Equal(t, "Medek J.", listings[0].PlayerA)
	assert.Equal(t, "Novak P.", listings[0].PlayerB)
	assert.InDelta(t, 1.75, listings[0].Odds.Price("H"), 1e-9)
	assert.Equal(t, scrapedAt, listings[0].ScrapedAt)

	assert.Equal(t, "Bad A.", listings[1].PlayerA)
	_, hasH := listings[1].Odds["H"]
	assert.False(t, hasH, "unparseable price is dropped")
	assert.InDelta(t, 1.9, listings[1].Odds.Price("V"), 1e-9)
}

func TestStaticMarketSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"time":"10:00","playerA":"A","playerB":"B","odds":{"H":"1,8","V":2}},
		{"time":"10:15","playerA":"C","playerB":"D","odds":{"H":"n/a","V":2.2}}
	]`), 0o600))

	source, err := LoadStaticMarketSource(path, nil)
	require.NoError(t, err)

	listings, err := source.FetchListings(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.InDelta(t, 1.8, listings[0].Odds.Price("H"), 1e-9)
	assert.Equal(t, models.Odds{"V": 2.2}, listings[1].Odds)

	listings[0].PlayerA = "mutated"
	again, err := source.FetchListings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].PlayerA)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.FetchListings(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactoryCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	source, err := NewFactory(config.MarketConfig{Source: "static", StaticFile: path}, nil).Create()
	require.NoError(t, err)
	assert.Equal(t, "static", source.Name())

	source, err = NewFactory(config.MarketConfig{Source: "http", FeedURL: "http://localhost:1/feed"}, nil).Create()
	require.NoError(t, err)
	assert.Equal(t, "http", source.Name())

	source, err = NewFactory(config.MarketConfig{Source: "browser", Browser: config.BrowserSettings{URL: "https://example.com"}}, nil).Create()
	require.NoError(t, err)
	assert.Equal(t, "browser", source.Name())

	_, err = NewFactory(config.MarketConfig{Source: "http"}, nil).Create()
	assert.Error(t, err)

	_, err = NewFactory(config.MarketConfig{Source: "carrier-pigeon"}, nil).Create()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
	assert.Contains(t, err.Error(), "[http browser static]")
}

func TestDataSourceErrorFormatting(t *testing.T) {
	err := NewDataSourceError("http", ErrCodeNetworkError, "failed to fetch listings", errors.New("dial tcp"))
	assert.Equal(t, "http: network_error: failed to fetch listings (dial tcp)", err.Error())

	bare := NewDataSourceError("http", ErrCodeUnknown, "odd", nil)
	assert.Equal(t, "http: unknown: odd", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}
