package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/yourusername/tt-value/internal/models"
	"github.com/yourusername/tt-value/internal/service"
)

// Sources reported in the listings envelope
const (
	SourceOffHours = "off-hours"
	SourceCache    = "cache"
	SourceLive     = "live"
)

const refreshKey = "listings"

// Refresher produces a fresh set of annotated listings
type Refresher interface {
	Refresh(ctx context.Context) ([]models.AnnotatedListing, error)
}

// Lookup answers the read-only stats queries
type Lookup interface {
	PlayerForm(ctx context.Context, id int64, n int) (*service.PlayerForm, error)
	HeadToHead(ctx context.Context, idA, idB int64) (*service.HeadToHeadView, error)
	Resolve(ctx context.Context, name string) (*service.Resolution, error)
}

// ListingsResponse is the envelope of /api/matches and /api/value-bets
type ListingsResponse struct {
	Success bool                      `json:"success"`
	Matches []models.AnnotatedListing `json:"matches"`
	Source  string                    `json:"source"`
}

// ErrorResponse is returned on any failure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handlers serves listings through the result cache
type Handlers struct {
	refresher Refresher
	lookup    Lookup
	cache     *ResultCache
	window    ActiveWindow
	clock     func() time.Time
	group     singleflight.Group
	logger    *logrus.Logger
}

// NewHandlers creates the API handlers
func NewHandlers(refresher Refresher, lookup Lookup, cache *ResultCache, window ActiveWindow, clock func() time.Time, logger *logrus.Logger) *Handlers {
	if clock == nil {
		clock = time.Now
	}
	if cache == nil {
		cache = NewResultCache(DefaultCacheTTL, clock)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Handlers{
		refresher: refresher,
		lookup:    lookup,
		cache:     cache,
		window:    window,
		clock:     clock,
		logger:    logger,
	}
}

// RegisterRoutes mounts the API endpoints on mux
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/matches", h.Matches)
	mux.HandleFunc("GET /api/value-bets", h.ValueBets)
	mux.HandleFunc("GET /api/players/{id}/form", h.PlayerForm)
	mux.HandleFunc("GET /api/h2h", h.HeadToHead)
	mux.HandleFunc("GET /api/resolve", h.Resolve)
}

// Matches serves every annotated listing
func (h *Handlers) Matches(w http.ResponseWriter, r *http.Request) {
	h.serveListings(w, r, false)
}

// ValueBets serves only listings flagged as value
func (h *Handlers) ValueBets(w http.ResponseWriter, r *http.Request) {
	h.serveListings(w, r, true)
}

func (h *Handlers) serveListings(w http.ResponseWriter, r *http.Request, valueOnly bool) {
	results, source, err := h.Current(r.Context())
	if err != nil {
		h.logger.WithError(err).WithField("request_id", RequestIDFromContext(r.Context())).Error("Refresh failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if valueOnly {
		results = service.ValueBets(results)
	}
	writeJSON(w, http.StatusOK, ListingsResponse{Success: true, Matches: results, Source: source})
}

// Current returns the listings to serve right now and where they came from.
// Outside the active window nothing is fetched. Concurrent misses share one
// refresh; a failed refresh leaves the cache untouched.
func (h *Handlers) Current(ctx context.Context) ([]models.AnnotatedListing, string, error) {
	if !h.window.Contains(h.clock()) {
		return []models.AnnotatedListing{}, SourceOffHours, nil
	}
	if cached, ok := h.cache.Get(); ok {
		return cached, SourceCache, nil
	}

	v, err, _ := h.group.Do(refreshKey, func() (interface{}, error) {
		results, err := h.refresher.Refresh(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		h.cache.Put(results, h.clock())
		return results, nil
	})
	if err != nil {
		return nil, "", err
	}
	return v.([]models.AnnotatedListing), SourceLive, nil
}

// Warm refreshes the cache when it is stale and the window is open
func (h *Handlers) Warm(ctx context.Context) (string, error) {
	_, source, err := h.Current(ctx)
	return source, err
}

// PlayerForm serves /api/players/{id}/form?n=
func (h *Handlers) PlayerForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		if n, err = strconv.Atoi(raw); err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("n must be a non-negative integer"))
			return
		}
	}

	form, err := h.lookup.PlayerForm(r.Context(), id, n)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": form})
}

// HeadToHead serves /api/h2h?a=&b=
func (h *Handlers) HeadToHead(w http.ResponseWriter, r *http.Request) {
	a, errA := parseID(r.URL.Query().Get("a"))
	b, errB := parseID(r.URL.Query().Get("b"))
	if err := errors.Join(errA, errB); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := h.lookup.HeadToHead(r.Context(), a, b)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": view})
}

// Resolve serves /api/resolve?name=
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	res, err := h.lookup.Resolve(r.Context(), name)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": res})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.ErrInvalidPlayerID
	}
	return id, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidPlayerID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: err.Error()})
}
