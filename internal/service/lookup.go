package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/tt-value/internal/history"
	"github.com/yourusername/tt-value/internal/identity"
	"github.com/yourusername/tt-value/internal/models"
	"github.com/yourusername/tt-value/internal/probability"
	"github.com/yourusername/tt-value/internal/stats"
)

// PlayerForm is a player's recent results and today's record
type PlayerForm struct {
	Player      *models.Player     `json:"player"`
	Form        []models.FormEntry `json:"form"`
	DailyWins   int                `json:"dailyWins"`
	DailyLosses int                `json:"dailyLosses"`
}

// HeadToHeadView is the record between two players with the model's estimate
type HeadToHeadView struct {
	PlayerA  *models.Player              `json:"playerA"`
	PlayerB  *models.Player              `json:"playerB"`
	Record   models.HeadToHead           `json:"h2h"`
	Estimate *models.ProbabilityEstimate `json:"estimate,omitempty"`
}

// Resolution is the outcome of resolving a listed name
type Resolution struct {
	Name   string         `json:"name"`
	Player *models.Player `json:"player"`
	Score  int            `json:"score"`
}

// LookupService answers read-only questions against the current stats snapshot
type LookupService struct {
	stats      stats.Source
	clock      Clock
	formLength int
}

// NewLookupService creates a lookup service
func NewLookupService(statsSource stats.Source, clock Clock, formLength int) *LookupService {
	if clock == nil {
		clock = time.Now
	}
	if formLength <= 0 {
		formLength = history.DefaultFormLength
	}
	return &LookupService{stats: statsSource, clock: clock, formLength: formLength}
}

// PlayerForm returns the latest n results of a player (n <= 0 uses the default).
// An id unknown to both datasets returns models.ErrNotFound.
func (l *LookupService) PlayerForm(ctx context.Context, id int64, n int) (*PlayerForm, error) {
	snapshot, err := l.stats.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	if n <= 0 {
		n = l.formLength
	}

	index := history.NewIndex(snapshot.Matches)
	player, _ := snapshot.FindPlayer(id)
	form := index.RecentForm(id, n)
	if player == nil && len(form) == 0 {
		return nil, fmt.Errorf("player %d: %w", id, models.ErrNotFound)
	}

	wins, losses := index.DailyRecord(id, l.clock())
	return &PlayerForm{Player: player, Form: form, DailyWins: wins, DailyLosses: losses}, nil
}

// HeadToHead returns the record between two players. The estimate is attached
// only when both players are on the roster.
func (l *LookupService) HeadToHead(ctx context.Context, idA, idB int64) (*HeadToHeadView, error) {
	if idA == idB {
		return nil, fmt.Errorf("%w: players must differ", models.ErrInvalidPlayerID)
	}
	snapshot, err := l.stats.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	index := history.NewIndex(snapshot.Matches)
	view := &HeadToHeadView{Record: index.HeadToHead(idA, idB)}
	view.PlayerA, _ = snapshot.FindPlayer(idA)
	view.PlayerB, _ = snapshot.FindPlayer(idB)

	if view.PlayerA != nil && view.PlayerB != nil {
		now := l.clock()
		view.PlayerA.DailyWins, view.PlayerA.DailyLosses = index.DailyRecord(idA, now)
		view.PlayerB.DailyWins, view.PlayerB.DailyLosses = index.DailyRecord(idB, now)
		estimate := probability.Estimate(*view.PlayerA, *view.PlayerB, view.Record)
		view.Estimate = &estimate
	}
	return view, nil
}

// Resolve matches a listed name against the roster
func (l *LookupService) Resolve(ctx context.Context, name string) (*Resolution, error) {
	snapshot, err := l.stats.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	matcher := identity.NewMatcher(snapshot.Roster)
	player, ok := matcher.Match(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, models.ErrNotFound)
	}
	resolved := *player
	return &Resolution{Name: name, Player: &resolved, Score: matcher.Score(name, resolved)}, nil
}
