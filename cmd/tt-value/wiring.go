package main

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/tt-value/internal/database"
	"github.com/yourusername/tt-value/internal/datasource"
	"github.com/yourusername/tt-value/internal/repository"
	"github.com/yourusername/tt-value/internal/service"
	"github.com/yourusername/tt-value/internal/stats"
	"github.com/yourusername/tt-value/internal/strategy"
)

// components holds everything a command may need
type components struct {
	db      *database.DB
	stats   stats.Source
	market  datasource.MarketSource
	refresh *service.RefreshService
	lookup  *service.LookupService
	clock   service.Clock
}

func (c *components) Close() {
	if c.db != nil {
		c.db.Close()
	}
}

// windowClock returns the wall clock in the active window's zone so daily
// form counters roll over at local midnight
func windowClock() (service.Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

func buildStatsSource(ctx context.Context) (stats.Source, *database.DB, error) {
	var (
		source stats.Source
		db     *database.DB
	)

	switch cfg.Stats.Source {
	case "postgres":
		var err error
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to stats database: %w", err)
		}
		repos, err := repository.NewRepositories(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		source = stats.NewPostgresSource(repos)
	default:
		source = stats.NewFileSource(cfg.Stats.PlayersFile, cfg.Stats.HistoryFile, appLog)
	}

	return stats.NewCachedSource(source, cfg.ReloadInterval()), db, nil
}

func analyzerOptions(clock service.Clock) []service.AnalyzerOption {
	engine := cfg.Engine
	return []service.AnalyzerOption{
		service.WithClock(clock),
		service.WithEstimates(engine.IncludeEstimates),
		service.WithDetectorFactory(func(h strategy.HeadToHeadProvider) strategy.Detector {
			if engine.Detector == "model_edge" {
				d := strategy.NewModelEdgeDetector(h)
				d.MinEdge = engine.MinEdge
				d.MinPrice = engine.MinPrice
				d.FirstOutcome = engine.FirstOutcome
				d.SecondOutcome = engine.SecondOutcome
				return d
			}
			d := strategy.NewRuleBasedDetector(h)
			d.MinRatingGap = engine.MinRatingGap
			d.MinPrice = engine.MinPrice
			d.FirstOutcome = engine.FirstOutcome
			d.SecondOutcome = engine.SecondOutcome
			return d
		}),
	}
}

// buildComponents wires the stats source always and the market source when
// withMarket is set
func buildComponents(ctx context.Context, withMarket bool) (*components, error) {
	clock, err := windowClock()
	if err != nil {
		return nil, err
	}

	statsSource, db, err := buildStatsSource(ctx)
	if err != nil {
		return nil, err
	}
	c := &components{
		db:     db,
		stats:  statsSource,
		lookup: service.NewLookupService(statsSource, clock, cfg.Engine.FormLength),
		clock:  clock,
	}

	if withMarket {
		market, err := datasource.NewFactory(cfg.Market, appLog).Create()
		if err != nil {
			c.Close()
			return nil, err
		}
		c.market = market
		c.refresh = service.NewRefreshService(market, statsSource, appLog, analyzerOptions(clock)...)
	}
	return c, nil
}
