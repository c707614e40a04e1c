package strategy

import (
	"fmt"

	"github.com/yourusername/tt-value/internal/models"
	"github.com/yourusername/tt-value/internal/probability"
)

// DefaultMinEdge is the smallest model-over-market margin flagged as value
const DefaultMinEdge = 0.05

// ModelEdgeDetector flags a side when the probability model beats the
// market's fair (margin-free) probability by at least MinEdge.
// Signal: model_probability - fair_probability >= MinEdge
type ModelEdgeDetector struct {
	BaseStrategy
	NameValue     string
	MinEdge       float64
	MinPrice      float64
	FirstOutcome  string
	SecondOutcome string
	SignalScore   int
	history       HeadToHeadProvider
}

// NewModelEdgeDetector creates a model edge detector reading H2H from history
func NewModelEdgeDetector(history HeadToHeadProvider) *ModelEdgeDetector {
	return &ModelEdgeDetector{
		BaseStrategy:  BaseStrategy{MinOdds: 1.01},
		NameValue:     "model_edge",
		MinEdge:       DefaultMinEdge,
		MinPrice:      DefaultMinPrice,
		FirstOutcome:  DefaultFirstOutcome,
		SecondOutcome: DefaultSecondOutcome,
		SignalScore:   DefaultSignalScore,
		history:       history,
	}
}

// Name returns detector name
func (d *ModelEdgeDetector) Name() string {
	return d.NameValue
}

// GetParameters returns detector parameters for logging
func (d *ModelEdgeDetector) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"min_edge":       d.MinEdge,
		"min_price":      d.MinPrice,
		"first_outcome":  d.FirstOutcome,
		"second_outcome": d.SecondOutcome,
		"signal_score":   d.SignalScore,
	}
}

// Detect needs both prices to remove the bookmaker margin; a one-sided
// market yields no signal.
func (d *ModelEdgeDetector) Detect(playerA, playerB *models.Player, odds models.Odds) models.ValueAnalysis {
	analysis := models.NoSignal()
	if playerA == nil || playerB == nil || odds == nil {
		return analysis
	}

	priceA, priceB := odds.Price(d.FirstOutcome), odds.Price(d.SecondOutcome)
	if !d.ValidPrice(priceA) || !d.ValidPrice(priceB) {
		return analysis
	}

	h2h := models.HeadToHead{}
	if d.history != nil {
		h2h = d.history.HeadToHead(playerA.ID, playerB.ID)
	}
	estimate := probability.Estimate(*playerA, *playerB, h2h)
	fairA, fairB := probability.FairProbabilities(priceA, priceB)

	sides := []struct {
		label string
		model int
		fair  float64
		price float64
	}{
		{"P1", estimate.ProbA, fairA, priceA},
		{"P2", estimate.ProbB, fairB, priceB},
	}
	for _, side := range sides {
		edge := probability.Edge(side.model, side.fair)
		if edge < d.MinEdge || side.price < d.MinPrice {
			continue
		}
		analysis.IsValue = true
		analysis.Reasons = append(analysis.Reasons, fmt.Sprintf(
			"%s model %d%% vs market %.0f%% (edge %+.1f pts) at odds %s",
			side.label, side.model, side.fair*100, edge*100, formatNumber(side.price),
		))
		analysis.Score += d.SignalScore
	}

	return analysis
}
