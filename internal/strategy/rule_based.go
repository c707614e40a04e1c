package strategy

import (
	"fmt"

	"github.com/yourusername/tt-value/internal/models"
)

// Default thresholds of the rule based detector
const (
	DefaultMinRatingGap  = 50.0
	DefaultMinPrice      = 1.5
	DefaultFirstOutcome  = "H"
	DefaultSecondOutcome = "V"
	DefaultSignalScore   = 10
)

// RuleBasedDetector flags a side as value when it is clearly stronger by rating,
// is not behind on head-to-head, and is still quoted at a reasonable price.
// It works on raw ratings and prices and does not consult the probability model.
type RuleBasedDetector struct {
	BaseStrategy
	NameValue     string
	MinRatingGap  float64
	MinPrice      float64
	FirstOutcome  string
	SecondOutcome string
	SignalScore   int

	history HeadToHeadProvider
}

// NewRuleBasedDetector creates a detector with default thresholds
func NewRuleBasedDetector(history HeadToHeadProvider) *RuleBasedDetector {
	return &RuleBasedDetector{
		BaseStrategy:  BaseStrategy{MinOdds: 1.01},
		NameValue:     "rating_h2h_value",
		MinRatingGap:  DefaultMinRatingGap,
		MinPrice:      DefaultMinPrice,
		FirstOutcome:  DefaultFirstOutcome,
		SecondOutcome: DefaultSecondOutcome,
		SignalScore:   DefaultSignalScore,
		history:       history,
	}
}

// Name returns detector name
func (d *RuleBasedDetector) Name() string {
	return d.NameValue
}

// GetParameters returns detector parameters for logging
func (d *RuleBasedDetector) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"min_rating_gap": d.MinRatingGap,
		"min_price":      d.MinPrice,
		"first_outcome":  d.FirstOutcome,
		"second_outcome": d.SecondOutcome,
		"signal_score":   d.SignalScore,
	}
}

// Detect evaluates both sides independently. Unresolved players or a missing
// price map short-circuit to the empty analysis.
func (d *RuleBasedDetector) Detect(playerA, playerB *models.Player, odds models.Odds) models.ValueAnalysis {
	analysis := models.NoSignal()
	if playerA == nil || playerB == nil || odds == nil {
		return analysis
	}

	ratingDiff := playerA.Rating - playerB.Rating
	h2h := models.HeadToHead{}
	if d.history != nil {
		h2h = d.history.HeadToHead(playerA.ID, playerB.ID)
	}

	if ratingDiff > d.MinRatingGap && h2h.AWins >= h2h.BWins {
		if price := odds.Price(d.FirstOutcome); d.qualifies(price) {
			analysis.IsValue = true
			analysis.Reasons = append(analysis.Reasons, fmt.Sprintf(
				"P1 stronger (rating +%s, H2H %d-%d) & odds %s >= %s",
				formatNumber(ratingDiff), h2h.AWins, h2h.BWins, formatNumber(price), formatNumber(d.MinPrice),
			))
			analysis.Score += d.SignalScore
		}
	}

	if ratingDiff < -d.MinRatingGap && h2h.BWins >= h2h.AWins {
		if price := odds.Price(d.SecondOutcome); d.qualifies(price) {
			analysis.IsValue = true
			analysis.Reasons = append(analysis.Reasons, fmt.Sprintf(
				"P2 stronger (rating +%s, H2H %d-%d) & odds %s >= %s",
				formatNumber(-ratingDiff), h2h.BWins, h2h.AWins, formatNumber(price), formatNumber(d.MinPrice),
			))
			analysis.Score += d.SignalScore
		}
	}

	return analysis
}

func (d *RuleBasedDetector) qualifies(price float64) bool {
	return d.ValidPrice(price) && price >= d.MinPrice
}
