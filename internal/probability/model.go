// Package probability estimates win probabilities for a pair of known players.
package probability

import (
	"fmt"
	"math"

	"github.com/yourusername/tt-value/internal/models"
)

// Model constants, in percentage points
const (
	BaseProbability = 50
	MinProbability  = 5
	MaxProbability  = 95

	RatingPointsPerPercent = 10.0
	MaxRatingBonus         = 100

	DominanceRate    = 0.7
	AdvantageRate    = 0.6
	DisadvantageRate = 0.4
	SubmissionRate   = 0.3
	DominanceBonus   = 15
	AdvantageBonus   = 8
	FormPointsPerNet = 3
	MomentumMinWins  = 3
	MomentumBonus    = 5
)

// Estimate combines rating, head-to-head and daily form into a clamped estimate
// for player A against player B. ProbA + ProbB is always 100.
func Estimate(a, b models.Player, h2h models.HeadToHead) models.ProbabilityEstimate {
	est := models.ProbabilityEstimate{Factors: []models.Factor{}}
	total := BaseProbability

	ratingDiff := a.Rating - b.Rating
	ratingBonus := ratingPoints(ratingDiff)
	if ratingBonus != 0 {
		total += ratingBonus
		est.Factors = append(est.Factors, models.Factor{
			Name:        "Rating edge",
			Value:       ratingBonus,
			Description: fmt.Sprintf("%s point difference", formatPoints(math.Abs(ratingDiff))),
		})
	}

	if h2hBonus, factor, dominance := headToHeadFactor(h2h); h2hBonus != 0 {
		total += h2hBonus
		est.Dominance = dominance
		est.Factors = append(est.Factors, factor)
	}

	formBonus := FormPointsPerNet*(a.DailyWins-a.DailyLosses) - FormPointsPerNet*(b.DailyWins-b.DailyLosses)
	if a.DailyWins >= MomentumMinWins && a.DailyLosses == 0 {
		formBonus += MomentumBonus
		est.Momentum = true
	}
	if formBonus != 0 {
		total += formBonus
		desc := fmt.Sprintf("A: %dW/%dL vs B: %dW/%dL", a.DailyWins, a.DailyLosses, b.DailyWins, b.DailyLosses)
		if est.Momentum {
			desc += " (unbeaten streak)"
		}
		est.Factors = append(est.Factors, models.Factor{
			Name:        "Daily form",
			Value:       formBonus,
			Description: desc,
		})
	}

	est.ProbA = clamp(total)
	est.ProbB = 100 - est.ProbA
	return est
}

// headToHeadFactor picks the first matching win-rate bucket.
func headToHeadFactor(h2h models.HeadToHead) (int, models.Factor, bool) {
	if h2h.Total <= 0 {
		return 0, models.Factor{}, false
	}
	rate := h2h.WinRateA()
	record := fmt.Sprintf("%d-%d in %d", h2h.AWins, h2h.BWins, h2h.Total)

	switch {
	case rate >= DominanceRate:
		return DominanceBonus, models.Factor{Name: "H2H dominance", Value: DominanceBonus, Description: "Dominant record " + record}, true
	case rate >= AdvantageRate:
		return AdvantageBonus, models.Factor{Name: "H2H advantage", Value: AdvantageBonus, Description: "Stable edge " + record}, false
	case rate <= SubmissionRate:
		return -DominanceBonus, models.Factor{Name: "H2H disadvantage", Value: -DominanceBonus, Description: "Opponent dominates " + record}, false
	case rate <= DisadvantageRate:
		return -AdvantageBonus, models.Factor{Name: "H2H disadvantage", Value: -AdvantageBonus, Description: "Negative record " + record}, false
	}
	return 0, models.Factor{}, false
}

// ratingPoints converts a rating difference to whole percentage points,
// rounding halves toward positive infinity so -2.5 becomes -2.
func ratingPoints(diff float64) int {
	if math.IsNaN(diff) {
		return 0
	}
	points := math.Floor(diff/RatingPointsPerPercent + 0.5)
	return int(math.Max(-MaxRatingBonus, math.Min(MaxRatingBonus, points)))
}

func clamp(p int) int {
	if p < MinProbability {
		return MinProbability
	}
	if p > MaxProbability {
		return MaxProbability
	}
	return p
}

func formatPoints(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
