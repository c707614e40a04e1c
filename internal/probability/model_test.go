package probability

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tt-value/internal/models"
)

func TestEstimateWorkedExample(t *testing.T) {
	a := models.Player{ID: 1, Name: "A", Rating: 1000, DailyWins: 2, DailyLosses: 0}
	b := models.Player{ID: 2, Name: "B", Rating: 900, DailyWins: 0, DailyLosses: 1}
	h2h := models.HeadToHead{AWins: 8, BWins: 2, Total: 10}

	est := Estimate(a, b, h2h)

	assert.Equal(t, 84, est.ProbA)
	assert.Equal(t, 16, est.ProbB)
	assert.True(t, est.Dominance)
	assert.False(t, est.Momentum, "momentum needs at least three wins")

	require.Len(t, est.Factors, 3)
	assert.Equal(t, "Rating edge", est.Factors[0].Name)
	assert.Equal(t, 10, est.Factors[0].Value)
	assert.Equal(t, "H2H dominance", est.Factors[1].Name)
	assert.Equal(t, 15, est.Factors[1].Value)
	assert.Equal(t, "Daily form", est.Factors[2].Name)
	assert.Equal(t, 9, est.Factors[2].Value)
}

func TestEstimateEvenMatch(t *testing.T) {
	p := models.Player{Rating: 500}
	est := Estimate(p, p, models.HeadToHead{})
	assert.Equal(t, 50, est.ProbA)
	assert.Equal(t, 50, est.ProbB)
	assert.Empty(t, est.Factors)
	assert.NotNil(t, est.Factors)
}

func TestEstimateHeadToHeadBuckets(t *testing.T) {
	tests := []struct {
		name      string
		aWins     int
		total     int
		bonus     int
		dominance bool
	}{
		{"dominance at 70%", 7, 10, 15, true},
		{"dominance at 100%", 4, 4, 15, true},
		{"advantage at 60%", 6, 10, 8, false},
		{"advantage at 69%", 69, 100, 8, false},
		{"neutral at 50%", 5, 10, 0, false},
		{"neutral just above 40%", 41, 100, 0, false},
		{"disadvantage at 40%", 4, 10, -8, false},
		{"disadvantage just above 30%", 31, 100, -8, false},
		{"submission at 30%", 3, 10, -15, false},
		{"submission at 0%", 0, 5, -15, false},
	}

	p := models.Player{Rating: 500}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h2h := models.HeadToHead{AWins: tt.aWins, BWins: tt.total - tt.aWins, Total: tt.total}
			est := Estimate(p, p, h2h)
			assert.Equal(t, 50+tt.bonus, est.ProbA)
			assert.Equal(t, tt.dominance, est.Dominance)
			if tt.bonus == 0 {
				assert.Empty(t, est.Factors)
			} else {
				require.Len(t, est.Factors, 1)
				assert.Equal(t, tt.bonus, est.Factors[0].Value)
			}
		})
	}
}

func TestEstimateMomentum(t *testing.T) {
	a := models.Player{Rating: 500, DailyWins: 3}
	b := models.Player{Rating: 500}
	est := Estimate(a, b, models.HeadToHead{})

	assert.True(t, est.Momentum)
	assert.Equal(t, 50+9+5, est.ProbA)
	require.Len(t, est.Factors, 1)
	assert.Equal(t, 14, est.Factors[0].Value)
	assert.Contains(t, est.Factors[0].Description, "A: 3W/0L vs B: 0W/0L")

	a.DailyLosses = 1
	est = Estimate(a, b, models.HeadToHead{})
	assert.False(t, est.Momentum)
	assert.Equal(t, 56, est.ProbA)
}

func TestEstimateFormCancelsOut(t *testing.T) {
	a := models.Player{Rating: 500, DailyWins: 2, DailyLosses: 1}
	b := models.Player{Rating: 500, DailyWins: 1}
	est := Estimate(a, b, models.HeadToHead{})
	assert.Equal(t, 50, est.ProbA)
	assert.Empty(t, est.Factors)
}

func TestEstimateClamps(t *testing.T) {
	strong := models.Player{Rating: 2000, DailyWins: 10}
	weak := models.Player{Rating: 100, DailyLosses: 10}

	est := Estimate(strong, weak, models.HeadToHead{AWins: 30, Total: 30})
	assert.Equal(t, MaxProbability, est.ProbA)
	assert.Equal(t, 5, est.ProbB)
	assert.True(t, est.Dominance)
	assert.True(t, est.Momentum)

	est = Estimate(weak, strong, models.HeadToHead{BWins: 30, Total: 30})
	assert.Equal(t, MinProbability, est.ProbA)
	assert.Equal(t, 95, est.ProbB)
	assert.False(t, est.Dominance)
	assert.False(t, est.Momentum)
}

func TestEstimateRatingRounding(t *testing.T) {
	a := models.Player{Rating: 526}
	b := models.Player{Rating: 500}
	assert.Equal(t, 53, Estimate(a, b, models.HeadToHead{}).ProbA)
	assert.Equal(t, 47, Estimate(b, a, models.HeadToHead{}).ProbA)

	a.Rating = 504
	est := Estimate(a, b, models.HeadToHead{})
	assert.Equal(t, 50, est.ProbA)
	assert.Empty(t, est.Factors)

	// Halves round upward for both signs.
	est = Estimate(models.Player{Rating: 900}, models.Player{Rating: 925}, models.HeadToHead{})
	assert.Equal(t, 48, est.ProbA)
	require.Len(t, est.Factors, 1)
	assert.Equal(t, -2, est.Factors[0].Value)

	est = Estimate(models.Player{Rating: 925}, models.Player{Rating: 900}, models.HeadToHead{})
	assert.Equal(t, 53, est.ProbA)
	assert.Equal(t, 3, est.Factors[0].Value)
}

func TestEstimateExtremeRatings(t *testing.T) {
	est := Estimate(models.Player{Rating: 1e20}, models.Player{Rating: 0}, models.HeadToHead{})
	assert.Equal(t, MaxProbability, est.ProbA)
	assert.Equal(t, MinProbability, est.ProbB)
	require.Len(t, est.Factors, 1)
	assert.Equal(t, MaxRatingBonus, est.Factors[0].Value)

	est = Estimate(models.Player{Rating: 0}, models.Player{Rating: 1e20}, models.HeadToHead{})
	assert.Equal(t, MinProbability, est.ProbA)
	assert.Equal(t, -MaxRatingBonus, est.Factors[0].Value)

	est = Estimate(models.Player{Rating: math.Inf(1)}, models.Player{Rating: 0}, models.HeadToHead{})
	assert.Equal(t, MaxProbability, est.ProbA)

	est = Estimate(models.Player{Rating: math.NaN()}, models.Player{Rating: 900}, models.HeadToHead{})
	assert.Equal(t, 50, est.ProbA)
	assert.Equal(t, 50, est.ProbB)
	assert.Empty(t, est.Factors)
}

func TestEstimateInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		a := models.Player{
			Rating:      float64(rng.Intn(2000)),
			DailyWins:   rng.Intn(8),
			DailyLosses: rng.Intn(8),
		}
		b := models.Player{
			Rating:      float64(rng.Intn(2000)),
			DailyWins:   rng.Intn(8),
			DailyLosses: rng.Intn(8),
		}
		total := rng.Intn(20)
		aWins := 0
		if total > 0 {
			aWins = rng.Intn(total + 1)
		}
		h2h := models.HeadToHead{AWins: aWins, BWins: total - aWins, Total: total}

		est := Estimate(a, b, h2h)

		require.Equal(t, 100, est.ProbA+est.ProbB)
		require.GreaterOrEqual(t, est.ProbA, MinProbability)
		require.LessOrEqual(t, est.ProbA, MaxProbability)
		require.GreaterOrEqual(t, est.ProbB, MinProbability)
		require.LessOrEqual(t, est.ProbB, MaxProbability)

		wantDominance := total > 0 && float64(aWins)/float64(total) >= DominanceRate
		require.Equal(t, wantDominance, est.Dominance)
		require.Equal(t, a.DailyWins >= 3 && a.DailyLosses == 0, est.Momentum)
	}
}

func TestImpliedProbability(t *testing.T) {
	assert.InDelta(t, 0.5, ImpliedProbability(2.0), 1e-9)
	assert.InDelta(t, 1/1.75, ImpliedProbability(1.75), 1e-9)
	assert.Equal(t, 0.0, ImpliedProbability(1.0))
	assert.Equal(t, 0.0, ImpliedProbability(0))
}

func TestFairProbabilities(t *testing.T) {
	a, b := FairProbabilities(1.85, 1.85)
	assert.InDelta(t, 0.5, a, 1e-9)
	assert.InDelta(t, 0.5, b, 1e-9)
	assert.InDelta(t, 1, a+b, 1e-9)

	a, b = FairProbabilities(0, 0)
	assert.Zero(t, a)
	assert.Zero(t, b)

	assert.InDelta(t, 2/1.85-1, Overround(1.85, 1.85), 1e-9)
	assert.Zero(t, Overround(1.85, 0))
	assert.InDelta(t, 0.1, Edge(60, 0.5), 1e-9)
}
