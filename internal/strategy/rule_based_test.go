package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tt-value/internal/models"
)

type fixedHistory map[[2]int64]models.HeadToHead

func (f fixedHistory) HeadToHead(idA, idB int64) models.HeadToHead {
	if h, ok := f[[2]int64{idA, idB}]; ok {
		return h
	}
	if h, ok := f[[2]int64{idB, idA}]; ok {
		return models.HeadToHead{AWins: h.BWins, BWins: h.AWins, Total: h.Total}
	}
	return models.HeadToHead{}
}

func players(ratingA, ratingB float64) (*models.Player, *models.Player) {
	return &models.Player{ID: 1, Name: "Medek Josef", Rating: ratingA},
		&models.Player{ID: 2, Name: "Novak Petr", Rating: ratingB}
}

func TestDetectSideASignal(t *testing.T) {
	history := fixedHistory{{1, 2}: {AWins: 6, BWins: 2, Total: 8}}
	d := NewRuleBasedDetector(history)
	a, b := players(1120, 1000)

	analysis := d.Detect(a, b, models.Odds{"H": 1.75, "V": 2.05})

	assert.True(t, analysis.IsValue)
	assert.Equal(t, 10, analysis.Score)
	require.Len(t, analysis.Reasons, 1)
	assert.Contains(t, analysis.Reasons[0], "+120")
	assert.Contains(t, analysis.Reasons[0], "6-2")
	assert.Contains(t, analysis.Reasons[0], "1.75 >= 1.5")
}

func TestDetectSideBSignal(t *testing.T) {
	history := fixedHistory{{1, 2}: {AWins: 1, BWins: 1, Total: 2}}
	d := NewRuleBasedDetector(history)
	a, b := players(900, 1000)

	analysis := d.Detect(a, b, models.Odds{"H": 1.3, "V": 2.1})

	assert.True(t, analysis.IsValue)
	assert.Equal(t, 10, analysis.Score)
	require.Len(t, analysis.Reasons, 1)
	assert.Equal(t, "P2 stronger (rating +100, H2H 1-1) & odds 2.1 >= 1.5", analysis.Reasons[0])
}

func TestDetectNoSignalCases(t *testing.T) {
	tests := []struct {
		name    string
		ratingA float64
		ratingB float64
		h2h     models.HeadToHead
		odds    models.Odds
	}{
		{"gap exactly 50", 1050, 1000, models.HeadToHead{}, models.Odds{"H": 2.0, "V": 2.0}},
		{"gap exactly -50", 1000, 1050, models.HeadToHead{}, models.Odds{"H": 2.0, "V": 2.0}},
		{"stronger side behind on h2h", 1200, 1000, models.HeadToHead{AWins: 2, BWins: 3, Total: 5}, models.Odds{"H": 2.0}},
		{"price below minimum", 1200, 1000, models.HeadToHead{}, models.Odds{"H": 1.49, "V": 3.0}},
		{"first outcome missing", 1200, 1000, models.HeadToHead{}, models.Odds{"V": 3.0}},
		{"empty odds", 1200, 1000, models.HeadToHead{}, models.Odds{}},
		{"garbage price", 1200, 1000, models.HeadToHead{}, models.Odds{"H": math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewRuleBasedDetector(fixedHistory{{1, 2}: tt.h2h})
			a, b := players(tt.ratingA, tt.ratingB)
			analysis := d.Detect(a, b, tt.odds)
			assert.False(t, analysis.IsValue)
			assert.Equal(t, 0, analysis.Score)
			assert.Empty(t, analysis.Reasons)
		})
	}
}

func TestDetectPriceAtThreshold(t *testing.T) {
	d := NewRuleBasedDetector(nil)
	a, b := players(1100, 1000)
	analysis := d.Detect(a, b, models.Odds{"H": 1.5})
	assert.True(t, analysis.IsValue)
	assert.Contains(t, analysis.Reasons[0], "H2H 0-0")
}

func TestDetectShortCircuits(t *testing.T) {
	d := NewRuleBasedDetector(nil)
	a, b := players(1200, 1000)

	for _, analysis := range []models.ValueAnalysis{
		d.Detect(nil, b, models.Odds{"H": 2}),
		d.Detect(a, nil, models.Odds{"H": 2}),
		d.Detect(a, b, nil),
	} {
		assert.Equal(t, models.NoSignal(), analysis)
		assert.NotNil(t, analysis.Reasons)
	}
}

func TestDetectMonotonicInRatingGap(t *testing.T) {
	history := fixedHistory{{1, 2}: {AWins: 3, BWins: 3, Total: 6}}
	d := NewRuleBasedDetector(history)
	odds := models.Odds{"H": 1.8, "V": 1.8}

	for gap := 51.0; gap <= 1000; gap += 7 {
		a, b := players(1000+gap, 1000)
		analysis := d.Detect(a, b, odds)
		require.True(t, analysis.IsValue, "gap %v", gap)
		require.Len(t, analysis.Reasons, 1)
		require.Contains(t, analysis.Reasons[0], "P1 stronger")
		require.Equal(t, 10, analysis.Score)
	}
}

func TestDetectCustomOutcomeLabels(t *testing.T) {
	d := NewRuleBasedDetector(nil)
	d.FirstOutcome = "1"
	d.SecondOutcome = "2"
	a, b := players(1000, 1200)

	analysis := d.Detect(a, b, models.Odds{"1": 1.2, "2": 1.6})
	assert.True(t, analysis.IsValue)
	assert.Contains(t, analysis.Reasons[0], "1.6 >= 1.5")
}

func TestDetectorMetadata(t *testing.T) {
	d := NewRuleBasedDetector(nil)
	var _ Detector = d
	assert.Equal(t, "rating_h2h_value", d.Name())
	params := d.GetParameters()
	assert.Equal(t, 50.0, params["min_rating_gap"])
	assert.Equal(t, 1.5, params["min_price"])
}

func TestValidPrice(t *testing.T) {
	b := BaseStrategy{MinOdds: 1.01, MaxOdds: 1000}
	assert.True(t, b.ValidPrice(1.5))
	assert.False(t, b.ValidPrice(1.0))
	assert.False(t, b.ValidPrice(1001))
	assert.False(t, b.ValidPrice(math.Inf(1)))

	uncapped := BaseStrategy{MinOdds: 1.01}
	assert.True(t, uncapped.ValidPrice(5000))
	assert.False(t, uncapped.ValidPrice(math.NaN()))
}

func TestDetectLongPriceHasNoCap(t *testing.T) {
	d := NewRuleBasedDetector(fixedHistory{})
	a, b := players(1200, 1000)

	analysis := d.Detect(a, b, models.Odds{"H": 1001, "V": 1.01})

	assert.True(t, analysis.IsValue)
	require.Len(t, analysis.Reasons, 1)
	assert.Contains(t, analysis.Reasons[0], "odds 1001 >= 1.5")
}
