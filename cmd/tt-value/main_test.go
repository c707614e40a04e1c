package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tt-value/internal/models"
)

func TestParsePlayerID(t *testing.T) {
	id, err := parsePlayerID("1042")
	require.NoError(t, err)
	assert.Equal(t, int64(1042), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := parsePlayerID(raw)
		assert.Error(t, err, raw)
	}
}

func TestPrintListings(t *testing.T) {
	results := []models.AnnotatedListing{
		{
			Listing:  models.Listing{Time: "12:30", PlayerA: "Medek J.", PlayerB: "Novak P.", Odds: models.Odds{"H": 1.8, "V": 2.0}},
			Stats:    &models.MatchStats{},
			Analysis: models.ValueAnalysis{IsValue: true, Score: 10, Reasons: []string{"P1 stronger"}},
			Estimate: &models.ProbabilityEstimate{ProbA: 84, ProbB: 16},
		},
		{
			Listing:  models.Listing{Time: "13:00", PlayerA: "Unknown", PlayerB: "Novak P.", Odds: models.Odds{"H": 2.0, "V": 1.8}},
			Analysis: models.NoSignal(),
		},
	}

	var buf bytes.Buffer
	printListings(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "Medek J. vs Novak P.")
	assert.Contains(t, out, "84/16")
	assert.Contains(t, out, "yes (10)")
	assert.Contains(t, out, "unresolved")
}
