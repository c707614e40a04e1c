package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tt-value/internal/models"
)

func lookupSnapshot() models.Snapshot {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.Snapshot{
		Roster: []models.Player{
			{ID: 1, Name: "Medek Josef", Rating: 1000},
			{ID: 2, Name: "Novak Petr", Rating: 900},
		},
		Matches: []models.MatchRecord{
			{Date: at, PlayerOneID: 1, PlayerTwoID: 2, ScoreOne: 3, ScoreTwo: 1, WinnerID: 1},
			{Date: at.Add(time.Hour), PlayerOneID: 2, PlayerTwoID: 1, ScoreOne: 3, ScoreTwo: 2, WinnerID: 2},
			{Date: at.Add(2 * time.Hour), PlayerOneID: 1, PlayerTwoID: 2, ScoreOne: 3, ScoreTwo: 0, WinnerID: 1},
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestPlayerFormEndpoint(t *testing.T) {
	h, _ := newTestHandlers(&fakeRefresher{}, noon())

	rec := get(t, h, "/api/players/1/form?n=2")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec.Body.Bytes())
	assert.True(t, env.Success)

	var form struct {
		Form []models.FormEntry `json:"form"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &form))
	require.Len(t, form.Form, 2)
	assert.Equal(t, models.FormWin, form.Form[0].Result)
	assert.Equal(t, models.FormLoss, form.Form[1].Result)
}

func TestPlayerFormErrors(t *testing.T) {
	h, _ := newTestHandlers(&fakeRefresher{}, noon())

	tests := []struct {
		path   string
		status int
	}{
		{"/api/players/abc/form", http.StatusBadRequest},
		{"/api/players/1/form?n=-1", http.StatusBadRequest},
		{"/api/players/77/form", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec.Body.Bytes())
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestHeadToHeadEndpoint(t *testing.T) {
	h, _ := newTestHandlers(&fakeRefresher{}, noon())

	rec := get(t, h, "/api/h2h?a=1&b=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Record   models.HeadToHead           `json:"h2h"`
		Estimate *models.ProbabilityEstimate `json:"estimate"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec.Body.Bytes()).Data, &view))
	assert.Equal(t, 2, view.Record.AWins)
	assert.Equal(t, 1, view.Record.BWins)
	require.NotNil(t, view.Estimate)
	assert.Equal(t, 100, view.Estimate.ProbA+view.Estimate.ProbB)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/h2h?a=1").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/h2h?a=1&b=1").Code)
}

func TestResolveEndpoint(t *testing.T) {
	h, _ := newTestHandlers(&fakeRefresher{}, noon())

	rec := get(t, h, "/api/resolve?name=Novak%20P.")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Player models.Player `json:"player"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec.Body.Bytes()).Data, &res))
	assert.Equal(t, int64(2), res.Player.ID)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/resolve?name=Nobody").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/resolve").Code)
}
