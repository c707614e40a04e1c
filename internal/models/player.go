package models

import (
	"sort"
	"time"
)

// Player represents a known player from the stats dataset
type Player struct {
	ID          int64   `json:"id" db:"id" validate:"required"`
	Name        string  `json:"name" db:"name" validate:"required"`
	Rating      float64 `json:"rating" db:"rating"`
	ImageURL    string  `json:"image_url,omitempty" db:"image_url"`
	DailyWins   int     `json:"daily_wins" db:"-"`
	DailyLosses int     `json:"daily_losses" db:"-"`
}

// Summary returns the presentation view of the player
func (p *Player) Summary() PlayerSummary {
	return PlayerSummary{ID: p.ID, Name: p.Name, Rating: p.Rating}
}

// MatchRecord represents a finished match from the history log
type MatchRecord struct {
	TournamentID   int64     `json:"tournamentId" db:"tournament_id"`
	TournamentName string    `json:"tournamentName" db:"tournament_name"`
	Date           time.Time `json:"date" db:"played_at"`
	PlayerOneID    int64     `json:"playerOneId" db:"player_one_id"`
	PlayerOneName  string    `json:"playerOneName" db:"player_one_name"`
	PlayerTwoID    int64     `json:"playerTwoId" db:"player_two_id"`
	PlayerTwoName  string    `json:"playerTwoName" db:"player_two_name"`
	ScoreOne       int       `json:"scoreOne" db:"score_one"`
	ScoreTwo       int       `json:"scoreTwo" db:"score_two"`
	WinnerID       int64     `json:"winnerId" db:"winner_id"`
}

// Involves checks if the player took part in the match
func (m *MatchRecord) Involves(playerID int64) bool {
	return m.PlayerOneID == playerID || m.PlayerTwoID == playerID
}

// Snapshot is a read-only view of the stats dataset used for one analysis run
type Snapshot struct {
	Roster  []Player      `json:"players"`
	Matches []MatchRecord `json:"matches"`
}

// IsEmpty reports whether neither dataset was available
func (s Snapshot) IsEmpty() bool {
	return len(s.Roster) == 0 && len(s.Matches) == 0
}

// FindPlayer looks up a player by ID
func (s Snapshot) FindPlayer(id int64) (*Player, error) {
	for i := range s.Roster {
		if s.Roster[i].ID == id {
			p := s.Roster[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// NewRoster builds a roster from an ID keyed map, ordered by ascending ID
// so that identity matching is reproducible between runs.
func NewRoster(players map[int64]Player) []Player {
	roster := make([]Player, 0, len(players))
	for id, p := range players {
		if p.ID == 0 {
			p.ID = id
		}
		roster = append(roster, p)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return roster
}
