package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/models"
)

// dateLayouts are tried in order when reading match dates
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FileSource reads players.json and match_history.json from disk.
// Each file is optional; a missing or unreadable file yields an empty dataset.
type FileSource struct {
	playersPath string
	historyPath string
	logger      *logrus.Entry
}

// NewFileSource creates a file backed stats source
func NewFileSource(playersPath, historyPath string, logger *logrus.Logger) *FileSource {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &FileSource{
		playersPath: playersPath,
		historyPath: historyPath,
		logger:      logger.WithField("component", "stats_file"),
	}
}

type filePlayer struct {
	ID       flexInt  `json:"id"`
	Name     string   `json:"name"`
	Rating   *float64 `json:"rating"`
	ImageURL string   `json:"image_url"`
}

type fileMatch struct {
	TournamentID   flexInt `json:"tournamentId"`
	TournamentName string  `json:"tournamentName"`
	Date           string  `json:"date"`
	PlayerOneID    flexInt `json:"playerOneId"`
	PlayerOneName  string  `json:"playerOneName"`
	PlayerTwoID    flexInt `json:"playerTwoId"`
	PlayerTwoName  string  `json:"playerTwoName"`
	ScoreOne       int     `json:"scoreOne"`
	ScoreTwo       int     `json:"scoreTwo"`
	WinnerID       flexInt `json:"winnerId"`
}

// Load reads both files. It only fails when the context is done.
func (s *FileSource) Load(ctx context.Context) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}

	roster, err := s.loadPlayers()
	if err != nil {
		s.logger.WithError(err).WithField("path", s.playersPath).Warn("Players dataset unavailable, continuing with an empty roster")
		roster = []models.Player{}
	}

	matches, err := s.loadHistory()
	if err != nil {
		s.logger.WithError(err).WithField("path", s.historyPath).Warn("Match history unavailable, continuing with an empty log")
		matches = []models.MatchRecord{}
	}

	s.logger.WithFields(logrus.Fields{
		"players": len(roster),
		"matches": len(matches),
	}).Debug("Stats snapshot loaded")

	return models.Snapshot{Roster: roster, Matches: matches}, nil
}

func (s *FileSource) loadPlayers() ([]models.Player, error) {
	data, err := readOptional(s.playersPath)
	if err != nil {
		return nil, err
	}

	var raw map[string]filePlayer
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse players file: %w", err)
	}

	players := make(map[int64]models.Player, len(raw))
	for key, p := range raw {
		id := int64(p.ID)
		if id == 0 {
			parsed, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
			if err != nil {
				s.logger.WithField("key", key).Debug("Skipping player with non-numeric id")
				continue
			}
			id = parsed
		}
		player := models.Player{ID: id, Name: p.Name, ImageURL: p.ImageURL}
		if p.Rating != nil {
			player.Rating = *p.Rating
		}
		players[id] = player
	}

	return models.NewRoster(players), nil
}

func (s *FileSource) loadHistory() ([]models.MatchRecord, error) {
	data, err := readOptional(s.historyPath)
	if err != nil {
		return nil, err
	}

	var raw []fileMatch
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse match history file: %w", err)
	}

	matches := make([]models.MatchRecord, 0, len(raw))
	for _, m := range raw {
		date, err := parseDate(m.Date)
		if err != nil {
			s.logger.WithField("date", m.Date).Debug("Unparseable match date, keeping record undated")
		}
		matches = append(matches, models.MatchRecord{
			TournamentID:   int64(m.TournamentID),
			TournamentName: m.TournamentName,
			Date:           date,
			PlayerOneID:    int64(m.PlayerOneID),
			PlayerOneName:  m.PlayerOneName,
			PlayerTwoID:    int64(m.PlayerTwoID),
			PlayerTwoName:  m.PlayerTwoName,
			ScoreOne:       m.ScoreOne,
			ScoreTwo:       m.ScoreTwo,
			WinnerID:       int64(m.WinnerID),
		})
	}

	return matches, nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("no path configured: %w", os.ErrNotExist)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %s does not exist: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// flexInt decodes an id given as a number, a numeric string or null
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*f = flexInt(v)
	return nil
}
