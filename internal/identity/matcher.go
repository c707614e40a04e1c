package identity

import (
	"strings"

	"github.com/yourusername/tt-value/internal/models"
)

// MinMatchScore is the minimum number of matched characters for a confident match.
// A lone two letter token is not enough.
const MinMatchScore = 3

type rosterEntry struct {
	player     *models.Player
	normalized string
}

// Matcher resolves listed names against a fixed roster.
//
// Scoring is a deliberately loose heuristic: each listed token longer than one
// character that occurs anywhere inside the normalized roster name adds its length.
// False positives are tolerated because a signal needs both sides resolved.
type Matcher struct {
	entries []rosterEntry
}

// NewMatcher pre-normalizes the roster. Roster order decides ties.
func NewMatcher(roster []models.Player) *Matcher {
	entries := make([]rosterEntry, len(roster))
	for i := range roster {
		entries[i] = rosterEntry{
			player:     &roster[i],
			normalized: Normalize(roster[i].Name),
		}
	}
	return &Matcher{entries: entries}
}

// Size returns the number of roster entries
func (m *Matcher) Size() int {
	return len(m.entries)
}

// Match returns the best scoring roster player, or false when nothing
// reaches MinMatchScore.
func (m *Matcher) Match(listedName string) (*models.Player, bool) {
	parts := tokens(Normalize(listedName))
	if len(parts) == 0 {
		return nil, false
	}

	var best *models.Player
	bestScore := 0
	for _, e := range m.entries {
		score := scoreTokens(parts, e.normalized)
		if score > bestScore {
			bestScore = score
			best = e.player
		}
	}

	if bestScore < MinMatchScore {
		return nil, false
	}
	return best, true
}

// Score returns the raw match score of a listed name against one player
func (m *Matcher) Score(listedName string, player models.Player) int {
	return scoreTokens(tokens(Normalize(listedName)), Normalize(player.Name))
}

// Match is a convenience wrapper for one-off lookups.
func Match(listedName string, roster []models.Player) (*models.Player, bool) {
	return NewMatcher(roster).Match(listedName)
}

func scoreTokens(parts []string, normalized string) int {
	score := 0
	for _, part := range parts {
		if strings.Contains(normalized, part) {
			score += len([]rune(part))
		}
	}
	return score
}
