// Package history answers head-to-head and recent-form queries over the match log.
package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/yourusername/tt-value/internal/models"
)

// DefaultFormLength is the form length callers use when none is configured
const DefaultFormLength = 5

// Index is a read-only view over an append-only match log.
// Queries are linear scans; the log is small enough that no secondary index is kept.
type Index struct {
	matches []models.MatchRecord
}

// NewIndex wraps the match log. A nil log yields an empty index.
func NewIndex(matches []models.MatchRecord) *Index {
	return &Index{matches: matches}
}

// Len returns the number of records in the log
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.matches)
}

// HeadToHead tallies the matches played between idA and idB in either order.
// Matches are returned newest first.
func (i *Index) HeadToHead(idA, idB int64) models.HeadToHead {
	h2h := models.HeadToHead{}
	if i == nil {
		return h2h
	}

	for _, m := range i.matches {
		direct := m.PlayerOneID == idA && m.PlayerTwoID == idB
		reverse := m.PlayerOneID == idB && m.PlayerTwoID == idA
		if !direct && !reverse {
			continue
		}
		switch m.WinnerID {
		case idA:
			h2h.AWins++
		case idB:
			h2h.BWins++
		}
		h2h.Matches = append(h2h.Matches, m)
	}

	h2h.Total = len(h2h.Matches)
	sortNewestFirst(h2h.Matches)
	return h2h
}

// RecentForm returns at most n of the player's latest results oriented to the player.
// A non-positive n yields an empty slice.
func (i *Index) RecentForm(id int64, n int) []models.FormEntry {
	if n <= 0 {
		return []models.FormEntry{}
	}
	involved := i.involving(id)
	sortNewestFirst(involved)
	if len(involved) > n {
		involved = involved[:n]
	}

	form := make([]models.FormEntry, 0, len(involved))
	for _, m := range involved {
		form = append(form, orient(m, id))
	}
	return form
}

// DailyRecord counts the player's wins and losses on the calendar day of day,
// evaluated in day's location.
func (i *Index) DailyRecord(id int64, day time.Time) (wins, losses int) {
	y, mo, d := day.Date()
	for _, m := range i.involving(id) {
		my, mm, md := m.Date.In(day.Location()).Date()
		if my != y || mm != mo || md != d {
			continue
		}
		if m.WinnerID == id {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}

func (i *Index) involving(id int64) []models.MatchRecord {
	if i == nil {
		return nil
	}
	var out []models.MatchRecord
	for _, m := range i.matches {
		if m.Involves(id) {
			out = append(out, m)
		}
	}
	return out
}

func orient(m models.MatchRecord, id int64) models.FormEntry {
	entry := models.FormEntry{Date: m.Date, Result: models.FormLoss}
	if m.WinnerID == id {
		entry.Result = models.FormWin
	}
	if m.PlayerOneID == id {
		entry.OpponentID = m.PlayerTwoID
		entry.OpponentName = m.PlayerTwoName
		entry.Score = fmt.Sprintf("%d-%d", m.ScoreOne, m.ScoreTwo)
	} else {
		entry.OpponentID = m.PlayerOneID
		entry.OpponentName = m.PlayerOneName
		entry.Score = fmt.Sprintf("%d-%d", m.ScoreTwo, m.ScoreOne)
	}
	return entry
}

// sortNewestFirst keeps log order among equal timestamps.
func sortNewestFirst(matches []models.MatchRecord) {
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Date.After(matches[b].Date)
	})
}
