package models

import (
	"strings"
	"time"
)

// Odds maps a market outcome label (e.g. "H", "V") to a decimal price
type Odds map[string]float64

// Price returns the price for the outcome label or 0 when it is not quoted
func (o Odds) Price(label string) float64 {
	if o == nil {
		return 0
	}
	return o[label]
}

// MaxPrice returns the highest quoted price
func (o Odds) MaxPrice() float64 {
	best := 0.0
	for _, v := range o {
		if v > best {
			best = v
		}
	}
	return best
}

// Listing represents an upcoming match as seen on the market
type Listing struct {
	Time      string    `json:"time"`
	PlayerA   string    `json:"playerA"`
	PlayerB   string    `json:"playerB"`
	Odds      Odds      `json:"odds"`
	ScrapedAt time.Time `json:"raw_date,omitempty"`
}

// Title returns a human readable "A vs B" label
func (l *Listing) Title() string {
	return strings.TrimSpace(l.PlayerA) + " vs " + strings.TrimSpace(l.PlayerB)
}

// Key identifies the listing within a scrape cycle
func (l *Listing) Key() string {
	return l.Time + "|" + strings.TrimSpace(l.PlayerA) + "|" + strings.TrimSpace(l.PlayerB)
}

// HeadToHead holds the derived record between two players
type HeadToHead struct {
	AWins   int           `json:"aWins"`
	BWins   int           `json:"bWins"`
	Total   int           `json:"totalMatches"`
	Matches []MatchRecord `json:"matches,omitempty"`
}

// WinRateA returns player A's share of the head-to-head matches
func (h HeadToHead) WinRateA() float64 {
	if h.Total == 0 {
		return 0
	}
	return float64(h.AWins) / float64(h.Total)
}

// FormResult is the outcome of a match from one player's perspective
type FormResult string

const (
	FormWin  FormResult = "W"
	FormLoss FormResult = "L"
)

// FormEntry is a single recent result oriented to the queried player
type FormEntry struct {
	Result       FormResult `json:"result"`
	OpponentID   int64      `json:"opponentId"`
	OpponentName string     `json:"opponentName"`
	Date         time.Time  `json:"date"`
	Score        string     `json:"score"`
}
