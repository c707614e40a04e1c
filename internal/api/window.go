package api

import (
	"time"

	"github.com/yourusername/tt-value/internal/config"
)

// ActiveWindow is the daily span of hours during which live data is served
type ActiveWindow struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

// DefaultWindow is 07:00 to 20:00 local time
func DefaultWindow() ActiveWindow {
	return ActiveWindow{StartHour: 7, EndHour: 20, Location: time.Local}
}

// NewActiveWindow builds the window from configuration
func NewActiveWindow(cfg *config.Config) (ActiveWindow, error) {
	loc, err := cfg.Location()
	if err != nil {
		return ActiveWindow{}, err
	}
	return ActiveWindow{StartHour: cfg.Window.StartHour, EndHour: cfg.Window.EndHour, Location: loc}, nil
}

// Contains reports whether StartHour <= hour(t) < EndHour in the window's zone
func (w ActiveWindow) Contains(t time.Time) bool {
	if w.Location != nil {
		t = t.In(w.Location)
	}
	h := t.Hour()
	return h >= w.StartHour && h < w.EndHour
}
