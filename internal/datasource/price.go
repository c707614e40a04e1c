package datasource

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/tt-value/internal/models"
)

// ParsePrice parses a decimal price as printed by bookmakers, accepting
// either "1.75" or "1,75".
func ParsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("%w: empty price", ErrInvalidData)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q: %v", ErrInvalidData, raw, err)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: price %q is not positive", ErrInvalidData, raw)
	}
	f, _ := d.Round(3).Float64()
	return f, nil
}

// parseFeedPrice decodes a price given either as a JSON number or a string
func parseFeedPrice(data json.RawMessage) (float64, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("%w: price %s: %v", ErrInvalidData, string(data), err)
	}
	switch v := raw.(type) {
	case float64:
		if v <= 0 || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: price %s is not positive", ErrInvalidData, string(data))
		}
		return v, nil
	case string:
		return ParsePrice(v)
	default:
		return 0, fmt.Errorf("%w: unsupported price %s", ErrInvalidData, string(data))
	}
}

// decodeFeedOdds parses each price on its own so one bad value only loses
// that outcome
func decodeFeedOdds(raw map[string]json.RawMessage, logger *logrus.Entry) models.Odds {
	odds := make(models.Odds, len(raw))
	for label, data := range raw {
		price, err := parseFeedPrice(data)
		if err != nil {
			logger.WithError(err).WithField("label", label).Debug("Skipping unparseable price")
			continue
		}
		odds[label] = price
	}
	return odds
}
