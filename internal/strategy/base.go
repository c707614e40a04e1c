package strategy

import (
	"math"
	"strconv"
)

// BaseStrategy provides shared price handling for detectors
type BaseStrategy struct {
	MinOdds float64
	MaxOdds float64
}

// ValidPrice reports whether a quoted price is usable
func (b *BaseStrategy) ValidPrice(price float64) bool {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 1.0 {
		return false
	}
	if b.MinOdds > 0 && price < b.MinOdds {
		return false
	}
	if b.MaxOdds > 0 && price > b.MaxOdds {
		return false
	}
	return true
}

// formatNumber renders a number without trailing zeros (120, 1.75, 1.5)
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
