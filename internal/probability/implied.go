package probability

// ImpliedProbability converts a decimal price into the bookmaker's implied probability.
// Prices at or below 1 carry no information and return 0.
func ImpliedProbability(price float64) float64 {
	if price <= 1 {
		return 0
	}
	return 1 / price
}

// FairProbabilities strips the overround from a two-way market.
func FairProbabilities(priceA, priceB float64) (float64, float64) {
	rawA := ImpliedProbability(priceA)
	rawB := ImpliedProbability(priceB)
	total := rawA + rawB
	if total == 0 {
		return 0, 0
	}
	return rawA / total, rawB / total
}

// Overround returns the bookmaker margin of a two-way market (0.05 = 5%).
func Overround(priceA, priceB float64) float64 {
	rawA := ImpliedProbability(priceA)
	rawB := ImpliedProbability(priceB)
	if rawA == 0 || rawB == 0 {
		return 0
	}
	return rawA + rawB - 1
}

// Edge is the model probability (in percent) minus the fair market probability.
func Edge(modelPercent int, fair float64) float64 {
	return float64(modelPercent)/100 - fair
}
