package evaluator

import "math"

// CalculateBuyPrice computes the offer for a market value at the given
// offer percentage, rounded to the configured granularity (1, 5 or 10
// dollars). Halves round away from zero. Inputs are not clamped: a
// negative market value yields a negative rounded offer, and non-finite
// values propagate through the arithmetic. The settings manager validates
// the policy fields before they reach this point.
func CalculateBuyPrice(marketValue, offerPercentage, rounding float64) float64 {
	raw := marketValue * offerPercentage / 100
	if rounding <= 1 {
		return math.Round(raw)
	}
	return math.Round(raw/rounding) * rounding
}
