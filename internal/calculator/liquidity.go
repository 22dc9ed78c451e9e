package calculator

// LiquidityLabel buckets a sales-per-month rate into the five-level
// liquidity scale consumed by the evaluator.
func LiquidityLabel(salesPerMonth float64) string {
	switch {
	case salesPerMonth >= 30:
		return "fire"
	case salesPerMonth >= 15:
		return "hot"
	case salesPerMonth >= 6:
		return "warm"
	case salesPerMonth >= 2:
		return "cool"
	default:
		return "cold"
	}
}
