package evaluator

// liquidityRanks orders the five liquidity labels by desirability.
var liquidityRanks = map[string]int{
	"cold": 1,
	"cool": 2,
	"warm": 3,
	"hot":  4,
	"fire": 5,
}

// flipDays maps a liquidity label to an estimated days-to-sell.
var flipDays = map[string]int{
	"fire": 7,
	"hot":  14,
	"warm": 21,
	"cool": 30,
	"cold": 60,
}

// LiquidityRank returns the ordinal rank of a liquidity label
// (cold=1 ... fire=5). Unknown labels rank 0, below every real level,
// so bad upstream data fails any configured minimum instead of crashing
// the scan flow.
func LiquidityRank(label string) int {
	return liquidityRanks[label]
}

// EstimateFlipDays returns the estimated days to resell at the given
// liquidity. Unknown labels get the neutral 30 days rather than the worst
// case: a mangled label should bias the rank check toward rejection, but
// it should not spuriously flag a slow exit.
func EstimateFlipDays(label string) int {
	if d, ok := flipDays[label]; ok {
		return d
	}
	return 30
}
