package evaluator

import "testing"

func TestLiquidityRank(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"cold", 1},
		{"cool", 2},
		{"warm", 3},
		{"hot", 4},
		{"fire", 5},
		{"", 0},
		{"unknown-label", 0},
		{"Hot", 0}, // labels are normalized upstream; ranking is exact
	}
	for _, tt := range tests {
		if got := LiquidityRank(tt.label); got != tt.want {
			t.Errorf("LiquidityRank(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestEstimateFlipDays(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"fire", 7},
		{"hot", 14},
		{"warm", 21},
		{"cool", 30},
		{"cold", 60},
		{"", 30},
		{"unknown-label", 30},
	}
	for _, tt := range tests {
		if got := EstimateFlipDays(tt.label); got != tt.want {
			t.Errorf("EstimateFlipDays(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

// The two unknown-label defaults are deliberately different: ranking
// failures fail the minimum-liquidity gate, flip estimates stay neutral.
func TestUnknownLabelAsymmetry(t *testing.T) {
	if LiquidityRank("mangled") != 0 {
		t.Error("unknown label must rank below every configured minimum")
	}
	if EstimateFlipDays("mangled") != 30 {
		t.Error("unknown label must get the neutral 30-day estimate")
	}
}
