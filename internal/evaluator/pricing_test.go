package evaluator

import "testing"

func TestCalculateBuyPrice(t *testing.T) {
	tests := []struct {
		name        string
		marketValue float64
		offerPct    float64
		rounding    float64
		want        float64
	}{
		{"ninety pct to nearest 5", 100, 90, 5, 90},
		{"exact multiple unchanged", 500, 90, 5, 450},
		{"rounds up to nearest 5", 448, 90, 5, 405},
		{"rounds down to nearest 5", 47, 90, 5, 40},
		{"half rounds away", 25, 90, 5, 25}, // raw 22.5
		{"nearest whole dollar", 47, 90, 1, 42},
		{"nearest 10", 123, 80, 10, 100},
		{"zero market value", 0, 90, 5, 0},
		{"small value rounds to zero", 2, 90, 5, 0},
		{"full offer", 100, 100, 1, 100},
		{"negative value stays negative", -100, 90, 5, -90},
	}
	for _, tt := range tests {
		if got := CalculateBuyPrice(tt.marketValue, tt.offerPct, tt.rounding); got != tt.want {
			t.Errorf("%s: CalculateBuyPrice(%.f, %.f, %.f) = %.2f, want %.2f",
				tt.name, tt.marketValue, tt.offerPct, tt.rounding, got, tt.want)
		}
	}
}
