package model

import "time"

// DeskSettings is the user-configured buying policy. It is persisted by
// the settings manager and passed read-only into the evaluator.
type DeskSettings struct {
	DefaultOfferPercentage float64   `json:"default_offer_percentage"` // fraction of market value offered, 0-100
	HousePercentage        float64   `json:"house_percentage"`         // informational margin target, not enforced
	PriceRounding          float64   `json:"price_rounding"`           // 1, 5 or 10 dollars
	AutoDenyEnabled        bool      `json:"auto_deny_enabled"`
	MinLiquidityLevel      string    `json:"min_liquidity_level"`
	MinConfidenceLevel     float64   `json:"min_confidence_level"` // 0-100
	MinMarketValue         float64   `json:"min_market_value"`
	TargetFlipDays         int       `json:"target_flip_days"`
	MinROIPercentage       float64   `json:"min_roi_percentage"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// DefaultSettings returns the out-of-the-box policy. The defaults are
// permissive: minimum liquidity "cold" accepts every label, and the
// confidence and value floors are low bars. Strictness is opt-in.
func DefaultSettings() DeskSettings {
	return DeskSettings{
		DefaultOfferPercentage: 90,
		HousePercentage:        10,
		PriceRounding:          5,
		AutoDenyEnabled:        true,
		MinLiquidityLevel:      "cold",
		MinConfidenceLevel:     40,
		MinMarketValue:         10,
		TargetFlipDays:         14,
		MinROIPercentage:       50,
	}
}
