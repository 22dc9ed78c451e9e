package model

import "time"

// Sale represents a single completed comp sale for a card at a grade.
type Sale struct {
	Price  float64   `json:"price"`
	SoldAt time.Time `json:"sold_at"`
}

// MarketSnapshot holds the per-card market data the evaluator consumes.
type MarketSnapshot struct {
	AveragePrice float64   `json:"average_price"`
	Confidence   float64   `json:"confidence"` // 0-100 data-quality score
	Liquidity    string    `json:"liquidity"`  // cold, cool, warm, hot, fire
	SalesCount   int       `json:"sales_count"`
	FetchedAt    time.Time `json:"fetched_at"`
}
