package model

// ScanAction is the terminal classification of a scan evaluation.
type ScanAction string

const (
	ActionAutoAccept ScanAction = "auto_accept"
	ActionAutoDeny   ScanAction = "auto_deny"
	ActionReview     ScanAction = "review"
)

// Evaluation is the output of the auto-accept engine for one scan.
// BuyPrice, ExpectedProfit and ExpectedROI are set together whenever the
// action is auto_accept or review, and are all nil on auto_deny.
type Evaluation struct {
	Action         ScanAction `json:"action"`
	BuyPrice       *float64   `json:"buy_price,omitempty"`
	ExpectedProfit *float64   `json:"expected_profit,omitempty"`
	ExpectedROI    *float64   `json:"expected_roi,omitempty"`
	Reason         string     `json:"reason"`
	Details        []string   `json:"details"`
}
