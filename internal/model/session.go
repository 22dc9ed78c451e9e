package model

import "time"

// SessionStatus marks the lifecycle stage of a buying session.
type SessionStatus string

const (
	SessionOpen    SessionStatus = "OPEN"
	SessionClosed  SessionStatus = "CLOSED"
	SessionExpired SessionStatus = "EXPIRED"
)

// ScanResult is one evaluated card inside a session.
type ScanResult struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"session_id"`
	Card       Card           `json:"card"`
	Snapshot   MarketSnapshot `json:"snapshot"`
	Evaluation Evaluation     `json:"evaluation"`
	Resolved   bool           `json:"resolved"` // review items only
	FinalPrice float64        `json:"final_price,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// SessionTotals accumulates per-session counters. Spend and profit count
// accepted cards only; pending review items contribute nothing until
// resolved.
type SessionTotals struct {
	Scanned        int     `json:"scanned"`
	Accepted       int     `json:"accepted"`
	Denied         int     `json:"denied"`
	PendingReview  int     `json:"pending_review"`
	TotalSpend     float64 `json:"total_spend"`
	ExpectedProfit float64 `json:"expected_profit"`
}

// Session is one buying-desk sitting with a seller.
type Session struct {
	ID             string        `json:"id"`
	BuyerContactID string        `json:"buyer_contact_id"`
	Status         SessionStatus `json:"status"`
	Scans          []ScanResult  `json:"scans"`
	Totals         SessionTotals `json:"totals"`
	OpenedAt       time.Time     `json:"opened_at"`
	ClosedAt       time.Time     `json:"closed_at,omitempty"`
	LastActivityAt time.Time     `json:"last_activity_at"`
}
