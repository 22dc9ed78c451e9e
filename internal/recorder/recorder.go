package recorder

import (
	"errors"
	"time"

	"CardDesk/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ScanRecord holds one evaluated scan for the audit trail. Price fields
// are only meaningful when the action carried a price (accept/review).
type ScanRecord struct {
	ID             string
	SessionID      string
	Card           model.Card
	Snapshot       model.MarketSnapshot
	Action         model.ScanAction
	BuyPrice       float64
	ExpectedProfit float64
	ExpectedROI    float64
	Reason         string
	Details        []string
	Resolved       bool
	FinalPrice     float64
	CreatedAt      time.Time
}

// SessionRecord holds a closed session's outcome.
type SessionRecord struct {
	ID             string
	BuyerContactID string
	Status         model.SessionStatus
	Totals         model.SessionTotals
	OpenedAt       time.Time
	ClosedAt       time.Time
}

// ScanStats aggregates scan outcomes over a period, for digests.
type ScanStats struct {
	Scanned    int
	Accepted   int
	Denied     int
	Reviewed   int
	TotalSpend float64
}

// Recorder persists desk history and contact bookkeeping.
type Recorder interface {
	RecordScan(rec *ScanRecord) error
	MarkScanResolved(scanID string, accepted bool, finalPrice float64) error
	PendingReviewScans(limit int) ([]ScanRecord, error)
	RecordSession(rec *SessionRecord) error
	Stats(since time.Time) (*ScanStats, error)
	SaveContact(c *model.Contact) error
	GetContact(id string) (*model.Contact, error)
	ListContacts() ([]model.Contact, error)
	Close() error
}
