package recorder

import (
	"time"

	"CardDesk/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *ScanRecord) error                      { return nil }
func (n *NoopRecorder) MarkScanResolved(_ string, _ bool, _ float64) error  { return nil }
func (n *NoopRecorder) PendingReviewScans(_ int) ([]ScanRecord, error)      { return nil, nil }
func (n *NoopRecorder) RecordSession(_ *SessionRecord) error                { return nil }
func (n *NoopRecorder) Stats(_ time.Time) (*ScanStats, error)               { return &ScanStats{}, nil }
func (n *NoopRecorder) SaveContact(_ *model.Contact) error                  { return nil }
func (n *NoopRecorder) GetContact(_ string) (*model.Contact, error)         { return nil, ErrNotFound }
func (n *NoopRecorder) ListContacts() ([]model.Contact, error)              { return nil, nil }
func (n *NoopRecorder) Close() error                                        { return nil }
