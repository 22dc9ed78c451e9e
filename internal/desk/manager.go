package desk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"CardDesk/internal/evaluator"
	"CardDesk/internal/model"
	"CardDesk/internal/notifier"
	"CardDesk/internal/pricefeed"
	"CardDesk/internal/recorder"
	"CardDesk/internal/settings"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session is not open")
	ErrNotReviewable   = errors.New("scan is not pending review")
)

// Manager runs buying-desk sessions: it collects market data per scanned
// card, applies the auto-accept engine under the current policy, keeps
// running totals, and hands every outcome to the recorder.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*model.Session

	collector *pricefeed.Collector
	settings  *settings.Manager
	recorder  recorder.Recorder

	notifier  *notifier.WebhookNotifier // optional
	notifyMin float64                   // alert on auto-accepts at or above this price
}

// NewManager creates a desk Manager. notifier may be nil.
func NewManager(col *pricefeed.Collector, sm *settings.Manager, rec recorder.Recorder, wn *notifier.WebhookNotifier, notifyMin float64) *Manager {
	return &Manager{
		sessions:  make(map[string]*model.Session),
		collector: col,
		settings:  sm,
		recorder:  rec,
		notifier:  wn,
		notifyMin: notifyMin,
	}
}

// OpenSession starts a new buying session for a seller contact.
func (m *Manager) OpenSession(buyerContactID string) model.Session {
	now := time.Now()
	sess := &model.Session{
		ID:             uuid.NewString(),
		BuyerContactID: buyerContactID,
		Status:         model.SessionOpen,
		OpenedAt:       now,
		LastActivityAt: now,
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	log.Printf("[INFO] session %s opened for contact %q", sess.ID, buyerContactID)
	return *sess
}

// GetSession returns a copy of the session.
func (m *Manager) GetSession(id string) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	out := *sess
	out.Scans = append([]model.ScanResult(nil), sess.Scans...)
	return out, nil
}

// OpenSessionCount returns how many sessions are currently open.
func (m *Manager) OpenSessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.Status == model.SessionOpen {
			n++
		}
	}
	return n
}

// AddScan evaluates one card inside a session. Market data is fetched
// and evaluated outside the lock; the session is re-checked afterwards
// in case it closed during the fetch.
func (m *Manager) AddScan(sessionID string, card model.Card) (*model.ScanResult, error) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.Status != model.SessionOpen {
		m.mu.Unlock()
		return nil, ErrSessionClosed
	}
	m.mu.Unlock()

	snap, err := m.collector.Collect(card.CertNumber)
	if err != nil {
		return nil, fmt.Errorf("collect market data: %w", err)
	}

	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	policy := m.settings.Get()
	ev := evaluator.EvaluateScan(&card, snap, &policy)

	scan := model.ScanResult{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Card:       card,
		Snapshot:   *snap,
		Evaluation: *ev,
		CreatedAt:  time.Now(),
	}

	m.mu.Lock()
	sess, ok = m.sessions[sessionID]
	if !ok || sess.Status != model.SessionOpen {
		m.mu.Unlock()
		return nil, ErrSessionClosed
	}
	sess.Scans = append(sess.Scans, scan)
	sess.LastActivityAt = scan.CreatedAt
	applyScanTotals(&sess.Totals, ev)
	m.mu.Unlock()

	if err := m.recorder.RecordScan(scanRecord(&scan)); err != nil {
		log.Printf("[ERROR] record scan %s: %v", scan.ID, err)
	}

	if m.notifier != nil && ev.Action == model.ActionAutoAccept && *ev.BuyPrice >= m.notifyMin {
		report := notifier.FormatScanReport(&card, snap, ev)
		go m.trySend("Auto-accept hit\n" + report)
	}

	return &scan, nil
}

// ResolveReview settles a scan that the engine routed to manual review.
func (m *Manager) ResolveReview(scanID string, accepted bool, finalPrice float64) error {
	m.mu.Lock()
	var found *model.ScanResult
	var sess *model.Session
	for _, s := range m.sessions {
		for i := range s.Scans {
			if s.Scans[i].ID == scanID {
				found = &s.Scans[i]
				sess = s
				break
			}
		}
		if found != nil {
			break
		}
	}
	if found != nil {
		if found.Evaluation.Action != model.ActionReview || found.Resolved {
			m.mu.Unlock()
			return ErrNotReviewable
		}
		found.Resolved = true
		sess.Totals.PendingReview--
		if accepted {
			found.FinalPrice = finalPrice
			sess.Totals.Accepted++
			sess.Totals.TotalSpend += finalPrice
			sess.Totals.ExpectedProfit += found.Snapshot.AveragePrice - finalPrice
		} else {
			sess.Totals.Denied++
		}
		sess.LastActivityAt = time.Now()
	}
	m.mu.Unlock()

	err := m.recorder.MarkScanResolved(scanID, accepted, finalPrice)
	if found == nil {
		// Not in memory: the scan must exist in the audit store (for
		// example in an already-closed session) or it is unknown.
		return err
	}
	if err != nil && err != recorder.ErrNotFound {
		log.Printf("[ERROR] persist resolution of scan %s: %v", scanID, err)
	}
	return nil
}

// CloseSession finalizes a session and records its totals.
func (m *Manager) CloseSession(id string) (model.Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return model.Session{}, ErrSessionNotFound
	}
	if sess.Status != model.SessionOpen {
		m.mu.Unlock()
		return model.Session{}, ErrSessionClosed
	}
	sess.Status = model.SessionClosed
	sess.ClosedAt = time.Now()
	out := *sess
	out.Scans = append([]model.ScanResult(nil), sess.Scans...)
	m.mu.Unlock()

	if err := m.recorder.RecordSession(sessionRecord(&out)); err != nil {
		log.Printf("[ERROR] record session %s: %v", out.ID, err)
	}
	log.Printf("[INFO] session %s closed: %d scanned, %d accepted, $%.2f spend",
		out.ID, out.Totals.Scanned, out.Totals.Accepted, out.Totals.TotalSpend)

	if m.notifier != nil {
		go m.trySend(notifier.FormatSessionSummary(&out))
	}
	return out, nil
}

// ExpireStale closes open sessions with no activity for maxAge and drops
// finished sessions of that age from memory. Returns how many were
// expired.
func (m *Manager) ExpireStale(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	var expired []*model.Session
	for id, sess := range m.sessions {
		if sess.LastActivityAt.After(cutoff) {
			continue
		}
		if sess.Status == model.SessionOpen {
			sess.Status = model.SessionExpired
			sess.ClosedAt = time.Now()
			out := *sess
			expired = append(expired, &out)
		}
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, sess := range expired {
		if err := m.recorder.RecordSession(sessionRecord(sess)); err != nil {
			log.Printf("[ERROR] record expired session %s: %v", sess.ID, err)
		}
		log.Printf("[INFO] session %s expired after inactivity", sess.ID)
	}
	return len(expired)
}

func (m *Manager) trySend(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := m.notifier.SendWithRetry(ctx, text, 3); err != nil {
		log.Printf("[ERROR] notify: %v", err)
	}
}

func applyScanTotals(t *model.SessionTotals, ev *model.Evaluation) {
	t.Scanned++
	switch ev.Action {
	case model.ActionAutoAccept:
		t.Accepted++
		t.TotalSpend += *ev.BuyPrice
		t.ExpectedProfit += *ev.ExpectedProfit
	case model.ActionAutoDeny:
		t.Denied++
	case model.ActionReview:
		t.PendingReview++
	}
}

func scanRecord(scan *model.ScanResult) *recorder.ScanRecord {
	rec := &recorder.ScanRecord{
		ID:        scan.ID,
		SessionID: scan.SessionID,
		Card:      scan.Card,
		Snapshot:  scan.Snapshot,
		Action:    scan.Evaluation.Action,
		Reason:    scan.Evaluation.Reason,
		Details:   scan.Evaluation.Details,
		Resolved:  scan.Resolved,
		CreatedAt: scan.CreatedAt,
	}
	if scan.Evaluation.BuyPrice != nil {
		rec.BuyPrice = *scan.Evaluation.BuyPrice
		rec.ExpectedProfit = *scan.Evaluation.ExpectedProfit
		rec.ExpectedROI = *scan.Evaluation.ExpectedROI
	}
	return rec
}

func sessionRecord(sess *model.Session) *recorder.SessionRecord {
	return &recorder.SessionRecord{
		ID:             sess.ID,
		BuyerContactID: sess.BuyerContactID,
		Status:         sess.Status,
		Totals:         sess.Totals,
		OpenedAt:       sess.OpenedAt,
		ClosedAt:       sess.ClosedAt,
	}
}
