package desk

import (
	"path/filepath"
	"testing"
	"time"

	"CardDesk/internal/model"
	"CardDesk/internal/pricefeed"
	"CardDesk/internal/recorder"
	"CardDesk/internal/settings"
)

// hotSales builds 45 fresh identical comps: average = price, confidence
// 100, 15 sales/month = "hot" liquidity.
func hotSales(price float64) []model.Sale {
	now := time.Now()
	sales := make([]model.Sale, 45)
	for i := range sales {
		sales[i] = model.Sale{Price: price, SoldAt: now.AddDate(0, 0, -i)}
	}
	return sales
}

func newTestManager(t *testing.T, fetcher pricefeed.Fetcher) *Manager {
	t.Helper()
	sm, err := settings.NewManager(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	// 50% offer so a flat comp curve clears the 50% ROI floor.
	s := sm.Get()
	s.DefaultOfferPercentage = 50
	if err := sm.Update(s); err != nil {
		t.Fatal(err)
	}
	return NewManager(pricefeed.NewCollector(fetcher), sm, recorder.NewNoopRecorder(), nil, 0)
}

func TestSessionLifecycle(t *testing.T) {
	m := newTestManager(t, &pricefeed.MockFetcher{Sales: hotSales(500)})

	sess := m.OpenSession("contact-1")
	if sess.Status != model.SessionOpen {
		t.Fatalf("expected open session, got %s", sess.Status)
	}

	scan, err := m.AddScan(sess.ID, model.Card{PlayerName: "Test Player", CertNumber: "111"})
	if err != nil {
		t.Fatal(err)
	}
	if scan.Evaluation.Action != model.ActionAutoAccept {
		t.Fatalf("expected auto_accept, got %s (%s)", scan.Evaluation.Action, scan.Evaluation.Reason)
	}
	if *scan.Evaluation.BuyPrice != 250 {
		t.Errorf("expected buy price 250, got %.2f", *scan.Evaluation.BuyPrice)
	}

	got, err := m.GetSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Totals.Scanned != 1 || got.Totals.Accepted != 1 {
		t.Errorf("unexpected totals: %+v", got.Totals)
	}
	if got.Totals.TotalSpend != 250 || got.Totals.ExpectedProfit != 250 {
		t.Errorf("unexpected money totals: %+v", got.Totals)
	}

	closed, err := m.CloseSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if closed.Status != model.SessionClosed {
		t.Errorf("expected closed status, got %s", closed.Status)
	}

	// No scanning after close.
	if _, err := m.AddScan(sess.ID, model.Card{CertNumber: "222"}); err != ErrSessionClosed {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestAddScan_UnknownSession(t *testing.T) {
	m := newTestManager(t, &pricefeed.MockFetcher{Sales: hotSales(100)})
	if _, err := m.AddScan("no-such-session", model.Card{CertNumber: "1"}); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestResolveReview(t *testing.T) {
	// "cool" liquidity (4 sales/month) flips in 30 days against the
	// 14-day target: scans land in review.
	now := time.Now()
	sales := make([]model.Sale, 12)
	for i := range sales {
		sales[i] = model.Sale{Price: 500, SoldAt: now.AddDate(0, 0, -i*7)}
	}
	m := newTestManager(t, &pricefeed.MockFetcher{Sales: sales})

	sess := m.OpenSession("contact-1")
	scan, err := m.AddScan(sess.ID, model.Card{CertNumber: "333"})
	if err != nil {
		t.Fatal(err)
	}
	if scan.Evaluation.Action != model.ActionReview {
		t.Fatalf("expected review, got %s (%s)", scan.Evaluation.Action, scan.Evaluation.Reason)
	}

	if err := m.ResolveReview(scan.ID, true, 240); err != nil {
		t.Fatal(err)
	}

	got, _ := m.GetSession(sess.ID)
	if got.Totals.PendingReview != 0 || got.Totals.Accepted != 1 {
		t.Errorf("resolution not reflected in totals: %+v", got.Totals)
	}
	if got.Totals.TotalSpend != 240 {
		t.Errorf("expected spend 240, got %.2f", got.Totals.TotalSpend)
	}
	if got.Totals.ExpectedProfit != 260 {
		t.Errorf("expected profit 260 (500 avg - 240 paid), got %.2f", got.Totals.ExpectedProfit)
	}

	// Double resolution is rejected.
	if err := m.ResolveReview(scan.ID, false, 0); err != ErrNotReviewable {
		t.Errorf("expected ErrNotReviewable, got %v", err)
	}
}

func TestExpireStale(t *testing.T) {
	m := newTestManager(t, &pricefeed.MockFetcher{Sales: hotSales(100)})

	stale := m.OpenSession("contact-1")
	fresh := m.OpenSession("contact-2")

	// Age the first session artificially.
	m.mu.Lock()
	m.sessions[stale.ID].LastActivityAt = time.Now().Add(-100 * time.Hour)
	m.mu.Unlock()

	if n := m.ExpireStale(72 * time.Hour); n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}
	if _, err := m.GetSession(stale.ID); err != ErrSessionNotFound {
		t.Errorf("expired session should be evicted, got %v", err)
	}
	if _, err := m.GetSession(fresh.ID); err != nil {
		t.Errorf("fresh session should survive, got %v", err)
	}
	if m.OpenSessionCount() != 1 {
		t.Errorf("expected 1 open session, got %d", m.OpenSessionCount())
	}
}
