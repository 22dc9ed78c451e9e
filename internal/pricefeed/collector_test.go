package pricefeed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CardDesk/internal/model"
)

func TestCollect_NoSales(t *testing.T) {
	col := NewCollector(&MockFetcher{Sales: []model.Sale{}})
	snap, err := col.Collect("12345678")
	if err != nil {
		t.Fatal(err)
	}
	if snap.AveragePrice != 0 || snap.Confidence != 0 {
		t.Errorf("no comps should degrade to zero average and confidence, got %.2f / %.1f", snap.AveragePrice, snap.Confidence)
	}
	if snap.Liquidity != "cold" {
		t.Errorf("no comps should be cold, got %q", snap.Liquidity)
	}
}

func TestCollect_DerivesSnapshot(t *testing.T) {
	now := time.Now()
	sales := make([]model.Sale, 45) // 15/month over the 3-month window
	for i := range sales {
		sales[i] = model.Sale{Price: 200, SoldAt: now.AddDate(0, 0, -i)}
	}

	col := NewCollector(&MockFetcher{Sales: sales})
	snap, err := col.Collect("12345678")
	if err != nil {
		t.Fatal(err)
	}
	if snap.AveragePrice != 200 {
		t.Errorf("expected average 200, got %.2f", snap.AveragePrice)
	}
	if snap.Liquidity != "hot" {
		t.Errorf("expected hot at 15 sales/month, got %q", snap.Liquidity)
	}
	if snap.SalesCount != 45 {
		t.Errorf("expected sales count 45, got %d", snap.SalesCount)
	}
	if snap.Confidence != 100 {
		t.Errorf("expected full confidence for 45 fresh identical comps, got %.1f", snap.Confidence)
	}
}

func TestGemRateFetcher(t *testing.T) {
	now := time.Now().Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/comps" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if got := r.URL.Query().Get("cert"); got != "99887766" {
			t.Errorf("unexpected cert param %q", got)
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"price": 120.0, "sold_at": now},
			{"price": 110.0, "sold_at": now - 86400},
		})
	}))
	defer srv.Close()

	f := NewGemRateFetcher(srv.URL, "test-key", "")
	sales, err := f.FetchRecentSales("99887766", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(sales))
	}
	// Chronological order: the older sale first.
	if sales[0].Price != 110 || sales[1].Price != 120 {
		t.Errorf("sales not in chronological order: %+v", sales)
	}
}

func TestGemRateFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewGemRateFetcher(srv.URL, "", "")
	if _, err := f.FetchRecentSales("1", 3); err == nil {
		t.Error("expected error for non-200 status")
	}
}
