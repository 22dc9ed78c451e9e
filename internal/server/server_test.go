package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"CardDesk/internal/desk"
	"CardDesk/internal/model"
	"CardDesk/internal/pricefeed"
	"CardDesk/internal/recorder"
	"CardDesk/internal/settings"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	sm, err := settings.NewManager(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	s := sm.Get()
	s.DefaultOfferPercentage = 50
	if err := sm.Update(s); err != nil {
		t.Fatal(err)
	}

	rec, err := recorder.NewSQLiteRecorder(filepath.Join(dir, "desk.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { rec.Close() })

	now := time.Now()
	sales := make([]model.Sale, 45)
	for i := range sales {
		sales[i] = model.Sale{Price: 500, SoldAt: now.AddDate(0, 0, -i)}
	}
	col := pricefeed.NewCollector(&pricefeed.MockFetcher{Sales: sales})
	dm := desk.NewManager(col, sm, rec, nil, 0)

	return NewServer("127.0.0.1", 0, dm, sm, rec)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv.Router(), "GET", "/api/v1/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv.Router(), "GET", "/api/v1/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var s model.DeskSettings
	if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}

	s.MinLiquidityLevel = "warm"
	w = doJSON(t, srv.Router(), "PUT", "/api/v1/settings", s)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Invalid policy is rejected.
	s.PriceRounding = 7
	w = doJSON(t, srv.Router(), "PUT", "/api/v1/settings", s)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad rounding, got %d", w.Code)
	}
}

func TestSessionScanFlow(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	w := doJSON(t, router, "POST", "/api/v1/sessions", map[string]string{"buyer_contact_id": "c-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var sess model.Session
	if err := json.NewDecoder(w.Body).Decode(&sess); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, router, "POST", "/api/v1/sessions/"+sess.ID+"/scans",
		model.Card{PlayerName: "Test Player", CertNumber: "111"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var scan model.ScanResult
	if err := json.NewDecoder(w.Body).Decode(&scan); err != nil {
		t.Fatal(err)
	}
	if scan.Evaluation.Action != model.ActionAutoAccept {
		t.Fatalf("expected auto_accept, got %s (%s)", scan.Evaluation.Action, scan.Evaluation.Reason)
	}
	if scan.Evaluation.BuyPrice == nil || *scan.Evaluation.BuyPrice != 250 {
		t.Errorf("expected buy price 250, got %v", scan.Evaluation.BuyPrice)
	}

	// Missing cert is a client error.
	w = doJSON(t, router, "POST", "/api/v1/sessions/"+sess.ID+"/scans", model.Card{PlayerName: "No Cert"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing cert, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/api/v1/sessions/"+sess.ID+"/close", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var closed model.Session
	if err := json.NewDecoder(w.Body).Decode(&closed); err != nil {
		t.Fatal(err)
	}
	if closed.Totals.Accepted != 1 || closed.Totals.TotalSpend != 250 {
		t.Errorf("unexpected totals: %+v", closed.Totals)
	}

	// Scanning into a closed session conflicts.
	w = doJSON(t, router, "POST", "/api/v1/sessions/"+sess.ID+"/scans", model.Card{CertNumber: "222"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/api/v1/sessions/unknown-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestContactEndpoints(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	w := doJSON(t, router, "POST", "/api/v1/contacts", model.Contact{Name: "Jane Seller"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var c model.Contact
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatal(err)
	}
	if c.ID == "" {
		t.Error("expected generated contact id")
	}

	w = doJSON(t, router, "GET", "/api/v1/contacts/"+c.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/api/v1/contacts/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/api/v1/contacts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []model.Contact
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 contact, got %d", len(list))
	}

	// Nameless contact is rejected.
	w = doJSON(t, router, "POST", "/api/v1/contacts", model.Contact{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
