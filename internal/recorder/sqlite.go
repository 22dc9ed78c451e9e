package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CardDesk/internal/model"
)

// SQLiteRecorder persists desk history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (report tooling
	// reads while the desk writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id              TEXT PRIMARY KEY,
			session_id      TEXT NOT NULL,
			timestamp       INTEGER NOT NULL,
			player_name     TEXT,
			set_name        TEXT,
			year            TEXT,
			card_number     TEXT,
			grade           TEXT,
			cert_number     TEXT,
			average_price   REAL,
			confidence      REAL,
			liquidity       TEXT,
			sales_count     INTEGER,
			action          TEXT NOT NULL,
			buy_price       REAL,
			expected_profit REAL,
			expected_roi    REAL,
			reason          TEXT,
			details         TEXT,
			resolved        INTEGER NOT NULL DEFAULT 0,
			final_price     REAL NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_ts ON scans(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_session ON scans(session_id)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id               TEXT PRIMARY KEY,
			buyer_contact_id TEXT,
			status           TEXT NOT NULL,
			scanned          INTEGER,
			accepted         INTEGER,
			denied           INTEGER,
			pending_review   INTEGER,
			total_spend      REAL,
			expected_profit  REAL,
			opened_at        INTEGER,
			closed_at        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_closed ON sessions(closed_at)`,

		`CREATE TABLE IF NOT EXISTS contacts (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT,
			phone      TEXT,
			notes      TEXT,
			created_at INTEGER NOT NULL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(rec *ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := rec.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO scans
		(id, session_id, timestamp, player_name, set_name, year, card_number, grade, cert_number,
		 average_price, confidence, liquidity, sales_count,
		 action, buy_price, expected_profit, expected_roi, reason, details, resolved, final_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.SessionID, ts.Unix(),
		rec.Card.PlayerName, rec.Card.SetName, rec.Card.Year, rec.Card.CardNumber, rec.Card.Grade, rec.Card.CertNumber,
		rec.Snapshot.AveragePrice, rec.Snapshot.Confidence, rec.Snapshot.Liquidity, rec.Snapshot.SalesCount,
		string(rec.Action), rec.BuyPrice, rec.ExpectedProfit, rec.ExpectedROI,
		rec.Reason, strings.Join(rec.Details, "\n"), boolToInt(rec.Resolved), rec.FinalPrice,
	)
	return err
}

func (r *SQLiteRecorder) MarkScanResolved(scanID string, accepted bool, finalPrice float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	action := model.ActionAutoDeny
	if accepted {
		action = model.ActionAutoAccept
	}
	res, err := r.db.Exec(`UPDATE scans SET resolved = 1, action = ?, final_price = ? WHERE id = ?`,
		string(action), finalPrice, scanID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRecorder) PendingReviewScans(limit int) ([]ScanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, session_id, timestamp,
		player_name, set_name, year, card_number, grade, cert_number,
		average_price, confidence, liquidity, sales_count,
		action, buy_price, expected_profit, expected_roi, reason, details, resolved, final_price
		FROM scans WHERE action = ? AND resolved = 0 ORDER BY timestamp LIMIT ?`,
		string(model.ActionReview), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []ScanRecord
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func scanRow(rows *sql.Rows) (*ScanRecord, error) {
	var rec ScanRecord
	var ts int64
	var action, details string
	var resolved int
	if err := rows.Scan(&rec.ID, &rec.SessionID, &ts,
		&rec.Card.PlayerName, &rec.Card.SetName, &rec.Card.Year, &rec.Card.CardNumber, &rec.Card.Grade, &rec.Card.CertNumber,
		&rec.Snapshot.AveragePrice, &rec.Snapshot.Confidence, &rec.Snapshot.Liquidity, &rec.Snapshot.SalesCount,
		&action, &rec.BuyPrice, &rec.ExpectedProfit, &rec.ExpectedROI,
		&rec.Reason, &details, &resolved, &rec.FinalPrice); err != nil {
		return nil, err
	}
	rec.CreatedAt = time.Unix(ts, 0)
	rec.Action = model.ScanAction(action)
	if details != "" {
		rec.Details = strings.Split(details, "\n")
	}
	rec.Resolved = resolved != 0
	return &rec, nil
}

func (r *SQLiteRecorder) RecordSession(rec *SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO sessions
		(id, buyer_contact_id, status, scanned, accepted, denied, pending_review,
		 total_spend, expected_profit, opened_at, closed_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.BuyerContactID, string(rec.Status),
		rec.Totals.Scanned, rec.Totals.Accepted, rec.Totals.Denied, rec.Totals.PendingReview,
		rec.Totals.TotalSpend, rec.Totals.ExpectedProfit,
		rec.OpenedAt.Unix(), rec.ClosedAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) Stats(since time.Time) (*ScanStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.db.QueryRow(`SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN action = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN action = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN action = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN action = ? THEN buy_price ELSE 0 END), 0)
		FROM scans WHERE timestamp >= ?`,
		string(model.ActionAutoAccept), string(model.ActionAutoDeny), string(model.ActionReview),
		string(model.ActionAutoAccept), since.Unix())

	var stats ScanStats
	if err := row.Scan(&stats.Scanned, &stats.Accepted, &stats.Denied, &stats.Reviewed, &stats.TotalSpend); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *SQLiteRecorder) SaveContact(c *model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(`INSERT OR REPLACE INTO contacts (id, name, email, phone, notes, created_at)
		VALUES (?,?,?,?,?,?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Notes, c.CreatedAt.Unix())
	return err
}

func (r *SQLiteRecorder) GetContact(id string) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var c model.Contact
	var ts int64
	err := r.db.QueryRow(`SELECT id, name, email, phone, notes, created_at FROM contacts WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &ts)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt = time.Unix(ts, 0)
	return &c, nil
}

func (r *SQLiteRecorder) ListContacts() ([]model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, name, email, phone, notes, created_at FROM contacts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		var ts int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &ts); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(ts, 0)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
