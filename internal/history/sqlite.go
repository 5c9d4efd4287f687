// Package history records per-sweep statistics in a local SQLite database.
// It stores run outcomes only, never job postings, so it has no influence on
// which jobs a sweep matches or delivers.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded sweep.
type Run struct {
	ID            int64
	StartedAt     time.Time
	Duration      time.Duration
	TotalJobs     int
	Pages         int
	Sources       string // e.g. "Remotive:12 ArbeitNow:3 Lever:error"
	DeliveryError string // empty when delivery succeeded
}

// Store records and lists sweep runs.
type Store interface {
	Record(run Run) error
	Recent(n int) ([]Run, error)
	Close() error
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists runs at a local path.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the runs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS runs (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at     DATETIME NOT NULL,
		duration_ms    INTEGER NOT NULL,
		total_jobs     INTEGER NOT NULL,
		pages          INTEGER NOT NULL,
		sources        TEXT NOT NULL DEFAULT '',
		delivery_error TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record appends one run.
func (s *SQLiteStore) Record(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (started_at, duration_ms, total_jobs, pages, sources, delivery_error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
		run.TotalJobs,
		run.Pages,
		run.Sources,
		run.DeliveryError,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to n runs, newest first.
func (s *SQLiteStore) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, duration_ms, total_jobs, pages, sources, delivery_error
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			ms int64
		)
		if err := rows.Scan(&r.ID, &r.StartedAt, &ms, &r.TotalJobs, &r.Pages, &r.Sources, &r.DeliveryError); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
