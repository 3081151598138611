// Package reviewstore persists run summaries and manual-review items to a
// SQLite sidecar database, so reviewers can work through findings without
// re-running the migration.
package reviewstore

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
	"github.com/open-constructs/docmigrate/internal/report"
)

// Store is a SQLite-backed run archive.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// RunSummary is one archived run.
type RunSummary struct {
	RunID           string
	Mode            string
	StartedAt       time.Time
	FilesProcessed  int
	FilesChanged    int
	RestrictedFiles int
	Protections     int
	ReviewItems     int
}

// Open opens (and if needed initializes) the store at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryStore, "open sqlite database").WithContext("path", dbPath)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.CategoryStore, "initialize schema")
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		files_processed INTEGER NOT NULL,
		files_changed INTEGER NOT NULL,
		restricted_files INTEGER NOT NULL,
		protections INTEGER NOT NULL,
		review_items INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS review_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		text TEXT NOT NULL,
		reason TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_review_run_id ON review_items(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun archives a report: one runs row plus one review_items row per
// manual-review entry, in a single transaction.
func (s *Store) SaveRun(ctx context.Context, rep *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryStore, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, mode, started_at, files_processed, files_changed, restricted_files, protections, review_items)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID, rep.Mode, rep.StartedAt.Unix(),
		rep.FilesProcessed, rep.FilesChanged, rep.RestrictedFiles, rep.Protections, len(rep.Review))
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryStore, "insert run").WithContext("run_id", rep.RunID)
	}

	for _, item := range rep.Review {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO review_items (run_id, file, line, text, reason) VALUES (?, ?, ?, ?, ?)`,
			rep.RunID, item.File, item.Line, item.Text, item.Reason)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryStore, "insert review item").WithContext("run_id", rep.RunID)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryStore, "commit run")
	}
	return nil
}

// RecentRuns returns up to limit archived runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, mode, started_at, files_processed, files_changed, restricted_files, protections, review_items
		 FROM runs ORDER BY started_at DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryStore, "query runs")
	}
	defer func() { _ = rows.Close() }()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var started int64
		if err := rows.Scan(&r.RunID, &r.Mode, &started,
			&r.FilesProcessed, &r.FilesChanged, &r.RestrictedFiles, &r.Protections, &r.ReviewItems); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CategoryStore, "scan run row")
		}
		r.StartedAt = time.Unix(started, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReviewItems returns the archived review items for a run.
func (s *Store) ReviewItems(ctx context.Context, runID string) ([]report.ReviewItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file, line, text, reason FROM review_items WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryStore, "query review items")
	}
	defer func() { _ = rows.Close() }()

	var out []report.ReviewItem
	for rows.Next() {
		var item report.ReviewItem
		if err := rows.Scan(&item.File, &item.Line, &item.Text, &item.Reason); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CategoryStore, "scan review item")
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
