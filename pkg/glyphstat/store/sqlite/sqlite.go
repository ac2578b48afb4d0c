// Package sqlite persists analysis runs in a single SQLite file via the
// pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/internalerr"
	"github.com/scriptorium-labs/glyphstat/pkg/glyphstat/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite run database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	command TEXT NOT NULL,
	input TEXT,
	params TEXT
);

CREATE TABLE IF NOT EXISTS metrics (
	run_id TEXT NOT NULL,
	name TEXT NOT NULL,
	value REAL NOT NULL,
	UNIQUE(run_id, name),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS comparisons (
	run_id TEXT NOT NULL,
	reference TEXT NOT NULL,
	divergence REAL NOT NULL,
	shared_vocabulary INTEGER NOT NULL,
	corpus_tokens INTEGER NOT NULL,
	reference_tokens INTEGER NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_metrics_run ON metrics(run_id);
CREATE INDEX IF NOT EXISTS idx_comparisons_run ON comparisons(run_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run record.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: missing id: %w", internalerr.ErrInvalidInput)
	}
	params, err := json.Marshal(r.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, started_at, command, input, params) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, command=excluded.command,
	input=excluded.input, params=excluded.params`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339Nano), r.Command, r.Input, string(params))
	return err
}

// GetRun returns a run by id.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, command, input, params FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

// ListRuns returns runs, most recent first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, command, input, params FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r         store.Run
		startedAt string
		params    string
	)
	if err := sc.Scan(&r.ID, &startedAt, &r.Command, &r.Input, &params); err != nil {
		return store.Run{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	r.StartedAt = ts
	if params != "" && params != "null" {
		if err := json.Unmarshal([]byte(params), &r.Params); err != nil {
			return store.Run{}, fmt.Errorf("decode params: %w", err)
		}
	}
	return r, nil
}

// SaveMetrics upserts named metric values for a run.
func (s *sqliteStore) SaveMetrics(ctx context.Context, runID string, metrics map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for name, value := range metrics {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO metrics (run_id, name, value) VALUES (?, ?, ?)
ON CONFLICT(run_id, name) DO UPDATE SET value=excluded.value`,
			runID, name, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetMetrics returns all metrics recorded for a run.
func (s *sqliteStore) GetMetrics(ctx context.Context, runID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM metrics WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var (
			name  string
			value float64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}

// SaveComparison appends a comparison row to a run.
func (s *sqliteStore) SaveComparison(ctx context.Context, runID string, c store.Comparison) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO comparisons (run_id, reference, divergence, shared_vocabulary, corpus_tokens, reference_tokens)
VALUES (?, ?, ?, ?, ?, ?)`,
		runID, c.Reference, c.Divergence, c.SharedVocabulary, c.CorpusTokens, c.ReferenceTokens)
	return err
}

// ListComparisons returns comparison rows in insertion order.
func (s *sqliteStore) ListComparisons(ctx context.Context, runID string) ([]store.Comparison, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT reference, divergence, shared_vocabulary, corpus_tokens, reference_tokens
FROM comparisons WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Comparison
	for rows.Next() {
		var c store.Comparison
		if err := rows.Scan(&c.Reference, &c.Divergence, &c.SharedVocabulary,
			&c.CorpusTokens, &c.ReferenceTokens); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
