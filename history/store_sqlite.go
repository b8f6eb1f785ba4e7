package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const sqliteHistorySchema = `
CREATE TABLE IF NOT EXISTS dispatch_history (
	cycle_id TEXT PRIMARY KEY,
	unit_name TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	error_kind TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0,
	dispatched_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dispatch_history_at ON dispatch_history (dispatched_at DESC);`

const (
	defaultStoreDir = ".toolrack"
	defaultStoreDB  = "toolrack.db"
)

// SQLiteStore persists dispatch records in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// DefaultSQLitePath returns the default history database path.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("history: resolve user home: %w", err)
	}
	return filepath.Join(home, defaultStoreDir, defaultStoreDB), nil
}

// NewSQLiteStore opens (or creates) a SQLite-backed history store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("history: sqlite store dsn is required")
	}

	if !strings.HasPrefix(strings.ToLower(dsn), "file:") {
		if err := os.MkdirAll(filepath.Dir(filepath.Clean(dsn)), 0o750); err != nil {
			return nil, fmt.Errorf("history: create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: sqlite store open: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: sqlite store set WAL mode: %w", err)
	}

	if _, err := db.Exec(sqliteHistorySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: sqlite store create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append inserts one dispatch record.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("history: sqlite store is nil")
	}

	if strings.TrimSpace(rec.CycleID) == "" {
		rec.CycleID = uuid.NewString()
	}
	if rec.DispatchedAt.IsZero() {
		rec.DispatchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO dispatch_history (cycle_id, unit_name, outcome, error_kind, error_message, duration_ms, dispatched_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(cycle_id) DO NOTHING`,
		rec.CycleID,
		rec.UnitName,
		rec.Outcome,
		rec.ErrorKind,
		rec.ErrorMessage,
		rec.DurationMS,
		rec.DispatchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: sqlite append record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, errors.New("history: sqlite store is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT cycle_id, unit_name, outcome, error_kind, error_message, duration_ms, dispatched_at
FROM dispatch_history
ORDER BY dispatched_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: sqlite list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var dispatchedAt string
		if err := rows.Scan(
			&rec.CycleID,
			&rec.UnitName,
			&rec.Outcome,
			&rec.ErrorKind,
			&rec.ErrorMessage,
			&rec.DurationMS,
			&dispatchedAt,
		); err != nil {
			return nil, fmt.Errorf("history: sqlite scan record: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, dispatchedAt); err == nil {
			rec.DispatchedAt = parsed
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: sqlite iterate records: %w", err)
	}
	return records, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
