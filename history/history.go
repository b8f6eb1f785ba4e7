// Package history persists dispatch outcomes so operators can review past
// cycles and failures. Writes are best-effort: a history failure never
// blocks or fails a dispatch.
package history

import (
	"context"
	"time"
)

// Record is one persisted dispatch outcome.
type Record struct {
	CycleID      string    `json:"cycle_id"`
	UnitName     string    `json:"unit_name,omitempty"`
	Outcome      string    `json:"outcome"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	DispatchedAt time.Time `json:"dispatched_at"`
}

// Store abstracts dispatch-history persistence.
type Store interface {
	Append(ctx context.Context, rec Record) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}
