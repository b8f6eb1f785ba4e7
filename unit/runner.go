package unit

import (
	"context"
	"time"
)

// RunRequest is the transport-agnostic invocation payload. The entry-point
// contract is zero-argument from the unit author's perspective; the host
// passes only cycle bookkeeping.
type RunRequest struct {
	UnitName string `json:"unit_name,omitempty"`
	CycleID  string `json:"cycle_id,omitempty"`
}

// RunResult is the transport-agnostic invocation result.
type RunResult struct {
	Outputs    map[string]any `json:"outputs,omitempty"`
	DurationMS int64          `json:"duration_ms,omitempty"`
}

// Runner hides how a unit's entry point is invoked (in-process handler or
// subprocess).
type Runner interface {
	Run(ctx context.Context, req RunRequest) (RunResult, error)
	// Kind reports the runner transport for listings and observations.
	Kind() RunnerKind
}

// RunnerKind identifies the transport behind a runner.
type RunnerKind string

const (
	RunnerKindNative RunnerKind = "native"
	RunnerKindExec   RunnerKind = "exec"
)

func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
