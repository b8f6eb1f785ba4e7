package unit

import (
	"context"
	"time"
)

// NativeRunner invokes an in-process handler.
type NativeRunner struct {
	id string
	fn HandlerFunc
}

// NewNativeRunner wraps a registered handler as a Runner.
func NewNativeRunner(id string, fn HandlerFunc) *NativeRunner {
	return &NativeRunner{id: id, fn: fn}
}

// HandlerID returns the registry identifier this runner is bound to.
func (r *NativeRunner) HandlerID() string {
	if r == nil {
		return ""
	}
	return r.id
}

// Kind reports the native transport.
func (r *NativeRunner) Kind() RunnerKind { return RunnerKindNative }

// Run executes the handler in-process. Panics are deliberately not recovered
// here; containment is the dispatcher's boundary.
func (r *NativeRunner) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	if r == nil || r.fn == nil {
		return RunResult{}, newRunError(RunErrorCodeHandlerNotFound, "unit: native runner has no handler", nil)
	}

	start := time.Now()
	outputs, err := r.fn(ctx, req)
	if err != nil {
		return RunResult{}, newRunError(
			RunErrorCodeOrDefault(err, RunErrorCodeUnitFailure),
			"unit: handler "+r.id+" failed",
			err,
		)
	}

	return RunResult{
		Outputs:    outputs,
		DurationMS: elapsedMS(start),
	}, nil
}

var _ Runner = (*NativeRunner)(nil)
