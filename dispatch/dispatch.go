// Package dispatch invokes exactly one selected unit per request cycle and
// contains any resulting failure so it cannot crash the host.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toolrack/toolrack/registry"
	"github.com/toolrack/toolrack/unit"
)

// Outcome classifies one dispatch cycle.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeFailed   Outcome = "failed"
	OutcomeNoUnits  Outcome = "no_units"
	OutcomeNotFound Outcome = "not_found"
)

// NoUnitsGuidance is returned instead of an invocation when the registry is
// empty. It mirrors the onboarding help of the operator-facing listing.
const NoUnitsGuidance = "no units available: add definition files matching the discovery convention " +
	"to the units directory and restart the host"

// RemediationHint accompanies every failure report.
const RemediationHint = "check the unit's definition and code, or contact the unit's author; " +
	"the host remains usable and the unit can be dispatched again"

// FailureReport is the structured, operator-facing record of a contained
// dispatch failure.
type FailureReport struct {
	// Kind is the failure's machine-readable class: a structured runner
	// error code, or "panic" for recovered panics.
	Kind string `json:"kind"`
	// Message is the failure's human-readable cause.
	Message string `json:"message"`
	// Trace carries full diagnostic detail: the wrapped error chain, or the
	// goroutine stack for recovered panics.
	Trace string `json:"trace,omitempty"`
	// Hint is the static remediation hint.
	Hint string `json:"hint"`
}

// Report is the result of one dispatch cycle.
type Report struct {
	CycleID    string         `json:"cycle_id"`
	UnitName   string         `json:"unit_name,omitempty"`
	Outcome    Outcome        `json:"outcome"`
	Outputs    map[string]any `json:"outputs,omitempty"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Failure    *FailureReport `json:"failure,omitempty"`
	// Guidance is set for the no-units and not-found outcomes.
	Guidance string `json:"guidance,omitempty"`
}

// Dispatcher reads the cached registry and invokes one unit per cycle. It
// never mutates registry state and holds no per-unit state of its own, so a
// failing unit remains selectable on the next cycle.
type Dispatcher struct {
	cache *registry.Cache
}

// New creates a dispatcher over the given registry cache.
func New(cache *registry.Cache) *Dispatcher {
	return &Dispatcher{cache: cache}
}

// Dispatch invokes the unit selected by display name exactly once.
//
// The returned error is non-nil only when the registry itself could not be
// built (fatal scan failure); every per-unit failure, panics included, is
// contained in the report.
func (d *Dispatcher) Dispatch(ctx context.Context, selection string) (Report, error) {
	reg, err := d.cache.Registry()
	if err != nil {
		return Report{}, err
	}

	report := Report{CycleID: uuid.NewString()}

	if reg.Len() == 0 {
		report.Outcome = OutcomeNoUnits
		report.Guidance = NoUnitsGuidance
		return report, nil
	}

	selected, ok := reg.Get(selection)
	if !ok {
		report.Outcome = OutcomeNotFound
		report.Guidance = fmt.Sprintf("unit %q is not in the registry; run the list command for available units", selection)
		return report, nil
	}
	report.UnitName = selected.DisplayName

	start := time.Now()
	result, runErr := invokeContained(ctx, selected, unit.RunRequest{
		UnitName: selected.DisplayName,
		CycleID:  report.CycleID,
	})
	report.DurationMS = time.Since(start).Milliseconds()

	if runErr != nil {
		report.Outcome = OutcomeFailed
		report.Failure = failureReportFrom(runErr)
		emit(Observation{
			UnitName:   selected.DisplayName,
			Transport:  selected.Runner.Kind(),
			CycleID:    report.CycleID,
			DurationMS: report.DurationMS,
			Success:    false,
			ErrorKind:  report.Failure.Kind,
		})
		return report, nil
	}

	report.Outcome = OutcomeOK
	report.Outputs = result.Outputs
	emit(Observation{
		UnitName:   selected.DisplayName,
		Transport:  selected.Runner.Kind(),
		CycleID:    report.CycleID,
		DurationMS: report.DurationMS,
		Success:    true,
	})
	return report, nil
}

// invokeContained runs the unit's entry point, converting a panic anywhere
// below this boundary into an ordinary error carrying the goroutine stack.
func invokeContained(ctx context.Context, selected unit.Unit, req unit.RunRequest) (result unit.RunResult, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &panicError{
				value: recovered,
				stack: string(debug.Stack()),
			}
		}
	}()
	return selected.Runner.Run(ctx, req)
}

type panicError struct {
	value any
	stack string
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func failureReportFrom(err error) *FailureReport {
	var pErr *panicError
	if errors.As(err, &pErr) {
		return &FailureReport{
			Kind:    "panic",
			Message: fmt.Sprintf("%v", pErr.value),
			Trace:   pErr.stack,
			Hint:    RemediationHint,
		}
	}

	return &FailureReport{
		Kind:    unit.RunErrorCodeOrDefault(err, unit.RunErrorCodeRunFailed),
		Message: err.Error(),
		Trace:   errorTrace(err),
		Hint:    RemediationHint,
	}
}

// errorTrace renders the wrapped error chain one cause per line, outermost
// first.
func errorTrace(err error) string {
	var lines []string
	for current := err; current != nil; current = errors.Unwrap(current) {
		lines = append(lines, current.Error())
	}
	return strings.Join(lines, "\n")
}
