package unit

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RunErrorCodeHandlerNotFound is returned when a native handler id has no
	// registration.
	RunErrorCodeHandlerNotFound = "HANDLER_NOT_FOUND"
	// RunErrorCodeInvalidRequest is returned when runner request construction fails.
	RunErrorCodeInvalidRequest = "INVALID_REQUEST"
	// RunErrorCodeTransportFailure is returned when subprocess I/O fails.
	RunErrorCodeTransportFailure = "TRANSPORT_FAILURE"
	// RunErrorCodeTimeout is returned when a subprocess invocation times out.
	RunErrorCodeTimeout = "TIMEOUT"
	// RunErrorCodeUnitFailure is returned when the unit itself reports failure.
	RunErrorCodeUnitFailure = "UNIT_FAILURE"
	// RunErrorCodeDecodeFailure is returned when a unit's output cannot be decoded.
	RunErrorCodeDecodeFailure = "DECODE_FAILURE"
	// RunErrorCodeRunFailed is the generic fallback for invocation failures.
	RunErrorCodeRunFailed = "RUN_FAILED"
)

var (
	// ErrMissingEntryPoint indicates a definition with no run declaration.
	ErrMissingEntryPoint = errors.New("unit: missing required run entry point")
	// ErrNotInvokable indicates a run declaration that binds to nothing invokable.
	ErrNotInvokable = errors.New("unit: run entry point is not invokable")
)

// RunError is a structured invocation error that keeps a machine-readable
// code while flowing through the dispatcher and history store.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *RunError) Error() string {
	if e == nil {
		return ""
	}
	code := strings.TrimSpace(e.Code)
	msg := strings.TrimSpace(e.Message)
	switch {
	case code == "" && msg == "":
		return RunErrorCodeRunFailed
	case code == "":
		return msg
	case msg == "":
		return code
	default:
		return fmt.Sprintf("%s: %s", code, msg)
	}
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *RunError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newRunError(code, message string, cause error) *RunError {
	cleanCode := strings.TrimSpace(code)
	if cleanCode == "" {
		cleanCode = RunErrorCodeRunFailed
	}
	cleanMsg := strings.TrimSpace(message)
	if cleanMsg == "" && cause != nil {
		cleanMsg = cause.Error()
	}
	return &RunError{
		Code:    cleanCode,
		Message: cleanMsg,
		Cause:   cause,
	}
}

// RunErrorCode extracts the structured code from err, or "" when err carries none.
func RunErrorCode(err error) string {
	var runErr *RunError
	if errors.As(err, &runErr) && runErr != nil {
		return runErr.Code
	}
	return ""
}

// RunErrorCodeOrDefault extracts the structured code from err, falling back
// to the given default (or RUN_FAILED when the default is blank too).
func RunErrorCodeOrDefault(err error, fallback string) string {
	if code := RunErrorCode(err); strings.TrimSpace(code) != "" {
		return code
	}
	if strings.TrimSpace(fallback) == "" {
		return RunErrorCodeRunFailed
	}
	return fallback
}
