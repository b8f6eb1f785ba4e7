package unit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

// ExecRunner invokes a unit as a subprocess: the run request is written as
// one JSON document to stdin, outputs are read as one JSON document from
// stdout. A non-zero exit is a unit failure with stderr as the message.
type ExecRunner struct {
	spec RunSpec
}

// NewExecRunner creates a subprocess runner from a run declaration.
func NewExecRunner(spec RunSpec) *ExecRunner {
	return &ExecRunner{spec: spec}
}

// Kind reports the exec transport.
func (r *ExecRunner) Kind() RunnerKind { return RunnerKindExec }

// Run executes one subprocess invocation.
func (r *ExecRunner) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	if r == nil {
		return RunResult{}, newRunError(RunErrorCodeInvalidRequest, "unit: exec runner is nil", nil)
	}
	command := strings.TrimSpace(r.spec.Command)
	if command == "" {
		return RunResult{}, newRunError(RunErrorCodeInvalidRequest, "unit: exec runner command is empty", nil)
	}

	execCtx, cancel := withExecTimeout(ctx, r.spec.timeout())
	defer cancel()

	cmd, stdin, stdout, stderr, err := r.prepareCommand(execCtx, command)
	if err != nil {
		return RunResult{}, err
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return RunResult{}, newRunError(RunErrorCodeTransportFailure, "unit: exec start command", err)
	}

	if err := writeExecRequest(cmd, stdin, req); err != nil {
		return RunResult{}, err
	}

	stdoutBytes, stderrBytes, waitErr, err := readExecOutput(cmd, stdout, stderr)
	if err != nil {
		return RunResult{}, err
	}

	return decodeExecResult(execCtx, stdoutBytes, stderrBytes, waitErr, start)
}

// Close releases runner resources; exec runners hold none between invocations.
func (r *ExecRunner) Close(ctx context.Context) error {
	return nil
}

func (s RunSpec) timeout() time.Duration {
	if s.TimeoutMS > 0 {
		return time.Duration(s.TimeoutMS) * time.Millisecond
	}
	return 0
}

func withExecTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := parent.Deadline(); !hasDeadline && timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return parent, func() {}
}

func (r *ExecRunner) prepareCommand(
	execCtx context.Context,
	command string,
) (*exec.Cmd, io.WriteCloser, io.ReadCloser, io.ReadCloser, error) {
	// #nosec G204 -- command/args come from the operator's own unit definition file.
	cmd := exec.CommandContext(execCtx, command, r.spec.Args...)
	if len(r.spec.Env) > 0 {
		cmd.Env = append(os.Environ(), flattenEnv(r.spec.Env)...)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, nil, newRunError(RunErrorCodeInvalidRequest, "unit: exec open stdin", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, nil, newRunError(RunErrorCodeInvalidRequest, "unit: exec open stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, nil, nil, newRunError(RunErrorCodeInvalidRequest, "unit: exec open stderr", err)
	}
	return cmd, stdin, stdout, stderr, nil
}

func writeExecRequest(cmd *exec.Cmd, stdin io.WriteCloser, req RunRequest) error {
	if err := json.NewEncoder(stdin).Encode(req); err != nil {
		_ = stdin.Close()
		_ = cmd.Wait()
		return newRunError(RunErrorCodeInvalidRequest, "unit: exec encode request", err)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return newRunError(RunErrorCodeTransportFailure, "unit: exec close stdin", err)
	}
	return nil
}

func readExecOutput(
	cmd *exec.Cmd,
	stdout io.ReadCloser,
	stderr io.ReadCloser,
) ([]byte, []byte, error, error) {
	stdoutBytes, stdoutErr := io.ReadAll(stdout)
	stderrBytes, _ := io.ReadAll(stderr)
	waitErr := cmd.Wait()
	if stdoutErr != nil {
		return nil, nil, nil, newRunError(RunErrorCodeTransportFailure, "unit: exec read stdout", stdoutErr)
	}
	return stdoutBytes, stderrBytes, waitErr, nil
}

func decodeExecResult(
	execCtx context.Context,
	stdoutBytes []byte,
	stderrBytes []byte,
	waitErr error,
	start time.Time,
) (RunResult, error) {
	if execCtx.Err() != nil {
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			return RunResult{}, newRunError(RunErrorCodeTimeout, "unit: exec invocation timed out", execCtx.Err())
		}
		return RunResult{}, newRunError(RunErrorCodeTransportFailure, "unit: exec invocation canceled", execCtx.Err())
	}

	if waitErr != nil {
		message := strings.TrimSpace(string(stderrBytes))
		if message == "" {
			message = waitErr.Error()
		}
		return RunResult{}, newRunError(RunErrorCodeUnitFailure, "unit: exec invocation failed: "+message, waitErr)
	}

	trimmed := strings.TrimSpace(string(stdoutBytes))
	if trimmed == "" {
		return RunResult{DurationMS: elapsedMS(start)}, nil
	}

	var outputs map[string]any
	if err := json.Unmarshal([]byte(trimmed), &outputs); err != nil {
		return RunResult{}, newRunError(RunErrorCodeDecodeFailure, "unit: exec decode outputs", err)
	}
	return RunResult{
		Outputs:    outputs,
		DurationMS: elapsedMS(start),
	}, nil
}

func flattenEnv(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(values))
	for _, key := range keys {
		out = append(out, key+"="+values[key])
	}
	return out
}

var _ Runner = (*ExecRunner)(nil)
