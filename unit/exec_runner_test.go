package unit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func execHelperSpec(env map[string]string) RunSpec {
	merged := map[string]string{"GO_WANT_EXEC_HELPER": "1"}
	for key, value := range env {
		merged[key] = value
	}
	return RunSpec{
		Command: os.Args[0],
		Args:    []string{"-test.run=TestExecRunnerHelperProcess", "--"},
		Env:     merged,
	}
}

func TestExecRunnerRun(t *testing.T) {
	runner := NewExecRunner(execHelperSpec(nil))
	result, err := runner.Run(context.Background(), RunRequest{
		UnitName: "Disk Report",
		CycleID:  "cycle-42",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := result.Outputs["unit_name"]; got != "Disk Report" {
		t.Fatalf("outputs[unit_name] = %v, want Disk Report", got)
	}
	if got := result.Outputs["ok"]; got != true {
		t.Fatalf("outputs[ok] = %v, want true", got)
	}
}

func TestExecRunnerRunFailure(t *testing.T) {
	runner := NewExecRunner(execHelperSpec(map[string]string{"GO_EXEC_HELPER_FAIL": "1"}))
	_, err := runner.Run(context.Background(), RunRequest{})
	if err == nil {
		t.Fatal("Run() error = nil, want non-nil")
	}
	if got := RunErrorCode(err); got != RunErrorCodeUnitFailure {
		t.Fatalf("RunErrorCode = %q, want %q", got, RunErrorCodeUnitFailure)
	}
	if !strings.Contains(err.Error(), "helper failed") {
		t.Fatalf("Run() error = %v, want stderr message", err)
	}
}

func TestExecRunnerRunDecodeFailure(t *testing.T) {
	runner := NewExecRunner(execHelperSpec(map[string]string{"GO_EXEC_HELPER_BAD_JSON": "1"}))
	_, err := runner.Run(context.Background(), RunRequest{})
	if got := RunErrorCode(err); got != RunErrorCodeDecodeFailure {
		t.Fatalf("RunErrorCode = %q, want %q", got, RunErrorCodeDecodeFailure)
	}
}

func TestExecRunnerRunEmptyOutput(t *testing.T) {
	runner := NewExecRunner(execHelperSpec(map[string]string{"GO_EXEC_HELPER_SILENT": "1"}))
	result, err := runner.Run(context.Background(), RunRequest{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Outputs) != 0 {
		t.Fatalf("Outputs = %v, want empty", result.Outputs)
	}
}

func TestExecRunnerRunTimeout(t *testing.T) {
	spec := execHelperSpec(map[string]string{"GO_EXEC_HELPER_SLEEP": "1"})
	spec.TimeoutMS = 50
	runner := NewExecRunner(spec)

	_, err := runner.Run(context.Background(), RunRequest{})
	if got := RunErrorCode(err); got != RunErrorCodeTimeout {
		t.Fatalf("RunErrorCode = %q, want %q", got, RunErrorCodeTimeout)
	}
}

func TestExecRunnerRunEmptyCommand(t *testing.T) {
	runner := NewExecRunner(RunSpec{Command: "   "})
	_, err := runner.Run(context.Background(), RunRequest{})
	if got := RunErrorCode(err); got != RunErrorCodeInvalidRequest {
		t.Fatalf("RunErrorCode = %q, want %q", got, RunErrorCodeInvalidRequest)
	}
}

func TestExecRunnerHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_EXEC_HELPER") != "1" {
		return
	}

	if os.Getenv("GO_EXEC_HELPER_FAIL") == "1" {
		_, _ = fmt.Fprintln(os.Stderr, "helper failed")
		os.Exit(2)
	}
	if os.Getenv("GO_EXEC_HELPER_BAD_JSON") == "1" {
		_, _ = fmt.Fprintln(os.Stdout, "{bad json")
		os.Exit(0)
	}
	if os.Getenv("GO_EXEC_HELPER_SILENT") == "1" {
		os.Exit(0)
	}
	if os.Getenv("GO_EXEC_HELPER_SLEEP") == "1" {
		time.Sleep(5 * time.Second)
		os.Exit(0)
	}

	var req RunRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
		os.Exit(2)
	}

	_ = json.NewEncoder(os.Stdout).Encode(map[string]any{
		"ok":        true,
		"unit_name": req.UnitName,
		"cycle_id":  req.CycleID,
	})
	os.Exit(0)
}
