package unit

import (
	"context"
	"errors"
	"testing"
)

func TestResolveRunner(t *testing.T) {
	tests := []struct {
		name     string
		spec     *RunSpec
		wantErr  error
		wantKind RunnerKind
	}{
		{
			name:    "missing entry point",
			spec:    nil,
			wantErr: ErrMissingEntryPoint,
		},
		{
			name:    "both handler and command",
			spec:    &RunSpec{Handler: "echo", Command: "/bin/true"},
			wantErr: ErrNotInvokable,
		},
		{
			name:    "unregistered handler",
			spec:    &RunSpec{Handler: "no_such_handler"},
			wantErr: ErrNotInvokable,
		},
		{
			name:    "empty declaration",
			spec:    &RunSpec{},
			wantErr: ErrNotInvokable,
		},
		{
			name:     "registered handler",
			spec:     &RunSpec{Handler: "echo"},
			wantKind: RunnerKindNative,
		},
		{
			name:     "command",
			spec:     &RunSpec{Command: "/bin/true"},
			wantKind: RunnerKindExec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := ResolveRunner(tt.spec)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveRunner() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveRunner() error = %v", err)
			}
			if got := runner.Kind(); got != tt.wantKind {
				t.Fatalf("Kind() = %q, want %q", got, tt.wantKind)
			}
		})
	}
}

func TestHandlerRegistry(t *testing.T) {
	RegisterHandler("resolve_test_probe", func(ctx context.Context, req RunRequest) (map[string]any, error) {
		return map[string]any{"probe": true}, nil
	})

	fn, ok := LookupHandler("resolve_test_probe")
	if !ok {
		t.Fatal("LookupHandler() ok = false, want true")
	}
	outputs, err := fn(context.Background(), RunRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if outputs["probe"] != true {
		t.Fatalf("outputs[probe] = %v, want true", outputs["probe"])
	}

	ids := HandlerIDs()
	found := false
	for _, id := range ids {
		if id == "resolve_test_probe" {
			found = true
		}
	}
	if !found {
		t.Fatalf("HandlerIDs() = %v, want to contain resolve_test_probe", ids)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("HandlerIDs() not sorted: %v", ids)
		}
	}
}
