package unit

import (
	"fmt"
	"strings"
)

// ResolveRunner turns a manifest's run declaration into an invokable Runner.
//
// The returned error distinguishes the two contract-violation classes the
// loader reports separately: a nil spec means the entry point is missing
// entirely (ErrMissingEntryPoint), while a spec that binds to nothing
// invokable wraps ErrNotInvokable.
func ResolveRunner(spec *RunSpec) (Runner, error) {
	if spec == nil {
		return nil, ErrMissingEntryPoint
	}

	handlerID := strings.TrimSpace(spec.Handler)
	command := strings.TrimSpace(spec.Command)

	switch {
	case handlerID != "" && command != "":
		return nil, fmt.Errorf("%w: declares both handler and command", ErrNotInvokable)
	case handlerID != "":
		fn, ok := LookupHandler(handlerID)
		if !ok {
			return nil, fmt.Errorf("%w: handler %q is not registered", ErrNotInvokable, handlerID)
		}
		return NewNativeRunner(handlerID, fn), nil
	case command != "":
		return NewExecRunner(*spec), nil
	default:
		return nil, fmt.Errorf("%w: neither handler nor command is set", ErrNotInvokable)
	}
}
