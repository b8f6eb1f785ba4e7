package unit

import "fmt"

// Unit is a validated, loaded capability: a resolved entry point plus the
// display metadata extracted from its definition file.
type Unit struct {
	// DisplayName is the unique operator-facing name (declared override or
	// derived from the source file name).
	DisplayName string `json:"display_name"`
	// Description is empty unless declared.
	Description string `json:"description,omitempty"`
	// Priority is the declared sort priority or DefaultPriority.
	Priority int `json:"priority"`
	// NumericID is the digit run extracted from the source file name right
	// after the discovery prefix, or DefaultNumericID.
	NumericID int `json:"numeric_id"`
	// Source is the definition file name the unit was loaded from.
	Source string `json:"source"`
	// Schedule is the declared cron expression, if any.
	Schedule string `json:"schedule,omitempty"`
	// Runner is the resolved entry point. Never nil for a constructed Unit.
	Runner Runner `json:"-"`
}

// LoadErrorKind classifies why a candidate failed to become a Unit. The
// wordings are deliberately distinct per kind to aid unit authors.
type LoadErrorKind string

const (
	// LoadErrorLoadFailed covers read, parse, and resolution exceptions.
	LoadErrorLoadFailed LoadErrorKind = "load_failed"
	// LoadErrorMissingEntryPoint means the definition declares no run block.
	LoadErrorMissingEntryPoint LoadErrorKind = "missing_entry_point"
	// LoadErrorNotInvokable means a run block exists but resolves to nothing
	// invokable.
	LoadErrorNotInvokable LoadErrorKind = "not_invokable"
)

// LoadError records one candidate that failed to resolve or validate. It is
// surfaced to the operator, never silently discarded.
type LoadError struct {
	Candidate string        `json:"candidate"`
	Kind      LoadErrorKind `json:"kind"`
	Cause     string        `json:"cause"`
}

func (e LoadError) String() string {
	switch e.Kind {
	case LoadErrorMissingEntryPoint:
		return fmt.Sprintf("unit %q missing required run entry point", e.Candidate)
	case LoadErrorNotInvokable:
		return fmt.Sprintf("unit %q has a run declaration but it is not invokable: %s", e.Candidate, e.Cause)
	default:
		return fmt.Sprintf("failed to load unit %q: %s", e.Candidate, e.Cause)
	}
}
