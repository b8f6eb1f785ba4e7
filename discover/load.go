package discover

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/toolrack/toolrack/unit"
)

// LoadCandidate resolves one candidate file into a Unit, or reports why it
// could not be. Exactly one of the return values is non-nil.
//
// Failure classes are kept distinct (read/parse exceptions, missing entry
// point, entry point not invokable) so the operator-facing error list can
// word each differently.
func LoadCandidate(dir, candidate, prefix, suffix string) (*unit.Unit, *unit.LoadError) {
	path := filepath.Join(dir, candidate)
	// #nosec G304 -- path is <units dir>/<scanned entry name>.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &unit.LoadError{
			Candidate: candidate,
			Kind:      unit.LoadErrorLoadFailed,
			Cause:     err.Error(),
		}
	}

	manifest, err := unit.ParseManifest(data)
	if err != nil {
		return nil, &unit.LoadError{
			Candidate: candidate,
			Kind:      unit.LoadErrorLoadFailed,
			Cause:     err.Error(),
		}
	}

	runner, err := unit.ResolveRunner(manifest.Run)
	if err != nil {
		kind := unit.LoadErrorLoadFailed
		switch {
		case errors.Is(err, unit.ErrMissingEntryPoint):
			kind = unit.LoadErrorMissingEntryPoint
		case errors.Is(err, unit.ErrNotInvokable):
			kind = unit.LoadErrorNotInvokable
		}
		return nil, &unit.LoadError{
			Candidate: candidate,
			Kind:      kind,
			Cause:     err.Error(),
		}
	}

	displayName := manifest.Name
	if displayName == "" {
		displayName = DisplayNameFromSource(candidate, suffix)
	}

	return &unit.Unit{
		DisplayName: displayName,
		Description: manifest.Description,
		Priority:    manifest.EffectivePriority(),
		NumericID:   NumericIDFromSource(candidate, prefix),
		Source:      candidate,
		Schedule:    manifest.Schedule,
		Runner:      runner,
	}, nil
}
