// Package registry holds the immutable result of one discovery pass: the
// ordered units, a display-name index, and the accumulated load errors. A
// Registry is produced once per host lifetime (see Cache) and is read-only
// afterward, so reads need no synchronization.
package registry

import (
	"slices"
	"sort"

	"github.com/toolrack/toolrack/discover"
	"github.com/toolrack/toolrack/unit"
)

// Options configures one discovery pass.
type Options struct {
	// Dir is the base directory scanned for unit definition files.
	Dir string
	// Prefix and Suffix define the naming convention; blank values fall
	// back to the discover package defaults.
	Prefix string
	Suffix string
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = discover.DefaultPrefix
	}
	if o.Suffix == "" {
		o.Suffix = discover.DefaultSuffix
	}
	return o
}

// Registry is the ordered mapping from display name to Unit plus the load
// errors accumulated while building it.
type Registry struct {
	units  []unit.Unit
	byName map[string]int
	errs   []unit.LoadError
}

// Build runs the scan → load → extract → order pipeline once.
//
// Candidates are processed in lexicographic name order, which defines "scan
// order" for the last-write-wins display-name collision policy: when two
// candidates resolve to the same display name, the later one replaces the
// earlier in the mapping and no load error is recorded for either. An
// unreadable base directory is the only fatal failure.
func Build(opts Options) (*Registry, error) {
	opts = opts.withDefaults()

	candidates, err := discover.Scan(opts.Dir, opts.Prefix, opts.Suffix)
	if err != nil {
		return nil, err
	}
	sort.Strings(candidates)

	byName := make(map[string]unit.Unit)
	var errs []unit.LoadError
	for _, candidate := range candidates {
		loaded, loadErr := discover.LoadCandidate(opts.Dir, candidate, opts.Prefix, opts.Suffix)
		if loadErr != nil {
			errs = append(errs, *loadErr)
			continue
		}
		byName[loaded.DisplayName] = *loaded
	}

	units := make([]unit.Unit, 0, len(byName))
	for _, u := range byName {
		units = append(units, u)
	}
	discover.OrderUnits(units)

	index := make(map[string]int, len(units))
	for i, u := range units {
		index[u.DisplayName] = i
	}

	return &Registry{
		units:  units,
		byName: index,
		errs:   errs,
	}, nil
}

// Units returns the loaded units in canonical presentation order.
func (r *Registry) Units() []unit.Unit {
	if r == nil {
		return nil
	}
	return slices.Clone(r.units)
}

// Names returns the ordered display names for selection.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.units))
	for _, u := range r.units {
		names = append(names, u.DisplayName)
	}
	return names
}

// Get returns a unit by display name.
func (r *Registry) Get(displayName string) (unit.Unit, bool) {
	if r == nil {
		return unit.Unit{}, false
	}
	i, ok := r.byName[displayName]
	if !ok {
		return unit.Unit{}, false
	}
	return r.units[i], true
}

// Errors returns the load errors accumulated during discovery.
func (r *Registry) Errors() []unit.LoadError {
	if r == nil {
		return nil
	}
	return slices.Clone(r.errs)
}

// Len returns the number of loaded units.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.units)
}
