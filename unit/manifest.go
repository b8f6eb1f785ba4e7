package unit

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPriority sorts undeclared units after declared ones without
	// pushing them to infinity.
	DefaultPriority = 999

	// DefaultNumericID is the sentinel for definition files that carry no
	// digits after the discovery prefix; unnumbered units sort last.
	DefaultNumericID = 999999
)

// Manifest is the parsed form of one unit definition file.
type Manifest struct {
	// Name overrides the display name derived from the file name.
	Name string `yaml:"name,omitempty"`
	// Description is shown next to the unit in operator-facing listings.
	Description string `yaml:"description,omitempty"`
	// Priority orders units in listings; lower sorts first.
	Priority *int `yaml:"priority,omitempty"`
	// Schedule is an optional 5-field UTC cron expression for the
	// scheduled-dispatch loop. Interactive dispatch ignores it.
	Schedule string `yaml:"schedule,omitempty"`
	// Run declares the unit's entry point. A manifest without it fails
	// the capability contract.
	Run *RunSpec `yaml:"run,omitempty"`
}

// RunSpec declares how the host invokes a unit.
type RunSpec struct {
	// Handler names an in-process handler registered at init time.
	Handler string `yaml:"handler,omitempty"`
	// Command starts a subprocess speaking JSON over stdin/stdout.
	Command string `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	// TimeoutMS bounds one subprocess invocation; 0 means no limit.
	TimeoutMS int `yaml:"timeout_ms,omitempty"`
}

// EffectivePriority returns the declared priority or DefaultPriority.
func (m Manifest) EffectivePriority() int {
	if m.Priority != nil {
		return *m.Priority
	}
	return DefaultPriority
}

// ParseManifest decodes a unit definition file.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("unit: parsing definition: %w", err)
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Schedule = strings.TrimSpace(m.Schedule)
	return m, nil
}
