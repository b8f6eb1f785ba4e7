// Package cli implements the toolrack commands: listing discovered units,
// dispatching one unit per cycle, inspecting definitions, reviewing history,
// and running the scheduler.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolrack/toolrack/config"
	"github.com/toolrack/toolrack/dispatch"
	"github.com/toolrack/toolrack/history"
	"github.com/toolrack/toolrack/registry"
)

// host bundles the per-invocation wiring shared by all commands: resolved
// config, the registry cache, and the dispatcher reading from it.
type host struct {
	cfg        config.Config
	cache      *registry.Cache
	dispatcher *dispatch.Dispatcher
}

func resolveHost(cmd *cobra.Command) (*host, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, exitError(exitValidation, "%v", err)
	}

	cache := registry.NewCacheFor(registry.Options{
		Dir:    cfg.UnitsDir,
		Prefix: cfg.Prefix,
		Suffix: cfg.Suffix,
	})
	return &host{
		cfg:        cfg,
		cache:      cache,
		dispatcher: dispatch.New(cache),
	}, nil
}

// registry builds (once) and returns the unit registry, translating a fatal
// discovery failure into the discovery exit code.
func (h *host) registry() (*registry.Registry, error) {
	reg, err := h.cache.Registry()
	if err != nil {
		return nil, exitError(exitDiscovery, "%v", err)
	}
	return reg, nil
}

// openHistory opens the configured dispatch-history store. History is a
// best-effort concern; callers that only write records should treat an open
// failure as a warning, not a command failure.
func (h *host) openHistory() (history.Store, error) {
	return history.NewSQLiteStore(h.cfg.StorePath)
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
