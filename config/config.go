// Package config loads host configuration from a YAML file with environment
// overrides. Discovery is first-match: an explicit path, then toolrack.yaml
// in the working directory, then config.yaml under the user's .toolrack
// directory, then built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toolrack/toolrack/discover"
	"github.com/toolrack/toolrack/history"
)

const (
	projectConfigName = "toolrack.yaml"
	homeConfigName    = "config.yaml"
	homeConfigDir     = ".toolrack"

	// Environment overrides. Each wins over the corresponding file field.
	EnvUnitsDir     = "TOOLRACK_UNITS_DIR"
	EnvStorePath    = "TOOLRACK_STORE_PATH"
	EnvOTLPEndpoint = "TOOLRACK_OTLP_ENDPOINT"

	defaultUnitsDir = "units"
)

// Config is the resolved host configuration.
type Config struct {
	// UnitsDir is the directory scanned for unit definition files.
	UnitsDir string `yaml:"units_dir"`
	// Prefix and Suffix define the discovery filename convention.
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	// StorePath is the dispatch-history database location.
	StorePath string `yaml:"store_path"`
	// OTLPEndpoint enables telemetry export when set.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// DiscoverPath resolves the config file location with first-match semantics.
// The second return reports whether a file was found; an explicit path that
// does not exist is an error.
func DiscoverPath(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("config: resolve working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("config: resolve user home: %w", err)
	}
	return DiscoverPathFrom(explicitPath, cwd, homeDir)
}

// DiscoverPathFrom is a testable variant of DiscoverPath.
func DiscoverPathFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if clean := strings.TrimSpace(explicitPath); clean != "" {
		candidates = append(candidates, filepath.Clean(clean))
	} else {
		candidates = append(candidates, filepath.Join(cwd, projectConfigName))
		candidates = append(candidates, filepath.Join(homeDir, homeConfigDir, homeConfigName))
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			// If explicit path is set, not found is an error.
			if i == 0 && strings.TrimSpace(explicitPath) != "" {
				return "", false, fmt.Errorf("config file %q not found", candidate)
			}
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("config: checking path %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// Load resolves the effective configuration: discovered file, environment
// overrides, then defaults for anything still unset.
func Load(explicitPath string) (Config, error) {
	path, found, err := DiscoverPath(explicitPath)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if found {
		cfg, err = loadFile(path)
		if err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	// #nosec G304 -- path resolved from explicit local config discovery.
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	cfg.expand()
	return cfg, nil
}

func (c *Config) expand() {
	c.UnitsDir = os.ExpandEnv(c.UnitsDir)
	c.StorePath = os.ExpandEnv(c.StorePath)
	c.OTLPEndpoint = os.ExpandEnv(c.OTLPEndpoint)
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvUnitsDir)); v != "" {
		c.UnitsDir = v
	}
	if v := strings.TrimSpace(getenv(EnvStorePath)); v != "" {
		c.StorePath = v
	}
	if v := strings.TrimSpace(getenv(EnvOTLPEndpoint)); v != "" {
		c.OTLPEndpoint = v
	}
}

func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.UnitsDir) == "" {
		c.UnitsDir = defaultUnitsDir
	}
	if strings.TrimSpace(c.Prefix) == "" {
		c.Prefix = discover.DefaultPrefix
	}
	if strings.TrimSpace(c.Suffix) == "" {
		c.Suffix = discover.DefaultSuffix
	}
	if strings.TrimSpace(c.StorePath) == "" {
		path, err := history.DefaultSQLitePath()
		if err != nil {
			return err
		}
		c.StorePath = path
	}
	return nil
}
