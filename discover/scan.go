package discover

import (
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultPrefix is the discovery naming-convention prefix.
	DefaultPrefix = "code"
	// DefaultSuffix is the unit definition file extension.
	DefaultSuffix = ".yaml"
)

// Scan returns the entry names in dir that match the <prefix>*<suffix>
// naming convention. It does not recurse and does not trust the underlying
// listing order; ordering is applied downstream. An unreadable directory is
// propagated, not swallowed.
func Scan(dir, prefix, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("discover: reading units directory %q: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			candidates = append(candidates, name)
		}
	}
	return candidates, nil
}
