package registry

import "sync"

// BuildFunc produces a Registry; Cache guarantees it runs at most once.
type BuildFunc func() (*Registry, error)

// Cache memoizes one discovery pass for the host process lifetime.
//
// This is a correctness requirement, not an optimization: re-running
// discovery mid-session could change the set or order of units visible to
// an in-progress interactive session. Construction happens lazily on first
// access; concurrent first callers block until the single build finishes
// and then share its result (or its error). The only reset path is a host
// restart.
type Cache struct {
	build BuildFunc

	once sync.Once
	reg  *Registry
	err  error
}

// NewCache creates a cache around an arbitrary build function.
func NewCache(build BuildFunc) *Cache {
	return &Cache{build: build}
}

// NewCacheFor creates a cache that builds from the given discovery options.
func NewCacheFor(opts Options) *Cache {
	return NewCache(func() (*Registry, error) {
		return Build(opts)
	})
}

// Registry returns the cached registry, building it on first access.
func (c *Cache) Registry() (*Registry, error) {
	c.once.Do(func() {
		c.reg, c.err = c.build()
	})
	return c.reg, c.err
}
