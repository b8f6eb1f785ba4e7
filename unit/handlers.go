package unit

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// HandlerFunc is an in-process unit entry point registered by identifier.
type HandlerFunc func(ctx context.Context, req RunRequest) (map[string]any, error)

var (
	handlerMu sync.RWMutex
	handlers  = make(map[string]HandlerFunc)
)

// RegisterHandler adds a handler under the given identifier. Registering the
// same identifier twice overwrites the earlier handler; registration is
// expected to happen from init functions before discovery runs.
func RegisterHandler(id string, fn HandlerFunc) {
	clean := strings.TrimSpace(id)
	if clean == "" || fn == nil {
		return
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	handlers[clean] = fn
}

// LookupHandler resolves a handler by identifier.
func LookupHandler(id string) (HandlerFunc, bool) {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	fn, ok := handlers[strings.TrimSpace(id)]
	return fn, ok
}

// HandlerIDs returns registered handler identifiers in sorted order.
func HandlerIDs() []string {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	ids := make([]string, 0, len(handlers))
	for id := range handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
