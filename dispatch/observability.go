package dispatch

import (
	"sync"

	"github.com/toolrack/toolrack/unit"
)

// Observation captures one dispatch cycle outcome.
type Observation struct {
	UnitName   string
	Transport  unit.RunnerKind
	CycleID    string
	DurationMS int64
	Success    bool
	ErrorKind  string
}

// Observer receives dispatch-level observability events.
type Observer interface {
	ObserveDispatch(observation Observation)
}

type noopObserver struct{}

func (noopObserver) ObserveDispatch(Observation) {}

var (
	observerMu     sync.RWMutex
	activeObserver Observer = noopObserver{}
)

// SetObserver sets the process-wide dispatch observer. Passing nil restores
// the no-op observer.
func SetObserver(observer Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	if observer == nil {
		activeObserver = noopObserver{}
		return
	}
	activeObserver = observer
}

func emit(observation Observation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveDispatch(observation)
}
