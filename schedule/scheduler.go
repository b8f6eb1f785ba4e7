package schedule

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/toolrack/toolrack/dispatch"
	"github.com/toolrack/toolrack/registry"
)

// Entry is one unit with a valid schedule declaration.
type Entry struct {
	UnitName   string
	Expression string
	schedule   cron.Schedule
	next       time.Time
}

// Warning records a unit whose schedule declaration could not be parsed.
// An invalid schedule never blocks interactive dispatch of the unit.
type Warning struct {
	UnitName   string
	Expression string
	Cause      string
}

// Plan splits the registry's scheduled units into runnable entries and
// parse warnings.
func Plan(reg *registry.Registry, now time.Time) ([]Entry, []Warning) {
	var entries []Entry
	var warnings []Warning
	for _, u := range reg.Units() {
		if u.Schedule == "" {
			continue
		}
		parsed, err := ParseExpressionUTC(u.Schedule)
		if err != nil {
			warnings = append(warnings, Warning{
				UnitName:   u.DisplayName,
				Expression: u.Schedule,
				Cause:      err.Error(),
			})
			continue
		}
		entries = append(entries, Entry{
			UnitName:   u.DisplayName,
			Expression: u.Schedule,
			schedule:   parsed,
			next:       parsed.Next(now.UTC()),
		})
	}
	return entries, warnings
}

// ReportFunc receives the outcome of each scheduled dispatch cycle.
type ReportFunc func(report dispatch.Report)

// Scheduler drives scheduled dispatch cycles for one host lifetime.
type Scheduler struct {
	cache      *registry.Cache
	dispatcher *dispatch.Dispatcher
	onReport   ReportFunc

	// now and tick are swappable for tests.
	now  func() time.Time
	tick func(d time.Duration) <-chan time.Time
}

// New creates a scheduler over the shared registry cache and dispatcher.
func New(cache *registry.Cache, dispatcher *dispatch.Dispatcher, onReport ReportFunc) *Scheduler {
	return &Scheduler{
		cache:      cache,
		dispatcher: dispatcher,
		onReport:   onReport,
		now:        time.Now,
		tick: func(d time.Duration) <-chan time.Time {
			return time.After(d)
		},
	}
}

// Run blocks dispatching scheduled units until ctx is canceled. It returns
// the registry construction error if discovery failed, and ctx.Err() on
// cancellation. A registry with no scheduled units returns immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	reg, err := s.cache.Registry()
	if err != nil {
		return err
	}

	entries, _ := Plan(reg, s.now())
	if len(entries) == 0 {
		return nil
	}

	for {
		idx := nextDue(entries)
		wait := time.Until(entries[idx].next)
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.tick(wait):
		}

		report, err := s.dispatcher.Dispatch(ctx, entries[idx].UnitName)
		if err != nil {
			return err
		}
		if s.onReport != nil {
			s.onReport(report)
		}
		entries[idx].next = entries[idx].schedule.Next(s.now().UTC())
	}
}

func nextDue(entries []Entry) int {
	idx := 0
	for i := range entries {
		if entries[i].next.Before(entries[idx].next) {
			idx = i
		}
	}
	return idx
}
