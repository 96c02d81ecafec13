package calendar

import (
	"context"
	"sync"
	"sync/atomic"
)

// Loader serializes calendar refreshes for a consumer that may issue them
// faster than they complete, such as a user flipping between regions. Each
// Load bumps a generation counter; a fetch that finishes after a newer one
// started is discarded instead of clobbering the fresher view.
type Loader struct {
	agg *Aggregator

	gen uint64 // newest requested generation

	mu      sync.RWMutex
	events  []Event
	region  string
	loading int32
}

func NewLoader(agg *Aggregator) *Loader {
	return &Loader{agg: agg, events: []Event{}}
}

// Load fetches the region's calendar and installs it unless a newer Load
// was requested while this one was in flight. It returns the installed
// view, or nil if this result was superseded.
func (l *Loader) Load(ctx context.Context, region string, rng Range, includeExternal bool) []Event {
	gen := atomic.AddUint64(&l.gen, 1)
	atomic.StoreInt32(&l.loading, 1)

	events := l.agg.Events(ctx, region, rng, includeExternal)
	return l.install(gen, region, events)
}

func (l *Loader) install(gen uint64, region string, events []Event) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if atomic.LoadUint64(&l.gen) != gen {
		// a newer request owns the view now
		return nil
	}
	l.events = events
	l.region = region
	atomic.StoreInt32(&l.loading, 0)
	return events
}

// Current returns the last installed view and its region.
func (l *Loader) Current() (region string, events []Event) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.region, l.events
}

// Loading reports whether a fetch is in flight.
func (l *Loader) Loading() bool {
	return atomic.LoadInt32(&l.loading) == 1
}
