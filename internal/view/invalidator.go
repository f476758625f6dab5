// Package view tracks staleness of cached page routes. A successful record
// mutation marks the whole route template stale; the next render recomputes
// from fresh data and marks it fresh again.
package view

import (
	"sync"
)

// InvalidationRecorder observes invalidations, typically a metrics counter.
type InvalidationRecorder interface {
	RecordInvalidation(route string)
}

// Invalidator marks named route templates as stale. Invalidation is
// idempotent: repeated invalidation of an already-stale route is a no-op.
type Invalidator struct {
	mu       sync.Mutex
	stale    map[string]bool
	watchers map[string][]chan string
	recorder InvalidationRecorder
}

func NewInvalidator(recorder InvalidationRecorder) *Invalidator {
	return &Invalidator{
		stale:    make(map[string]bool),
		watchers: make(map[string][]chan string),
		recorder: recorder,
	}
}

// Invalidate marks route stale and notifies subscribers. Whole-route
// invalidation only: the mutation's target record does not narrow the scope.
func (v *Invalidator) Invalidate(route string) {
	v.mu.Lock()
	if v.stale[route] {
		v.mu.Unlock()
		return
	}
	v.stale[route] = true
	watchers := append([]chan string(nil), v.watchers[route]...)
	v.mu.Unlock()

	if v.recorder != nil {
		v.recorder.RecordInvalidation(route)
	}
	for _, ch := range watchers {
		select {
		case ch <- route:
		default:
		}
	}
}

// IsStale reports whether route needs recomputation.
func (v *Invalidator) IsStale(route string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale[route]
}

// MarkFresh records that route has been recomputed.
func (v *Invalidator) MarkFresh(route string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.stale, route)
}

// Subscribe returns a channel that receives the route name whenever it
// transitions from fresh to stale. The channel is buffered; a slow consumer
// misses notifications rather than blocking mutations.
func (v *Invalidator) Subscribe(route string) <-chan string {
	ch := make(chan string, 1)
	v.mu.Lock()
	v.watchers[route] = append(v.watchers[route], ch)
	v.mu.Unlock()
	return ch
}
