// Package schedule abstracts timers so the page state machines can be driven
// by the browser event loop, the runtime clock, or a manual test clock.
package schedule

import (
	"sync"
	"time"
)

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer.
	Stop() bool
}

// Scheduler creates timers and reports the current time.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Clock schedules on the runtime clock.
type Clock struct{}

// Now returns time.Now.
func (Clock) Now() time.Time { return time.Now() }

// AfterFunc wraps time.AfterFunc.
func (Clock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Group owns every timer started through it so a component can release all of
// its pending work in one call when its lifetime ends.
type Group struct {
	scheduler Scheduler

	mu     sync.Mutex
	nextID uint64
	timers map[uint64]Timer
	closed bool
}

// NewGroup returns a group scheduling on s. A nil scheduler uses Clock.
func NewGroup(s Scheduler) *Group {
	if s == nil {
		s = Clock{}
	}
	return &Group{scheduler: s, timers: map[uint64]Timer{}}
}

// Now returns the scheduler time.
func (g *Group) Now() time.Time {
	return g.scheduler.Now()
}

// After schedules f after d and tracks the handle until it fires or is
// stopped. After returns nil once the group is closed.
func (g *Group) After(d time.Duration, f func()) Timer {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.nextID++
	id := g.nextID
	timer := g.scheduler.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.timers[id]
		delete(g.timers, id)
		g.mu.Unlock()
		if live {
			f()
		}
	})
	g.timers[id] = timer
	return timer
}

// StopAll cancels every pending timer. The group stays usable.
func (g *Group) StopAll() {
	g.mu.Lock()
	timers := g.timers
	g.timers = map[uint64]Timer{}
	g.mu.Unlock()
	for _, timer := range timers {
		timer.Stop()
	}
}

// Close cancels every pending timer and rejects new ones.
func (g *Group) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.StopAll()
}

// Pending reports how many timers are still outstanding.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}
