// Package schedtest provides a manually advanced scheduler for tests.
package schedtest

import (
	"sync"
	"time"

	"github.com/builld/web/internal/site/schedule"
)

// Epoch is the start time of every Manual clock.
var Epoch = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// Manual is a schedule.Scheduler whose time only moves on Advance. Due
// callbacks run synchronously on the goroutine calling Advance, in deadline
// order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers map[uint64]*manualTimer
}

var _ schedule.Scheduler = (*Manual)(nil)

type manualTimer struct {
	clock *Manual
	id    uint64
	when  time.Time
	fn    func()
}

// NewManual returns a clock set to Epoch.
func NewManual() *Manual {
	return &Manual{now: Epoch, timers: map[uint64]*manualTimer{}}
}

// Now returns the manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc registers f to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, f func()) schedule.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	timer := &manualTimer{clock: m, id: m.seq, when: m.now.Add(d), fn: f}
	m.timers[timer.id] = timer
	return timer
}

// Advance moves the clock forward by d, firing due timers, including timers
// scheduled by callbacks that fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.timers, next.id)
		if next.when.After(m.now) {
			m.now = next.when
		}
		m.mu.Unlock()
		next.fn()
	}
}

// Pending reports the number of scheduled timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDueLocked(target time.Time) *manualTimer {
	var next *manualTimer
	for _, timer := range m.timers {
		if timer.when.After(target) {
			continue
		}
		if next == nil || timer.when.Before(next.when) || (timer.when.Equal(next.when) && timer.id < next.id) {
			next = timer
		}
	}
	return next
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if _, ok := t.clock.timers[t.id]; !ok {
		return false
	}
	delete(t.clock.timers, t.id)
	return true
}
