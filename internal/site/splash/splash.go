// Package splash animates the loading progress shown before the hero.
package splash

import (
	"sync"
	"time"

	"github.com/builld/web/internal/site/schedule"
)

const (
	FrameInterval   = 16 * time.Millisecond
	SegmentDuration = 800 * time.Millisecond
	FirstDelay      = 500 * time.Millisecond
	SegmentDelay    = 300 * time.Millisecond
	HoldDelay       = 500 * time.Millisecond
	ExitDuration    = 800 * time.Millisecond
)

// Milestones are the progress values the bar pauses on.
var Milestones = [...]float64{0, 25, 50, 75, 100}

// State is a snapshot of the splash screen.
type State struct {
	Progress  float64
	Milestone int
	Exiting   bool
	Done      bool
}

// Splash drives the progress bar, the exit transition and completion.
type Splash struct {
	timers     *schedule.Group
	onChange   func(State)
	onComplete func()

	mu           sync.Mutex
	state        State
	segmentStart time.Time
	started      bool
	closed       bool
}

// New returns an idle splash. Both callbacks may be nil.
func New(scheduler schedule.Scheduler, onChange func(State), onComplete func()) *Splash {
	return &Splash{
		timers:     schedule.NewGroup(scheduler),
		onChange:   onChange,
		onComplete: onComplete,
	}
}

// Start begins the sequence once.
func (s *Splash) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true
	s.timers.After(FirstDelay, s.beginSegment)
}

// State returns the current snapshot.
func (s *Splash) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close cancels pending frames. Completion never fires after Close.
func (s *Splash) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.timers.Close()
}

func (s *Splash) beginSegment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.segmentStart = s.timers.Now()
	s.timers.After(FrameInterval, s.frame)
}

func (s *Splash) frame() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	from := Milestones[s.state.Milestone]
	to := Milestones[s.state.Milestone+1]
	t := float64(s.timers.Now().Sub(s.segmentStart)) / float64(SegmentDuration)
	if t > 1 {
		t = 1
	}
	s.state.Progress = from + (to-from)*t
	switch {
	case t < 1:
		s.timers.After(FrameInterval, s.frame)
	case s.state.Milestone+1 == len(Milestones)-1:
		s.state.Milestone++
		s.timers.After(HoldDelay, s.exit)
	default:
		s.state.Milestone++
		s.timers.After(SegmentDelay, s.beginSegment)
	}
	s.publishLocked()
}

func (s *Splash) exit() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.Exiting = true
	s.timers.After(ExitDuration, s.complete)
	s.publishLocked()
}

func (s *Splash) complete() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.Done = true
	s.publishLocked()
	if s.onComplete != nil {
		s.onComplete()
	}
}

func (s *Splash) publishLocked() {
	state := s.state
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(state)
	}
}
