// Package stepper sequences the process cards: a short intro, autoplay
// through the three cards, then the finale message.
package stepper

import (
	"sync"
	"time"

	"github.com/builld/web/internal/site/schedule"
)

// CardCount is the number of process cards.
const CardCount = 3

const (
	IntroDelay       = 800 * time.Millisecond
	AutoplayInterval = 2500 * time.Millisecond
	FinaleDelay      = 600 * time.Millisecond
)

// Phase is the stage of the card sequence.
type Phase string

const (
	PhaseIntro  Phase = "intro"
	PhaseCards  Phase = "cards"
	PhaseFinale Phase = "finale"
)

// State is a snapshot of the stepper.
type State struct {
	ActiveIndex      int
	Phase            Phase
	IsFirstView      bool
	ShowFinalMessage bool
	UserInteracted   bool
	Autoplay         bool
	InView           bool
}

func initialState() State {
	return State{Phase: PhaseIntro, IsFirstView: true}
}

// Stepper is the card sequence of one process-steps section.
type Stepper struct {
	timers   *schedule.Group
	onChange func(State)

	mu     sync.Mutex
	state  State
	gen    uint64
	closed bool
}

// New returns an out-of-view stepper. onChange receives every new state and
// may be nil.
func New(scheduler schedule.Scheduler, onChange func(State)) *Stepper {
	return &Stepper{
		timers:   schedule.NewGroup(scheduler),
		onChange: onChange,
		state:    initialState(),
	}
}

// State returns the current snapshot.
func (s *Stepper) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Enter restarts the sequence from the first card.
func (s *Stepper) Enter() {
	s.mu.Lock()
	if s.closed || s.state.InView {
		s.mu.Unlock()
		return
	}
	s.timers.StopAll()
	s.gen++
	gen := s.gen
	s.state = initialState()
	s.state.InView = true
	s.state.ActiveIndex = 1
	s.state.Autoplay = true
	s.timers.After(IntroDelay, func() { s.finishIntro(gen) })
	s.publishLocked()
}

// Leave cancels pending work and resets to the initial state.
func (s *Stepper) Leave() {
	s.mu.Lock()
	if s.closed || !s.state.InView {
		s.mu.Unlock()
		return
	}
	s.timers.StopAll()
	s.gen++
	s.state = initialState()
	s.publishLocked()
}

// Select brings card index (1-based) to the front and stops autoplay. It
// reports whether the selection was applied.
func (s *Stepper) Select(index int) bool {
	s.mu.Lock()
	if s.closed || !s.state.InView || index < 1 || index > CardCount {
		s.mu.Unlock()
		return false
	}
	s.timers.StopAll()
	s.gen++
	s.state.ActiveIndex = index
	s.state.UserInteracted = true
	s.state.Autoplay = false
	s.state.IsFirstView = false
	if index == CardCount {
		s.enterFinaleLocked()
	} else {
		s.state.Phase = PhaseCards
		s.state.ShowFinalMessage = false
	}
	s.publishLocked()
	return true
}

// Next selects the following card.
func (s *Stepper) Next() bool {
	index := s.State().ActiveIndex
	if index >= CardCount {
		return false
	}
	return s.Select(index + 1)
}

// Prev selects the previous card.
func (s *Stepper) Prev() bool {
	index := s.State().ActiveIndex
	if index <= 1 {
		return false
	}
	return s.Select(index - 1)
}

// Close releases every timer. The stepper ignores later calls.
func (s *Stepper) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.timers.Close()
}

func (s *Stepper) finishIntro(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.state.Phase = PhaseCards
	s.state.IsFirstView = false
	s.timers.After(AutoplayInterval, func() { s.advance(gen) })
	s.publishLocked()
}

func (s *Stepper) advance(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || !s.state.Autoplay {
		s.mu.Unlock()
		return
	}
	s.state.ActiveIndex++
	if s.state.ActiveIndex >= CardCount {
		s.state.ActiveIndex = CardCount
		s.state.Autoplay = false
		s.enterFinaleLocked()
	} else {
		s.timers.After(AutoplayInterval, func() { s.advance(gen) })
	}
	s.publishLocked()
}

func (s *Stepper) enterFinaleLocked() {
	s.state.Phase = PhaseFinale
	s.state.ShowFinalMessage = false
	gen := s.gen
	s.timers.After(FinaleDelay, func() {
		s.mu.Lock()
		if s.closed || gen != s.gen {
			s.mu.Unlock()
			return
		}
		s.state.ShowFinalMessage = true
		s.publishLocked()
	})
}

// publishLocked releases s.mu and reports the new state.
func (s *Stepper) publishLocked() {
	state := s.state
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(state)
	}
}
