// Package toast holds the single notification slot of the page.
package toast

import (
	"sync"
	"time"

	"github.com/builld/web/internal/site/schedule"
)

// DefaultDuration is how long a toast stays up when Options.Duration is zero.
const DefaultDuration = 4 * time.Second

// Type selects the toast accent.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Info    Type = "info"
	Warning Type = "warning"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case Success, Error, Info, Warning:
		return true
	}
	return false
}

// Position anchors the toast on screen.
type Position string

const (
	TopRight     Position = "top-right"
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	BottomRight  Position = "bottom-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
)

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case TopRight, TopLeft, TopCenter, BottomRight, BottomLeft, BottomCenter:
		return true
	}
	return false
}

// Options customise one toast. Zero values take the defaults.
type Options struct {
	Description string
	Type        Type
	Position    Position
	Duration    time.Duration
}

// Toast is the state of the slot.
type Toast struct {
	ID          uint64
	Message     string
	Description string
	Type        Type
	Position    Position
	Duration    time.Duration
	Visible     bool
	Paused      bool
	// Progress is the elapsed fraction of Duration in [0,1].
	Progress float64
}

// Notifier shows one toast at a time and dismisses it when its countdown
// runs out. Hovering pauses the countdown without losing elapsed time.
type Notifier struct {
	timers   *schedule.Group
	onChange func(Toast)

	mu        sync.Mutex
	current   Toast
	started   time.Time
	remaining time.Duration
	hovered   bool
	closed    bool
}

// NewNotifier returns an empty slot. onChange may be nil.
func NewNotifier(scheduler schedule.Scheduler, onChange func(Toast)) *Notifier {
	return &Notifier{timers: schedule.NewGroup(scheduler), onChange: onChange}
}

// Show replaces the current toast and restarts the countdown.
func (n *Notifier) Show(message string, opts Options) Toast {
	if !opts.Type.Valid() {
		opts.Type = Success
	}
	if !opts.Position.Valid() {
		opts.Position = TopRight
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return Toast{}
	}
	n.timers.StopAll()
	n.current = Toast{
		ID:          n.current.ID + 1,
		Message:     message,
		Description: opts.Description,
		Type:        opts.Type,
		Position:    opts.Position,
		Duration:    opts.Duration,
		Visible:     true,
		Paused:      n.hovered,
	}
	n.remaining = opts.Duration
	if !n.hovered {
		n.startLocked(opts.Duration)
	}
	shown := n.current
	n.publishLocked()
	return shown
}

// Hide dismisses the current toast.
func (n *Notifier) Hide() {
	n.mu.Lock()
	if n.closed || !n.current.Visible {
		n.mu.Unlock()
		return
	}
	n.timers.StopAll()
	n.hideLocked()
	n.publishLocked()
}

// PointerEnter pauses the countdown and keeps the remaining time.
func (n *Notifier) PointerEnter() {
	n.mu.Lock()
	n.hovered = true
	if n.closed || !n.current.Visible || n.current.Paused {
		n.mu.Unlock()
		return
	}
	n.timers.StopAll()
	elapsed := n.timers.Now().Sub(n.started)
	n.remaining = max(0, n.current.Duration-elapsed)
	n.current.Paused = true
	n.publishLocked()
}

// PointerLeave resumes the countdown with the remaining time.
func (n *Notifier) PointerLeave() {
	n.mu.Lock()
	n.hovered = false
	if n.closed || !n.current.Visible || !n.current.Paused {
		n.mu.Unlock()
		return
	}
	n.current.Paused = false
	n.startLocked(n.remaining)
	n.publishLocked()
}

// Snapshot returns the slot with Progress computed for now.
func (n *Notifier) Snapshot() Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	snapshot := n.current
	snapshot.Progress = n.progressLocked()
	return snapshot
}

// Close cancels the countdown and ignores later calls.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.timers.Close()
}

// startLocked runs the countdown for the rest of the current toast, treating
// Duration-remaining as already elapsed.
func (n *Notifier) startLocked(remaining time.Duration) {
	n.started = n.timers.Now().Add(-(n.current.Duration - remaining))
	id := n.current.ID
	n.timers.After(remaining, func() { n.expire(id) })
}

func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	if n.closed || n.current.ID != id || !n.current.Visible || n.current.Paused {
		n.mu.Unlock()
		return
	}
	n.hideLocked()
	n.publishLocked()
}

func (n *Notifier) hideLocked() {
	n.current.Progress = n.progressLocked()
	n.current.Visible = false
	n.current.Paused = false
	n.hovered = false
}

func (n *Notifier) progressLocked() float64 {
	if n.current.Duration <= 0 {
		return 0
	}
	if !n.current.Visible {
		return n.current.Progress
	}
	elapsed := n.current.Duration - n.remaining
	if !n.current.Paused {
		elapsed = n.timers.Now().Sub(n.started)
	}
	return min(1, max(0, float64(elapsed)/float64(n.current.Duration)))
}

func (n *Notifier) publishLocked() {
	snapshot := n.current
	snapshot.Progress = n.progressLocked()
	n.mu.Unlock()
	if n.onChange != nil {
		n.onChange(snapshot)
	}
}
