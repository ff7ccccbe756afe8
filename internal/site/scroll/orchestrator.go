// Package scroll tracks which page section is active.
//
// The Orchestrator is the single owner of ScrollState. Passive scroll events
// are throttled and never override a programmatic scroll while it settles.
package scroll

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/builld/web/internal/site/schedule"
	"github.com/builld/web/internal/site/section"
)

const (
	// SettleDelay is how long a programmatic scroll suppresses passive updates.
	SettleDelay = time.Second
	// ThrottleInterval is the minimum spacing between passive recomputations.
	ThrottleInterval = 100 * time.Millisecond
	// MaxProcessCardStep is the last discrete step of the process section.
	MaxProcessCardStep = 4

	positionBias = 0.1
)

// Rect is the viewport-relative box of a section root.
type Rect struct {
	Top    float64
	Bottom float64
}

// Height returns Bottom - Top.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Viewport is the document the orchestrator measures and scrolls.
type Viewport interface {
	// Height is the visible viewport height in pixels.
	Height() float64
	// Measure returns the bounding box of the section root, or false when the
	// element is not in the document.
	Measure(s section.Section) (Rect, bool)
	// ScrollIntoView smooth-scrolls to the section root and reports whether
	// the element exists.
	ScrollIntoView(s section.Section) bool
}

// State is a snapshot of the orchestrator.
type State struct {
	ActiveSection        section.Section
	IsProgrammaticScroll bool
	ProcessCardStep      int
}

// Orchestrator owns the active section of one page.
type Orchestrator struct {
	viewport Viewport
	timers   *schedule.Group
	limiter  *rate.Limiter

	mu           sync.Mutex
	state        State
	settleGen    uint64
	listeners    map[int]func(State)
	nextListener int
	closed       bool
}

// New returns an orchestrator whose initial active section is splash.
func New(viewport Viewport, scheduler schedule.Scheduler) *Orchestrator {
	timers := schedule.NewGroup(scheduler)
	return &Orchestrator{
		viewport:  viewport,
		timers:    timers,
		limiter:   rate.NewLimiter(rate.Every(ThrottleInterval), 1),
		state:     State{ActiveSection: section.Splash},
		listeners: map[int]func(State){},
	}
}

// State returns the current snapshot.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers fn for every state change. The returned func removes it.
func (o *Orchestrator) Subscribe(fn func(State)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.nextListener
	o.nextListener++
	o.listeners[id] = fn
	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// SetActiveSection overrides the active section. Unknown sections and
// unchanged values are ignored.
func (o *Orchestrator) SetActiveSection(s section.Section) {
	if !s.Valid() {
		return
	}
	o.mu.Lock()
	if o.closed || o.state.ActiveSection == s {
		o.mu.Unlock()
		return
	}
	o.state.ActiveSection = s
	o.publishLocked()
}

// ScrollToSection starts a programmatic scroll. It returns false without any
// effect while another programmatic scroll is settling, and false after
// resetting its flags when the section element is missing.
func (o *Orchestrator) ScrollToSection(s section.Section) bool {
	o.mu.Lock()
	if o.closed || o.state.IsProgrammaticScroll || !s.Valid() {
		o.mu.Unlock()
		return false
	}
	o.state.IsProgrammaticScroll = true
	o.mu.Unlock()

	if !o.viewport.ScrollIntoView(s) {
		o.mu.Lock()
		o.state.IsProgrammaticScroll = false
		o.mu.Unlock()
		return false
	}

	o.mu.Lock()
	if o.closed {
		o.state.IsProgrammaticScroll = false
		o.mu.Unlock()
		return false
	}
	o.state.ActiveSection = s
	o.settleGen++
	gen := o.settleGen
	o.timers.StopAll()
	o.timers.After(SettleDelay, func() { o.settle(gen) })
	o.publishLocked()
	return true
}

func (o *Orchestrator) settle(gen uint64) {
	o.mu.Lock()
	if o.closed || gen != o.settleGen {
		o.mu.Unlock()
		return
	}
	o.state.IsProgrammaticScroll = false
	o.publishLocked()
}

// HandleScroll recomputes the active section from the viewport. Calls closer
// than ThrottleInterval apart are dropped; it reports whether a
// recomputation ran.
func (o *Orchestrator) HandleScroll() bool {
	o.mu.Lock()
	if o.closed || o.state.IsProgrammaticScroll {
		o.mu.Unlock()
		return false
	}
	o.mu.Unlock()

	if !o.limiter.AllowN(o.timers.Now(), 1) {
		return false
	}

	best, found := o.mostVisible()
	step, hasStep := o.processStep()

	o.mu.Lock()
	if o.closed || o.state.IsProgrammaticScroll {
		o.mu.Unlock()
		return true
	}
	changed := false
	if found && best != o.state.ActiveSection {
		o.state.ActiveSection = best
		changed = true
	}
	if hasStep && o.state.ActiveSection == section.Process && step != o.state.ProcessCardStep {
		o.state.ProcessCardStep = step
		changed = true
	}
	if !changed {
		o.mu.Unlock()
		return true
	}
	o.publishLocked()
	return true
}

// Close cancels the settle timer and detaches listeners. Later calls on the
// orchestrator have no effect.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	o.listeners = map[int]func(State){}
	o.mu.Unlock()
	o.timers.Close()
}

func (o *Orchestrator) mostVisible() (section.Section, bool) {
	height := o.viewport.Height()
	if height <= 0 {
		return "", false
	}
	var (
		best     section.Section
		bestArea float64
	)
	for _, s := range section.All() {
		rect, ok := o.viewport.Measure(s)
		if !ok {
			continue
		}
		if area := WeightedVisibleArea(rect, height); area > bestArea {
			bestArea = area
			best = s
		}
	}
	return best, bestArea > 0
}

func (o *Orchestrator) processStep() (int, bool) {
	rect, ok := o.viewport.Measure(section.Process)
	if !ok {
		return 0, false
	}
	return ProcessCardStep(rect), true
}

// publishLocked releases o.mu and delivers the new state to listeners.
func (o *Orchestrator) publishLocked() {
	state := o.state
	listeners := make([]func(State), 0, len(o.listeners))
	for _, fn := range o.listeners {
		listeners = append(listeners, fn)
	}
	o.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

// WeightedVisibleArea is the visible height of rect inside a viewport of the
// given height, biased by up to 10% toward sections near the top.
func WeightedVisibleArea(rect Rect, viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		return 0
	}
	visibleTop := math.Max(0, rect.Top)
	visibleBottom := math.Min(viewportHeight, rect.Bottom)
	if visibleBottom <= visibleTop {
		return 0
	}
	weight := 1 + (1-visibleTop/viewportHeight)*positionBias
	return (visibleBottom - visibleTop) * weight
}

// ProcessCardStep maps how far the process section has scrolled past the
// viewport top onto the steps 0..MaxProcessCardStep.
func ProcessCardStep(rect Rect) int {
	height := rect.Height()
	if height <= 0 {
		return 0
	}
	progress := math.Max(0, math.Min(1, -rect.Top/height))
	return min(MaxProcessCardStep, int(math.Floor(progress*(MaxProcessCardStep+1))))
}
