package scroll

import (
	"sync"
	"time"

	"github.com/builld/web/internal/site/schedule"
	"github.com/builld/web/internal/site/section"
)

// RevealConfig describes how a section claims the active slot when its own
// intersection observer reports it in view.
type RevealConfig struct {
	Section section.Section
	// Threshold is the intersection ratio that counts as in view.
	Threshold float64
	// Delay postpones SetActiveSection after entering view.
	Delay time.Duration
}

// DefaultReveals lists the observed sections of the landing page.
func DefaultReveals() []RevealConfig {
	return []RevealConfig{
		{Section: section.Hero, Threshold: 0.6},
		{Section: section.About, Threshold: 0.6},
		{Section: section.Process, Threshold: 0.4},
		{Section: section.ProcessSteps, Threshold: 0.4},
		{Section: section.Services, Threshold: 0.3, Delay: 50 * time.Millisecond},
		{Section: section.Contact, Threshold: 0.3, Delay: 100 * time.Millisecond},
	}
}

// Reveal is the intersection gate of one section.
type Reveal struct {
	orchestrator *Orchestrator
	config       RevealConfig
	timers       *schedule.Group

	mu     sync.Mutex
	inView bool
}

// NewReveal returns a gate that reports cfg.Section to o.
func NewReveal(o *Orchestrator, scheduler schedule.Scheduler, cfg RevealConfig) *Reveal {
	return &Reveal{orchestrator: o, config: cfg, timers: schedule.NewGroup(scheduler)}
}

// Config returns the gate configuration.
func (r *Reveal) Config() RevealConfig {
	return r.config
}

// InView reports the last intersection state.
func (r *Reveal) InView() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inView
}

// SetInView records an intersection change. Entering view activates the
// section after the configured delay; leaving cancels a pending activation.
func (r *Reveal) SetInView(inView bool) {
	r.mu.Lock()
	if r.inView == inView {
		r.mu.Unlock()
		return
	}
	r.inView = inView
	r.mu.Unlock()

	r.timers.StopAll()
	if !inView {
		return
	}
	if r.config.Delay <= 0 {
		r.orchestrator.SetActiveSection(r.config.Section)
		return
	}
	r.timers.After(r.config.Delay, func() {
		if r.InView() {
			r.orchestrator.SetActiveSection(r.config.Section)
		}
	})
}

// Close cancels any pending activation.
func (r *Reveal) Close() {
	r.timers.Close()
}
