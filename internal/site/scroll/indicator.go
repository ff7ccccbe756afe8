package scroll

import (
	"sync"
	"time"

	"github.com/builld/web/internal/site/schedule"
	"github.com/builld/web/internal/site/section"
)

// IndicatorDelay debounces page indicator updates.
const IndicatorDelay = 200 * time.Millisecond

// Indicator follows the active section for the page indicator, settling on a
// value only after it has been stable for IndicatorDelay.
type Indicator struct {
	timers      *schedule.Group
	unsubscribe func()
	onChange    func(section.Section)

	mu     sync.Mutex
	stable section.Section
}

// NewIndicator subscribes to o. onChange receives each new stable navigation
// section and may be nil.
func NewIndicator(o *Orchestrator, scheduler schedule.Scheduler, onChange func(section.Section)) *Indicator {
	ind := &Indicator{
		timers:   schedule.NewGroup(scheduler),
		onChange: onChange,
		stable:   o.State().ActiveSection.Normalize(),
	}
	ind.unsubscribe = o.Subscribe(ind.observe)
	return ind
}

// Section returns the current stable section, with process-steps folded into
// process.
func (i *Indicator) Section() section.Section {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stable
}

func (i *Indicator) observe(state State) {
	next := state.ActiveSection.Normalize()
	i.timers.StopAll()
	i.timers.After(IndicatorDelay, func() {
		i.mu.Lock()
		if i.stable == next {
			i.mu.Unlock()
			return
		}
		i.stable = next
		i.mu.Unlock()
		if i.onChange != nil {
			i.onChange(next)
		}
	})
}

// Close stops following the orchestrator.
func (i *Indicator) Close() {
	i.unsubscribe()
	i.timers.Close()
}
