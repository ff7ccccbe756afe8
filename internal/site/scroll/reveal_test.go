package scroll

import (
	"testing"
	"time"

	"github.com/builld/web/internal/site/section"
)

func TestRevealActivatesAfterDelay(t *testing.T) {
	t.Parallel()

	o, _, clock := newTestOrchestrator(t)
	r := NewReveal(o, clock, RevealConfig{Section: section.Contact, Threshold: 0.3, Delay: 100 * time.Millisecond})
	t.Cleanup(r.Close)

	r.SetInView(true)
	clock.Advance(99 * time.Millisecond)
	if got := o.State().ActiveSection; got != section.Splash {
		t.Fatalf("active = %q before delay", got)
	}
	clock.Advance(time.Millisecond)
	if got := o.State().ActiveSection; got != section.Contact {
		t.Fatalf("active = %q, want contact", got)
	}
}

func TestRevealLeavingCancelsPendingActivation(t *testing.T) {
	t.Parallel()

	o, _, clock := newTestOrchestrator(t)
	r := NewReveal(o, clock, RevealConfig{Section: section.Services, Delay: 50 * time.Millisecond})
	t.Cleanup(r.Close)

	r.SetInView(true)
	r.SetInView(false)
	clock.Advance(time.Second)
	if got := o.State().ActiveSection; got != section.Splash {
		t.Fatalf("active = %q, want splash", got)
	}
	if r.InView() {
		t.Fatal("expected out of view")
	}
}

func TestRevealWithoutDelayActivatesImmediately(t *testing.T) {
	t.Parallel()

	o, _, _ := newTestOrchestrator(t)
	r := NewReveal(o, nil, RevealConfig{Section: section.Hero, Threshold: 0.6})
	t.Cleanup(r.Close)

	r.SetInView(true)
	if got := o.State().ActiveSection; got != section.Hero {
		t.Fatalf("active = %q, want hero", got)
	}
}

func TestDefaultRevealsCoverObservedSections(t *testing.T) {
	t.Parallel()

	seen := map[section.Section]bool{}
	for _, cfg := range DefaultReveals() {
		if !cfg.Section.Valid() {
			t.Fatalf("unknown section %q", cfg.Section)
		}
		if cfg.Threshold <= 0 || cfg.Threshold > 1 {
			t.Fatalf("%s threshold %v out of range", cfg.Section, cfg.Threshold)
		}
		seen[cfg.Section] = true
	}
	if seen[section.Splash] {
		t.Fatal("splash is not observed")
	}
	if len(seen) != len(section.All())-1 {
		t.Fatalf("observed %d sections", len(seen))
	}
}
