package toast

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"

	"github.com/builld/web/internal/site/schedule"
	"github.com/builld/web/internal/site/schedule/schedtest"
)

func newTestNotifier(t *testing.T) (*Notifier, *schedtest.Manual) {
	t.Helper()
	clock := schedtest.NewManual()
	n := NewNotifier(clock, nil)
	t.Cleanup(n.Close)
	return n, clock
}

func TestShowAppliesDefaults(t *testing.T) {
	t.Parallel()

	n, _ := newTestNotifier(t)
	got := n.Show("Saved", Options{})
	want := Toast{ID: 1, Message: "Saved", Type: Success, Position: TopRight, Duration: DefaultDuration, Visible: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("toast mismatch (-want +got):\n%s", diff)
	}
}

func TestShowAutoDismisses(t *testing.T) {
	t.Parallel()

	n, clock := newTestNotifier(t)
	n.Show("Saved", Options{Type: Info, Position: BottomLeft, Duration: time.Second})

	clock.Advance(250 * time.Millisecond)
	if got := n.Snapshot().Progress; math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("progress = %v, want 0.25", got)
	}
	clock.Advance(750 * time.Millisecond)
	snapshot := n.Snapshot()
	if snapshot.Visible {
		t.Fatal("toast still visible after duration")
	}
	if snapshot.Progress != 1 {
		t.Fatalf("progress = %v after dismiss, want 1", snapshot.Progress)
	}
}

func TestShowTwiceKeepsOnlySecond(t *testing.T) {
	t.Parallel()

	n, clock := newTestNotifier(t)
	n.Show("first", Options{Duration: time.Second})
	clock.Advance(900 * time.Millisecond)
	n.Show("second", Options{Type: Error, Duration: time.Second})

	clock.Advance(200 * time.Millisecond)
	snapshot := n.Snapshot()
	if !snapshot.Visible || snapshot.Message != "second" || snapshot.Type != Error {
		t.Fatalf("snapshot = %+v, want visible second toast", snapshot)
	}
	if clock.Pending() != 1 {
		t.Fatalf("pending = %d, want a single countdown", clock.Pending())
	}
	clock.Advance(800 * time.Millisecond)
	if n.Snapshot().Visible {
		t.Fatal("second toast not dismissed on its own schedule")
	}
}

func TestHoverPausesAndPreservesRemaining(t *testing.T) {
	t.Parallel()

	n, clock := newTestNotifier(t)
	n.Show("hello", Options{Duration: 4 * time.Second})

	clock.Advance(time.Second)
	n.PointerEnter()
	clock.Advance(time.Minute)
	snapshot := n.Snapshot()
	if !snapshot.Visible || !snapshot.Paused {
		t.Fatalf("snapshot = %+v, want visible paused toast", snapshot)
	}
	if math.Abs(snapshot.Progress-0.25) > 1e-9 {
		t.Fatalf("paused progress = %v, want 0.25", snapshot.Progress)
	}

	n.PointerLeave()
	clock.Advance(3*time.Second - time.Millisecond)
	if !n.Snapshot().Visible {
		t.Fatal("toast dismissed before the remaining time elapsed")
	}
	clock.Advance(time.Millisecond)
	if n.Snapshot().Visible {
		t.Fatal("toast not dismissed after the remaining time")
	}
}

func TestShowWhileHoveredStartsPaused(t *testing.T) {
	t.Parallel()

	n, clock := newTestNotifier(t)
	n.Show("first", Options{})
	n.PointerEnter()
	n.Show("second", Options{Duration: time.Second})

	clock.Advance(time.Hour)
	if snapshot := n.Snapshot(); !snapshot.Visible || !snapshot.Paused {
		t.Fatalf("snapshot = %+v, want paused", snapshot)
	}
	n.PointerLeave()
	clock.Advance(time.Second)
	if n.Snapshot().Visible {
		t.Fatal("toast not dismissed after leave")
	}
}

func TestHide(t *testing.T) {
	t.Parallel()

	clock := schedtest.NewManual()
	var seen []Toast
	n := NewNotifier(clock, func(toast Toast) { seen = append(seen, toast) })
	t.Cleanup(n.Close)

	n.Show("bye", Options{Position: "middle", Type: "loud"})
	clock.Advance(time.Second)
	n.Hide()
	n.Hide()

	want := []Toast{
		{ID: 1, Message: "bye", Type: Success, Position: TopRight, Duration: DefaultDuration, Visible: true},
		{ID: 1, Message: "bye", Type: Success, Position: TopRight, Duration: DefaultDuration, Progress: 0.25},
	}
	if diff := cmp.Diff(want, seen, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if clock.Pending() != 0 {
		t.Fatalf("pending = %d after Hide", clock.Pending())
	}
}

func TestCloseOnRuntimeClockDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	n := NewNotifier(schedule.Clock{}, nil)
	n.Show("bye", Options{})
	n.Close()
	if got := n.Show("ignored", Options{}); got.Visible {
		t.Fatal("closed notifier showed a toast")
	}
}
