package splash

import (
	"math"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/builld/web/internal/site/schedule"
	"github.com/builld/web/internal/site/schedule/schedtest"
)

const fullSequence = FirstDelay + SegmentDuration + 3*(SegmentDelay+SegmentDuration) + HoldDelay + ExitDuration

func TestProgressInterpolatesWithinSegment(t *testing.T) {
	t.Parallel()

	clock := schedtest.NewManual()
	s := New(clock, nil, nil)
	t.Cleanup(s.Close)
	s.Start()

	clock.Advance(FirstDelay)
	if got := s.State().Progress; got != 0 {
		t.Fatalf("progress = %v before first frame", got)
	}
	clock.Advance(SegmentDuration / 2)
	if got := s.State().Progress; math.Abs(got-12.5) > 1e-9 {
		t.Fatalf("progress = %v halfway through first segment, want 12.5", got)
	}
	clock.Advance(SegmentDuration / 2)
	state := s.State()
	if state.Progress != 25 || state.Milestone != 1 {
		t.Fatalf("state after first segment = %+v", state)
	}
}

func TestSequenceCompletesOnce(t *testing.T) {
	t.Parallel()

	clock := schedtest.NewManual()
	completed := 0
	s := New(clock, nil, func() { completed++ })
	t.Cleanup(s.Close)
	s.Start()
	s.Start()

	clock.Advance(fullSequence - ExitDuration)
	state := s.State()
	if state.Progress != 100 || state.Milestone != len(Milestones)-1 || !state.Exiting || state.Done {
		t.Fatalf("state before exit completes = %+v", state)
	}
	clock.Advance(ExitDuration - time.Millisecond)
	if completed != 0 {
		t.Fatal("completed before exit transition ended")
	}
	clock.Advance(time.Millisecond)
	if completed != 1 || !s.State().Done {
		t.Fatalf("completed = %d, done = %v", completed, s.State().Done)
	}
	clock.Advance(time.Hour)
	if completed != 1 {
		t.Fatalf("completed = %d after idle", completed)
	}
	if clock.Pending() != 0 {
		t.Fatalf("pending = %d after completion", clock.Pending())
	}
}

func TestProgressIsMonotonic(t *testing.T) {
	t.Parallel()

	clock := schedtest.NewManual()
	last := -1.0
	s := New(clock, func(state State) {
		if state.Progress < last {
			t.Errorf("progress went backwards: %v -> %v", last, state.Progress)
		}
		last = state.Progress
	}, nil)
	t.Cleanup(s.Close)
	s.Start()
	clock.Advance(fullSequence)
	if last != 100 {
		t.Fatalf("final progress = %v", last)
	}
}

func TestCloseCancelsCompletion(t *testing.T) {
	t.Parallel()

	clock := schedtest.NewManual()
	s := New(clock, nil, func() { t.Fatal("completion after Close") })
	s.Start()
	clock.Advance(2 * time.Second)
	s.Close()
	if clock.Pending() != 0 {
		t.Fatalf("pending = %d after Close", clock.Pending())
	}
	clock.Advance(time.Minute)
}

func TestCloseOnRuntimeClockDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(schedule.Clock{}, nil, nil)
	s.Start()
	s.Close()
}
