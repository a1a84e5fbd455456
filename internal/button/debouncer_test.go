package button

import (
	"testing"
	"time"
)

const (
	twiceWindow = 700 * time.Millisecond
	pressWindow = 1800 * time.Millisecond
)

// play feeds a sequence of timed edges and polls, collecting every event.
// Polls run every 50ms between edges, mirroring the watcher loop.
func play(t *testing.T, d *Debouncer, edges []struct {
	edge Edge
	at   time.Duration
}, until time.Duration) []Event {
	t.Helper()
	start := time.Unix(1000, 0)
	var events []Event

	next := 0
	for offset := time.Duration(0); offset <= until; offset += 50 * time.Millisecond {
		now := start.Add(offset)
		for next < len(edges) && edges[next].at <= offset {
			if ev, ok := d.Feed(edges[next].edge, start.Add(edges[next].at)); ok {
				events = append(events, ev)
			}
			next++
		}
		if ev, ok := d.Poll(now); ok {
			events = append(events, ev)
		}
	}
	return events
}

type timedEdge = struct {
	edge Edge
	at   time.Duration
}

func TestSingleClick(t *testing.T) {
	d := NewDebouncer(twiceWindow, pressWindow)

	events := play(t, d, []timedEdge{
		{EdgeDown, 0},
		{EdgeUp, 200 * time.Millisecond},
	}, 2*time.Second)

	if len(events) != 1 || events[0] != Click {
		t.Fatalf("events = %v, want exactly one Click", events)
	}
}

func TestLongPressSuppressesClick(t *testing.T) {
	d := NewDebouncer(twiceWindow, pressWindow)

	events := play(t, d, []timedEdge{
		{EdgeDown, 0},
		{EdgeUp, 2500 * time.Millisecond}, // held past the press window
	}, 4*time.Second)

	if len(events) != 1 || events[0] != LongPress {
		t.Fatalf("events = %v, want exactly one LongPress", events)
	}
}

func TestLongPressOnReleaseWithoutPoll(t *testing.T) {
	// No polls between down and up: the release itself must still decode
	// as a long-press.
	d := NewDebouncer(twiceWindow, pressWindow)
	start := time.Unix(1000, 0)

	if _, ok := d.Feed(EdgeDown, start); ok {
		t.Fatal("down edge should not emit")
	}
	ev, ok := d.Feed(EdgeUp, start.Add(3*time.Second))
	if !ok || ev != LongPress {
		t.Fatalf("release after hold = (%v, %v), want LongPress", ev, ok)
	}
}

func TestDoubleClick(t *testing.T) {
	d := NewDebouncer(twiceWindow, pressWindow)

	events := play(t, d, []timedEdge{
		{EdgeDown, 0},
		{EdgeUp, 150 * time.Millisecond},
		{EdgeDown, 400 * time.Millisecond}, // inside the twice window
		{EdgeUp, 550 * time.Millisecond},
	}, 2*time.Second)

	if len(events) != 1 || events[0] != DoubleClick {
		t.Fatalf("events = %v, want exactly one DoubleClick", events)
	}
}

func TestTwoSlowClicksAreTwoClicks(t *testing.T) {
	d := NewDebouncer(twiceWindow, pressWindow)

	events := play(t, d, []timedEdge{
		{EdgeDown, 0},
		{EdgeUp, 150 * time.Millisecond},
		{EdgeDown, 1200 * time.Millisecond}, // after the twice window
		{EdgeUp, 1350 * time.Millisecond},
	}, 3*time.Second)

	if len(events) != 2 || events[0] != Click || events[1] != Click {
		t.Fatalf("events = %v, want two separate Clicks", events)
	}
}

func TestClickEmittedOnlyAfterTwiceWindow(t *testing.T) {
	d := NewDebouncer(twiceWindow, pressWindow)
	start := time.Unix(1000, 0)

	d.Feed(EdgeDown, start)
	d.Feed(EdgeUp, start.Add(100*time.Millisecond))

	// Before the window closes nothing may fire.
	if _, ok := d.Poll(start.Add(500 * time.Millisecond)); ok {
		t.Fatal("Click fired before the twice window elapsed")
	}
	ev, ok := d.Poll(start.Add(850 * time.Millisecond))
	if !ok || ev != Click {
		t.Fatalf("Poll after window = (%v, %v), want Click", ev, ok)
	}
	// And never again.
	if _, ok := d.Poll(start.Add(2 * time.Second)); ok {
		t.Fatal("Click fired twice")
	}
}

func TestBounceEdgesIgnored(t *testing.T) {
	d := NewDebouncer(twiceWindow, pressWindow)
	start := time.Unix(1000, 0)

	// Repeated down edges while already pressed must not reset the
	// press timer or emit anything.
	d.Feed(EdgeDown, start)
	if _, ok := d.Feed(EdgeDown, start.Add(100*time.Millisecond)); ok {
		t.Fatal("duplicate down edge emitted an event")
	}
	ev, ok := d.Poll(start.Add(pressWindow))
	if !ok || ev != LongPress {
		t.Fatalf("long press after bounce = (%v, %v), want LongPress", ev, ok)
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Click, "click"},
		{DoubleClick, "twice"},
		{LongPress, "press"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.event, got, tt.want)
		}
	}
}
