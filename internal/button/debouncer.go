package button

import "time"

// Edge is a raw transition of the button line.
type Edge int

const (
	// EdgeDown is the button being pressed.
	EdgeDown Edge = iota
	// EdgeUp is the button being released.
	EdgeUp
)

// Event is a decoded button gesture.
type Event int

const (
	Click Event = iota
	DoubleClick
	LongPress
)

// String returns the event name used in logs and action lookups.
func (e Event) String() string {
	switch e {
	case Click:
		return "click"
	case DoubleClick:
		return "twice"
	case LongPress:
		return "press"
	default:
		return "unknown"
	}
}

type state int

const (
	stateIdle state = iota
	statePressed
	stateAwaitingSecond
	statePressedSecond
	stateLongFired
)

// Debouncer turns raw edges into semantic events. It is not safe for
// concurrent use; a single goroutine feeds it edges and polls its timers.
type Debouncer struct {
	twice time.Duration
	press time.Duration

	state      state
	pressedAt  time.Time
	releasedAt time.Time
}

// NewDebouncer builds a Debouncer with the given double-click and
// long-press windows.
func NewDebouncer(twice, press time.Duration) *Debouncer {
	return &Debouncer{twice: twice, press: press}
}

// Feed advances the state machine with a raw edge. The returned event is
// valid only when ok is true. Edges that repeat the current line state
// (bounce) are ignored.
func (d *Debouncer) Feed(edge Edge, now time.Time) (Event, bool) {
	switch d.state {
	case stateIdle:
		if edge == EdgeDown {
			d.state = statePressed
			d.pressedAt = now
		}

	case statePressed:
		if edge == EdgeUp {
			if now.Sub(d.pressedAt) >= d.press {
				// Released after the hold window without a timer poll
				// in between; still a long-press.
				d.state = stateIdle
				return LongPress, true
			}
			d.state = stateAwaitingSecond
			d.releasedAt = now
		}

	case stateAwaitingSecond:
		if edge == EdgeDown {
			if now.Sub(d.releasedAt) < d.twice {
				d.state = statePressedSecond
				d.pressedAt = now
			} else {
				// The window expired between polls: the first click
				// stands alone and this down starts a new sequence.
				d.state = statePressed
				d.pressedAt = now
				return Click, true
			}
		}

	case statePressedSecond:
		if edge == EdgeUp {
			d.state = stateIdle
			return DoubleClick, true
		}

	case stateLongFired:
		if edge == EdgeUp {
			// The long-press already fired; swallow the release.
			d.state = stateIdle
		}
	}
	return 0, false
}

// Poll advances the timers. It must be called regularly (the watcher uses
// its edge-wait timeout for this). The returned event is valid only when
// ok is true.
func (d *Debouncer) Poll(now time.Time) (Event, bool) {
	switch d.state {
	case statePressed:
		if now.Sub(d.pressedAt) >= d.press {
			d.state = stateLongFired
			return LongPress, true
		}
	case stateAwaitingSecond:
		if now.Sub(d.releasedAt) >= d.twice {
			d.state = stateIdle
			return Click, true
		}
	}
	return 0, false
}
