package button

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/pentahat/pentad/internal/logging"
)

// edgeWait bounds each WaitForEdge call so the debounce timers keep
// advancing while the line is quiet.
const edgeWait = 50 * time.Millisecond

// Watcher owns the button GPIO pin and publishes decoded events.
type Watcher struct {
	pin    gpio.PinIO
	deb    *Debouncer
	events chan Event
}

// NewWatcher opens the button pin by its periph name ("GPIO17"). The line
// is active-low with a pull-up: a low read means the button is held.
// An open failure means the top board is not fitted.
func NewWatcher(pinName string, twice, press time.Duration) (*Watcher, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("button pin %s not found", pinName)
	}
	if err := pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("failed to configure button pin %s: %w", pinName, err)
	}
	return &Watcher{
		pin:    pin,
		deb:    NewDebouncer(twice, press),
		events: make(chan Event, 4),
	}, nil
}

// Events returns the channel decoded gestures are published on.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run watches the pin until ctx is cancelled, then closes the event channel
// so consumers drain and stop. It never blocks on a slow consumer: if the
// event buffer is full the gesture is dropped.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)
	defer w.pin.Halt()

	down := w.pin.Read() == gpio.Low
	for {
		if ctx.Err() != nil {
			return
		}

		edged := w.pin.WaitForEdge(edgeWait)
		now := time.Now()

		if edged {
			nowDown := w.pin.Read() == gpio.Low
			if nowDown != down {
				down = nowDown
				edge := EdgeUp
				if down {
					edge = EdgeDown
				}
				if ev, ok := w.deb.Feed(edge, now); ok {
					w.publish(ev)
				}
			}
		}

		if ev, ok := w.deb.Poll(now); ok {
			w.publish(ev)
		}
	}
}

func (w *Watcher) publish(ev Event) {
	select {
	case w.events <- ev:
	default:
		logging.Warn("Button event dropped, consumer too slow",
			zap.String("event", ev.String()))
	}
}
