package action

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pentahat/pentad/internal/button"
	"github.com/pentahat/pentad/internal/config"
	"github.com/pentahat/pentad/internal/logging"
)

// Action is the effect bound to a button event.
type Action int

const (
	ActionNone Action = iota
	// ActionSlider advances the display to the next page.
	ActionSlider
	// ActionSwitch toggles the fan on or off.
	ActionSwitch
	// ActionReboot shuts the daemon down and reboots the host.
	ActionReboot
	// ActionPoweroff shuts the daemon down and powers the host off.
	ActionPoweroff
)

// String returns the config-file name of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSlider:
		return "slider"
	case ActionSwitch:
		return "switch"
	case ActionReboot:
		return "reboot"
	case ActionPoweroff:
		return "poweroff"
	default:
		return "unknown"
	}
}

// ParseAction maps a config-file action name to an Action. Unknown names
// are an error so a typo in the config fails at load, not at press time.
func ParseAction(name string) (Action, error) {
	switch name {
	case "none", "":
		return ActionNone, nil
	case "slider":
		return ActionSlider, nil
	case "switch":
		return ActionSwitch, nil
	case "reboot":
		return ActionReboot, nil
	case "poweroff":
		return ActionPoweroff, nil
	default:
		return ActionNone, fmt.Errorf("unknown action %q", name)
	}
}

// Bindings is the event-to-action table built from the [key] section.
type Bindings struct {
	Click       Action
	DoubleClick Action
	LongPress   Action
}

// ParseBindings validates the [key] section. Any unknown name fails the
// whole table.
func ParseBindings(key config.Key) (Bindings, error) {
	var b Bindings
	var err error
	if b.Click, err = ParseAction(key.Click); err != nil {
		return Bindings{}, fmt.Errorf("key click: %w", err)
	}
	if b.DoubleClick, err = ParseAction(key.Twice); err != nil {
		return Bindings{}, fmt.Errorf("key twice: %w", err)
	}
	if b.LongPress, err = ParseAction(key.Press); err != nil {
		return Bindings{}, fmt.Errorf("key press: %w", err)
	}
	return b, nil
}

// lookup returns the action bound to a button event.
func (b Bindings) lookup(ev button.Event) Action {
	switch ev {
	case button.Click:
		return b.Click
	case button.DoubleClick:
		return b.DoubleClick
	case button.LongPress:
		return b.LongPress
	default:
		return ActionNone
	}
}

// Terminate tells the daemon how to exit after a reboot or poweroff binding
// fired. The dispatcher does not invoke systemctl itself; the daemon does,
// after the display and fan have been parked.
type Terminate struct {
	Poweroff bool
}

// Dispatcher routes button events to their configured effects. Advance and
// Toggle are non-blocking sends; a full sink drops the command rather than
// stalling the button loop.
type Dispatcher struct {
	bindings Bindings

	advance   chan<- struct{}
	toggle    func()
	terminate chan<- Terminate
}

// NewDispatcher builds a Dispatcher. advance feeds the pager, toggle flips
// the fan, terminate carries at most one reboot/poweroff request to the
// daemon. Any sink may be nil when the corresponding hardware is absent.
func NewDispatcher(bindings Bindings, advance chan<- struct{}, toggle func(), terminate chan<- Terminate) *Dispatcher {
	return &Dispatcher{
		bindings:  bindings,
		advance:   advance,
		toggle:    toggle,
		terminate: terminate,
	}
}

// Dispatch applies the action bound to ev. It never blocks.
func (d *Dispatcher) Dispatch(ev button.Event) {
	act := d.bindings.lookup(ev)
	logging.LogButtonEvent(ev.String(), act.String())

	switch act {
	case ActionSlider:
		if d.advance == nil {
			return
		}
		select {
		case d.advance <- struct{}{}:
		default:
			logging.Warn("Page advance dropped, pager busy")
		}

	case ActionSwitch:
		if d.toggle != nil {
			d.toggle()
		}

	case ActionReboot, ActionPoweroff:
		if d.terminate == nil {
			return
		}
		select {
		case d.terminate <- Terminate{Poweroff: act == ActionPoweroff}:
		default:
			// A shutdown is already in flight.
		}

	case ActionNone:
	}
}

// Run consumes events until the channel closes or ctx-style cancellation
// closes the source. It is the glue between the watcher and the sinks.
func (d *Dispatcher) Run(events <-chan button.Event) {
	for ev := range events {
		d.Dispatch(ev)
	}
}

// HostCommand returns the systemctl invocation for a terminate request.
func (t Terminate) HostCommand() (string, []string) {
	if t.Poweroff {
		return "systemctl", []string{"poweroff"}
	}
	return "systemctl", []string{"reboot"}
}

// LogField identifies the requested transition in shutdown logs.
func (t Terminate) LogField() zap.Field {
	verb := "reboot"
	if t.Poweroff {
		verb = "poweroff"
	}
	return zap.String("host_action", verb)
}
