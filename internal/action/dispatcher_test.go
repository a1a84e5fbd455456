package action

import (
	"testing"

	"github.com/pentahat/pentad/internal/button"
	"github.com/pentahat/pentad/internal/config"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		want    Action
		wantErr bool
	}{
		{"none", ActionNone, false},
		{"", ActionNone, false},
		{"slider", ActionSlider, false},
		{"switch", ActionSwitch, false},
		{"reboot", ActionReboot, false},
		{"poweroff", ActionPoweroff, false},
		{"Slider", ActionNone, true},
		{"shutdown", ActionNone, true},
		{"halt", ActionNone, true},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAction(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseBindingsDefaults(t *testing.T) {
	b, err := ParseBindings(config.Default().Key)
	if err != nil {
		t.Fatalf("ParseBindings: %v", err)
	}
	if b.Click != ActionSlider || b.DoubleClick != ActionSwitch || b.LongPress != ActionNone {
		t.Errorf("default bindings = %+v", b)
	}
}

func TestParseBindingsRejectsUnknown(t *testing.T) {
	key := config.Key{Click: "slider", Twice: "explode", Press: "none"}
	if _, err := ParseBindings(key); err == nil {
		t.Fatal("ParseBindings accepted an unknown action name")
	}
}

func TestDispatchSlider(t *testing.T) {
	advance := make(chan struct{}, 1)
	d := NewDispatcher(Bindings{Click: ActionSlider}, advance, nil, nil)

	d.Dispatch(button.Click)
	select {
	case <-advance:
	default:
		t.Fatal("click did not advance the pager")
	}
}

func TestDispatchSliderNeverBlocks(t *testing.T) {
	advance := make(chan struct{}, 1)
	d := NewDispatcher(Bindings{Click: ActionSlider}, advance, nil, nil)

	// Second dispatch finds the buffer full and must drop, not block.
	d.Dispatch(button.Click)
	d.Dispatch(button.Click)

	if len(advance) != 1 {
		t.Fatalf("advance queue length = %d, want 1", len(advance))
	}
}

func TestDispatchSwitch(t *testing.T) {
	toggled := 0
	d := NewDispatcher(Bindings{DoubleClick: ActionSwitch}, nil, func() { toggled++ }, nil)

	d.Dispatch(button.DoubleClick)
	if toggled != 1 {
		t.Fatalf("toggled = %d, want 1", toggled)
	}
}

func TestDispatchTerminate(t *testing.T) {
	term := make(chan Terminate, 1)
	d := NewDispatcher(Bindings{LongPress: ActionPoweroff}, nil, nil, term)

	d.Dispatch(button.LongPress)
	select {
	case got := <-term:
		if !got.Poweroff {
			t.Error("Terminate.Poweroff = false, want true")
		}
	default:
		t.Fatal("long press did not request termination")
	}
}

func TestDispatchNoneIsSilent(t *testing.T) {
	advance := make(chan struct{}, 1)
	term := make(chan Terminate, 1)
	d := NewDispatcher(Bindings{}, advance, func() { t.Fatal("toggle fired") }, term)

	d.Dispatch(button.Click)
	d.Dispatch(button.DoubleClick)
	d.Dispatch(button.LongPress)

	if len(advance) != 0 || len(term) != 0 {
		t.Fatal("none binding produced a command")
	}
}

func TestTerminateHostCommand(t *testing.T) {
	name, args := Terminate{}.HostCommand()
	if name != "systemctl" || len(args) != 1 || args[0] != "reboot" {
		t.Errorf("reboot command = %s %v", name, args)
	}
	name, args = Terminate{Poweroff: true}.HostCommand()
	if name != "systemctl" || len(args) != 1 || args[0] != "poweroff" {
		t.Errorf("poweroff command = %s %v", name, args)
	}
}
