package config

import (
	"strings"
	"time"
)

// DefaultPath is where the daemon looks for its configuration
// unless overridden with --config.
const DefaultPath = "/etc/pentad.conf"

// Config is an immutable snapshot of the configuration file.
// It is built once by Load and never mutated afterwards.
type Config struct {
	Fan     Fan
	Key     Key
	Time    Timing
	Slider  Slider
	OLED    OLED
	Disk    Disk
	Network Network
}

// Fan holds the temperature-to-duty mapping parameters.
// The thresholds are in Celsius and must satisfy Lv0 < Lv1 < Lv2 < Lv3.
type Fan struct {
	Lv0       float64
	Lv1       float64
	Lv2       float64
	Lv3       float64
	Linear    bool
	TempDisks bool
}

// Key maps the three semantic button events to action names.
// Valid names: "slider", "switch", "reboot", "poweroff", "none".
type Key struct {
	Click string
	Twice string
	Press string
}

// Timing holds the button decode windows in seconds.
type Timing struct {
	Twice float64
	Press float64
}

// TwiceWindow returns the double-click window as a duration.
func (t Timing) TwiceWindow() time.Duration {
	return time.Duration(t.Twice * float64(time.Second))
}

// PressWindow returns the long-press window as a duration.
func (t Timing) PressWindow() time.Duration {
	return time.Duration(t.Press * float64(time.Second))
}

// Slider controls automatic page advancing on the OLED.
// Refresh of zero disables in-place redraws of the current page.
type Slider struct {
	Auto    bool
	Time    float64
	Refresh float64
}

// Period returns the page advance interval.
func (s Slider) Period() time.Duration {
	return time.Duration(s.Time * float64(time.Second))
}

// RefreshPeriod returns the redraw interval, zero if disabled.
func (s Slider) RefreshPeriod() time.Duration {
	return time.Duration(s.Refresh * float64(time.Second))
}

// OLED holds display rendering options.
type OLED struct {
	Rotate bool
	FTemp  bool
}

// Disk selects which mount points are shown on the disk pages.
type Disk struct {
	SpaceMounts []string
	IOMounts    []string
	ZFS         bool
	DisksTemp   bool
}

// Network selects the interfaces shown on the network pages.
// The single entry "auto" means resolve to all link-up interfaces at startup.
type Network struct {
	Interfaces []string
}

// Auto reports whether interface resolution is requested.
func (n Network) Auto() bool {
	return len(n.Interfaces) == 1 && n.Interfaces[0] == "auto"
}

// Default returns a Config populated with every key's documented default.
func Default() *Config {
	return &Config{
		Fan: Fan{
			Lv0: 35, Lv1: 40, Lv2: 45, Lv3: 50,
			Linear:    false,
			TempDisks: false,
		},
		Key: Key{
			Click: "slider",
			Twice: "switch",
			Press: "none",
		},
		Time: Timing{
			Twice: 0.7,
			Press: 1.8,
		},
		Slider: Slider{
			Auto:    true,
			Time:    10.0,
			Refresh: 0.0,
		},
		OLED: OLED{
			Rotate: false,
			FTemp:  false,
		},
		Disk: Disk{
			SpaceMounts: nil,
			IOMounts:    nil,
			ZFS:         false,
			DisksTemp:   false,
		},
		Network: Network{
			Interfaces: nil,
		},
	}
}

// splitList parses a '|' separated config value, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, "|") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// joinList is the inverse of splitList, used when writing a config out.
func joinList(items []string) string {
	return strings.Join(items, "|")
}
