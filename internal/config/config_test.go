package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Fan.Lv0 != 35 || cfg.Fan.Lv1 != 40 || cfg.Fan.Lv2 != 45 || cfg.Fan.Lv3 != 50 {
		t.Errorf("Default fan thresholds = %v/%v/%v/%v, want 35/40/45/50",
			cfg.Fan.Lv0, cfg.Fan.Lv1, cfg.Fan.Lv2, cfg.Fan.Lv3)
	}

	if cfg.Key.Click != "slider" || cfg.Key.Twice != "switch" || cfg.Key.Press != "none" {
		t.Errorf("Default key bindings = %v, want slider/switch/none", cfg.Key)
	}

	if cfg.Time.Twice != 0.7 || cfg.Time.Press != 1.8 {
		t.Errorf("Default timing = %v, want 0.7/1.8", cfg.Time)
	}

	if !cfg.Slider.Auto || cfg.Slider.Time != 10.0 || cfg.Slider.Refresh != 0.0 {
		t.Errorf("Default slider = %v, want auto=true time=10 refresh=0", cfg.Slider)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.conf"))
	if err != nil {
		t.Fatalf("Load() on missing file should not error, got %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("Load() on missing file should return defaults")
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pentad.conf")
	content := `[fan]
lv0 = 30
linear = true

[oled]
f-temp = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Fan.Lv0 != 30 {
		t.Errorf("Fan.Lv0 = %v, want 30", cfg.Fan.Lv0)
	}
	if !cfg.Fan.Linear {
		t.Error("Fan.Linear should be true")
	}
	if !cfg.OLED.FTemp {
		t.Error("OLED.FTemp should be true")
	}

	// Everything not in the file keeps its default.
	if cfg.Fan.Lv1 != 40 || cfg.Fan.Lv2 != 45 || cfg.Fan.Lv3 != 50 {
		t.Errorf("Unset thresholds should keep defaults, got %v/%v/%v",
			cfg.Fan.Lv1, cfg.Fan.Lv2, cfg.Fan.Lv3)
	}
	if cfg.Key.Click != "slider" {
		t.Errorf("Key.Click = %v, want default 'slider'", cfg.Key.Click)
	}
}

func TestLoadRejectsUnorderedThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pentad.conf")
	content := `[fan]
lv0 = 50
lv1 = 40
lv2 = 45
lv3 = 35
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Unordered thresholds fall back to defaults as a group.
	if cfg.Fan.Lv0 != 35 || cfg.Fan.Lv1 != 40 || cfg.Fan.Lv2 != 45 || cfg.Fan.Lv3 != 50 {
		t.Errorf("Unordered thresholds should revert to defaults, got %v/%v/%v/%v",
			cfg.Fan.Lv0, cfg.Fan.Lv1, cfg.Fan.Lv2, cfg.Fan.Lv3)
	}
}

func TestLoadUnparsableFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pentad.conf")
	// Unclosed section header: the INI parser rejects the whole file.
	if err := os.WriteFile(path, []byte("[fan\nlv0 = 35\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() on unparsable file should not error, got %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("Load() on unparsable file should return full defaults")
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pentad.conf")
	content := `[fan]
lv0 = not-a-number

[slider]
time = -5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Fan.Lv0 != 35 {
		t.Errorf("Malformed lv0 should default to 35, got %v", cfg.Fan.Lv0)
	}
	if cfg.Slider.Time != 10.0 {
		t.Errorf("Negative slider time should default to 10, got %v", cfg.Slider.Time)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pentad.conf")

	original := &Config{
		Fan: Fan{
			Lv0: 32.5, Lv1: 41, Lv2: 48.25, Lv3: 60,
			Linear:    true,
			TempDisks: true,
		},
		Key: Key{
			Click: "switch",
			Twice: "reboot",
			Press: "poweroff",
		},
		Time:   Timing{Twice: 0.5, Press: 2.0},
		Slider: Slider{Auto: false, Time: 4.0, Refresh: 1.5},
		OLED:   OLED{Rotate: true, FTemp: true},
		Disk: Disk{
			SpaceMounts: []string{"/mnt/a", "/mnt/b"},
			IOMounts:    []string{"/mnt/a"},
			ZFS:         true,
			DisksTemp:   true,
		},
		Network: Network{Interfaces: []string{"eth0", "wlan0"}},
	}

	if err := Save(original, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("Round-trip mismatch:\n got  %+v\n want %+v", loaded, original)
	}
}

func TestTimingWindows(t *testing.T) {
	timing := Timing{Twice: 0.7, Press: 1.8}

	if got := timing.TwiceWindow(); got != 700*time.Millisecond {
		t.Errorf("TwiceWindow() = %v, want 700ms", got)
	}
	if got := timing.PressWindow(); got != 1800*time.Millisecond {
		t.Errorf("PressWindow() = %v, want 1.8s", got)
	}
}

func TestNetworkAuto(t *testing.T) {
	tests := []struct {
		name       string
		interfaces []string
		want       bool
	}{
		{"auto keyword", []string{"auto"}, true},
		{"explicit list", []string{"eth0", "wlan0"}, false},
		{"empty", nil, false},
		{"auto among others", []string{"auto", "eth0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Network{Interfaces: tt.interfaces}
			if got := n.Auto(); got != tt.want {
				t.Errorf("Auto() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "/mnt/a", []string{"/mnt/a"}},
		{"multiple", "/mnt/a|/mnt/b", []string{"/mnt/a", "/mnt/b"}},
		{"whitespace", " /mnt/a | /mnt/b ", []string{"/mnt/a", "/mnt/b"}},
		{"trailing separator", "/mnt/a|", []string{"/mnt/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
