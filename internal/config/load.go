package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/ini.v1"

	"github.com/pentahat/pentad/internal/logging"
)

// Load reads the configuration file at path and returns an immutable Config.
// Configuration trouble is never fatal: a missing file, an unparsable file,
// or a malformed key falls back to the documented defaults with a warning.
// The returned Config is always usable; the fan must keep spinning over a
// config typo.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logging.Warn("Config file not found, using defaults", zap.String("path", path))
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		logging.Warn("Config file unreadable, using defaults",
			zap.String("path", path), zap.Error(err))
		return cfg, nil
	}

	fan := file.Section("fan")
	cfg.Fan.Lv0 = fan.Key("lv0").MustFloat64(cfg.Fan.Lv0)
	cfg.Fan.Lv1 = fan.Key("lv1").MustFloat64(cfg.Fan.Lv1)
	cfg.Fan.Lv2 = fan.Key("lv2").MustFloat64(cfg.Fan.Lv2)
	cfg.Fan.Lv3 = fan.Key("lv3").MustFloat64(cfg.Fan.Lv3)
	cfg.Fan.Linear = fan.Key("linear").MustBool(cfg.Fan.Linear)
	cfg.Fan.TempDisks = fan.Key("temp_disks").MustBool(cfg.Fan.TempDisks)

	key := file.Section("key")
	cfg.Key.Click = key.Key("click").MustString(cfg.Key.Click)
	cfg.Key.Twice = key.Key("twice").MustString(cfg.Key.Twice)
	cfg.Key.Press = key.Key("press").MustString(cfg.Key.Press)

	timing := file.Section("time")
	cfg.Time.Twice = timing.Key("twice").MustFloat64(cfg.Time.Twice)
	cfg.Time.Press = timing.Key("press").MustFloat64(cfg.Time.Press)

	slider := file.Section("slider")
	cfg.Slider.Auto = slider.Key("auto").MustBool(cfg.Slider.Auto)
	cfg.Slider.Time = slider.Key("time").MustFloat64(cfg.Slider.Time)
	cfg.Slider.Refresh = slider.Key("refresh").MustFloat64(cfg.Slider.Refresh)

	oled := file.Section("oled")
	cfg.OLED.Rotate = oled.Key("rotate").MustBool(cfg.OLED.Rotate)
	cfg.OLED.FTemp = oled.Key("f-temp").MustBool(cfg.OLED.FTemp)

	disk := file.Section("disk")
	cfg.Disk.SpaceMounts = splitList(disk.Key("space_usage_mnt_points").MustString(""))
	cfg.Disk.IOMounts = splitList(disk.Key("io_usage_mnt_points").MustString(""))
	cfg.Disk.ZFS = disk.Key("zfs").MustBool(cfg.Disk.ZFS)
	cfg.Disk.DisksTemp = disk.Key("disks_temp").MustBool(cfg.Disk.DisksTemp)

	network := file.Section("network")
	cfg.Network.Interfaces = splitList(network.Key("interfaces").MustString(""))

	validate(cfg)
	return cfg, nil
}

// validate enforces cross-key invariants, reverting to defaults on violation.
func validate(cfg *Config) {
	if !(cfg.Fan.Lv0 < cfg.Fan.Lv1 && cfg.Fan.Lv1 < cfg.Fan.Lv2 && cfg.Fan.Lv2 < cfg.Fan.Lv3) {
		def := Default()
		logging.Warn("Fan thresholds not strictly ascending, reverting to defaults",
			zap.Float64("lv0", cfg.Fan.Lv0),
			zap.Float64("lv1", cfg.Fan.Lv1),
			zap.Float64("lv2", cfg.Fan.Lv2),
			zap.Float64("lv3", cfg.Fan.Lv3),
		)
		cfg.Fan.Lv0 = def.Fan.Lv0
		cfg.Fan.Lv1 = def.Fan.Lv1
		cfg.Fan.Lv2 = def.Fan.Lv2
		cfg.Fan.Lv3 = def.Fan.Lv3
	}

	if cfg.Time.Twice <= 0 {
		logging.Warn("Invalid [time] twice, using default", zap.Float64("twice", cfg.Time.Twice))
		cfg.Time.Twice = Default().Time.Twice
	}
	if cfg.Time.Press <= 0 {
		logging.Warn("Invalid [time] press, using default", zap.Float64("press", cfg.Time.Press))
		cfg.Time.Press = Default().Time.Press
	}
	if cfg.Slider.Time <= 0 {
		logging.Warn("Invalid [slider] time, using default", zap.Float64("time", cfg.Slider.Time))
		cfg.Slider.Time = Default().Slider.Time
	}
	if cfg.Slider.Refresh < 0 {
		cfg.Slider.Refresh = 0
	}
}

// Save writes the configuration back out in INI form. Reloading the written
// file yields a semantically identical Config.
func Save(cfg *Config, path string) error {
	file := ini.Empty()

	fan, err := file.NewSection("fan")
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}
	fan.Key("lv0").SetValue(formatFloat(cfg.Fan.Lv0))
	fan.Key("lv1").SetValue(formatFloat(cfg.Fan.Lv1))
	fan.Key("lv2").SetValue(formatFloat(cfg.Fan.Lv2))
	fan.Key("lv3").SetValue(formatFloat(cfg.Fan.Lv3))
	fan.Key("linear").SetValue(formatBool(cfg.Fan.Linear))
	fan.Key("temp_disks").SetValue(formatBool(cfg.Fan.TempDisks))

	key, _ := file.NewSection("key")
	key.Key("click").SetValue(cfg.Key.Click)
	key.Key("twice").SetValue(cfg.Key.Twice)
	key.Key("press").SetValue(cfg.Key.Press)

	timing, _ := file.NewSection("time")
	timing.Key("twice").SetValue(formatFloat(cfg.Time.Twice))
	timing.Key("press").SetValue(formatFloat(cfg.Time.Press))

	slider, _ := file.NewSection("slider")
	slider.Key("auto").SetValue(formatBool(cfg.Slider.Auto))
	slider.Key("time").SetValue(formatFloat(cfg.Slider.Time))
	slider.Key("refresh").SetValue(formatFloat(cfg.Slider.Refresh))

	oled, _ := file.NewSection("oled")
	oled.Key("rotate").SetValue(formatBool(cfg.OLED.Rotate))
	oled.Key("f-temp").SetValue(formatBool(cfg.OLED.FTemp))

	disk, _ := file.NewSection("disk")
	disk.Key("space_usage_mnt_points").SetValue(joinList(cfg.Disk.SpaceMounts))
	disk.Key("io_usage_mnt_points").SetValue(joinList(cfg.Disk.IOMounts))
	disk.Key("zfs").SetValue(formatBool(cfg.Disk.ZFS))
	disk.Key("disks_temp").SetValue(formatBool(cfg.Disk.DisksTemp))

	network, _ := file.NewSection("network")
	network.Key("interfaces").SetValue(joinList(cfg.Network.Interfaces))

	// Write to a temporary file first, then rename (atomic on POSIX).
	tmpPath := path + ".tmp"
	if err := file.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
