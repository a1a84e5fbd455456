package sysinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// thermalZonePath is the kernel's CPU thermal zone, in millidegrees Celsius.
var thermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

// CPUTemperature returns the CPU temperature in Celsius.
// It reads the thermal zone directly and falls back to gopsutil's sensor
// enumeration when the zone file is unavailable.
func CPUTemperature() (float64, error) {
	raw, err := os.ReadFile(thermalZonePath)
	if err == nil {
		milli, perr := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
		if perr == nil {
			return milli / 1000.0, nil
		}
		err = perr
	}

	sensors, serr := host.SensorsTemperatures()
	if serr != nil {
		return 0, fmt.Errorf("failed to read CPU temperature: %w", err)
	}
	for _, s := range sensors {
		key := strings.ToLower(s.SensorKey)
		if strings.Contains(key, "cpu") && s.Temperature > 0 {
			return s.Temperature, nil
		}
	}
	for _, s := range sensors {
		if s.Temperature > 0 {
			return s.Temperature, nil
		}
	}
	return 0, fmt.Errorf("no usable temperature sensor found")
}
