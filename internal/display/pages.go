package display

import (
	"fmt"
	"time"

	"github.com/pentahat/pentad/internal/config"
	"github.com/pentahat/pentad/internal/logging"
	"github.com/pentahat/pentad/internal/sysinfo"
)

// Page formats three lines of text from live readings. Lines is called
// just before each render so the data is current to the moment of display.
type Page interface {
	Lines() [3]string
}

// Assembly carries everything BuildPages needs: the config, the command
// runner and rate tracker shared with no one else, the fan speed getter,
// and the network interfaces already resolved from "auto".
type Assembly struct {
	Config     *config.Config
	Runner     sysinfo.Runner
	Rates      *sysinfo.RateTracker
	FanSpeed   func() float64
	Interfaces []string
}

// BuildPages assembles the page cycle once at startup. The set depends on
// config and detected hardware; pages for absent features are simply not
// built.
func BuildPages(a Assembly) []Page {
	cfg := a.Config
	pages := []Page{
		statusPage{ftemp: cfg.OLED.FTemp},
		loadPage{fanSpeed: a.FanSpeed},
		diskSpacePage{mounts: cfg.Disk.SpaceMounts, zfs: cfg.Disk.ZFS, runner: a.Runner},
	}

	for _, iface := range a.Interfaces {
		pages = append(pages, netIOPage{iface: iface, rates: a.Rates})
	}
	for _, dev := range sysinfo.MountDevices(cfg.Disk.IOMounts) {
		pages = append(pages, diskIOPage{device: dev, rates: a.Rates})
	}
	if cfg.Disk.ZFS {
		pools, err := sysinfo.Zpools(a.Runner)
		if err != nil {
			logging.Warn("ZFS enabled but no pools found, skipping zpool pages")
		}
		for _, pool := range pools {
			pages = append(pages, zpoolIOPage{pool: pool.Name, runner: a.Runner, rates: a.Rates})
		}
	}
	if cfg.Disk.DisksTemp {
		pages = append(pages, diskTempsPage{runner: a.Runner, ftemp: cfg.OLED.FTemp})
	}
	return pages
}

// statusPage shows uptime, CPU temperature and the primary IP.
type statusPage struct {
	ftemp bool
}

func (p statusPage) Lines() [3]string {
	var lines [3]string

	up, err := sysinfo.Uptime()
	if err != nil {
		lines[0] = "Up: ----"
	} else {
		lines[0] = "Up: " + formatUptime(up)
	}

	temp, err := sysinfo.CPUTemperature()
	if err != nil {
		lines[1] = "CPU Temp: ----"
	} else {
		lines[1] = "CPU Temp: " + formatTemp(temp, p.ftemp)
	}

	ip, err := sysinfo.PrimaryIP()
	if err != nil {
		lines[2] = "IP ----"
	} else {
		lines[2] = "IP " + ip
	}
	return lines
}

// loadPage shows fan duty, CPU load and memory use.
type loadPage struct {
	fanSpeed func() float64
}

func (p loadPage) Lines() [3]string {
	var lines [3]string
	lines[0] = fmt.Sprintf("Fan speed: %.0f%%", p.fanSpeed())

	load, err := sysinfo.CPULoadPercent()
	if err != nil {
		lines[1] = "CPU Load: ----"
	} else {
		lines[1] = fmt.Sprintf("CPU Load: %.2f%%", load)
	}

	used, total, err := sysinfo.MemoryUsage()
	if err != nil {
		lines[2] = "Mem: ----"
	} else {
		lines[2] = fmt.Sprintf("Mem: %d/%d MB", used, total)
	}
	return lines
}

// diskSpacePage shows root plus up to four configured mounts' used
// percentage, with zpool capacities appended when ZFS is enabled.
type diskSpacePage struct {
	mounts []string
	zfs    bool
	runner sysinfo.Runner
}

func (p diskSpacePage) Lines() [3]string {
	entries := sysinfo.SpaceUsage(p.mounts)
	if p.zfs {
		if pools, err := sysinfo.Zpools(p.runner); err == nil {
			for _, pool := range pools {
				entries = append(entries, sysinfo.LabeledValue{Label: pool.Name, Value: pool.Cap})
			}
		}
	}

	var lines [3]string
	lines[0] = fmt.Sprintf("Disk: %s %s", entries[0].Label, entries[0].Value)
	lines[1], lines[2] = packPairs(entries[1:])
	return lines
}

// netIOPage shows one interface's receive/transmit rates.
type netIOPage struct {
	iface string
	rates *sysinfo.RateTracker
}

func (p netIOPage) Lines() [3]string {
	rate := sysinfo.NetworkRates(p.rates, []string{p.iface})[p.iface]
	return [3]string{
		fmt.Sprintf("Network (%s):", p.iface),
		fmt.Sprintf("Rx:%10.6f MB/s", rate.Rx),
		fmt.Sprintf("Tx:%10.6f MB/s", rate.Tx),
	}
}

// diskIOPage shows one disk's read/write rates.
type diskIOPage struct {
	device string
	rates  *sysinfo.RateTracker
}

func (p diskIOPage) Lines() [3]string {
	rate := sysinfo.DiskRates(p.rates, []string{p.device})[p.device]
	return [3]string{
		fmt.Sprintf("Disk (%s):", p.device),
		fmt.Sprintf("R:%11.6f MB/s", rate.Rx),
		fmt.Sprintf("W:%11.6f MB/s", rate.Tx),
	}
}

// zpoolIOPage shows one pool's read/write rates from zpool iostat.
type zpoolIOPage struct {
	pool   string
	runner sysinfo.Runner
	rates  *sysinfo.RateTracker
}

func (p zpoolIOPage) Lines() [3]string {
	rate, err := sysinfo.ZpoolRate(p.rates, p.runner, p.pool)
	if err != nil {
		return [3]string{fmt.Sprintf("Zpool (%s):", p.pool), "R: ----", "W: ----"}
	}
	return [3]string{
		fmt.Sprintf("Zpool (%s):", p.pool),
		fmt.Sprintf("R:%11.6f MB/s", rate.Rx),
		fmt.Sprintf("W:%11.6f MB/s", rate.Tx),
	}
}

// diskTempsPage shows up to four drives' SMART temperatures.
type diskTempsPage struct {
	runner sysinfo.Runner
	ftemp  bool
}

func (p diskTempsPage) Lines() [3]string {
	temps, _, err := sysinfo.DiskTemperatures(p.runner)
	if err != nil {
		return [3]string{"Disk Temps:", "----", ""}
	}
	entries := make([]sysinfo.LabeledValue, 0, len(temps))
	for _, t := range temps {
		value := "----"
		if t.OK {
			value = formatDiskTemp(t.Celsius, p.ftemp)
		}
		entries = append(entries, sysinfo.LabeledValue{Label: t.Device, Value: value})
	}

	var lines [3]string
	lines[0] = "Disk Temps:"
	lines[1], lines[2] = packPairs(entries)
	return lines
}

// packPairs lays out up to four label/value entries two per line, the
// packing used by the disk and temperature pages.
func packPairs(entries []sysinfo.LabeledValue) (line2, line3 string) {
	if len(entries) > 4 {
		entries = entries[:4]
	}
	pair := func(e sysinfo.LabeledValue) string {
		return e.Label + " " + e.Value
	}
	switch len(entries) {
	case 1:
		line2 = pair(entries[0])
	case 2:
		line2 = pair(entries[0]) + "  " + pair(entries[1])
	case 3:
		line2 = pair(entries[0]) + "  " + pair(entries[1])
		line3 = pair(entries[2])
	case 4:
		line2 = pair(entries[0]) + "  " + pair(entries[1])
		line3 = pair(entries[2]) + "  " + pair(entries[3])
	}
	return line2, line3
}

// formatTemp renders a CPU temperature in the configured scale.
func formatTemp(celsius float64, ftemp bool) string {
	if ftemp {
		return fmt.Sprintf("%.0f°F", celsius*1.8+32)
	}
	return fmt.Sprintf("%.1f°C", celsius)
}

// formatDiskTemp renders a drive temperature, whole degrees either scale.
func formatDiskTemp(celsius float64, ftemp bool) string {
	if ftemp {
		return fmt.Sprintf("%.0f°F", celsius*1.8+32)
	}
	return fmt.Sprintf("%.0f°C", celsius)
}

// formatUptime renders a duration as compact days/hours/minutes.
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
