package sysinfo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// LabeledValue is a short label with a display-ready value,
// e.g. {"sda", "42%"} or {"root", "67%"}.
type LabeledValue struct {
	Label string
	Value string
}

// ListDataDisks enumerates the sd* block devices in the bay, sorted by name.
// Drives do not need to be mounted to appear here.
func ListDataDisks(r Runner) ([]string, error) {
	out, err := r.Output("lsblk", "-d", "-n", "-o", "NAME")
	if err != nil {
		return nil, fmt.Errorf("failed to list block devices: %w", err)
	}
	var disks []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if strings.HasPrefix(name, "sd") {
			disks = append(disks, name)
		}
	}
	sort.Strings(disks)
	return disks, nil
}

// DiskTemperature reads one drive's temperature via SMART attribute 194.
// Returns an error for drives that do not expose a temperature.
func DiskTemperature(r Runner, device string) (float64, error) {
	out, err := r.Output("smartctl", "-A", "/dev/"+device)
	if err != nil {
		return 0, fmt.Errorf("smartctl unavailable for %s: %w", device, err)
	}
	return parseSmartTemperature(out)
}

// parseSmartTemperature extracts attribute 194 (Temperature_Celsius) from
// smartctl -A output. The raw value is the tenth whitespace column.
func parseSmartTemperature(out string) (float64, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 10 && fields[0] == "194" {
			temp, err := strconv.ParseFloat(fields[9], 64)
			if err != nil {
				return 0, fmt.Errorf("malformed temperature %q: %w", fields[9], err)
			}
			return temp, nil
		}
	}
	return 0, fmt.Errorf("no temperature attribute in smartctl output")
}

// DiskTemperatures reads the temperature of every sd* drive.
// Drives without a readable temperature are reported with ok=false so the
// display can show a placeholder. The average covers readable drives only.
func DiskTemperatures(r Runner) (temps []DiskTemp, average float64, err error) {
	disks, err := ListDataDisks(r)
	if err != nil {
		return nil, 0, err
	}
	var sum float64
	var count int
	for _, d := range disks {
		t, terr := DiskTemperature(r, d)
		if terr != nil {
			temps = append(temps, DiskTemp{Device: d})
			continue
		}
		temps = append(temps, DiskTemp{Device: d, Celsius: t, OK: true})
		sum += t
		count++
	}
	if count > 0 {
		average = sum / float64(count)
	}
	return temps, average, nil
}

// DiskTemp is one drive's temperature reading.
type DiskTemp struct {
	Device  string
	Celsius float64
	OK      bool
}

// SpaceUsage returns used-percent strings for the root filesystem and each
// configured mount point, labeled by the backing device where known.
func SpaceUsage(mounts []string) []LabeledValue {
	out := []LabeledValue{usageFor("/", "root")}
	devices := deviceByMountpoint()
	for _, m := range mounts {
		label := devices[m]
		if label == "" {
			label = filepath.Base(m)
		}
		out = append(out, usageFor(m, label))
	}
	return out
}

func usageFor(mount, label string) LabeledValue {
	usage, err := disk.Usage(mount)
	if err != nil {
		return LabeledValue{Label: label, Value: "----"}
	}
	return LabeledValue{Label: label, Value: fmt.Sprintf("%.0f%%", usage.UsedPercent)}
}

// deviceByMountpoint maps mount points to short device names ("sda1").
func deviceByMountpoint() map[string]string {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil
	}
	m := make(map[string]string, len(parts))
	for _, p := range parts {
		m[p.Mountpoint] = filepath.Base(p.Device)
	}
	return m
}

// MountDevices resolves the configured IO mount points to their backing
// disks, partition numbers stripped, deduplicated and sorted.
func MountDevices(mounts []string) []string {
	byMount := deviceByMountpoint()
	seen := make(map[string]bool)
	var disks []string
	for _, m := range mounts {
		dev := byMount[m]
		if dev == "" {
			continue
		}
		dev = StripPartition(dev)
		if !seen[dev] {
			seen[dev] = true
			disks = append(disks, dev)
		}
	}
	sort.Strings(disks)
	return disks
}

// StripPartition removes the trailing partition digits from an sd* device
// name ("sda2" -> "sda"). Non-sd names are returned unchanged.
func StripPartition(device string) string {
	if !strings.Contains(device, "sd") {
		return device
	}
	for len(device) > 0 && device[len(device)-1] >= '0' && device[len(device)-1] <= '9' {
		device = device[:len(device)-1]
	}
	return device
}
