package sysinfo

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// sysNetPath is the kernel's per-interface state directory.
var sysNetPath = "/sys/class/net"

// Uptime returns how long the system has been up.
func Uptime() (time.Duration, error) {
	secs, err := host.Uptime()
	if err != nil {
		return 0, fmt.Errorf("failed to read uptime: %w", err)
	}
	return time.Duration(secs) * time.Second, nil
}

// CPULoadPercent returns the instantaneous overall CPU usage.
func CPULoadPercent() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return 0, fmt.Errorf("failed to read CPU load: %w", err)
	}
	return percents[0], nil
}

// MemoryUsage returns used and total memory in MB.
func MemoryUsage() (usedMB, totalMB uint64, err error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read memory stats: %w", err)
	}
	return vm.Used / mib, vm.Total / mib, nil
}

// PrimaryIP returns the address the host would use to reach the outside.
// The UDP dial never sends a packet; it only asks the kernel for a route.
func PrimaryIP() (string, error) {
	conn, err := net.Dial("udp", "198.51.100.1:80")
	if err != nil {
		return "", fmt.Errorf("no route to determine primary IP: %w", err)
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address type")
	}
	return addr.IP.String(), nil
}

// AutoInterfaces resolves the "auto" interface setting: every non-loopback
// interface whose operstate is "up", sorted by name. This is evaluated once
// at startup and never again.
func AutoInterfaces() ([]string, error) {
	entries, err := os.ReadDir(sysNetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate interfaces: %w", err)
	}
	var up []string
	for _, e := range entries {
		name := e.Name()
		if name == "lo" {
			continue
		}
		state, err := os.ReadFile(filepath.Join(sysNetPath, name, "operstate"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(state)) == "up" {
			up = append(up, name)
		}
	}
	sort.Strings(up)
	return up, nil
}
