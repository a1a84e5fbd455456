package sysinfo

import (
	"fmt"
	"strconv"
	"strings"
)

// Zpool is one pool's name and capacity as reported by zpool list.
type Zpool struct {
	Name string
	Cap  string
}

// Zpools lists the pools with their capacity percentage.
// An error here normally means the zpool utility is absent; callers treat
// that as the ZFS feature being unavailable, not as a fault.
func Zpools(r Runner) ([]Zpool, error) {
	out, err := r.Output("zpool", "list", "-Ho", "name,cap")
	if err != nil {
		return nil, fmt.Errorf("zpool unavailable: %w", err)
	}
	return parseZpoolList(out)
}

func parseZpoolList(out string) ([]Zpool, error) {
	var pools []Zpool
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pools = append(pools, Zpool{Name: fields[0], Cap: fields[1]})
	}
	if pools == nil {
		return nil, fmt.Errorf("no pools in zpool output")
	}
	return pools, nil
}

// ZpoolBandwidth samples a pool's average read/write bandwidth since boot,
// in bytes per second. Without an interval argument zpool iostat reports
// since-boot averages, not cumulative counters.
func ZpoolBandwidth(r Runner, pool string) (rx, tx uint64, err error) {
	out, err := r.Output("zpool", "iostat", pool, "-Hp")
	if err != nil {
		return 0, 0, fmt.Errorf("zpool iostat failed for %s: %w", pool, err)
	}
	return parseZpoolIostat(out)
}

// parseZpoolIostat reads the bandwidth columns of a single-pool
// `zpool iostat -Hp` line: name, alloc, free, read ops, write ops,
// read bytes/s, write bytes/s.
func parseZpoolIostat(out string) (rx, tx uint64, err error) {
	fields := strings.Fields(out)
	if len(fields) < 7 {
		return 0, 0, fmt.Errorf("short zpool iostat output: %q", out)
	}
	rx, err = strconv.ParseUint(fields[5], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed read counter %q: %w", fields[5], err)
	}
	tx, err = strconv.ParseUint(fields[6], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed write counter %q: %w", fields[6], err)
	}
	return rx, tx, nil
}
