package sysinfo

import (
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	gnet "github.com/shirou/gopsutil/v3/net"
)

const mib = 1024 * 1024

// IORate is a receive/transmit (or read/write) rate pair in MB/s.
type IORate struct {
	Rx float64
	Tx float64
}

type ioSample struct {
	rx   uint64
	tx   uint64
	when time.Time
}

// RateTracker turns cumulative byte counters into MB/s rates by remembering
// the previous sample per device. It is owned by a single loop and is not
// safe for concurrent use.
type RateTracker struct {
	prev map[string]ioSample
	now  func() time.Time
}

// NewRateTracker returns an empty tracker.
func NewRateTracker() *RateTracker {
	return &RateTracker{
		prev: make(map[string]ioSample),
		now:  time.Now,
	}
}

// Update records a new counter sample for key and returns the rate since the
// previous sample. The first sample for a key reports zero.
func (rt *RateTracker) Update(key string, rx, tx uint64) IORate {
	now := rt.now()
	defer func() {
		rt.prev[key] = ioSample{rx: rx, tx: tx, when: now}
	}()

	last, ok := rt.prev[key]
	if !ok {
		return IORate{}
	}
	elapsed := now.Sub(last.when).Seconds()
	if elapsed <= 0 {
		return IORate{}
	}
	return IORate{
		Rx: counterDelta(rx, last.rx) / elapsed / mib,
		Tx: counterDelta(tx, last.tx) / elapsed / mib,
	}
}

// counterDelta guards against counter resets (reboot of a pool, interface
// re-creation), which would otherwise produce a huge bogus rate.
func counterDelta(current, previous uint64) float64 {
	if current < previous {
		return 0
	}
	return float64(current - previous)
}

// NetworkRates samples the given interfaces and returns their current rates.
// Interfaces that have vanished since startup are silently skipped.
func NetworkRates(rt *RateTracker, interfaces []string) map[string]IORate {
	counters, err := gnet.IOCounters(true)
	if err != nil {
		return nil
	}
	wanted := make(map[string]bool, len(interfaces))
	for _, name := range interfaces {
		wanted[name] = true
	}
	rates := make(map[string]IORate)
	for _, c := range counters {
		if !wanted[c.Name] {
			continue
		}
		rates[c.Name] = rt.Update("net:"+c.Name, c.BytesRecv, c.BytesSent)
	}
	return rates
}

// DiskRates samples the given block devices and returns read/write rates.
func DiskRates(rt *RateTracker, devices []string) map[string]IORate {
	if len(devices) == 0 {
		return nil
	}
	counters, err := disk.IOCounters(devices...)
	if err != nil {
		return nil
	}
	rates := make(map[string]IORate)
	for name, c := range counters {
		rates[name] = rt.Update("disk:"+name, c.ReadBytes, c.WriteBytes)
	}
	return rates
}

// bootUptime is replaceable in tests.
var bootUptime = Uptime

// ZpoolRate samples one pool through the given runner and returns its
// recent rate. zpool iostat reports average bandwidth since boot rather
// than cumulative counters, so the counters are reconstructed as bandwidth
// times uptime before the tracker's delta math.
func ZpoolRate(rt *RateTracker, r Runner, pool string) (IORate, error) {
	bwRx, bwTx, err := ZpoolBandwidth(r, pool)
	if err != nil {
		return IORate{}, err
	}
	up, err := bootUptime()
	if err != nil {
		return IORate{}, err
	}
	secs := up.Seconds()
	return rt.Update("zpool:"+pool, uint64(float64(bwRx)*secs), uint64(float64(bwTx)*secs)), nil
}
