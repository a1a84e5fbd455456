package sysinfo

import (
	"fmt"
	"math"
	"testing"
	"time"
)

// trackerAt returns a tracker with a controllable clock.
func trackerAt(start time.Time) (*RateTracker, *time.Time) {
	now := start
	rt := NewRateTracker()
	rt.now = func() time.Time { return now }
	return rt, &now
}

func TestRateTrackerFirstSampleIsZero(t *testing.T) {
	rt, _ := trackerAt(time.Unix(1000, 0))

	rate := rt.Update("net:eth0", 5000, 3000)
	if rate.Rx != 0 || rate.Tx != 0 {
		t.Errorf("first sample rate = %+v, want zero", rate)
	}
}

func TestRateTrackerSteadyState(t *testing.T) {
	rt, now := trackerAt(time.Unix(1000, 0))

	rt.Update("net:eth0", 0, 0)
	*now = now.Add(2 * time.Second)
	// 4 MiB received and 2 MiB sent over 2 seconds.
	rate := rt.Update("net:eth0", 4*mib, 2*mib)

	if math.Abs(rate.Rx-2.0) > 1e-9 {
		t.Errorf("Rx = %v MB/s, want 2", rate.Rx)
	}
	if math.Abs(rate.Tx-1.0) > 1e-9 {
		t.Errorf("Tx = %v MB/s, want 1", rate.Tx)
	}
}

func TestRateTrackerIndependentKeys(t *testing.T) {
	rt, now := trackerAt(time.Unix(1000, 0))

	rt.Update("disk:sda", 0, 0)
	*now = now.Add(time.Second)
	rt.Update("disk:sdb", 0, 0) // first sample for sdb

	rate := rt.Update("disk:sda", mib, 0)
	if rate.Rx == 0 {
		t.Error("sda rate should be nonzero after two samples")
	}
}

func TestZpoolRateFromSinceBootBandwidth(t *testing.T) {
	rt, now := trackerAt(time.Unix(1000, 0))

	uptime := 1000 * time.Second
	restore := bootUptime
	bootUptime = func() (time.Duration, error) { return uptime, nil }
	defer func() { bootUptime = restore }()

	// The pool has averaged 2 MiB/s read and 1 MiB/s write since boot and
	// keeps that pace across the sampling window.
	r := &fakeRunner{outputs: map[string]string{
		"zpool iostat tank -Hp": fmt.Sprintf("tank\t1\t2\t3\t4\t%d\t%d", 2*mib, mib),
	}}

	if _, err := ZpoolRate(rt, r, "tank"); err != nil {
		t.Fatalf("ZpoolRate() error = %v", err)
	}
	*now = now.Add(2 * time.Second)
	uptime += 2 * time.Second

	rate, err := ZpoolRate(rt, r, "tank")
	if err != nil {
		t.Fatalf("ZpoolRate() error = %v", err)
	}
	if math.Abs(rate.Rx-2.0) > 1e-6 {
		t.Errorf("Rx = %v MB/s, want 2", rate.Rx)
	}
	if math.Abs(rate.Tx-1.0) > 1e-6 {
		t.Errorf("Tx = %v MB/s, want 1", rate.Tx)
	}
}

func TestRateTrackerCounterReset(t *testing.T) {
	rt, now := trackerAt(time.Unix(1000, 0))

	rt.Update("zpool:tank", 10*mib, 10*mib)
	*now = now.Add(time.Second)
	// Counters went backwards (pool re-imported): report zero, not garbage.
	rate := rt.Update("zpool:tank", mib, mib)

	if rate.Rx != 0 || rate.Tx != 0 {
		t.Errorf("rate after counter reset = %+v, want zero", rate)
	}
}
