// Package sysinfo reads the system state the daemon reacts to and displays.
//
// Everything here is a pure read: CPU temperature from the thermal zone,
// disk temperatures from smartctl, disk usage and IO counters from gopsutil,
// ZFS pool stats from the zpool utility, and network counters per interface.
// Nothing in this package mutates daemon state.
//
// External tools (smartctl, zpool, lsblk) are invoked through the Runner
// seam so parsers can be tested against canned output. A missing tool is
// reported as an error once and the dependent feature is disabled for the
// life of the process; it never crashes a loop.
//
// Rate figures (MB/s) are computed by RateTracker from consecutive counter
// samples. The first observation of a device always reports zero.
package sysinfo
