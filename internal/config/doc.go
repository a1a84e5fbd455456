// Package config loads and validates the pentad configuration file.
//
// The on-disk format is INI, read once at startup. The parsed Config is an
// immutable snapshot: nothing in the daemon mutates it after Load returns.
// Every key has a documented default; a missing or malformed key logs a
// warning and takes its default rather than failing the load. Only an
// unreadable file with no fallback path is ever reported as an error, and
// even then the caller receives a usable default Config.
//
// # File Location
//
// The default path is /etc/pentad.conf. The --config flag overrides it.
//
// # Sections
//
//	[fan]      lv0..lv3 temperature thresholds, linear mode, temp_disks
//	[key]      click/twice/press action bindings
//	[time]     twice/press timing windows in seconds
//	[slider]   auto page advance, advance period, refresh period
//	[oled]     rotate, f-temp
//	[disk]     space_usage_mnt_points, io_usage_mnt_points, zfs, disks_temp
//	[network]  interfaces ('|' separated, or "auto")
package config
