// Package logging provides structured logging for the pentad daemon.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the daemon. Logging verbosity is controlled by the
// --log-level flag or the PENTAD_LOG_LEVEL environment variable.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: per-cycle detail (fan duty updates, raw button edges, page renders)
//   - Info: normal operations (startup, button events, page changes, shutdown)
//   - Warn: non-fatal issues (hardware write failures, config fallbacks)
//   - Error: fatal issues (startup failures)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Warn("PWM write failed",
//	    zap.Float64("duty_percent", 75),
//	    zap.Error(err),
//	)
package logging
