// Package logging provides logging utilities for ipkit.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: the final error message shown to the user
//
// Command results always go to stdout; everything in this package goes to
// stderr so that ipkit stays usable in pipelines.
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings.
// The text handler is a charmbracelet/log logger; --log-json switches to
// slog's JSON handler:
//
//	logging.Debug("resolved group", "name", name, "nets", len(nets))
//	logging.Warn("unknown configuration key", "key", key)
//
// # User Output
//
//	logging.UserError("%v", err) // ✗ invalid address or network: 10.0.0.300
package logging
