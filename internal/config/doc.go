// Package config loads runtime configuration for the diary shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags (see parseFlags).
//  4. The first positional argument, taken as the database path.
//
// Supported flags
//
//	-d string   path of the diary database file (default ./diary.db)
//	-l string   log level: debug, info, warn, error
//	-t int      SQLite busy timeout (milliseconds)
//
// # JSON schema
//
//	{
//	  "database_path": "/home/me/diary.db",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "busy_timeout": "5s"
//	}
//
// Durations use timex.Duration, so they may be strings like "5s" or integer
// nanoseconds.
package config
