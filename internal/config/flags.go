package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/flagx"
)

// valueFlags lists every flag that takes a value, including the JSON config
// flags, so positional parsing can skip their values.
var valueFlags = []string{"-c", "-config", "-d", "-l", "-t"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   database file path
//	-l string   log level
//	-t int      busy timeout in milliseconds
//
// Only the flags handled here are passed to the FlagSet (see
// flagx.FilterArgs). Invalid values panic, like the JSON loader.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the diary database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	busyTimeout := fs.Int("t", int(cfg.BusyTimeout.Milliseconds()), "SQLite busy timeout (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.BusyTimeout = time.Duration(*busyTimeout) * time.Millisecond
}

// parsePositional takes the first positional argument as the database path,
// so `diary ~/notes.db` works like `diary -d ~/notes.db`.
func parsePositional(cfg *Config) {
	if args := flagx.Positional(os.Args[1:], valueFlags); len(args) > 0 {
		cfg.DatabasePath = args[0]
	}
}
