package config

import "time"

// Config holds runtime settings for the diary shell.
//
// Fields:
//   - DatabasePath: location of the encrypted diary file.
//   - LogLevel: slog level name (debug, info, warn, error).
//   - LogFormat: "text" or "json".
//   - BusyTimeout: how long SQLite waits on a locked database before failing.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	BusyTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "./diary.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.BusyTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags and finally the positional database
// path. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parsePositional(cfg)
	return cfg
}
