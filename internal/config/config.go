// Package config defines service configuration structures and loading
// hooks.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabaseURL is the Postgres DSN. Empty selects the in-memory store,
	// which only suits local runs since rows vanish on restart.
	DatabaseURL string `koanf:"database_url"`

	// DisplayNamesFile points at the on-disk profile-id to display-name
	// mapping. Empty disables the lookup; ids pass through unchanged.
	DisplayNamesFile string `koanf:"display_names_file"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8090",
		DatabaseURL:         "",
		DisplayNamesFile:    "",
		MaxLeaderboardLimit: 100,
	}
}
