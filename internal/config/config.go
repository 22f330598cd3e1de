// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment vars.
// - External errors must be wrapped via this package's error helpers.
package config

import "github.com/okian/arrows/internal/domain/board"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataFile is the path of the JSON game document.
	DataFile string `koanf:"data_file"`

	// BoardSize bounds the leaderboard.
	BoardSize int `koanf:"board_size"`

	// StartingCoins is the grant for newly created players.
	StartingCoins int64 `koanf:"starting_coins"`

	// TouchOnLogin controls whether login-only visits refresh player
	// activity. The historical implementations disagreed on this.
	TouchOnLogin bool `koanf:"touch_on_login"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8080",
		DataFile:            "arrows_data.json",
		BoardSize:           board.DefaultSize,
		StartingCoins:       100,
		TouchOnLogin:        false,
		MaxLeaderboardLimit: 100,
	}
}
