package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ARROWS_CONFIG is set
//  3. env (prefix ARROWS_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ARROWS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ARROWS_ADDR, ARROWS_BOARD_SIZE, ...
	// Map env keys like ARROWS_BOARD_SIZE -> board_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ARROWS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "arrows_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DataFile == "":
		return nil, fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
	case cfg.BoardSize < 1:
		return nil, fmt.Errorf("%w: board_size must be positive", ErrInvalidConfig)
	case cfg.StartingCoins < 0:
		return nil, fmt.Errorf("%w: starting_coins must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
