package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// benchConfig is the shape of the TOML file --config points at. Any field
// left zero falls back to the matching CLI flag's default.
type benchConfig struct {
	Entities int  `toml:"entities"`
	Ticks    int  `toml:"ticks"`
	Parallel bool `toml:"parallel_stage"`
}

// loadConfig reads and parses a TOML benchmark config. A missing path is
// not an error; it just means "use flag defaults".
func loadConfig(path string) (benchConfig, error) {
	var cfg benchConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("ecsbench: reading config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("ecsbench: parsing config %q: %w", path, err)
	}
	return cfg, nil
}
