// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
	Log  LogConfig  `toml:"log"`
}

// GameConfig maps game-related settings.
type GameConfig struct {
	Difficulty *string  `toml:"difficulty"`
	Touch      *bool    `toml:"touch"`
	Seed       *int64   `toml:"seed"`
	CellWidth  *float64 `toml:"cell-width"`
	CellHeight *float64 `toml:"cell-height"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
