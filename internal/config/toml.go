// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Deck   DeckConfig   `toml:"deck"`
	Output OutputConfig `toml:"output"`
}

// DeckConfig maps deck-related settings.
type DeckConfig struct {
	Size     *int `toml:"size"`
	HandSize *int `toml:"hand-size"`
	Lands    *int `toml:"lands"`
}

// OutputConfig maps output-related settings.
type OutputConfig struct {
	Precision *int  `toml:"precision"`
	Chart     *bool `toml:"chart"`
	History   *bool `toml:"history"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
