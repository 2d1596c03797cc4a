// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Filters FiltersConfig `toml:"filters"`
}

// FiltersConfig selects and configures the text filters. Unset values leave
// the corresponding filter disabled unless a CLI flag enables it.
type FiltersConfig struct {
	URL           *bool         `toml:"url"`
	Mention       *bool         `toml:"mention"`
	Hashtag       *bool         `toml:"hashtag"`
	Numeral       *bool         `toml:"numeral"`
	Tricky        *bool         `toml:"tricky"`
	Blacklist     []string      `toml:"blacklist"`
	BlacklistFile *string       `toml:"blacklist-file"`
	LowLetter     *float64      `toml:"low-letter"`
	Lengths       *string       `toml:"lengths"`
	RealWord      *float64      `toml:"real-word"`
	Lang          *string       `toml:"lang"`
	Dictionary    *string       `toml:"dictionary"`
	Regex         []RegexConfig `toml:"regex"`
}

// RegexConfig maps a [[filters.regex]] table.
type RegexConfig struct {
	Pattern    string `toml:"pattern"`
	IgnoreCase bool   `toml:"ignore-case"`
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
	for i, re := range cfg.Filters.Regex {
		if re.Pattern == "" {
			return FileConfig{}, fmt.Errorf("filters.regex[%d]: pattern is empty", i)
		}
	}
	return cfg, nil
}
