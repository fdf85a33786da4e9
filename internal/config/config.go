// Package config loads harness settings from defaults and an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".faultline.toml"

// DefaultFuzzIterations is how many seeds a fuzz test runs by default.
const DefaultFuzzIterations = 500

// Config holds every option that toggles instrumentation or filtering.
type Config struct {
	LeakCheck       bool     `toml:"leak_check"`
	LeakCheckPass   bool     `toml:"leak_check_pass"`
	FaultCheck      bool     `toml:"fault_check"`
	FaultPersistent bool     `toml:"fault_persistent"`
	FuzzIterations  int      `toml:"fuzz_iterations"`
	MaxLiveBytes    int      `toml:"max_live_bytes"`
	Tests           []string `toml:"tests"`
	Suites          []string `toml:"suites"`
	Reports         string   `toml:"reports"`
	Debug           bool     `toml:"debug"`
	DebugFile       string   `toml:"debug_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FuzzIterations: DefaultFuzzIterations,
	}
}

// Load reads path on top of the defaults. An empty path falls back to
// DefaultFile, and a missing DefaultFile is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects settings no run can honour.
func (c Config) Validate() error {
	if c.FuzzIterations < 0 {
		return fmt.Errorf("fuzz_iterations must not be negative, got %d", c.FuzzIterations)
	}

	if c.MaxLiveBytes < 0 {
		return fmt.Errorf("max_live_bytes must not be negative, got %d", c.MaxLiveBytes)
	}

	if c.LeakCheckPass && !c.LeakCheck && !c.FaultCheck && !c.FaultPersistent {
		return errors.New("leak_check_pass needs leak_check, fault_check or fault_persistent")
	}

	return nil
}
