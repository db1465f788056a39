// Package config loads the YAML run configuration for the clientgen CLI.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file name looked up in the working
// directory when no explicit path is given.
const DefaultFile = "clientgen.yaml"

// Config drives one generation run.
type Config struct {
	// Language names the target language registered with the engine.
	Language string `yaml:"language"`
	// Templates points at a template directory overriding the embedded set.
	Templates string `yaml:"templates"`
	// Output is the directory generated artifacts are written into.
	Output string `yaml:"output"`
	// Copyright is the license header {% copyright_block %} expands.
	Copyright string `yaml:"copyright"`
	// Workers bounds the render worker pool.
	Workers int `yaml:"workers"`
}

// Default returns the configuration used when no file is present. Language
// stays empty so the CLI can tell "unset" apart from a pinned choice.
func Default() *Config {
	return &Config{
		Output:  "generated",
		Workers: runtime.NumCPU(),
	}
}

// Load reads the configuration at path, layered over the defaults. A missing
// file is not an error when path is the default lookup: callers get the
// defaults back.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultFile {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}
