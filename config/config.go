// Package config loads an optional nyxrc.yaml file supplying default
// values for the quota and VM-mode flags, so a project can pin its
// defaults once instead of repeating them on every cmd/nyx invocation.
// Not grounded in the teacher (go-mix has no config file); uses
// gopkg.in/yaml.v3, already an indirect dependency of the teacher via
// testify, promoted to direct use here.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the set of defaults an nyxrc.yaml may supply. Any CLI flag
// explicitly passed by the user overrides the corresponding field here.
type Config struct {
	MaxAlloc     int64 `yaml:"max_alloc"`
	MaxSteps     int64 `yaml:"max_steps"`
	MaxCallDepth int64 `yaml:"max_call_depth"`
	VM           bool  `yaml:"vm"`
	VMStrict     bool  `yaml:"vm_strict"`
	Trace        bool  `yaml:"trace"`
}

// Load reads and parses path. A missing file is not an error — it
// yields a zero-value Config (every quota effectively disabled, flags
// off), matching the quotas' own "non-positive limit disables the
// guard" convention.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
