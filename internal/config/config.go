// Package config loads the YAML configuration the cmd/goscript driver
// accepts via --config, grounded in the teacher's use of struct-tagged
// config types decoded with goccy/go-yaml elsewhere in the pack.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config controls how the driver sets up an evaluation: which of the
// reference built-ins (internal/builtins.All) are registered, whether
// the parser's const-folding pass (§4.3) runs, and default script
// arguments exposed to the running program.
type Config struct {
	// Builtins restricts the registered built-in set to these names. A
	// nil/empty list registers every name in internal/builtins.All.
	Builtins []string `yaml:"builtins"`

	// DisableConstEval turns off the parser's constant-folding pass
	// (§4.3), useful when debugging fold-related discrepancies.
	DisableConstEval bool `yaml:"disable_const_eval"`

	// Args are the script-visible command-line arguments, made available
	// to a running program the way original_source's REPL exposed
	// argv[] past `--` (SPEC_FULL.md SUPPLEMENTED FEATURES).
	Args []string `yaml:"args"`
}

// Load reads and decodes a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// BuiltinSet returns the set of built-in names to register: nil (meaning
// every built-in) when Builtins is empty, otherwise exactly the names it
// lists.
func (c *Config) BuiltinSet() map[string]bool {
	if c == nil || len(c.Builtins) == 0 {
		return nil
	}
	set := make(map[string]bool, len(c.Builtins))
	for _, name := range c.Builtins {
		set[name] = true
	}
	return set
}
