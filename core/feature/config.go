// core/feature/config.go
package feature

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config selects which summary statistics to compute and in which column
// order. The zero value is invalid; use Default or Load.
type Config struct {
	Features []string `yaml:"features"`
}

// Default enables every registered statistic in canonical order.
func Default() Config {
	names := make([]string, len(order))
	copy(names, order)
	return Config{Features: names}
}

// Load reads a YAML feature configuration. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects empty or unknown feature lists.
func (c Config) Validate() error {
	if len(c.Features) == 0 {
		return fmt.Errorf("no features selected")
	}
	seen := make(map[string]bool, len(c.Features))
	for _, name := range c.Features {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("unknown feature %q", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate feature %q", name)
		}
		seen[name] = true
	}
	return nil
}
