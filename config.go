package authstate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is an on-disk defaults file for the store, in YAML form. Hosts that
// relocate agent state (packaged installs, test harnesses) ship one and point
// operations at it with WithConfigFile.
type Config struct {
	// StateDir is the directory for primary reads and writes.
	StateDir string `yaml:"state_dir,omitempty"`

	// LegacyStateDirs are prior storage locations consulted on read and
	// clear, in order. They are appended after any dirs supplied through
	// WithLegacyStateDirs.
	LegacyStateDirs []string `yaml:"legacy_state_dirs,omitempty"`

	// BaseURL is a default service base URL for key validity checks.
	BaseURL string `yaml:"base_url,omitempty"`
}

// LoadConfig reads and parses a defaults file from the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
