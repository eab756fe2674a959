// Package settings loads per-user defaults from the configuration directory.
// Flags always override settings; settings override built-in defaults.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Filename of the settings file inside the config dir.
const Filename = "settings.yaml"

// Settings holds per-user defaults.
type Settings struct {
	// Jobs is the default parallelism for dependency fetching.
	Jobs int `yaml:"jobs,omitempty"`
	// Offline makes every invocation start in offline mode.
	Offline bool `yaml:"offline,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Settings {
	return &Settings{Jobs: 4}
}

// Load reads settings from configDir. A missing file yields the defaults.
func Load(configDir string) (*Settings, error) {
	data, err := os.ReadFile(filepath.Join(configDir, Filename))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return Parse(data)
}

// Parse parses settings content, filling unset fields with defaults.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}
	if s.Jobs < 1 {
		return nil, fmt.Errorf("settings: jobs must be >= 1 (got %d)", s.Jobs)
	}
	return s, nil
}
