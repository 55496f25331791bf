package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure. Every field is
// optional; empty path overrides mean the platform defaults are used.
type Config struct {
	Settings struct {
		Debug bool `yaml:"debug"` // Enable debug logging
	} `yaml:"settings"`
	Paths struct {
		RegistryFile   string `yaml:"registry_file"`   // Override the tracked-extension registry file
		PreferenceFile string `yaml:"preference_file"` // Override the LaunchServices preference file
	} `yaml:"paths"`
	Locator struct {
		ExtraScanRoots []string `yaml:"extra_scan_roots"` // Additional application directories to scan
	} `yaml:"locator"`
	Extensions struct {
		ExtraDefaults []string `yaml:"extra_defaults"` // Extensions tracked in addition to the built-in list
	} `yaml:"extensions"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{}
}

// LoadConfig loads configuration from the default location
// (~/.config/defapp/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(home, ".config", "defapp", "config.yaml"))
}

// LoadConfigFile loads configuration from a specific file path. If the file
// doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}
