// Package config holds the application settings and the resolution of the
// directories where asset caches, projects and exports live. The core
// pipeline never reads from here; only the store and the CLI do.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultFetchTimeout = 10 * time.Second

// Settings is the application configuration, read from a YAML file with
// environment variable overrides on top.
type Settings struct {
	// DataDir is the base directory for all persisted state. Empty means
	// "~/.infinity".
	DataDir string `yaml:"data_dir"`

	// Providers maps an asset class name to the provider serving it. Classes
	// not listed use the default provider.
	Providers map[string]string `yaml:"providers"`

	// DefaultProvider serves the classes without an explicit entry.
	DefaultProvider string `yaml:"default_provider"`

	// FetchTimeoutRaw is the per-fetch timeout as a duration string.
	FetchTimeoutRaw string        `yaml:"fetch_timeout"`
	FetchTimeout    time.Duration `yaml:"-"`

	// UserAgent is sent on outgoing provider requests.
	UserAgent string `yaml:"user_agent"`
}

// Load reads the settings file at path, then applies environment variable
// overrides and defaults. A missing file is not an error: everything has a
// default.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("INFINITY_HOME"); v != "" {
		s.DataDir = v
	}
	if v := os.Getenv("INFINITY_PROVIDER"); v != "" {
		s.DefaultProvider = v
	}
	if v := os.Getenv("INFINITY_FETCH_TIMEOUT"); v != "" {
		s.FetchTimeoutRaw = v
	}

	if err := s.normalise(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) normalise() error {
	if s.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot resolve home directory: %w", err)
		}
		s.DataDir = filepath.Join(home, ".infinity")
	}
	if s.DefaultProvider == "" {
		s.DefaultProvider = "yahoo"
	}
	if s.Providers == nil {
		s.Providers = make(map[string]string)
	}
	for class, name := range s.Providers {
		s.Providers[class] = strings.ToLower(strings.TrimSpace(name))
	}
	s.FetchTimeout = defaultFetchTimeout
	if s.FetchTimeoutRaw != "" {
		d, err := time.ParseDuration(s.FetchTimeoutRaw)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout %q: %w", s.FetchTimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("fetch_timeout must be positive, got %s", d)
		}
		s.FetchTimeout = d
	}
	if s.UserAgent == "" {
		s.UserAgent = "infinity/1.0"
	}
	return nil
}

// Provider returns the provider name configured for the given asset class
// name.
func (s *Settings) Provider(class string) string {
	if name, ok := s.Providers[strings.ToLower(class)]; ok && name != "" {
		return name
	}
	return s.DefaultProvider
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if s.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if s.DefaultProvider == "" {
		return fmt.Errorf("default_provider is required")
	}
	return nil
}
