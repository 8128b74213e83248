package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves logical location names to directories under the base data
// directory, so the rest of the code never concatenates paths on its own.
type Paths struct {
	base string
}

// Logical location names.
const (
	AssetsDir    = "assets"
	ProjectsDir  = "projects"
	ExportsDir   = "exports"
	HTTPCacheDir = "httpcache"
)

var locations = map[string]string{
	AssetsDir:    "assets",
	ProjectsDir:  "projects",
	ExportsDir:   "exports",
	HTTPCacheDir: "httpcache",
}

// NewPaths returns the path registry rooted at the settings' data directory.
func (s *Settings) NewPaths() *Paths { return &Paths{base: s.DataDir} }

// Base returns the base data directory.
func (p *Paths) Base() string { return p.base }

// Path resolves a logical name to its directory.
func (p *Paths) Path(name string) (string, error) {
	sub, ok := locations[name]
	if !ok {
		return "", fmt.Errorf("unknown location %q", name)
	}
	return filepath.Join(p.base, sub), nil
}

// EnsureDirs creates all known directories, so callers can write without
// checking first.
func (p *Paths) EnsureDirs() error {
	for name := range locations {
		dir, _ := p.Path(name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s directory %q: %w", name, dir, err)
		}
	}
	return nil
}
