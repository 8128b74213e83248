// Package cmd implements the CLI application to track assets and render
// their charts.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/config"
	"github.com/Triton1605/Infinity/renderer"
	"github.com/Triton1605/Infinity/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "assets")
	c.Register(&updateCmd{}, "assets")
	c.Register(&removeCmd{}, "assets")
	c.Register(&listCmd{}, "assets")
	c.Register(&viewCmd{}, "assets")
	c.Register(&searchCmd{}, "assets")
	c.Register(&exportCmd{}, "assets")

	c.Register(&projectCmd{}, "projects")
	c.Register(&chartCmd{}, "projects")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
	c.Register(&versionCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "base directory for assets and projects (default ~/.infinity)")
var plain = flag.Bool("plain", false, "disable ANSI rendering of markdown output")

// loadSettings reads the config file from the data directory, honoring the
// -data-dir flag over the file and the environment.
func loadSettings() (*config.Settings, error) {
	base := *dataDir
	if base == "" {
		base = os.Getenv("INFINITY_HOME")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".infinity")
	}
	s, err := config.Load(filepath.Join(base, "config.yaml"))
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		s.DataDir = *dataDir
	}
	return s, nil
}

// openStore builds the asset store with one provider per asset class, as
// configured in the settings.
func openStore() (*store.Store, *config.Paths, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	paths := s.NewPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, nil, err
	}
	assetsDir, err := paths.Path(config.AssetsDir)
	if err != nil {
		return nil, nil, err
	}
	cacheDir, err := paths.Path(config.HTTPCacheDir)
	if err != nil {
		return nil, nil, err
	}

	opts := []store.Option{store.WithDir(assetsDir), store.WithTimeout(s.FetchTimeout)}
	built := make(map[string]store.Provider)
	for _, class := range infinity.AssetClasses() {
		name := s.Provider(class.String())
		p, ok := built[name]
		if !ok {
			p, err = store.Build(name, store.BuildOptions{UserAgent: s.UserAgent, CacheDir: cacheDir})
			if err != nil {
				return nil, nil, fmt.Errorf("provider for class %q: %w", class, err)
			}
			built[name] = p
		}
		opts = append(opts, store.WithClassProvider(class, p))
	}
	return store.New(opts...), paths, nil
}

// printMarkdown renders markdown to the terminal, or raw with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Println(md)
		return
	}
	fmt.Println(renderer.ANSI(md))
}

// projectFile resolves the file a named project is stored in.
func projectFile(paths *config.Paths, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("missing project name")
	}
	dir, err := paths.Path(config.ProjectsDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// loadProject reads a named project. Invalid chart specs inside the document
// are returned as issues, not errors: the rest of the project still loads.
func loadProject(paths *config.Paths, name string) (*infinity.Project, []*infinity.ConfigurationError, error) {
	file, err := projectFile(paths, name)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open project %q: %w", name, err)
	}
	defer f.Close()
	return infinity.DecodeProject(f)
}

// saveProject writes a project to its file in the projects directory.
func saveProject(paths *config.Paths, p *infinity.Project) error {
	file, err := projectFile(paths, p.Name())
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("could not create project file %q: %w", file, err)
	}
	if err := infinity.EncodeProject(f, p); err != nil {
		f.Close()
		return fmt.Errorf("could not write project %q: %w", p.Name(), err)
	}
	return f.Close()
}
