package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/config"
	"github.com/Triton1605/Infinity/renderer"
	"github.com/google/subcommands"
)

type projectCmd struct{}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "manage saved chart projects" }
func (*projectCmd) Usage() string {
	return `infinity project
infinity project new <name>
infinity project show <name>
infinity project mv <name> <new-name>
infinity project rm <name>

  Without arguments, list the saved projects. A project is a named ordered
  list of chart specs, stored as one JSON file in the projects directory.
  Use 'infinity chart' to add and edit the charts of a project.
`
}
func (*projectCmd) SetFlags(f *flag.FlagSet) {}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, paths, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		return c.list(paths)
	}
	action, name := f.Arg(0), f.Arg(1)
	switch action {
	case "new":
		return c.create(paths, name)
	case "show":
		return c.show(paths, name)
	case "mv":
		return c.rename(paths, name, f.Arg(2))
	case "rm":
		return c.remove(paths, name)
	}
	fmt.Fprintf(os.Stderr, "unknown action %q, want new, show, mv or rm\n", action)
	return subcommands.ExitUsageError
}

func (c *projectCmd) list(paths *config.Paths) subcommands.ExitStatus {
	dir, err := paths.Path(config.ProjectsDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	sort.Strings(files)

	entries := make([]renderer.ProjectEntry, 0, len(files))
	for _, file := range files {
		e := renderer.ProjectEntry{File: file}
		if f, err := os.Open(file); err != nil {
			e.Err = err
		} else {
			e.Project, _, e.Err = infinity.DecodeProject(f)
			f.Close()
		}
		entries = append(entries, e)
	}
	printMarkdown(renderer.ProjectList(entries))
	return subcommands.ExitSuccess
}

func (c *projectCmd) create(paths *config.Paths, name string) subcommands.ExitStatus {
	if name == "" {
		fmt.Fprintln(os.Stderr, "a project name is expected")
		return subcommands.ExitUsageError
	}
	file, err := projectFile(paths, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if _, err := os.Stat(file); err == nil {
		fmt.Fprintf(os.Stderr, "project %q already exists\n", name)
		return subcommands.ExitFailure
	}
	if err := saveProject(paths, infinity.NewProject(name)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("created project %q\n", name)
	return subcommands.ExitSuccess
}

func (c *projectCmd) show(paths *config.Paths, name string) subcommands.ExitStatus {
	p, issues, err := loadProject(paths, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Project(p))
	if len(issues) > 0 {
		printMarkdown(renderer.Issues(issues))
	}
	return subcommands.ExitSuccess
}

func (c *projectCmd) rename(paths *config.Paths, name, newName string) subcommands.ExitStatus {
	if name == "" || newName == "" {
		fmt.Fprintln(os.Stderr, "usage: infinity project mv <name> <new-name>")
		return subcommands.ExitUsageError
	}
	p, _, err := loadProject(paths, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	p.Rename(newName)
	if err := saveProject(paths, p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	old, err := projectFile(paths, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := os.Remove(old); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("renamed project %q to %q\n", name, newName)
	return subcommands.ExitSuccess
}

func (c *projectCmd) remove(paths *config.Paths, name string) subcommands.ExitStatus {
	file, err := projectFile(paths, name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if err := os.Remove(file); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing project %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("removed project %q\n", name)
	return subcommands.ExitSuccess
}
