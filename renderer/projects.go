package renderer

import (
	"strconv"

	"github.com/Triton1605/Infinity"
)

// ProjectEntry pairs a loadable project with its file name, for listings.
type ProjectEntry struct {
	File    string
	Project *infinity.Project
	Err     error
}

// ProjectList renders the saved projects as a markdown table. Entries that
// failed to load still show up, with their error instead of their content.
func ProjectList(entries []ProjectEntry) string {
	b := &builder{}
	b.Printf("# Projects\n\n")
	if len(entries) == 0 {
		b.Printf("No saved project. Use `infinity project new` to create one.\n")
		return b.String()
	}
	b.row("Name", "Charts", "Modified", "File")
	b.sep(4)
	for _, e := range entries {
		if e.Err != nil {
			b.row("*(unreadable)*", "-", "-", e.File)
			continue
		}
		modified := "-"
		if !e.Project.Modified().IsZero() {
			modified = e.Project.Modified().Format("2006-01-02 15:04")
		}
		b.row(e.Project.Name(), strconv.Itoa(e.Project.Len()), modified, e.File)
	}
	return b.String()
}

// Project renders one project's chart specs.
func Project(p *infinity.Project) string {
	b := &builder{}
	b.Printf("# %s\n\n", p.Name())
	if !p.Created().IsZero() {
		b.Printf("Created %s, modified %s.\n\n",
			p.Created().Format("2006-01-02"), p.Modified().Format("2006-01-02"))
	}
	if p.Len() == 0 {
		b.Printf("No chart yet.\n")
		return b.String()
	}
	for i, spec := range p.Specs() {
		b.Printf("## %d. %s\n\n", i, spec.Title())
		b.Printf("- Type: %s, resolution %s, range %s\n", spec.Type(), spec.Resolution(), spec.TimeRange())
		if !spec.IncludeWeekends() {
			b.Printf("- Weekends dropped\n")
		}
		if spec.Percent() {
			b.Printf("- Percent-change mode\n")
		}
		for _, a := range spec.Assets() {
			b.Printf("- %s", a.ID())
			if a.Label() != a.ID().Symbol {
				b.Printf(" (%s)", a.Label())
			}
			if rules := a.Exclusions(); len(rules) > 0 {
				b.Printf(", excluding:")
				for _, r := range rules {
					b.Printf(" %s", r)
				}
			}
			b.Printf("\n")
		}
		b.Printf("\n")
	}
	return b.String()
}

// Issues renders the chart specs that failed to load with a project.
func Issues(issues []*infinity.ConfigurationError) string {
	if len(issues) == 0 {
		return ""
	}
	b := &builder{}
	b.Printf("**%d chart(s) could not be loaded:**\n\n", len(issues))
	for _, issue := range issues {
		b.Printf("- %v\n", issue)
	}
	return b.String()
}
