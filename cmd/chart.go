package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
	"github.com/Triton1605/Infinity/renderer"
	"github.com/google/subcommands"
)

// repeatedFlag collects the values of a flag given several times.
type repeatedFlag []string

func (r *repeatedFlag) String() string { return strings.Join(*r, ",") }
func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

type chartCmd struct {
	project  string
	index    int
	newChart bool
	save     bool

	title     string
	chartType string
	res       string
	timeRange string
	weekends  bool
	percent   bool
	label     string
	color     string

	exclude      repeatedFlag
	clearExclude repeatedFlag
	drop         repeatedFlag
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render a chart, ad-hoc or from a project" }
func (*chartCmd) Usage() string {
	return `infinity chart [flags] [<SYMBOL.class>...]

  Render the data table of a chart. Without -p the chart is ad-hoc, built
  from the named assets and the flags. With -p the chart -i of the project
  is loaded first, then the flags and named assets edit it; -save writes
  the edited chart back to the project.

  Exclusions are written as SYMBOL.class:date for a single date,
  SYMBOL.class:date..date for a range, with an optional :reason suffix.

Usage Examples:
$ infinity chart AAPL.equity BTC.crypto -res weekly -range 1y
$ infinity chart -p tech -i 0
$ infinity chart -p tech -i 0 -x AAPL.equity:2024-01-05:bad print -save
$ infinity chart -p tech -new -title "Gold vs BTC" GC=F.commodity BTC.crypto -save
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.project, "p", "", "project to load the chart from (and save it to)")
	f.IntVar(&c.index, "i", 0, "index of the chart within the project")
	f.BoolVar(&c.newChart, "new", false, "start from a fresh chart instead of loading one")
	f.BoolVar(&c.save, "save", false, "write the edited chart back to the project")

	f.StringVar(&c.title, "title", "", "chart title")
	f.StringVar(&c.chartType, "type", "", "chart type: line, bar or candlestick")
	f.StringVar(&c.res, "res", "", "resolution: daily, weekly, monthly or Nd")
	f.StringVar(&c.timeRange, "range", "", "time range: all, a preset like 1y, or from..to")
	f.BoolVar(&c.weekends, "weekends", true, "keep points falling on weekends")
	f.BoolVar(&c.percent, "percent", false, "render percent change instead of prices")
	f.StringVar(&c.label, "label", "", "display label for the asset being added")
	f.StringVar(&c.color, "color", "", "display color for the asset being added")

	f.Var(&c.exclude, "x", "exclusion rule, repeatable: SYMBOL.class:date[..date][:reason]")
	f.Var(&c.clearExclude, "clear-x", "drop all exclusions of an asset, repeatable")
	f.Var(&c.drop, "rm", "remove an asset from the chart, repeatable")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, paths, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	// Flags explicitly given on the command line. Editing an existing chart
	// must only touch what the user asked for.
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var p *infinity.Project
	spec := infinity.NewChartSpec(c.title)
	if c.project != "" {
		var issues []*infinity.ConfigurationError
		p, issues, err = loadProject(paths, c.project)
		if err != nil {
			if !c.save || !errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return subcommands.ExitFailure
			}
			p = infinity.NewProject(c.project)
		}
		if len(issues) > 0 {
			printMarkdown(renderer.Issues(issues))
		}
		if !c.newChart {
			loaded, ok := p.Spec(c.index)
			if !ok {
				fmt.Fprintf(os.Stderr, "project %q has no chart %d\n", c.project, c.index)
				return subcommands.ExitFailure
			}
			spec = loaded
		}
	}

	spec, err = c.edit(spec, set, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if err := spec.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	d, err := infinity.NewAssembler(st).Assemble(ctx, spec)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Dataset(spec.Title(), d))

	if !c.save {
		return subcommands.ExitSuccess
	}
	if p == nil {
		fmt.Fprintln(os.Stderr, "-save needs a project, use -p <name>")
		return subcommands.ExitUsageError
	}
	if c.newChart || c.index >= p.Len() {
		c.index = p.AddSpec(spec)
	} else if err := p.SetSpec(c.index, spec); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveProject(paths, p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("saved chart %d of project %q\n", c.index, c.project)
	return subcommands.ExitSuccess
}

// edit applies the explicitly-set flags and the named assets to the spec.
func (c *chartCmd) edit(spec infinity.ChartSpec, set map[string]bool, args []string) (infinity.ChartSpec, error) {
	if set["title"] {
		spec = spec.WithTitle(c.title)
	}
	if set["type"] {
		t, err := infinity.ParseChartType(c.chartType)
		if err != nil {
			return spec, err
		}
		spec = spec.WithType(t)
	}
	if set["res"] {
		r, err := infinity.ParseResolution(c.res)
		if err != nil {
			return spec, err
		}
		spec = spec.WithResolution(r)
	}
	if set["range"] {
		t, err := infinity.ParseTimeRange(c.timeRange)
		if err != nil {
			return spec, err
		}
		spec = spec.WithTimeRange(t)
	}
	if set["weekends"] {
		spec = spec.WithWeekends(c.weekends)
	}
	if set["percent"] {
		spec = spec.WithPercent(c.percent)
	}

	if (c.label != "" || c.color != "") && len(args) != 1 {
		return spec, fmt.Errorf("-label and -color apply to a single added asset, got %d", len(args))
	}
	for _, arg := range args {
		id, err := infinity.ParseAssetID(arg)
		if err != nil {
			return spec, err
		}
		a := infinity.NewAssetSpec(id)
		if c.label != "" {
			a = a.WithLabel(c.label)
		}
		if c.color != "" {
			a = a.WithColor(c.color)
		}
		spec = spec.WithAsset(a)
	}
	for _, arg := range c.drop {
		id, err := infinity.ParseAssetID(arg)
		if err != nil {
			return spec, err
		}
		spec = spec.WithoutAsset(id)
	}

	for _, arg := range c.clearExclude {
		id, err := infinity.ParseAssetID(arg)
		if err != nil {
			return spec, err
		}
		var found bool
		spec, found = mapAsset(spec, id, infinity.AssetSpec.WithoutExclusions)
		if !found {
			return spec, fmt.Errorf("asset %s is not part of the chart", id)
		}
	}
	for _, raw := range c.exclude {
		id, rule, err := parseExclusion(raw)
		if err != nil {
			return spec, err
		}
		var found bool
		spec, found = mapAsset(spec, id, func(a infinity.AssetSpec) infinity.AssetSpec {
			return a.WithExclusion(rule)
		})
		if !found {
			return spec, fmt.Errorf("asset %s is not part of the chart", id)
		}
	}
	return spec, nil
}

// mapAsset rewrites the spec's asset with the given id, preserving the asset
// order. It reports whether the asset was found.
func mapAsset(spec infinity.ChartSpec, id infinity.AssetID, fn func(infinity.AssetSpec) infinity.AssetSpec) (infinity.ChartSpec, bool) {
	assets := spec.Assets()
	found := false
	for i, a := range assets {
		if a.ID() == id {
			assets[i] = fn(a)
			found = true
		}
	}
	if !found {
		return spec, false
	}
	for _, a := range assets {
		spec = spec.WithoutAsset(a.ID())
	}
	return spec.WithAsset(assets...), true
}

// parseExclusion parses the SYMBOL.class:date[..date][:reason] form used on
// the command line.
func parseExclusion(s string) (infinity.AssetID, infinity.ExclusionRule, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return infinity.AssetID{}, infinity.ExclusionRule{}, fmt.Errorf("invalid exclusion %q, want SYMBOL.class:date[..date][:reason]", s)
	}
	id, err := infinity.ParseAssetID(parts[0])
	if err != nil {
		return infinity.AssetID{}, infinity.ExclusionRule{}, err
	}
	reason := ""
	if len(parts) == 3 {
		reason = parts[2]
	}

	if sfrom, sto, isRange := strings.Cut(parts[1], ".."); isRange {
		from, err := date.Parse(sfrom)
		if err != nil {
			return id, infinity.ExclusionRule{}, err
		}
		to, err := date.Parse(sto)
		if err != nil {
			return id, infinity.ExclusionRule{}, err
		}
		rule, err := infinity.ExcludeRange(from, to, reason)
		return id, rule, err
	}
	on, err := date.Parse(parts[1])
	if err != nil {
		return id, infinity.ExclusionRule{}, err
	}
	return id, infinity.ExcludeDate(on, reason), nil
}
