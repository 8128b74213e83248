package infinity

import (
	"slices"
	"time"
)

// AssetSpec describes one asset within a chart: identity, display overlay
// settings, and the exclusion rules applied to its series. It is an immutable
// value, the With methods return modified copies.
type AssetSpec struct {
	id         AssetID
	label      string
	color      string
	exclusions ExclusionList
}

// NewAssetSpec returns an asset spec labeled with the asset's symbol.
func NewAssetSpec(id AssetID) AssetSpec {
	return AssetSpec{id: id, label: id.Symbol}
}

// WithLabel returns a copy of the spec with the given display label.
func (a AssetSpec) WithLabel(label string) AssetSpec {
	a.label = label
	return a
}

// WithColor returns a copy of the spec with the given display color.
func (a AssetSpec) WithColor(color string) AssetSpec {
	a.color = color
	return a
}

// WithExclusion returns a copy of the spec with the given rules appended.
func (a AssetSpec) WithExclusion(rules ...ExclusionRule) AssetSpec {
	a.exclusions = append(slices.Clone(a.exclusions), rules...)
	return a
}

// WithoutExclusions returns a copy of the spec with all rules removed.
func (a AssetSpec) WithoutExclusions() AssetSpec {
	a.exclusions = nil
	return a
}

// ID returns the asset identifier.
func (a AssetSpec) ID() AssetID { return a.id }

// Label returns the display label.
func (a AssetSpec) Label() string { return a.label }

// Color returns the display color, empty when unset.
func (a AssetSpec) Color() string { return a.color }

// Exclusions returns a copy of the exclusion rules, in declaration order.
func (a AssetSpec) Exclusions() ExclusionList { return slices.Clone(a.exclusions) }

// ChartSpec is the full configuration of one chart: type, assets, resolution
// and time range. Like AssetSpec it is an immutable value, so an edit
// produces a new spec that replaces the old one in its project.
type ChartSpec struct {
	title      string
	chartType  ChartType
	assets     []AssetSpec
	resolution Resolution
	timeRange  TimeRange
	weekends   bool
	percent    bool
}

// NewChartSpec returns a chart spec with the default settings: a daily line
// chart over the whole available history, weekends included.
func NewChartSpec(title string) ChartSpec {
	return ChartSpec{
		title:      title,
		chartType:  Line,
		resolution: DailyResolution,
		timeRange:  AllTime,
		weekends:   true,
	}
}

// WithTitle returns a copy of the spec with the given title.
func (s ChartSpec) WithTitle(title string) ChartSpec {
	s.title = title
	return s
}

// WithType returns a copy of the spec with the given chart type.
func (s ChartSpec) WithType(t ChartType) ChartSpec {
	s.chartType = t
	return s
}

// WithAsset returns a copy of the spec with the given assets appended.
func (s ChartSpec) WithAsset(assets ...AssetSpec) ChartSpec {
	s.assets = append(slices.Clone(s.assets), assets...)
	return s
}

// WithoutAsset returns a copy of the spec without the given asset.
func (s ChartSpec) WithoutAsset(id AssetID) ChartSpec {
	s.assets = slices.DeleteFunc(slices.Clone(s.assets), func(a AssetSpec) bool { return a.id == id })
	return s
}

// WithResolution returns a copy of the spec with the given resolution.
func (s ChartSpec) WithResolution(r Resolution) ChartSpec {
	s.resolution = r
	return s
}

// WithTimeRange returns a copy of the spec with the given time range.
func (s ChartSpec) WithTimeRange(t TimeRange) ChartSpec {
	s.timeRange = t
	return s
}

// WithWeekends returns a copy of the spec that keeps or drops the points
// falling on weekends.
func (s ChartSpec) WithWeekends(include bool) ChartSpec {
	s.weekends = include
	return s
}

// WithPercent returns a copy of the spec that renders prices as percent
// changes from the first visible close instead of raw prices.
func (s ChartSpec) WithPercent(percent bool) ChartSpec {
	s.percent = percent
	return s
}

// Title returns the chart title.
func (s ChartSpec) Title() string { return s.title }

// Type returns the chart type.
func (s ChartSpec) Type() ChartType { return s.chartType }

// Assets returns a copy of the asset specs, in display order.
func (s ChartSpec) Assets() []AssetSpec { return slices.Clone(s.assets) }

// Resolution returns the target resolution.
func (s ChartSpec) Resolution() Resolution { return s.resolution }

// TimeRange returns the global time range of the chart.
func (s ChartSpec) TimeRange() TimeRange { return s.timeRange }

// IncludeWeekends reports whether points falling on weekends are kept.
func (s ChartSpec) IncludeWeekends() bool { return s.weekends }

// Percent reports whether prices are rendered as percent changes.
func (s ChartSpec) Percent() bool { return s.percent }

// Validate checks the spec holds at least one asset and no asset twice.
func (s ChartSpec) Validate() error {
	if len(s.assets) == 0 {
		return configErrorf("chart %q has no asset", s.title)
	}
	seen := make(map[AssetID]bool, len(s.assets))
	for _, a := range s.assets {
		if seen[a.id] {
			return configErrorf("chart %q references asset %s twice", s.title, a.id)
		}
		seen[a.id] = true
	}
	return nil
}

// Project is a named, ordered collection of chart specs and the unit of
// persistence. It owns its specs exclusively, sharing none with other
// projects, and tracks creation and modification times.
type Project struct {
	name     string
	created  time.Time
	modified time.Time
	specs    []ChartSpec
}

// timestamp returns the current time the way projects store it, truncated to
// the second so an encode and decode cycle preserves equality.
func timestamp() time.Time { return time.Now().UTC().Truncate(time.Second) }

// NewProject returns an empty project created now.
func NewProject(name string) *Project {
	now := timestamp()
	return &Project{name: name, created: now, modified: now}
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Rename changes the project name.
func (p *Project) Rename(name string) {
	p.name = name
	p.touch()
}

// Created returns the creation time of the project.
func (p *Project) Created() time.Time { return p.created }

// Modified returns the time of the last mutation of the project.
func (p *Project) Modified() time.Time { return p.modified }

// Len returns the number of chart specs.
func (p *Project) Len() int { return len(p.specs) }

// Specs returns a copy of the chart specs, in order.
func (p *Project) Specs() []ChartSpec { return slices.Clone(p.specs) }

// Spec returns the chart spec at the given index, if any.
func (p *Project) Spec(i int) (ChartSpec, bool) {
	if i < 0 || i >= len(p.specs) {
		return ChartSpec{}, false
	}
	return p.specs[i], true
}

// AddSpec appends a chart spec and returns its index.
func (p *Project) AddSpec(s ChartSpec) int {
	p.specs = append(p.specs, s)
	p.touch()
	return len(p.specs) - 1
}

// SetSpec replaces the chart spec at the given index.
func (p *Project) SetSpec(i int, s ChartSpec) error {
	if i < 0 || i >= len(p.specs) {
		return specErrorf(i, "no such chart")
	}
	p.specs[i] = s
	p.touch()
	return nil
}

// RemoveSpec deletes the chart spec at the given index.
func (p *Project) RemoveSpec(i int) error {
	if i < 0 || i >= len(p.specs) {
		return specErrorf(i, "no such chart")
	}
	p.specs = slices.Delete(p.specs, i, i+1)
	p.touch()
	return nil
}

func (p *Project) touch() { p.modified = timestamp() }
