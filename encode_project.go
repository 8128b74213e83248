package infinity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Triton1605/Infinity/date"
)

// This file contains code to persist a project as a single human-readable
// JSON document, suitable for a git repository.
//
// The format is forward-readable: unknown properties are ignored, and a
// missing optional property takes its documented default (type "line",
// resolution "daily", range "all", weekends true, percent false, label the
// asset symbol). Decoding validates each chart spec independently so one
// malformed chart does not prevent loading the others.

// jexclusion is the object read from the file using json parser. A single
// excluded date uses "on", an interval uses "from" and "to".
type jexclusion struct {
	On     string `json:"on"`
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

type jasset struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Color      string       `json:"color"`
	Exclusions []jexclusion `json:"exclusions"`
}

type jchart struct {
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Resolution string   `json:"resolution"`
	Range      string   `json:"range"`
	Weekends   *bool    `json:"weekends"`
	Percent    bool     `json:"percent"`
	Assets     []jasset `json:"assets"`
}

type jproject struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Version  string   `json:"version"`
	Created  string   `json:"created"`
	Modified string   `json:"modified"`
	Charts   []jchart `json:"charts"`
}

// Document markers. The type tells a graphing project apart from other saved
// document kinds, the version is written for readers that come after us.
const (
	projectDocType    = "graphing"
	projectDocVersion = "1.0"
)

// EncodeProject writes the project as an indented JSON document with a
// stable property order.
func EncodeProject(w io.Writer, p *Project) error {
	obj := &jsonObjectWriter{}
	obj.Append("name", p.name)
	obj.Append("type", projectDocType)
	obj.Append("version", projectDocVersion)
	obj.Append("created", p.created.Format(time.RFC3339))
	obj.Append("modified", p.modified.Format(time.RFC3339))
	charts := make([]*jsonObjectWriter, 0, len(p.specs))
	for _, s := range p.specs {
		charts = append(charts, encodeChart(s))
	}
	obj.Append("charts", charts)

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("persist error: cannot marshal project %q: %w", p.name, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("persist error: cannot marshal project %q: %w", p.name, err)
	}
	buf.WriteByte('\n')
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("persist error: cannot write to file: %w", err)
	}
	return nil
}

func encodeChart(s ChartSpec) *jsonObjectWriter {
	obj := &jsonObjectWriter{}
	obj.Append("title", s.title)
	obj.Append("type", s.chartType)
	obj.Append("resolution", s.resolution)
	obj.Append("range", s.timeRange)
	obj.Append("weekends", s.weekends)
	obj.Optional("percent", s.percent)
	assets := make([]*jsonObjectWriter, 0, len(s.assets))
	for _, a := range s.assets {
		assets = append(assets, encodeAsset(a))
	}
	obj.Append("assets", assets)
	return obj
}

func encodeAsset(a AssetSpec) *jsonObjectWriter {
	obj := &jsonObjectWriter{}
	obj.Append("id", a.id.String())
	obj.Append("label", a.label)
	obj.Optional("color", a.color)
	if len(a.exclusions) > 0 {
		rules := make([]*jsonObjectWriter, 0, len(a.exclusions))
		for _, r := range a.exclusions {
			e := &jsonObjectWriter{}
			if r.Single() {
				e.Append("on", r.From())
			} else {
				e.Append("from", r.From())
				e.Append("to", r.To())
			}
			e.Optional("reason", r.Reason())
			rules = append(rules, e)
		}
		obj.Append("exclusions", rules)
	}
	return obj
}

// DecodeProject reads a project document. Chart specs that fail validation
// are skipped and reported as issues carrying their index, while the valid
// ones still load. The returned error is reserved for documents that cannot
// be read at all.
func DecodeProject(r io.Reader) (*Project, []*ConfigurationError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("load error: cannot read project: %w", err)
	}

	var jp jproject
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, nil, fmt.Errorf("parse error: not a correct project document: %w", err)
	}
	if jp.Type != "" && jp.Type != projectDocType {
		return nil, nil, fmt.Errorf("parse error: not a %s project but %q", projectDocType, jp.Type)
	}

	p := &Project{name: jp.Name}
	if p.name == "" {
		p.name = "untitled"
	}
	if p.created, err = decodeTimestamp("created", jp.Created); err != nil {
		return nil, nil, err
	}
	if p.modified, err = decodeTimestamp("modified", jp.Modified); err != nil {
		return nil, nil, err
	}

	var issues []*ConfigurationError
	for i, jc := range jp.Charts {
		spec, cerr := decodeChart(i, jc)
		if cerr != nil {
			issues = append(issues, cerr)
			continue
		}
		p.specs = append(p.specs, spec)
	}
	return p, issues, nil
}

// decodeTimestamp parses an RFC3339 timestamp, defaulting to the zero time
// when the property is missing.
func decodeTimestamp(key, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse error: property %q must be a valid timestamp: %w", key, err)
	}
	return t, nil
}

func decodeChart(i int, jc jchart) (ChartSpec, *ConfigurationError) {
	title := jc.Title
	if title == "" {
		title = fmt.Sprintf("chart %d", i+1)
	}
	spec := NewChartSpec(title)
	if jc.Type != "" {
		t, err := ParseChartType(jc.Type)
		if err != nil {
			return ChartSpec{}, specErrorf(i, "invalid chart type: %v", err)
		}
		spec = spec.WithType(t)
	}
	if jc.Resolution != "" {
		res, err := ParseResolution(jc.Resolution)
		if err != nil {
			return ChartSpec{}, specErrorf(i, "invalid resolution: %v", err)
		}
		spec = spec.WithResolution(res)
	}
	if jc.Range != "" {
		tr, err := ParseTimeRange(jc.Range)
		if err != nil {
			return ChartSpec{}, specErrorf(i, "invalid time range: %v", err)
		}
		spec = spec.WithTimeRange(tr)
	}
	if jc.Weekends != nil {
		spec = spec.WithWeekends(*jc.Weekends)
	}
	spec = spec.WithPercent(jc.Percent)

	for _, ja := range jc.Assets {
		id, err := ParseAssetID(ja.ID)
		if err != nil {
			return ChartSpec{}, specErrorf(i, "invalid asset %q: %v", ja.ID, err)
		}
		a := NewAssetSpec(id)
		if ja.Label != "" {
			a = a.WithLabel(ja.Label)
		}
		if ja.Color != "" {
			a = a.WithColor(ja.Color)
		}
		for _, je := range ja.Exclusions {
			rule, err := decodeExclusion(je)
			if err != nil {
				return ChartSpec{}, specErrorf(i, "invalid exclusion for %s: %v", id, err)
			}
			a = a.WithExclusion(rule)
		}
		spec = spec.WithAsset(a)
	}
	if err := spec.Validate(); err != nil {
		return ChartSpec{}, specErrorf(i, "%v", err)
	}
	return spec, nil
}

func decodeExclusion(je jexclusion) (ExclusionRule, error) {
	if je.On != "" {
		on, err := date.Parse(je.On)
		if err != nil {
			return ExclusionRule{}, err
		}
		return ExcludeDate(on, je.Reason), nil
	}
	if je.From == "" || je.To == "" {
		return ExclusionRule{}, fmt.Errorf("want either %q or both %q and %q", "on", "from", "to")
	}
	from, err := date.Parse(je.From)
	if err != nil {
		return ExclusionRule{}, err
	}
	to, err := date.Parse(je.To)
	if err != nil {
		return ExclusionRule{}, err
	}
	return ExcludeRange(from, to, je.Reason)
}
