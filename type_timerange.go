package infinity

import (
	"encoding/json"
	"strings"

	"github.com/Triton1605/Infinity/date"
)

// TimeRange is the global window a chart is clipped to: either the whole
// available data ("all"), a preset span relative to the newest data point
// ("1w" through "5y"), or a custom absolute range.
//
// Presets are anchored on data, not on the wall clock, so a saved project
// renders the same dataset until its assets are updated.
type TimeRange struct {
	preset   string // "all" or a preset name; empty for custom ranges
	from, to date.Date
}

// AllTime spans all available data.
var AllTime = TimeRange{preset: "all"}

// presetDays maps preset names to their span: days when positive, months
// when negative.
var presetDays = map[string]int{
	"1d": 1,
	"1w": 7,
	"1m": -1,
	"3m": -3,
	"6m": -6,
	"1y": -12,
	"2y": -24,
	"5y": -60,
}

// PresetTimeRange returns the named preset window.
func PresetTimeRange(name string) (TimeRange, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return AllTime, nil
	}
	if _, ok := presetDays[name]; !ok {
		return TimeRange{}, configErrorf("unknown time range %q", name)
	}
	return TimeRange{preset: name}, nil
}

// CustomTimeRange returns the absolute window [from, to].
func CustomTimeRange(from, to date.Date) (TimeRange, error) {
	if from.IsZero() || to.IsZero() {
		return TimeRange{}, configErrorf("custom time range wants both bounds, got %s..%s", from, to)
	}
	if to.Before(from) {
		return TimeRange{}, configErrorf("time range end %s precedes start %s", to, from)
	}
	return TimeRange{from: from, to: to}, nil
}

// ParseTimeRange parses "all", a preset like "3m", or a custom
// "2024-01-01..2024-06-30" form.
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.TrimSpace(s)
	if before, after, found := strings.Cut(s, ".."); found {
		from, err := date.Parse(before)
		if err != nil {
			return TimeRange{}, configErrorf("invalid time range %q: %v", s, err)
		}
		to, err := date.Parse(after)
		if err != nil {
			return TimeRange{}, configErrorf("invalid time range %q: %v", s, err)
		}
		return CustomTimeRange(from, to)
	}
	return PresetTimeRange(s)
}

// IsAll reports whether the range spans all available data.
func (t TimeRange) IsAll() bool { return t.preset == "all" }

// IsCustom reports whether the range has absolute bounds.
func (t TimeRange) IsCustom() bool { return t.preset == "" }

// IsZero reports whether t is the zero value, which is not a valid range.
func (t TimeRange) IsZero() bool { return t == TimeRange{} }

// Resolve turns the time range into an absolute date range. Presets span
// backwards from anchor; "all" resolves to span.
func (t TimeRange) Resolve(anchor date.Date, span date.Range) date.Range {
	switch {
	case t.IsAll():
		return span
	case t.IsCustom():
		return date.Range{From: t.from, To: t.to}
	}
	n := presetDays[t.preset]
	if n > 0 {
		return date.Range{From: anchor.Add(-n + 1), To: anchor}
	}
	return date.Range{From: anchor.AddMonths(n).Add(1), To: anchor}
}

func (t TimeRange) String() string {
	if t.preset != "" {
		return t.preset
	}
	return t.from.String() + ".." + t.to.String()
}

// MarshalJSON writes the time range in its string form.
func (t TimeRange) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// UnmarshalJSON reads the time range from its string form.
func (t *TimeRange) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeRange(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
