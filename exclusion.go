package infinity

import (
	"fmt"
	"strings"

	"github.com/Triton1605/Infinity/date"
)

// ExclusionRule removes data points from a series before resampling. A rule
// covers a single date or a closed date interval, with an optional free-form
// reason kept for display.
type ExclusionRule struct {
	span   date.Range
	reason string
}

// ExcludeDate returns a rule covering exactly one date.
func ExcludeDate(on date.Date, reason string) ExclusionRule {
	return ExclusionRule{span: date.Range{From: on, To: on}, reason: reason}
}

// ExcludeRange returns a rule covering the closed interval [from, to].
// A reversed interval is a configuration error, not an empty rule.
func ExcludeRange(from, to date.Date, reason string) (ExclusionRule, error) {
	if to.Before(from) {
		return ExclusionRule{}, configErrorf("exclusion end %s precedes start %s", to, from)
	}
	return ExclusionRule{span: date.Range{From: from, To: to}, reason: reason}, nil
}

// Matches reports whether the rule covers the given date.
func (r ExclusionRule) Matches(on date.Date) bool { return r.span.Contains(on) }

// Single reports whether the rule covers exactly one date.
func (r ExclusionRule) Single() bool { return r.span.From == r.span.To }

// From returns the first excluded date.
func (r ExclusionRule) From() date.Date { return r.span.From }

// To returns the last excluded date.
func (r ExclusionRule) To() date.Date { return r.span.To }

// Reason returns the free-form reason attached to the rule.
func (r ExclusionRule) Reason() string { return r.reason }

func (r ExclusionRule) String() string {
	var sb strings.Builder
	if r.Single() {
		sb.WriteString(r.span.From.String())
	} else {
		fmt.Fprintf(&sb, "%s..%s", r.span.From, r.span.To)
	}
	if r.reason != "" {
		fmt.Fprintf(&sb, " (%s)", r.reason)
	}
	return sb.String()
}

// ExclusionList is a set of rules applied together. A date is excluded when
// any rule covers it, so overlapping rules union rather than conflict.
type ExclusionList []ExclusionRule

// Matches reports whether any rule in the list covers the given date.
func (l ExclusionList) Matches(on date.Date) bool {
	for _, r := range l {
		if r.Matches(on) {
			return true
		}
	}
	return false
}

// Apply filters the series through the rules and returns the surviving points
// at the native resolution, with the removed dates recorded as gaps. Rules
// covering no point of the series have no effect. The input series is never
// modified.
func (l ExclusionList) Apply(s *RawSeries) *FilteredSeries {
	kept, removed := s.candles.Filter(func(on date.Date, _ Candle) bool { return !l.Matches(on) })
	return &FilteredSeries{id: s.id, resolution: s.native, candles: *kept, gaps: removed}
}
