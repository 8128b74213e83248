package infinity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Triton1605/Infinity/date"
)

// Resolution is the time-bucket granularity a chart is rendered at: one of
// the standard calendar periods or a custom bucket of N days. The zero value
// is the daily resolution.
type Resolution struct {
	period date.Period
	days   int // custom every-N-days bucket when > 0
}

var (
	DailyResolution   = Resolution{period: date.Daily}
	WeeklyResolution  = Resolution{period: date.Weekly}
	MonthlyResolution = Resolution{period: date.Monthly}
)

// EveryDays returns a custom resolution bucketing every n days.
func EveryDays(n int) (Resolution, error) {
	if n < 1 {
		return Resolution{}, configErrorf("invalid bucket size %dd, want at least 1 day", n)
	}
	if n == 1 {
		return DailyResolution, nil
	}
	return Resolution{days: n}, nil
}

// ParseResolution parses "daily", "weekly", "monthly", or a custom "Nd" form
// like "3d".
func ParseResolution(s string) (Resolution, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, ok := strings.CutSuffix(s, "d"); ok {
		if days, err := strconv.Atoi(n); err == nil {
			return EveryDays(days)
		}
	}
	switch s {
	case "daily", "day":
		return DailyResolution, nil
	case "weekly", "week":
		return WeeklyResolution, nil
	case "monthly", "month":
		return MonthlyResolution, nil
	default:
		return Resolution{}, configErrorf("unknown resolution %q", s)
	}
}

// IsCustom reports whether the resolution is a custom N-day bucket.
func (r Resolution) IsCustom() bool { return r.days > 0 }

// Days returns the custom bucket size in days, or 0 for calendar resolutions.
func (r Resolution) Days() int { return r.days }

// Period returns the calendar period and true, or false for custom buckets.
func (r Resolution) Period() (date.Period, bool) {
	if r.IsCustom() {
		return date.Daily, false
	}
	return r.period, true
}

// span approximates the bucket width in days, for coarseness comparison only.
// A month counts as its shortest possible length.
func (r Resolution) span() int {
	if r.IsCustom() {
		return r.days
	}
	switch r.period {
	case date.Daily:
		return 1
	case date.Weekly:
		return 7
	case date.Monthly:
		return 28
	default:
		return 1
	}
}

// FinerThan reports whether r buckets are narrower than o buckets.
func (r Resolution) FinerThan(o Resolution) bool { return r.span() < o.span() }

func (r Resolution) String() string {
	if r.IsCustom() {
		return fmt.Sprintf("%dd", r.days)
	}
	return r.period.String()
}

// MarshalJSON writes the resolution as its name.
func (r Resolution) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

// UnmarshalJSON reads the resolution from its name.
func (r *Resolution) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseResolution(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
