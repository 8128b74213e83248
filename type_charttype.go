package infinity

import (
	"encoding/json"
	"strings"
)

// ChartType selects how a dataset is meant to be drawn. The set is closed:
// the rendering layer switches on the tag, never on runtime types.
type ChartType int

const (
	Line ChartType = iota
	Bar
	Candlestick
)

func (t ChartType) String() string {
	switch t {
	case Line:
		return "line"
	case Bar:
		return "bar"
	case Candlestick:
		return "candlestick"
	default:
		return "line"
	}
}

// ParseChartType parses a chart type name.
func ParseChartType(s string) (ChartType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "bar":
		return Bar, nil
	case "candlestick", "candle":
		return Candlestick, nil
	default:
		return Line, configErrorf("unknown chart type %q", s)
	}
}

// MarshalJSON writes the chart type as its name.
func (t ChartType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// UnmarshalJSON reads the chart type from its name.
func (t *ChartType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseChartType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
