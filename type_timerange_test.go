package infinity

import (
	"testing"

	"github.com/Triton1605/Infinity/date"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{"all", "all", false},
		{"1w", "1w", false},
		{"3m", "3m", false},
		{"5y", "5y", false},
		{"2025-01-01..2025-06-30", "2025-01-01..2025-06-30", false},
		{"2025-06-30..2025-01-01", "", true},
		{"2025-01-01..", "", true},
		{"90d", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTimeRange(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseTimeRange(%q) accepted, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeRange(%q) error = %v", tt.input, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseTimeRange(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestTimeRange_Resolve(t *testing.T) {
	anchor := day("2025-09-30")
	span := date.Range{From: day("2024-01-02"), To: anchor}

	tests := []struct {
		input    string
		from, to string
	}{
		{"all", "2024-01-02", "2025-09-30"},
		{"1d", "2025-09-30", "2025-09-30"},
		{"1w", "2025-09-24", "2025-09-30"},
		{"1m", "2025-08-31", "2025-09-30"},
		{"1y", "2024-10-01", "2025-09-30"},
		{"2025-03-01..2025-03-31", "2025-03-01", "2025-03-31"},
	}

	for _, tt := range tests {
		tr := must(ParseTimeRange(tt.input))
		got := tr.Resolve(anchor, span)
		if got.From != day(tt.from) || got.To != day(tt.to) {
			t.Errorf("Resolve(%q) = %s..%s, want %s..%s", tt.input, got.From, got.To, tt.from, tt.to)
		}
	}
}

// Preset anchors land on month-end trading days all the time; the window
// must still start on the 1st, not lose its first days to day-of-month
// overflow (Mar 31 minus one month is Feb 28, not Mar 3).
func TestTimeRange_Resolve_MonthEndAnchor(t *testing.T) {
	span := date.Range{From: day("2020-01-02"), To: day("2025-12-31")}

	tests := []struct {
		input    string
		anchor   string
		from, to string
	}{
		{"1m", "2025-03-31", "2025-03-01", "2025-03-31"},
		{"1m", "2025-07-31", "2025-07-01", "2025-07-31"},
		{"3m", "2025-05-31", "2025-03-01", "2025-05-31"},
		{"1y", "2024-02-29", "2023-03-01", "2024-02-29"},
	}

	for _, tt := range tests {
		tr := must(ParseTimeRange(tt.input))
		got := tr.Resolve(day(tt.anchor), span)
		if got.From != day(tt.from) || got.To != day(tt.to) {
			t.Errorf("Resolve(%q, anchor %s) = %s..%s, want %s..%s", tt.input, tt.anchor, got.From, got.To, tt.from, tt.to)
		}
	}
}

func TestCustomTimeRange_Reversed(t *testing.T) {
	_, err := CustomTimeRange(day("2025-06-30"), day("2025-01-01"))
	if err == nil {
		t.Fatal("CustomTimeRange() accepted a reversed range")
	}
	if !IsConfiguration(err) {
		t.Errorf("CustomTimeRange() error = %v, want a ConfigurationError", err)
	}
}
