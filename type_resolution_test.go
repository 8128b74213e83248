package infinity

import "testing"

func TestParseResolution(t *testing.T) {
	tests := []struct {
		input    string
		expected Resolution
		err      bool
	}{
		{"daily", DailyResolution, false},
		{"Daily", DailyResolution, false},
		{"weekly", WeeklyResolution, false},
		{"monthly", MonthlyResolution, false},
		{"3d", must(EveryDays(3)), false},
		{"1d", DailyResolution, false},
		{"0d", Resolution{}, true},
		{"-2d", Resolution{}, true},
		{"hourly", Resolution{}, true},
		{"", Resolution{}, true},
	}

	for _, tt := range tests {
		got, err := ParseResolution(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseResolution(%q) accepted, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseResolution(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseResolution(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestResolution_FinerThan(t *testing.T) {
	tests := []struct {
		a, b  Resolution
		finer bool
	}{
		{DailyResolution, WeeklyResolution, true},
		{WeeklyResolution, DailyResolution, false},
		{WeeklyResolution, MonthlyResolution, true},
		{WeeklyResolution, WeeklyResolution, false},
		{must(EveryDays(3)), WeeklyResolution, true},
		{must(EveryDays(10)), WeeklyResolution, false},
		{DailyResolution, must(EveryDays(2)), true},
	}

	for _, tt := range tests {
		if got := tt.a.FinerThan(tt.b); got != tt.finer {
			t.Errorf("%s FinerThan %s = %v, want %v", tt.a, tt.b, got, tt.finer)
		}
	}
}

func TestResolution_String(t *testing.T) {
	tests := []struct {
		r    Resolution
		want string
	}{
		{DailyResolution, "daily"},
		{WeeklyResolution, "weekly"},
		{MonthlyResolution, "monthly"},
		{must(EveryDays(3)), "3d"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEveryDays_One(t *testing.T) {
	r, err := EveryDays(1)
	if err != nil {
		t.Fatalf("EveryDays(1) error = %v", err)
	}
	if r != DailyResolution {
		t.Errorf("EveryDays(1) = %s, want daily", r)
	}
}
