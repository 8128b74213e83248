package infinity

import "testing"

func TestCandle_Validate(t *testing.T) {
	tests := []struct {
		name   string
		candle Candle
		err    bool
	}{
		{"regular", C(100, 105, 99, 103, 1000), false},
		{"flat", C(100, 100, 100, 100, 0), false},
		{"high below close", C(100, 101, 99, 102, 10), true},
		{"high below open", C(102, 101, 99, 100, 10), true},
		{"low above open", C(100, 105, 101, 103, 10), true},
		{"low above high", C(100, 99, 101, 100, 10), true},
		{"negative volume", C(100, 105, 99, 103, -1), true},
	}

	for _, tt := range tests {
		err := tt.candle.Validate()
		if tt.err && err == nil {
			t.Errorf("%s: Validate() accepted %s", tt.name, tt.candle)
		}
		if !tt.err && err != nil {
			t.Errorf("%s: Validate() error = %v", tt.name, err)
		}
	}
}

func TestRawSeries_AppendRejectsInvalid(t *testing.T) {
	s := NewRawSeries(aapl, DailyResolution)
	if err := s.Append(day("2025-09-01"), C(100, 90, 99, 103, 10)); err == nil {
		t.Fatal("Append() accepted an inconsistent candle")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after a rejected append, want 0", s.Len())
	}
}

func TestRawSeries_AppendOverwrites(t *testing.T) {
	s := NewRawSeries(aapl, DailyResolution)
	if err := s.Append(day("2025-09-01"), flat(100, 10)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Append(day("2025-09-01"), flat(200, 20)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1: same day appends overwrite", s.Len())
	}
	c, _ := s.Get(day("2025-09-01"))
	if want := flat(200, 20); !c.Equal(want) {
		t.Errorf("Get() = %s, want %s", c, want)
	}
}
