package infinity

import "testing"

func TestExclusionList_Apply(t *testing.T) {
	s := daily(aapl, map[string]Candle{
		"2025-09-01": flat(100, 10),
		"2025-09-02": flat(101, 10),
		"2025-09-03": flat(500, 99),
		"2025-09-04": flat(103, 10),
		"2025-09-05": flat(104, 10),
	})
	rules := ExclusionList{ExcludeDate(day("2025-09-03"), "outlier")}

	f := rules.Apply(s)

	if got, want := f.Len(), 4; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	for on := range f.Candles() {
		if rules.Matches(on) {
			t.Errorf("retained date %s matches a rule", on)
		}
		if _, ok := s.Get(on); !ok {
			t.Errorf("retained date %s is not in the input series", on)
		}
	}
	if got, want := f.Gaps(), []string{"2025-09-03"}; len(got) != 1 || got[0] != day(want[0]) {
		t.Errorf("Gaps() = %v, want %v", got, want)
	}
	if got, want := s.Len(), 5; got != want {
		t.Errorf("input series Len() = %d after apply, want %d", got, want)
	}
}

func TestExclusionList_ApplyRange(t *testing.T) {
	s := daily(aapl, map[string]Candle{
		"2025-09-01": flat(100, 10),
		"2025-09-02": flat(101, 10),
		"2025-09-03": flat(102, 10),
		"2025-09-04": flat(103, 10),
		"2025-09-05": flat(104, 10),
	})
	rules := ExclusionList{must(ExcludeRange(day("2025-09-02"), day("2025-09-04"), "bad feed"))}

	f := rules.Apply(s)

	wantDates := []string{"2025-09-01", "2025-09-05"}
	got := f.Dates()
	if len(got) != len(wantDates) {
		t.Fatalf("Dates() = %v, want %v", got, wantDates)
	}
	for i, w := range wantDates {
		if got[i] != day(w) {
			t.Errorf("Dates()[%d] = %s, want %s", i, got[i], w)
		}
	}
	wantGaps := []string{"2025-09-02", "2025-09-03", "2025-09-04"}
	gaps := f.Gaps()
	if len(gaps) != len(wantGaps) {
		t.Fatalf("Gaps() = %v, want %v", gaps, wantGaps)
	}
	for i, w := range wantGaps {
		if gaps[i] != day(w) {
			t.Errorf("Gaps()[%d] = %s, want %s", i, gaps[i], w)
		}
	}
}

func TestExclusionList_OutOfRangeIsNoOp(t *testing.T) {
	s := daily(aapl, map[string]Candle{
		"2025-09-01": flat(100, 10),
		"2025-09-02": flat(101, 10),
	})
	rules := ExclusionList{
		ExcludeDate(day("1999-01-01"), ""),
		must(ExcludeRange(day("2030-01-01"), day("2030-12-31"), "")),
	}

	f := rules.Apply(s)

	if got, want := f.Len(), s.Len(); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	if gaps := f.Gaps(); len(gaps) != 0 {
		t.Errorf("Gaps() = %v, want none", gaps)
	}
}

func TestExclusionList_Union(t *testing.T) {
	s := daily(aapl, map[string]Candle{
		"2025-09-01": flat(100, 10),
		"2025-09-02": flat(101, 10),
		"2025-09-03": flat(102, 10),
		"2025-09-04": flat(103, 10),
		"2025-09-05": flat(104, 10),
	})
	// Overlapping rules exclude the union of their dates.
	rules := ExclusionList{
		must(ExcludeRange(day("2025-09-01"), day("2025-09-03"), "")),
		ExcludeDate(day("2025-09-03"), ""),
		must(ExcludeRange(day("2025-09-03"), day("2025-09-04"), "")),
	}

	f := rules.Apply(s)

	if got := f.Dates(); len(got) != 1 || got[0] != day("2025-09-05") {
		t.Errorf("Dates() = %v, want [2025-09-05]", got)
	}
	wantGaps := []string{"2025-09-01", "2025-09-02", "2025-09-03", "2025-09-04"}
	gaps := f.Gaps()
	if len(gaps) != len(wantGaps) {
		t.Fatalf("Gaps() = %v, want %v", gaps, wantGaps)
	}
	for i, w := range wantGaps {
		if gaps[i] != day(w) {
			t.Errorf("Gaps()[%d] = %s, want %s", i, gaps[i], w)
		}
	}
}

func TestExcludeRange_Reversed(t *testing.T) {
	_, err := ExcludeRange(day("2025-09-05"), day("2025-09-01"), "")
	if err == nil {
		t.Fatal("ExcludeRange() accepted a reversed interval")
	}
	if !IsConfiguration(err) {
		t.Errorf("ExcludeRange() error = %v, want a ConfigurationError", err)
	}
}

func TestExcludeRange_Degenerate(t *testing.T) {
	r, err := ExcludeRange(day("2025-09-01"), day("2025-09-01"), "")
	if err != nil {
		t.Fatalf("ExcludeRange() error = %v", err)
	}
	if !r.Single() {
		t.Errorf("Single() = false, want true for a one day interval")
	}
	if !r.Matches(day("2025-09-01")) || r.Matches(day("2025-09-02")) {
		t.Errorf("Matches() does not cover exactly 2025-09-01")
	}
}

func TestExclusionList_ApplyAll(t *testing.T) {
	s := daily(aapl, map[string]Candle{
		"2025-09-01": flat(100, 10),
		"2025-09-02": flat(101, 10),
	})
	rules := ExclusionList{must(ExcludeRange(day("2025-09-01"), day("2025-09-02"), ""))}

	f := rules.Apply(s)

	if got := f.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if got := len(f.Gaps()); got != 2 {
		t.Errorf("len(Gaps()) = %d, want 2", got)
	}
}
