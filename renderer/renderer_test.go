package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
	"github.com/Triton1605/Infinity/store"
)

var (
	aapl = infinity.NewAssetID("AAPL", infinity.Equity)
	btc  = infinity.NewAssetID("BTC-USD", infinity.Crypto)
)

// mapSource serves in-memory series; unknown assets fail like a provider
// would.
type mapSource map[infinity.AssetID]*infinity.RawSeries

func (m mapSource) Get(_ context.Context, id infinity.AssetID, r date.Range) (*infinity.RawSeries, error) {
	s, ok := m[id]
	if !ok {
		return nil, &infinity.FetchError{ID: id, Err: context.DeadlineExceeded}
	}
	return s.Between(r), nil
}

func testDataset(t *testing.T) *infinity.MultiSeriesDataset {
	t.Helper()
	equity := infinity.NewRawSeries(aapl, infinity.DailyResolution)
	for _, on := range []string{"2025-03-03", "2025-03-04", "2025-03-05"} {
		if err := equity.Append(date.MustParse(on), infinity.C(100, 101, 99, 100.5, 10)); err != nil {
			t.Fatal(err)
		}
	}
	crypto := infinity.NewRawSeries(btc, infinity.DailyResolution)
	for _, on := range []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06"} {
		if err := crypto.Append(date.MustParse(on), infinity.C(50000, 51000, 49000, 50500, 2)); err != nil {
			t.Fatal(err)
		}
	}

	spec := infinity.NewChartSpec("test").
		WithAsset(infinity.NewAssetSpec(aapl), infinity.NewAssetSpec(btc))
	a := infinity.NewAssembler(mapSource{aapl: equity, btc: crypto})
	d, err := a.Assemble(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDatasetMarksAbsenceNotZero(t *testing.T) {
	out := Dataset("test", testDataset(t))

	if !strings.Contains(out, "2025-03-06") {
		t.Fatalf("missing axis date in output:\n%s", out)
	}
	// AAPL has no bar on 2025-03-06: the cell must be the absence dot.
	var lastRow string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "2025-03-06") {
			lastRow = line
		}
	}
	if !strings.Contains(lastRow, absent) {
		t.Errorf("absent value must render as %q, got row %q", absent, lastRow)
	}
	if strings.Contains(lastRow, "0.00") {
		t.Errorf("absent value must not render as zero, got row %q", lastRow)
	}
}

func TestDatasetRendersFailures(t *testing.T) {
	spec := infinity.NewChartSpec("test").
		WithAsset(infinity.NewAssetSpec(aapl))
	a := infinity.NewAssembler(mapSource{})
	d, err := a.Assemble(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}

	out := Dataset("test", d)
	if !strings.Contains(out, "AAPL.equity unavailable") {
		t.Errorf("fetch failure must be reported, got:\n%s", out)
	}
	if !strings.Contains(out, "No data in the requested time range.") {
		t.Errorf("empty dataset must say so, got:\n%s", out)
	}
}

func TestAssetList(t *testing.T) {
	series := infinity.NewRawSeries(aapl, infinity.DailyResolution)
	if err := series.Append(date.MustParse("2025-03-03"), infinity.C(99, 101, 98, 100, 10)); err != nil {
		t.Fatal(err)
	}
	if err := series.Append(date.MustParse("2025-03-04"), infinity.C(100, 101, 99, 100.5, 10)); err != nil {
		t.Fatal(err)
	}
	assets := []*store.Asset{{
		ID:       aapl,
		Name:     "Apple Inc.",
		Currency: "USD",
		Series:   series,
	}}

	out := AssetList(assets)
	for _, want := range []string{"AAPL", "Apple Inc.", "$100.50", "+0.50%", "2025-03-03"} {
		if !strings.Contains(out, want) {
			t.Errorf("asset list missing %q:\n%s", want, out)
		}
	}
}

func TestAssetSummaryDayChange(t *testing.T) {
	series := infinity.NewRawSeries(aapl, infinity.DailyResolution)
	if err := series.Append(date.MustParse("2025-03-03"), infinity.C(99, 101, 98, 100, 10)); err != nil {
		t.Fatal(err)
	}
	if err := series.Append(date.MustParse("2025-03-04"), infinity.C(100, 102, 99, 102, 10)); err != nil {
		t.Fatal(err)
	}
	a := &store.Asset{ID: aapl, Name: "Apple Inc.", Currency: "USD", Series: series}

	out := AssetSummary(a)
	for _, want := range []string{"+$2.00", "+2.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("asset summary missing %q:\n%s", want, out)
		}
	}

	// A one-bar series has no day change to report.
	series = infinity.NewRawSeries(aapl, infinity.DailyResolution)
	if err := series.Append(date.MustParse("2025-03-03"), infinity.C(99, 101, 98, 100, 10)); err != nil {
		t.Fatal(err)
	}
	a.Series = series
	if strings.Contains(AssetSummary(a), "Day change") {
		t.Error("asset summary reports a day change for a single bar")
	}
}

func TestProjectRendersSpecs(t *testing.T) {
	p := infinity.NewProject("demo")
	rule := infinity.ExcludeDate(date.MustParse("2025-03-04"), "outlier")
	spec := infinity.NewChartSpec("tech").
		WithType(infinity.Candlestick).
		WithAsset(infinity.NewAssetSpec(aapl).WithExclusion(rule))
	p.AddSpec(spec)

	out := Project(p)
	for _, want := range []string{"demo", "tech", "candlestick", "AAPL.equity", "2025-03-04 (outlier)"} {
		if !strings.Contains(out, want) {
			t.Errorf("project rendering missing %q:\n%s", want, out)
		}
	}
}
