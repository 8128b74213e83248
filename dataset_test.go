package infinity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMultiSeriesDataset_MarshalJSON(t *testing.T) {
	src := &stubSource{series: map[AssetID]*RawSeries{aapl: daily(aapl, map[string]Candle{
		"2025-09-01": flat(100, 10),
		"2025-09-02": flat(101, 10),
	})}}
	spec := NewChartSpec("tiny").WithAsset(NewAssetSpec(aapl))

	ds, err := NewAssembler(src).Assemble(context.Background(), spec)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	got, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"code":"ok","resolution":"daily","axis":["2025-09-01","2025-09-02"],` +
		`"columns":[{"asset":"AAPL.equity","label":"AAPL","type":"line","close":[100,101]}]}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestMultiSeriesDataset_MarshalAbsentAsNull(t *testing.T) {
	spec := NewChartSpec("mixed").
		WithAsset(NewAssetSpec(aapl), NewAssetSpec(btc))

	ds, err := NewAssembler(equityAndCrypto()).Assemble(context.Background(), spec)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	got, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	// The last two axis days have no equity value: null, never 0.
	if want := `"close":[100,101,102,103,104,null,null]`; !strings.Contains(string(got), want) {
		t.Errorf("Marshal() = %s, want it to contain %s", got, want)
	}
}

func TestMultiSeriesDataset_MarshalFailures(t *testing.T) {
	src := equityAndCrypto()
	src.errs = map[AssetID]error{btc: &FetchError{ID: btc, Err: errors.New("provider down")}}
	spec := NewChartSpec("partial").
		WithAsset(NewAssetSpec(aapl), NewAssetSpec(btc))

	ds, err := NewAssembler(src).Assemble(context.Background(), spec)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	got, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if want := `"failures":[{"asset":"BTC-USD.crypto","error":"fetch BTC-USD.crypto: provider down"}]`; !strings.Contains(string(got), want) {
		t.Errorf("Marshal() = %s, want it to contain %s", got, want)
	}
}

func TestMultiSeriesDataset_AccessorsCopy(t *testing.T) {
	spec := NewChartSpec("copies").WithAsset(NewAssetSpec(aapl))

	ds, err := NewAssembler(equityAndCrypto()).Assemble(context.Background(), spec)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	axis := ds.Axis()
	axis[0] = day("1999-01-01")
	if ds.Axis()[0] == day("1999-01-01") {
		t.Error("Axis() shares its backing array with the dataset")
	}

	col, _ := ds.Column(aapl)
	closes := col.Close()
	closes[0].Valid = false
	if fresh := col.Close(); !fresh[0].Valid {
		t.Error("Close() shares its backing array with the column")
	}
}
