package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
)

func trackedAsset(t *testing.T) *Asset {
	t.Helper()
	series := infinity.NewRawSeries(aapl, infinity.DailyResolution)
	require.NoError(t, series.Append(date.MustParse("2025-03-03"), infinity.C(100, 102, 99, 101, 1200)))
	require.NoError(t, series.Append(date.MustParse("2025-03-04"), infinity.C(101, 103, 100, 102, 900)))
	return &Asset{
		ID:       aapl,
		Name:     "Apple Inc.",
		Currency: "USD",
		Exchange: "NASDAQ",
		LastPull: date.MustParse("2025-03-05"),
		Series:   series,
	}
}

func TestAssetRoundTrip(t *testing.T) {
	s := New(WithDir(t.TempDir()))
	want := trackedAsset(t)
	require.NoError(t, s.save(want))

	got, err := s.load(aapl)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Currency, got.Currency)
	assert.Equal(t, want.Exchange, got.Exchange)
	assert.Equal(t, want.LastPull, got.LastPull)
	require.Equal(t, want.Series.Len(), got.Series.Len())
	for on, c := range want.Series.Candles() {
		g, ok := got.Series.Get(on)
		require.True(t, ok, "missing bar on %s", on)
		assert.True(t, c.Equal(g), "bar on %s: want %s got %s", on, c, g)
	}
}

func TestLoadSkipsBarsWithMissingPrices(t *testing.T) {
	dir := t.TempDir()
	s := New(WithDir(dir))
	doc := `{
  "symbol": "AAPL",
  "asset_type": "equity",
  "historical_data": [
    {"date": "2025-03-03", "open": 100, "high": 102, "low": 99, "close": 101, "volume": 10},
    {"date": "2025-03-04", "open": null, "high": 103, "low": 100, "close": 102, "volume": 9},
    {"date": "2025-03-05", "open": 102, "high": 104, "low": 101, "close": 103}
  ]
}`
	file := filepath.Join(dir, "equity", "AAPL.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o644))

	a, err := s.load(aapl)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Series.Len(), "the bar with a null open must be skipped")
	_, ok := a.Series.Get(date.MustParse("2025-03-04"))
	assert.False(t, ok)
	// Missing volume is zero volume, not a skipped bar.
	c, ok := a.Series.Get(date.MustParse("2025-03-05"))
	require.True(t, ok)
	assert.True(t, c.Volume.IsZero())
}

func TestListSkipsCorruptedDocuments(t *testing.T) {
	dir := t.TempDir()
	s := New(WithDir(dir))
	require.NoError(t, s.save(trackedAsset(t)))

	bad := filepath.Join(dir, "equity", "BAD.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))

	assets, err := s.List()
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, aapl, assets[0].ID)
}

func TestUntrackRemovesDocument(t *testing.T) {
	s := New(WithDir(t.TempDir()))
	require.NoError(t, s.save(trackedAsset(t)))
	require.NoError(t, s.Untrack(aapl))
	_, err := s.load(aapl)
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, ExportCSV(&sb, trackedAsset(t)))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,open,high,low,close,volume", lines[0])
	assert.Equal(t, "2025-03-03,100,102,99,101,1200", lines[1])
}
