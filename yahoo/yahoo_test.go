package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
)

// chartPayload mimics the v8 chart response for 4 days where the second bar
// is null (market holiday).
const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {"currency": "USD", "exchangeName": "NMS", "shortName": "Apple Inc."},
      "timestamp": [1740988800, 1741075200, 1741161600, 1741248000],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 102.0, 103.0],
          "high":   [101.5, null, 103.5, 104.0],
          "low":    [ 99.0, null, 101.0, 102.5],
          "close":  [101.0, null, 103.0, 103.5],
          "volume": [ 1000, null,  1200, null]
        }]
      }
    }],
    "error": null
  }
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL), WithClient(srv.Client()))
}

func TestFetchSkipsNullBars(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(chartPayload))
	})

	id := infinity.NewAssetID("AAPL", infinity.Equity)
	r := date.Range{From: date.MustParse("2025-03-03"), To: date.MustParse("2025-03-06")}
	series, err := p.Fetch(context.Background(), id, r)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if got, want := series.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d (null bar must be skipped)", got, want)
	}
	if _, ok := series.Get(date.MustParse("2025-03-04")); ok {
		t.Errorf("the null bar on 2025-03-04 must be absent")
	}
	c, ok := series.Get(date.MustParse("2025-03-06"))
	if !ok {
		t.Fatalf("missing bar on 2025-03-06")
	}
	if !c.Volume.IsZero() {
		t.Errorf("null volume should load as zero, got %s", c.Volume)
	}
}

func TestFetchReportsAPIError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})

	id := infinity.NewAssetID("NOPE", infinity.Equity)
	r := date.Range{From: date.MustParse("2025-03-03"), To: date.MustParse("2025-03-06")}
	if _, err := p.Fetch(context.Background(), id, r); err == nil {
		t.Fatal("Fetch() should fail on an API error payload")
	}
}

func TestCryptoSymbolMapping(t *testing.T) {
	tests := []struct {
		id   infinity.AssetID
		want string
	}{
		{infinity.NewAssetID("BTC", infinity.Crypto), "BTC-USD"},
		{infinity.NewAssetID("BTC-EUR", infinity.Crypto), "BTC-EUR"},
		{infinity.NewAssetID("GC=F", infinity.Commodity), "GC=F"},
		{infinity.NewAssetID("^TNX", infinity.Bond), "^TNX"},
		{infinity.NewAssetID("AAPL", infinity.Equity), "AAPL"},
	}
	for _, tc := range tests {
		t.Run(tc.id.String(), func(t *testing.T) {
			if got := symbol(tc.id); got != tc.want {
				t.Errorf("symbol(%s) = %q, want %q", tc.id, got, tc.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "apple" {
			t.Errorf("unexpected query %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`{"quotes":[{"symbol":"AAPL","shortname":"Apple Inc.","exchange":"NMS","quoteType":"EQUITY"}]}`))
	})

	results, err := p.Search(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 || results[0].Symbol != "AAPL" || results[0].Name != "Apple Inc." {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestDescribe(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartPayload))
	})

	desc, err := p.Describe(context.Background(), infinity.NewAssetID("AAPL", infinity.Equity))
	if err != nil {
		t.Fatalf("Describe() error: %v", err)
	}
	if desc.Currency != "USD" || desc.Name != "Apple Inc." {
		t.Fatalf("unexpected description: %+v", desc)
	}
}
