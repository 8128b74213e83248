// Package yahoo fetches historical market data from the Yahoo Finance chart
// API. It serves every asset class and is the default provider.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
	"github.com/Triton1605/Infinity/store"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

func init() {
	store.Register("yahoo", func(o store.BuildOptions) (store.Provider, error) {
		opts := []Option{WithUserAgent(o.UserAgent)}
		if o.CacheDir != "" {
			opts = append(opts, WithClient(cachingClient(o.CacheDir)))
		}
		return New(opts...), nil
	})
}

// Provider fetches series from the Yahoo Finance v8 chart endpoint.
type Provider struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option customises the provider.
type Option func(*Provider)

// WithClient injects a custom HTTP client.
func WithClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(base string) Option {
	return func(p *Provider) {
		if base != "" {
			p.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header sent on requests.
func WithUserAgent(ua string) Option {
	return func(p *Provider) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// New constructs a default provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		client:    http.DefaultClient,
		baseURL:   defaultBaseURL,
		userAgent: "Mozilla/5.0",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return "yahoo" }

// Supports reports true for every class: Yahoo quotes equities, crypto
// pairs, commodity futures and treasury indexes alike.
func (p *Provider) Supports(infinity.AssetClass) bool { return true }

// symbol maps an asset identifier to the Yahoo ticker. Crypto symbols
// without a quote currency get "-USD" appended; everything else passes
// through ("GC=F", "^TNX", "BRK-B" are already Yahoo spellings).
func symbol(id infinity.AssetID) string {
	if id.Class == infinity.Crypto && !strings.Contains(id.Symbol, "-") {
		return id.Symbol + "-USD"
	}
	return id.Symbol
}

// Fetch returns the daily series of the asset over the given range.
func (p *Provider) Fetch(ctx context.Context, id infinity.AssetID, r date.Range) (*infinity.RawSeries, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		p.baseURL, url.PathEscape(symbol(id)), r.From.Unix(), r.To.Add(1).Unix())

	var jobj any
	if err := p.jwget(ctx, addr, &jobj); err != nil {
		return nil, err
	}
	if desc, err := jsonpath.Get("$.chart.error.description", jobj); err == nil && desc != nil {
		return nil, fmt.Errorf("yahoo: %v", desc)
	}

	timestamps, err := jsonList(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, fmt.Errorf("yahoo: no data for %q: %w", symbol(id), err)
	}
	quote := "$.chart.result[0].indicators.quote[0]."
	opens, err := jsonList(jobj, quote+"open")
	if err != nil {
		return nil, err
	}
	highs, err := jsonList(jobj, quote+"high")
	if err != nil {
		return nil, err
	}
	lows, err := jsonList(jobj, quote+"low")
	if err != nil {
		return nil, err
	}
	closes, err := jsonList(jobj, quote+"close")
	if err != nil {
		return nil, err
	}
	volumes, err := jsonList(jobj, quote+"volume")
	if err != nil {
		return nil, err
	}

	series := infinity.NewRawSeries(id, infinity.DailyResolution)
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			continue
		}
		open, okO := asFloat(opens, i)
		high, okH := asFloat(highs, i)
		low, okL := asFloat(lows, i)
		cl, okC := asFloat(closes, i)
		if !okO || !okH || !okL || !okC {
			// Null bar: the exchange was closed or Yahoo has a hole. Absent
			// data stays absent.
			continue
		}
		c := infinity.Candle{
			Open:  decimal.NewFromFloat(open),
			High:  decimal.NewFromFloat(high),
			Low:   decimal.NewFromFloat(low),
			Close: decimal.NewFromFloat(cl),
		}
		if vol, ok := asFloat(volumes, i); ok {
			c.Volume = decimal.NewFromFloat(vol)
		}
		if err := series.Append(date.FromUnix(int64(ts)), c); err != nil {
			// Yahoo occasionally serves a bar that breaks the OHLC
			// invariant. Skip it, the rest of the series is fine.
			continue
		}
	}
	return series, nil
}

// jsonList extracts a JSON array at the given path.
func jsonList(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: not a list but %T", path, jval)
	}
	return jlist, nil
}

// asFloat returns the i-th element of the list as a float, false when the
// element is null or missing.
func asFloat(list []any, i int) (float64, bool) {
	if i >= len(list) {
		return 0, false
	}
	v, ok := list[i].(float64)
	return v, ok
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (p *Provider) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("not a correct json response: %w", err)
	}
	return nil
}
