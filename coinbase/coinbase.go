// Package coinbase fetches historical crypto candles from the public
// Coinbase Exchange API.
package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
	"github.com/Triton1605/Infinity/store"
)

const (
	defaultBaseURL = "https://api.exchange.coinbase.com"
	// granularity of one day, the only one this provider asks for.
	dailyGranularity = 86400
	// maxCandles is the per-request limit of the candles endpoint.
	maxCandles = 300
)

func init() {
	store.Register("coinbase", func(o store.BuildOptions) (store.Provider, error) {
		return New(WithUserAgent(o.UserAgent)), nil
	})
}

// Provider fetches daily candles from Coinbase Exchange. Crypto only.
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
		userAgent: "infinity/1.0",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return "coinbase" }

func (p *Provider) Supports(class infinity.AssetClass) bool { return class == infinity.Crypto }

// product maps a crypto symbol to a Coinbase product id: "BTC" becomes
// "BTC-USD", an explicit pair passes through.
func product(id infinity.AssetID) string {
	if strings.Contains(id.Symbol, "-") {
		return id.Symbol
	}
	return id.Symbol + "-USD"
}

// Fetch returns the daily series of the asset over the given range,
// paginating the endpoint's 300-candle limit window by window.
func (p *Provider) Fetch(ctx context.Context, id infinity.AssetID, r date.Range) (*infinity.RawSeries, error) {
	if !p.Supports(id.Class) {
		return nil, fmt.Errorf("coinbase only serves crypto, not %s", id.Class)
	}
	series := infinity.NewRawSeries(id, infinity.DailyResolution)

	for from := r.From; !from.After(r.To); from = from.Add(maxCandles) {
		to := from.Add(maxCandles - 1)
		if to.After(r.To) {
			to = r.To
		}
		rows, err := p.candles(ctx, product(id), from, to)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			// A row is [time, low, high, open, close, volume].
			if len(row) < 6 {
				continue
			}
			on := date.FromUnix(int64(row[0]))
			if !r.Contains(on) {
				continue
			}
			c := infinity.Candle{
				Open:   decimal.NewFromFloat(row[3]),
				High:   decimal.NewFromFloat(row[2]),
				Low:    decimal.NewFromFloat(row[1]),
				Close:  decimal.NewFromFloat(row[4]),
				Volume: decimal.NewFromFloat(row[5]),
			}
			if err := series.Append(on, c); err != nil {
				continue
			}
		}
	}
	return series, nil
}

// candles queries one window of the candles endpoint.
func (p *Provider) candles(ctx context.Context, product string, from, to date.Date) ([][]float64, error) {
	q := url.Values{}
	q.Set("granularity", fmt.Sprint(dailyGranularity))
	q.Set("start", from.Format(time.RFC3339))
	q.Set("end", to.Format(time.RFC3339))
	addr := fmt.Sprintf("%s/products/%s/candles?%s", p.baseURL, url.PathEscape(product), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	var rows [][]float64
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("not a correct candles response: %w", err)
	}
	return rows, nil
}
