package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/store"
)

// Search looks up symbols via the Yahoo Finance search endpoint.
func (p *Provider) Search(ctx context.Context, query string) ([]store.SearchResult, error) {
	addr := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0", p.baseURL, url.QueryEscape(query))

	var payload struct {
		Quotes []struct {
			Symbol    string `json:"symbol"`
			ShortName string `json:"shortname"`
			LongName  string `json:"longname"`
			Exchange  string `json:"exchange"`
			QuoteType string `json:"quoteType"`
		} `json:"quotes"`
	}
	if err := p.jwget(ctx, addr, &payload); err != nil {
		return nil, err
	}

	results := make([]store.SearchResult, 0, len(payload.Quotes))
	for _, q := range payload.Quotes {
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		results = append(results, store.SearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
	}
	return results, nil
}

// Describe returns the asset metadata from the chart endpoint's meta block.
func (p *Provider) Describe(ctx context.Context, id infinity.AssetID) (store.Description, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", p.baseURL, url.PathEscape(symbol(id)))
	var payload struct {
		Chart struct {
			Result []struct {
				Meta struct {
					Currency     string `json:"currency"`
					ExchangeName string `json:"exchangeName"`
					ShortName    string `json:"shortName"`
					LongName     string `json:"longName"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := p.jwget(ctx, addr, &payload); err != nil {
		return store.Description{}, err
	}
	if len(payload.Chart.Result) == 0 {
		return store.Description{}, fmt.Errorf("yahoo: no metadata for %q", symbol(id))
	}
	meta := payload.Chart.Result[0].Meta
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	return store.Description{Name: name, Currency: meta.Currency, Exchange: meta.ExchangeName}, nil
}
