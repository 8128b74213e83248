package renderer

import (
	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/store"
)

// AssetList renders the tracked assets as a markdown table.
func AssetList(assets []*store.Asset) string {
	b := &builder{}
	b.Printf("# Tracked Assets\n\n")
	if len(assets) == 0 {
		b.Printf("No tracked asset. Use `infinity add` to track one.\n")
		return b.String()
	}
	b.row("Symbol", "Class", "Name", "Latest", "Day", "Range", "Last Pull")
	b.sep(7)
	for _, a := range assets {
		span := "-"
		if a.Series != nil {
			if r, ok := a.Series.Span(); ok {
				span = r.From.String() + " to " + r.To.String()
			}
		}
		latest, change := "-", "-"
		if price := a.LatestPrice(); !price.IsZero() {
			latest = price.String()
			if prev := a.PreviousPrice(); !prev.IsZero() {
				change = infinity.Change(prev, price).SignedString()
			}
		}
		pull := "-"
		if !a.LastPull.IsZero() {
			pull = a.LastPull.String()
		}
		b.row(a.ID.Symbol, a.ID.Class.String(), a.Name, latest, change, span, pull)
	}
	return b.String()
}

// AssetSummary renders one tracked asset's metadata and series shape.
func AssetSummary(a *store.Asset) string {
	b := &builder{}
	b.Printf("# %s\n\n", a.ID)
	if a.Name != "" {
		b.Printf("- Name: %s\n", a.Name)
	}
	if a.Exchange != "" {
		b.Printf("- Exchange: %s\n", a.Exchange)
	}
	if a.Currency != "" {
		b.Printf("- Currency: %s\n", a.Currency)
	}
	if !a.IPODate.IsZero() {
		b.Printf("- IPO: %s\n", a.IPODate)
	}
	if !a.LastPull.IsZero() {
		b.Printf("- Last pull: %s\n", a.LastPull)
	}
	if price := a.LatestPrice(); !price.IsZero() {
		b.Printf("- Latest close: %s\n", price)
		if prev := a.PreviousPrice(); !prev.IsZero() {
			b.Printf("- Day change: %s (%s)\n", price.Sub(prev).SignedString(), infinity.Change(prev, price).SignedString())
		}
	}
	if a.Series != nil {
		if r, ok := a.Series.Span(); ok {
			b.Printf("- History: %d daily bars from %s to %s\n", a.Series.Len(), r.From, r.To)
		}
	}
	return b.String()
}

// SearchResults renders provider symbol-search hits.
func SearchResults(results []store.SearchResult) string {
	b := &builder{}
	if len(results) == 0 {
		b.Printf("No match.\n")
		return b.String()
	}
	b.row("Symbol", "Name", "Exchange", "Type")
	b.sep(4)
	for _, r := range results {
		b.row(r.Symbol, r.Name, r.Exchange, r.Type)
	}
	return b.String()
}
