package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/date"
)

// This file contains code to persist tracked assets as one human-readable
// JSON document per asset, under <dir>/<class>/<SYMBOL>.json. The format is
// forward-readable: unknown properties are ignored, and a bar missing a
// price is skipped rather than invented.

// Asset is a tracked asset: its identity, the metadata learned from the
// provider, and the full fetched series.
type Asset struct {
	ID       infinity.AssetID
	Name     string
	Currency string
	Exchange string
	IPODate  date.Date
	LastPull date.Date
	Series   *infinity.RawSeries
}

// LatestPrice returns the most recent close in the asset's currency.
func (a *Asset) LatestPrice() infinity.Money {
	if a.Series == nil || a.Series.Len() == 0 {
		return infinity.Money{}
	}
	_, c := a.Series.Latest()
	return infinity.M(c.Close, a.Currency)
}

// PreviousPrice returns the close before the latest one, so listings can
// show the last day's move. Zero when the series has fewer than two bars.
func (a *Asset) PreviousPrice() infinity.Money {
	if a.Series == nil || a.Series.Len() < 2 {
		return infinity.Money{}
	}
	dates := a.Series.Dates()
	c, _ := a.Series.Get(dates[len(dates)-2])
	return infinity.M(c.Close, a.Currency)
}

// jbar is one historical bar as read from the file using the json parser.
// Prices are pointers so an absent field stays absent instead of zero.
type jbar struct {
	Date   date.Date        `json:"date"`
	Open   *decimal.Decimal `json:"open"`
	High   *decimal.Decimal `json:"high"`
	Low    *decimal.Decimal `json:"low"`
	Close  *decimal.Decimal `json:"close"`
	Volume *decimal.Decimal `json:"volume"`
}

type jdateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type jasset struct {
	Symbol       string           `json:"symbol"`
	AssetType    string           `json:"asset_type"`
	CompanyName  string           `json:"company_name,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	Exchange     string           `json:"exchange,omitempty"`
	IPODate      string           `json:"ipo_date,omitempty"`
	LastDataPull string           `json:"last_data_pull,omitempty"`
	LatestPrice  *decimal.Decimal `json:"latest_price,omitempty"`
	DateRange    *jdateRange      `json:"date_range,omitempty"`
	Historical   []jbar           `json:"historical_data"`
}

// path returns the document location of an asset.
func (s *Store) path(id infinity.AssetID) string {
	return filepath.Join(s.dir, id.Class.String(), id.Symbol+".json")
}

// save writes the asset document, creating the class directory if needed.
func (s *Store) save(a *Asset) error {
	ja := jasset{
		Symbol:      a.ID.Symbol,
		AssetType:   a.ID.Class.String(),
		CompanyName: a.Name,
		Currency:    a.Currency,
		Exchange:    a.Exchange,
	}
	if !a.IPODate.IsZero() {
		ja.IPODate = a.IPODate.String()
	}
	if !a.LastPull.IsZero() {
		ja.LastDataPull = a.LastPull.String()
	}
	if a.Series != nil {
		if span, ok := a.Series.Span(); ok {
			ja.DateRange = &jdateRange{Start: span.From.String(), End: span.To.String()}
		}
		if _, latest := a.Series.Latest(); a.Series.Len() > 0 {
			close := latest.Close
			ja.LatestPrice = &close
		}
		for on, c := range a.Series.Candles() {
			open, high, low, cl, vol := c.Open, c.High, c.Low, c.Close, c.Volume
			ja.Historical = append(ja.Historical, jbar{
				Date: on, Open: &open, High: &high, Low: &low, Close: &cl, Volume: &vol,
			})
		}
	}

	data, err := json.MarshalIndent(&ja, "", "  ")
	if err != nil {
		return fmt.Errorf("persist error: cannot marshal asset %s: %w", a.ID, err)
	}
	file := s.path(a.ID)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("persist error: cannot create %q: %w", filepath.Dir(file), err)
	}
	if err := os.WriteFile(file, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("persist error: cannot write %q: %w", file, err)
	}
	return nil
}

// load reads one asset document.
func (s *Store) load(id infinity.AssetID) (*Asset, error) {
	return s.loadFile(s.path(id), id.Class)
}

func (s *Store) loadFile(file string, class infinity.AssetClass) (*Asset, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var ja jasset
	if err := json.Unmarshal(data, &ja); err != nil {
		return nil, fmt.Errorf("parse error %s: not a correct asset document: %w", file, err)
	}
	if ja.Symbol == "" {
		return nil, fmt.Errorf("parse error %s: missing the property %q", file, "symbol")
	}
	if ja.AssetType != "" {
		if class, err = infinity.ParseAssetClass(ja.AssetType); err != nil {
			return nil, fmt.Errorf("parse error %s: %w", file, err)
		}
	}

	a := &Asset{
		ID:       infinity.NewAssetID(ja.Symbol, class),
		Name:     ja.CompanyName,
		Currency: ja.Currency,
		Exchange: ja.Exchange,
	}
	if ja.IPODate != "" {
		if a.IPODate, err = date.Parse(ja.IPODate); err != nil {
			return nil, fmt.Errorf("parse error %s: property %q must be a valid date: %w", file, "ipo_date", err)
		}
	}
	if ja.LastDataPull != "" {
		if a.LastPull, err = date.Parse(ja.LastDataPull); err != nil {
			return nil, fmt.Errorf("parse error %s: property %q must be a valid date: %w", file, "last_data_pull", err)
		}
	}

	a.Series = infinity.NewRawSeries(a.ID, infinity.DailyResolution)
	for _, jb := range ja.Historical {
		if jb.Date.IsZero() || jb.Open == nil || jb.High == nil || jb.Low == nil || jb.Close == nil {
			// A bar with a missing price is absent data, not zero data.
			continue
		}
		c := infinity.Candle{Open: *jb.Open, High: *jb.High, Low: *jb.Low, Close: *jb.Close}
		if jb.Volume != nil {
			c.Volume = *jb.Volume
		}
		if err := a.Series.Append(jb.Date, c); err != nil {
			return nil, fmt.Errorf("parse error %s: bar on %s: %w", file, jb.Date, err)
		}
	}
	return a, nil
}

// remove deletes one asset document.
func (s *Store) remove(id infinity.AssetID) error {
	if s.dir == "" {
		return fmt.Errorf("store has no data directory")
	}
	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("cannot remove %q: %w", s.path(id), err)
	}
	return nil
}

// List returns all tracked assets, sorted by identifier. A corrupted
// document is skipped with a warning so one bad file does not hide the rest.
func (s *Store) List() ([]*Asset, error) {
	if s.dir == "" {
		return nil, nil
	}
	var assets []*Asset
	for _, class := range infinity.AssetClasses() {
		files, err := filepath.Glob(filepath.Join(s.dir, class.String(), "*.json"))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			a, err := s.loadFile(file, class)
			if err != nil {
				log.Printf("warning: skipping %s: %v", file, err)
				continue
			}
			assets = append(assets, a)
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID.String() < assets[j].ID.String() })
	return assets, nil
}
