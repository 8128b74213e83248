package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// ExportCSV writes the asset's series as CSV with a header row, one bar per
// line, dates in the 2006-01-02 form.
func ExportCSV(w io.Writer, a *Asset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "open", "high", "low", "close", "volume"}); err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	if a.Series != nil {
		for on, c := range a.Series.Candles() {
			record := []string{
				on.String(),
				c.Open.String(),
				c.High.String(),
				c.Low.String(),
				c.Close.String(),
				c.Volume.String(),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("export error: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes the asset in the same document format it is tracked in.
func ExportJSON(w io.Writer, a *Asset) error {
	ja := jasset{
		Symbol:      a.ID.Symbol,
		AssetType:   a.ID.Class.String(),
		CompanyName: a.Name,
		Currency:    a.Currency,
		Exchange:    a.Exchange,
	}
	if !a.LastPull.IsZero() {
		ja.LastDataPull = a.LastPull.String()
	}
	if a.Series != nil {
		if span, ok := a.Series.Span(); ok {
			ja.DateRange = &jdateRange{Start: span.From.String(), End: span.To.String()}
		}
		for on, c := range a.Series.Candles() {
			open, high, low, cl, vol := c.Open, c.High, c.Low, c.Close, c.Volume
			ja.Historical = append(ja.Historical, jbar{
				Date: on, Open: &open, High: &high, Low: &low, Close: &cl, Volume: &vol,
			})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&ja); err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	return nil
}
