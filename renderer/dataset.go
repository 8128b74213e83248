package renderer

import (
	"fmt"

	"github.com/guregu/null/v6"

	"github.com/Triton1605/Infinity"
)

// absent marks an axis position where an asset has no value. It is a middle
// dot, not a zero, so a flat line is never faked.
const absent = "·"

// Dataset renders an assembled dataset as a markdown table, one row per axis
// position. The chart type picks the column set: a line chart shows closes,
// a bar chart closes and volumes, a candlestick chart the full OHLC.
// Per-asset fetch failures and exclusion gaps are listed after the table.
func Dataset(title string, d *infinity.MultiSeriesDataset) string {
	b := &builder{}
	b.Printf("# %s\n\n", title)
	b.Printf("Resolution: %s\n\n", d.Resolution())

	if d.Code() == infinity.ResultNoDataInRange {
		b.Printf("No data in the requested time range.\n")
		renderFailures(b, d.Failures())
		return b.String()
	}

	cols := d.Columns()
	views := make([]columnView, 0, len(cols))
	header := []string{"Date"}
	for _, c := range cols {
		v := newColumnView(c)
		views = append(views, v)
		header = append(header, v.headers()...)
	}
	b.row(header...)
	b.sep(len(header))

	marks := make(map[string]bool)
	for _, q := range d.Quarters() {
		marks[q.String()] = true
	}
	for i, on := range d.Axis() {
		label := on.String()
		if marks[label] {
			label = label + " " + infinity.QuarterLabel(on)
		}
		cells := []string{label}
		for _, v := range views {
			cells = append(cells, v.cells(i)...)
		}
		b.row(cells...)
	}

	for _, c := range cols {
		if gaps := c.Gaps(); len(gaps) > 0 {
			b.Printf("\n%s excluded:", c.Label())
			for _, g := range gaps {
				b.Printf(" %s", g)
			}
			b.Printf("\n")
		}
	}
	renderFailures(b, d.Failures())
	return b.String()
}

func renderFailures(b *builder, failures []infinity.AssetFailure) {
	for _, f := range failures {
		b.Printf("\n**%s unavailable**: %v\n", f.ID, f.Err)
	}
}

// columnView snapshots one column's value slices once, instead of copying
// them per rendered row.
type columnView struct {
	label   string
	typ     infinity.ChartType
	percent bool

	open, high, low, close, volume []null.Float
}

func newColumnView(c infinity.Column) columnView {
	return columnView{
		label:   c.Label(),
		typ:     c.Type(),
		percent: c.Percent(),
		open:    c.Open(),
		high:    c.High(),
		low:     c.Low(),
		close:   c.Close(),
		volume:  c.Volume(),
	}
}

// headers returns the table headers contributed by the column.
func (v columnView) headers() []string {
	switch v.typ {
	case infinity.Candlestick:
		return []string{v.label + " O", v.label + " H", v.label + " L", v.label + " C", v.label + " Vol"}
	case infinity.Bar:
		return []string{v.label, v.label + " Vol"}
	default:
		return []string{v.label}
	}
}

// cells returns the column's cells at axis position i.
func (v columnView) cells(i int) []string {
	switch v.typ {
	case infinity.Candlestick:
		return []string{
			v.price(v.open[i]), v.price(v.high[i]), v.price(v.low[i]), v.price(v.close[i]),
			formatVolume(v.volume[i]),
		}
	case infinity.Bar:
		return []string{v.price(v.close[i]), formatVolume(v.volume[i])}
	default:
		return []string{v.price(v.close[i])}
	}
}

func (v columnView) price(f null.Float) string {
	if !f.Valid {
		return absent
	}
	if v.percent {
		return fmt.Sprintf("%+.2f%%", f.Float64)
	}
	return fmt.Sprintf("%.2f", f.Float64)
}

func formatVolume(f null.Float) string {
	if !f.Valid {
		return absent
	}
	return fmt.Sprintf("%.0f", f.Float64)
}
