package infinity

import (
	"slices"

	"github.com/Triton1605/Infinity/date"
	"github.com/guregu/null/v6"
)

// ResultCode qualifies an assembled dataset. An empty chart is a normal
// outcome, not an error.
type ResultCode int

const (
	// ResultOK means the dataset holds at least one data point.
	ResultOK ResultCode = iota
	// ResultNoDataInRange means no asset had any point in the requested
	// time range. The dataset is empty but the assembly itself succeeded.
	ResultNoDataInRange
)

func (c ResultCode) String() string {
	switch c {
	case ResultOK:
		return "ok"
	case ResultNoDataInRange:
		return "no-data-in-range"
	}
	return "unknown"
}

// AssetFailure records an asset whose series could not be fetched. The rest
// of the chart is still assembled without it.
type AssetFailure struct {
	ID  AssetID
	Err error
}

// Column holds one asset's values aligned on the shared axis of a dataset.
// Axis positions where the asset has no point are invalid null.Floats, never
// zeroes. Which value slices are populated depends on the chart type: line
// fills close, bar fills close and volume, candlestick fills all five.
type Column struct {
	id        AssetID
	label     string
	color     string
	chartType ChartType
	percent   bool

	open, high, low, close, volume []null.Float

	gaps []date.Date
}

// ID returns the asset identifier of the column.
func (c Column) ID() AssetID { return c.id }

// Label returns the display label of the column.
func (c Column) Label() string { return c.label }

// Color returns the display color of the column, empty when the renderer
// should pick one.
func (c Column) Color() string { return c.color }

// Type returns the chart type the column was prepared for.
func (c Column) Type() ChartType { return c.chartType }

// Percent reports whether price values are percent changes from the first
// visible close instead of raw prices.
func (c Column) Percent() bool { return c.percent }

// Open returns a copy of the open values, one per axis position.
func (c Column) Open() []null.Float { return slices.Clone(c.open) }

// High returns a copy of the high values, one per axis position.
func (c Column) High() []null.Float { return slices.Clone(c.high) }

// Low returns a copy of the low values, one per axis position.
func (c Column) Low() []null.Float { return slices.Clone(c.low) }

// Close returns a copy of the close values, one per axis position.
func (c Column) Close() []null.Float { return slices.Clone(c.close) }

// Volume returns a copy of the volume values, one per axis position.
func (c Column) Volume() []null.Float { return slices.Clone(c.volume) }

// Gaps returns a copy of the dates removed from this asset by exclusion
// rules.
func (c Column) Gaps() []date.Date { return slices.Clone(c.gaps) }

// MultiSeriesDataset is the chart-ready result of assembling one chart spec:
// a shared time axis and one aligned column per successfully resolved asset.
// It is a value to render, not to mutate, so all accessors return copies.
type MultiSeriesDataset struct {
	code       ResultCode
	resolution Resolution
	axis       []date.Date
	quarters   []date.Date
	columns    []Column
	failures   []AssetFailure
}

// Code returns the outcome qualifier of the assembly.
func (d *MultiSeriesDataset) Code() ResultCode { return d.code }

// Resolution returns the resolution shared by all columns.
func (d *MultiSeriesDataset) Resolution() Resolution { return d.resolution }

// Len returns the number of axis positions.
func (d *MultiSeriesDataset) Len() int { return len(d.axis) }

// Axis returns a copy of the shared time axis, the sorted union of the
// timestamps of all columns.
func (d *MultiSeriesDataset) Axis() []date.Date { return slices.Clone(d.axis) }

// Quarters returns a copy of the quarter start dates within the axis span,
// for axis markers.
func (d *MultiSeriesDataset) Quarters() []date.Date { return slices.Clone(d.quarters) }

// Columns returns a copy of the per-asset columns, in chart spec order.
func (d *MultiSeriesDataset) Columns() []Column { return slices.Clone(d.columns) }

// Failures returns a copy of the per-asset fetch failures, in chart spec
// order.
func (d *MultiSeriesDataset) Failures() []AssetFailure { return slices.Clone(d.failures) }

// Column returns the column for the given asset, if present.
func (d *MultiSeriesDataset) Column(id AssetID) (Column, bool) {
	for _, c := range d.columns {
		if c.id == id {
			return c, true
		}
	}
	return Column{}, false
}

// MarshalJSON renders the dataset with a stable key order.
func (d *MultiSeriesDataset) MarshalJSON() ([]byte, error) {
	obj := &jsonObjectWriter{}
	obj.Append("code", d.code.String())
	obj.Append("resolution", d.resolution)
	obj.Append("axis", d.axis)
	obj.Optional("quarters", d.quarters)
	cols := make([]*jsonObjectWriter, 0, len(d.columns))
	for _, c := range d.columns {
		col := &jsonObjectWriter{}
		col.Append("asset", c.id.String())
		col.Append("label", c.label)
		col.Optional("color", c.color)
		col.Append("type", c.chartType)
		if c.percent {
			col.Append("percent", true)
		}
		col.Optional("open", c.open)
		col.Optional("high", c.high)
		col.Optional("low", c.low)
		col.Append("close", c.close)
		col.Optional("volume", c.volume)
		col.Optional("gaps", c.gaps)
		cols = append(cols, col)
	}
	obj.Append("columns", cols)
	if len(d.failures) > 0 {
		fails := make([]*jsonObjectWriter, 0, len(d.failures))
		for _, f := range d.failures {
			fail := &jsonObjectWriter{}
			fail.Append("asset", f.ID.String())
			fail.Append("error", f.Err.Error())
			fails = append(fails, fail)
		}
		obj.Append("failures", fails)
	}
	return obj.MarshalJSON()
}
