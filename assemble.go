package infinity

import (
	"context"
	"slices"
	"time"

	"github.com/Triton1605/Infinity/date"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// SeriesSource is the read boundary of the asset series store. The assembler
// never bypasses it and never performs I/O itself. Implementations must be
// safe for concurrent use.
type SeriesSource interface {
	// Get returns the raw series of the given asset over the given range,
	// or a FetchError when the asset cannot be resolved.
	Get(ctx context.Context, id AssetID, r date.Range) (*RawSeries, error)
}

// Assembler turns chart specs into chart-ready datasets, resolving series
// from an injected source.
type Assembler struct {
	source SeriesSource
}

// NewAssembler returns an assembler reading series from the given source.
func NewAssembler(source SeriesSource) *Assembler { return &Assembler{source: source} }

// earliestFetch is the lower bound of the range requested from the source.
// Relative time ranges are anchored on the latest data date, so the assembler
// always asks for the full available history and clips afterwards.
var earliestFetch = date.New(1900, time.January, 1)

// Assemble resolves, filters, resamples and aligns every asset of the spec
// into one dataset.
//
// Each asset goes through its exclusion rules first and the resampler second,
// so an excluded native point never contributes to an aggregated bucket. The
// shared axis is the union of the timestamps of all assets, clipped to the
// spec's time range. An asset with no point at an axis position stays
// explicitly absent there.
//
// A malformed spec or a resolution finer than an asset's native granularity
// fails the whole assembly with a ConfigurationError. An asset whose series
// cannot be fetched is dropped from the dataset and recorded as a failure
// instead, so one bad symbol does not block a multi asset chart. When no
// point falls within the requested time range the dataset is empty and
// carries the ResultNoDataInRange code.
func (a *Assembler) Assemble(ctx context.Context, spec ChartSpec) (*MultiSeriesDataset, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	out := &MultiSeriesDataset{resolution: spec.Resolution()}
	fetch := date.Range{From: earliestFetch, To: date.Today()}

	type resolved struct {
		asset  AssetSpec
		series *FilteredSeries
	}
	var all []resolved
	for _, asset := range spec.Assets() {
		raw, err := a.source.Get(ctx, asset.ID(), fetch)
		if err != nil {
			out.failures = append(out.failures, AssetFailure{ID: asset.ID(), Err: err})
			continue
		}
		filtered := asset.Exclusions().Apply(raw)
		if !spec.IncludeWeekends() {
			filtered = filtered.Weekdays()
		}
		resampled, err := Resample(filtered, spec.Resolution())
		if err != nil {
			return nil, err
		}
		all = append(all, resolved{asset: asset, series: resampled})
	}

	dates := make([][]date.Date, 0, len(all))
	for _, r := range all {
		dates = append(dates, r.series.Dates())
	}
	axis := slices.Collect(date.MergeDates(dates...))
	if len(axis) == 0 {
		out.code = ResultNoDataInRange
		return out, nil
	}

	// Relative ranges resolve against the data, not the wall clock, so a
	// saved project renders the same window until its series are updated.
	full := date.Range{From: axis[0], To: axis[len(axis)-1]}
	window := spec.TimeRange().Resolve(full.To, full)
	axis = slices.DeleteFunc(axis, func(d date.Date) bool { return !window.Contains(d) })
	if len(axis) == 0 {
		out.code = ResultNoDataInRange
		return out, nil
	}

	out.axis = axis
	visible := date.Range{From: axis[0], To: axis[len(axis)-1]}
	out.quarters = QuarterStarts(visible)
	for _, r := range all {
		out.columns = append(out.columns, buildColumn(r.asset, spec, r.series, axis, visible))
	}
	return out, nil
}

// buildColumn places one asset's values on the shared axis. Which value
// slices get populated depends on the chart type, and in percent mode price
// values are rebased on the first visible close.
func buildColumn(asset AssetSpec, spec ChartSpec, f *FilteredSeries, axis []date.Date, visible date.Range) Column {
	col := Column{
		id:        asset.ID(),
		label:     asset.Label(),
		color:     asset.Color(),
		chartType: spec.Type(),
		percent:   spec.Percent(),
	}
	n := len(axis)
	col.close = make([]null.Float, n)
	switch spec.Type() {
	case Bar:
		col.volume = make([]null.Float, n)
	case Candlestick:
		col.open = make([]null.Float, n)
		col.high = make([]null.Float, n)
		col.low = make([]null.Float, n)
		col.volume = make([]null.Float, n)
	}

	var base decimal.Decimal
	if col.percent {
		for _, d := range axis {
			if c, ok := f.Get(d); ok {
				base = c.Close
				break
			}
		}
	}
	rebase := col.percent && !base.IsZero()
	price := func(v decimal.Decimal) null.Float {
		if col.percent {
			if !rebase {
				return null.Float{}
			}
			v = v.Div(base).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
		}
		return null.FloatFrom(v.InexactFloat64())
	}

	for i, d := range axis {
		c, ok := f.Get(d)
		if !ok {
			continue
		}
		col.close[i] = price(c.Close)
		if col.open != nil {
			col.open[i] = price(c.Open)
			col.high[i] = price(c.High)
			col.low[i] = price(c.Low)
		}
		if col.volume != nil {
			col.volume[i] = null.FloatFrom(c.Volume.InexactFloat64())
		}
	}

	for _, g := range f.Gaps() {
		if visible.Contains(g) {
			col.gaps = append(col.gaps, g)
		}
	}
	return col
}
