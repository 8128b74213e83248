package infinity

import (
	"iter"
	"slices"

	"github.com/Triton1605/Infinity/date"
)

// RawSeries is the as-fetched price series of one asset: strictly increasing
// unique dates, one candle per date, at the series' native resolution.
type RawSeries struct {
	id      AssetID
	native  Resolution
	candles date.History[Candle]
}

// NewRawSeries returns an empty series for the given asset at the given
// native resolution.
func NewRawSeries(id AssetID, native Resolution) *RawSeries {
	return &RawSeries{id: id, native: native}
}

// ID returns the asset identifier of the series.
func (s *RawSeries) ID() AssetID { return s.id }

// Native returns the native resolution of the series.
func (s *RawSeries) Native() Resolution { return s.native }

// Len returns the number of candles in the series.
func (s *RawSeries) Len() int { return s.candles.Len() }

// Append adds a candle at the given date, validating it first. An existing
// candle at that date is overwritten.
func (s *RawSeries) Append(on date.Date, c Candle) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.candles.Append(on, c)
	return nil
}

// Get returns the candle at the given date, if any.
func (s *RawSeries) Get(on date.Date) (Candle, bool) { return s.candles.Get(on) }

// Candles iterates over all date/candle pairs in chronological order.
func (s *RawSeries) Candles() iter.Seq2[date.Date, Candle] { return s.candles.Values() }

// Dates returns a copy of all candle dates in chronological order.
func (s *RawSeries) Dates() []date.Date { return s.candles.Dates() }

// Latest returns the most recent date and candle, or zero values when empty.
func (s *RawSeries) Latest() (date.Date, Candle) { return s.candles.Latest() }

// Span returns the range covered by the series, or false when empty.
func (s *RawSeries) Span() (date.Range, bool) { return s.candles.Span() }

// Between returns a view of the series restricted to the dates within r.
// The view shares its storage with s and must not be appended to.
func (s *RawSeries) Between(r date.Range) *RawSeries {
	return &RawSeries{id: s.id, native: s.native, candles: *s.candles.Between(r)}
}

// FilteredSeries is a series that went through the exclusion engine and
// possibly the resampler. It remembers which dates were removed by exclusion
// rules so the rendering layer never draws a continuous stroke across them.
type FilteredSeries struct {
	id         AssetID
	resolution Resolution
	candles    date.History[Candle]
	gaps       []date.Date
}

// ID returns the asset identifier of the series.
func (f *FilteredSeries) ID() AssetID { return f.id }

// Resolution returns the granularity of the remaining points.
func (f *FilteredSeries) Resolution() Resolution { return f.resolution }

// Len returns the number of remaining candles.
func (f *FilteredSeries) Len() int { return f.candles.Len() }

// Get returns the candle at the given date, if any.
func (f *FilteredSeries) Get(on date.Date) (Candle, bool) { return f.candles.Get(on) }

// Candles iterates over all date/candle pairs in chronological order.
func (f *FilteredSeries) Candles() iter.Seq2[date.Date, Candle] { return f.candles.Values() }

// Dates returns a copy of all candle dates in chronological order.
func (f *FilteredSeries) Dates() []date.Date { return f.candles.Dates() }

// First returns the earliest date and candle, or zero values when empty.
func (f *FilteredSeries) First() (date.Date, Candle) { return f.candles.First() }

// Span returns the range covered by the series, or false when empty.
func (f *FilteredSeries) Span() (date.Range, bool) { return f.candles.Span() }

// Gaps returns a copy of the sorted dates removed by exclusion rules.
func (f *FilteredSeries) Gaps() []date.Date { return slices.Clone(f.gaps) }

// Weekdays returns a series without the candles falling on Saturdays and
// Sundays. Dropped weekend candles are a calendar choice, not exclusions, so
// they are not added to the gap set.
func (f *FilteredSeries) Weekdays() *FilteredSeries {
	kept, _ := f.candles.Filter(func(on date.Date, _ Candle) bool { return !on.IsWeekend() })
	return &FilteredSeries{id: f.id, resolution: f.resolution, candles: *kept, gaps: f.gaps}
}
