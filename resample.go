package infinity

import (
	"iter"

	"github.com/Triton1605/Infinity/date"
)

// Resample aggregates the series into buckets of the target resolution.
//
// Calendar resolutions use calendar-aligned buckets (weeks start on Monday,
// months on the 1st), custom every-N-days resolutions use consecutive N-day
// windows anchored at the first point of the series. Within a bucket the open
// is the first open, the high the maximum high, the low the minimum low, the
// close the last close, and the volume the sum of volumes. Buckets with no
// point produce no point. Each aggregate is stamped on its bucket start date.
//
// Resampling at the series' own resolution returns the series unchanged, and
// a target finer than the source is a configuration error. The gap set is
// carried over untouched.
func Resample(f *FilteredSeries, r Resolution) (*FilteredSeries, error) {
	if r == f.resolution {
		return f, nil
	}
	if r.FinerThan(f.resolution) {
		return nil, configErrorf("cannot resample %s data to finer resolution %s", f.resolution, r)
	}
	out := &FilteredSeries{id: f.id, resolution: r, gaps: f.gaps}
	span, ok := f.Span()
	if !ok {
		return out, nil
	}
	for bucket := range buckets(span, r) {
		sub := f.candles.Between(bucket)
		if sub.Len() == 0 {
			continue
		}
		var agg Candle
		first := true
		for _, c := range sub.Values() {
			if first {
				agg = c
				first = false
				continue
			}
			if c.High.GreaterThan(agg.High) {
				agg.High = c.High
			}
			if c.Low.LessThan(agg.Low) {
				agg.Low = c.Low
			}
			agg.Close = c.Close
			agg.Volume = agg.Volume.Add(c.Volume)
		}
		out.candles.Append(bucket.From, agg)
	}
	return out, nil
}

// buckets returns the bucket ranges of the target resolution covering r.
func buckets(r date.Range, res Resolution) iter.Seq[date.Range] {
	if p, ok := res.Period(); ok {
		return r.Periods(p)
	}
	return r.Buckets(res.Days())
}
