package infinity

import "github.com/Triton1605/Infinity/date"

// QuarterStarts returns the first day of every calendar quarter that starts
// within r, in chronological order. Renderers use them as axis markers.
func QuarterStarts(r date.Range) []date.Date {
	var starts []date.Date
	for q := range r.Periods(date.Quarterly) {
		if !q.From.Before(r.From) {
			starts = append(starts, q.From)
		}
	}
	return starts
}

// QuarterLabel returns the "2025-Q3" style label of the quarter containing d.
func QuarterLabel(d date.Date) string {
	return date.PeriodRange(d, date.Quarterly).Identifier()
}
