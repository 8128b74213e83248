package date

import (
	"iter"
	"slices"
	"sort"
)

// History stores a chronological series of values, each associated with a
// specific date. Dates are unique and the series is always sorted.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// First returns the earliest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) First() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, *new(T)
	}
	return h.days[0], h.values[0]
}

// Span returns the range covered by the history and true, or a zero range and
// false when the history is empty.
func (h *History[T]) Span() (Range, bool) {
	if len(h.days) == 0 {
		return Range{}, false
	}
	return Range{From: h.days[0], To: h.days[len(h.days)-1]}, true
}

// chronological is a private implementation to keep a history sorted.
type chronological[T any] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }

func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History[T]) sort() { sort.Sort(chronological[T]{h}) }

// Append adds a point to the history.
//
// An existing value at that date is overwritten.
func (h *History[T]) Append(on Date, v T) *History[T] {
	if i := slices.Index(h.days, on); i >= 0 {
		// A point already exists at that date, the last write wins.
		h.values[i] = v
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, v)
	h.sort()
	return h
}

// Values returns an iterator over all date/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Dates returns a copy of all dates in the history, in chronological order.
func (h *History[T]) Dates() []Date { return slices.Clone(h.days) }

// Get returns the value at 'day' and true, or the zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	var value T
	i := slices.Index(h.days, day)
	if i >= 0 {
		return h.values[i], true
	}
	return value, false
}

// ValueAsOf returns the value on a given day, or the most recent value before
// it. It returns the value and true if found, otherwise the zero value and
// false.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if found {
		return h.values[i], true
	}
	// `i` is the index where `day` would be inserted; the last entry before
	// the target date is at i-1.
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}

// Between returns a view of the history restricted to the dates within r.
// The view shares its backing storage with h and must not be appended to.
func (h *History[T]) Between(r Range) *History[T] {
	from, _ := slices.BinarySearchFunc(h.days, r.From, Date.Compare)
	to, found := slices.BinarySearchFunc(h.days, r.To, Date.Compare)
	if found {
		to++
	}
	if from > to {
		return &History[T]{}
	}
	return &History[T]{days: h.days[from:to], values: h.values[from:to]}
}

// Filter returns a new history holding the points for which keep returned
// true, and the sorted list of dates that were removed.
func (h *History[T]) Filter(keep func(Date, T) bool) (kept *History[T], removed []Date) {
	kept = &History[T]{
		days:   make([]Date, 0, len(h.days)),
		values: make([]T, 0, len(h.values)),
	}
	for i, on := range h.days {
		if keep(on, h.values[i]) {
			kept.days = append(kept.days, on)
			kept.values = append(kept.values, h.values[i])
		} else {
			removed = append(removed, on)
		}
	}
	return kept, removed
}
