package date

import "slices"

// Series stores values keyed by day, in chronological order. A day holds at
// most one value.
type Series[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of days in the series.
func (s *Series[T]) Len() int { return len(s.days) }

// search returns the position of day in the series, or where it would be
// inserted.
func (s *Series[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(s.days, day, func(d, t Date) int {
		switch {
		case d.Before(t):
			return -1
		case d.After(t):
			return 1
		default:
			return 0
		}
	})
}

// Set records v on day. A value already recorded on that day is replaced, so
// the last write of a day wins.
func (s *Series[T]) Set(day Date, v T) *Series[T] {
	i, found := s.search(day)
	if found {
		s.values[i] = v
		return s
	}
	s.days = slices.Insert(s.days, i, day)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value recorded on day.
func (s *Series[T]) Get(day Date) (T, bool) {
	if i, found := s.search(day); found {
		return s.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value of day, or else the most recent value before it.
func (s *Series[T]) ValueAsOf(day Date) (T, bool) {
	i, found := s.search(day)
	if found {
		return s.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return s.values[i-1], true
}
