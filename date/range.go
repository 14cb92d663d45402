package date

import "iter"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Clamp returns r, or the single day range at r.From when To precedes From.
func (r Range) Clamp() Range {
	if r.To.Before(r.From) {
		return Range{From: r.From, To: r.From}
	}
	return r
}

// Len returns the number of days in the range, 0 if it is empty.
func (r Range) Len() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time()).Hours()/24) + 1
}

// Days iterates over every day of the range in chronological order.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := r.From; !on.After(r.To); on = on.Add(1) {
			if !yield(on) {
				return
			}
		}
	}
}
