package rng

// Item pairs a value with its selection weight.
type Item[T any] struct {
	Value  T
	Weight float64
}

// Weighted draws one value from items with probability proportional to weight.
//
// A single uniform draw r in [0, 1) is walked through the items: the first
// item whose weight exceeds the remaining r is returned, otherwise its weight
// is subtracted. When the weights do not sum to one, the walk can run off the
// end; the last item is returned in that case. ok is false only for an empty
// slice.
func Weighted[T any](s *Source, items []Item[T]) (value T, ok bool) {
	if len(items) == 0 {
		return value, false
	}
	r := s.Float()
	for _, it := range items {
		if r < it.Weight {
			return it.Value, true
		}
		r -= it.Weight
	}
	return items[len(items)-1].Value, true
}

// Choice returns a uniformly chosen element of xs. ok is false for an empty slice.
func Choice[T any](s *Source, xs []T) (value T, ok bool) {
	if len(xs) == 0 {
		return value, false
	}
	return xs[s.Int(0, len(xs)-1)], true
}
