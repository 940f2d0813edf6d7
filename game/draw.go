package game

import "math/rand"

// DrawState tracks the numbers already called for one session, in call
// order. The called set only ever grows.
type DrawState struct {
	variant Variant
	order   []int
	called  map[int]bool
}

// NewDrawState returns an empty draw state over the variant's number range.
func NewDrawState(v Variant) *DrawState {
	return &DrawState{
		variant: v,
		called:  make(map[int]bool),
	}
}

// Next draws one number uniformly at random among those not yet called and
// appends it to the call order. The second return is false when the range is
// exhausted; that is a terminal signal, not an error.
func (d *DrawState) Next(r *rand.Rand) (int, bool) {
	remaining := d.variant.Range() - len(d.order)
	if remaining == 0 {
		return 0, false
	}
	available := make([]int, 0, remaining)
	for n := 1; n <= d.variant.Range(); n++ {
		if !d.called[n] {
			available = append(available, n)
		}
	}
	n := available[r.Intn(len(available))]
	d.order = append(d.order, n)
	d.called[n] = true
	return n, true
}

// Called reports whether n has been drawn.
func (d *DrawState) Called(n int) bool {
	return d.called[n]
}

// Exhausted reports whether every number in the range has been drawn.
func (d *DrawState) Exhausted() bool {
	return len(d.order) == d.variant.Range()
}

// Order returns a copy of the call history.
func (d *DrawState) Order() []int {
	return append([]int(nil), d.order...)
}

// Count returns how many numbers have been called.
func (d *DrawState) Count() int {
	return len(d.order)
}
