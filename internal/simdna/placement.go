package simdna

import (
	"golang.org/x/exp/rand"
)

// occupancy tracks which positions of a sequence under construction are
// already claimed by an embedded occurrence (or a grammar gap).
type occupancy struct {
	filled []bool
}

func newOccupancy(n int) *occupancy {
	return &occupancy{filled: make([]bool, n)}
}

// free reports whether [start, end) holds no prior embedding.
func (o *occupancy) free(start, end int) bool {
	for i := start; i < end; i++ {
		if o.filled[i] {
			return false
		}
	}
	return true
}

// claim marks [start, end) as occupied.
func (o *occupancy) claim(start, end int) {
	for i := start; i < end; i++ {
		o.filled[i] = true
	}
}

// placeUniform draws uniformly random start offsets in [0, n-length]
// until one yields an unoccupied interval, giving up after attempts
// draws. The second return is false when the budget ran out.
func placeUniform(rng *rand.Rand, occ *occupancy, length, attempts int) (int, bool) {
	n := len(occ.filled)
	if length > n {
		return 0, false
	}

	for try := 0; try < attempts; try++ {
		start := rng.Intn(n - length + 1)
		if occ.free(start, start+length) {
			return start, true
		}
	}
	return 0, false
}

// uniformInt draws an integer uniformly from [lo, hi], inclusive.
func uniformInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
