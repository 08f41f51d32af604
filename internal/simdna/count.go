package simdna

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// CountSampler draws the number of occurrences of one motif to embed in
// a sequence: zero with probability ZeroProb, otherwise a Poisson draw
// with the given mean, clipped into [Min, Max].
//
// Out-of-range draws are clipped to the nearest bound rather than
// resampled, which piles extra probability mass at Min and Max compared
// to a true truncated Poisson.
type CountSampler struct {
	// Min and Max bound the returned count (after the Poisson draw)
	Min, Max int

	// Mean of the Poisson distribution
	Mean float64

	// ZeroProb is the probability of returning 0 without drawing at all
	ZeroProb float64
}

func (c CountSampler) validate() error {
	if c.Min < 0 {
		return &ValidationError{
			Setting: "min-motifs",
			Reason:  fmt.Sprintf("must be non-negative, got %d", c.Min),
		}
	}
	if c.Min > c.Max {
		return &ValidationError{
			Setting: "min-motifs",
			Reason:  fmt.Sprintf("min %d exceeds max %d", c.Min, c.Max),
		}
	}
	if c.ZeroProb < 0 || c.ZeroProb > 1 {
		return &ValidationError{
			Setting: "zero-prob",
			Reason:  fmt.Sprintf("must be within [0,1], got %f", c.ZeroProb),
		}
	}
	if c.Mean < 0 {
		return &ValidationError{
			Setting: "mean-motifs",
			Reason:  fmt.Sprintf("must be non-negative, got %f", c.Mean),
		}
	}
	return nil
}

// Sample flips the zero coin first; only the non-zero branch draws from
// the Poisson.
func (c CountSampler) Sample(rng *rand.Rand) int {
	if c.ZeroProb > 0 && rng.Float64() < c.ZeroProb {
		return 0
	}

	k := int(distuv.Poisson{Lambda: c.Mean, Src: rng}.Rand())
	if k < c.Min {
		k = c.Min
	}
	if k > c.Max {
		k = c.Max
	}
	return k
}
