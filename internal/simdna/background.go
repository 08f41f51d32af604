package simdna

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// BaseFreqs is a probability distribution over A, C, G, T, indexed by
// baseIndex.
type BaseFreqs [4]float64

// DefaultBaseFreqs is the zero-order background composition used when
// nothing else is configured: 30% A/T, 20% C/G.
var DefaultBaseFreqs = BaseFreqs{0.3, 0.2, 0.2, 0.3}

// DefaultDinucFreqs are genome-wide dinucleotide frequencies for the
// first-order background model. Note the depressed CG frequency.
var DefaultDinucFreqs = map[string]float64{
	"AA": 0.095, "AC": 0.050, "AG": 0.071, "AT": 0.075,
	"CA": 0.073, "CC": 0.054, "CG": 0.010, "CT": 0.072,
	"GA": 0.060, "GC": 0.044, "GG": 0.054, "GT": 0.050,
	"TA": 0.064, "TC": 0.060, "TG": 0.073, "TT": 0.095,
}

// GCBaseFreqs builds a zero-order composition with the given GC
// fraction, split evenly within the A/T and C/G pairs.
func GCBaseFreqs(gc float64) BaseFreqs {
	at := (1 - gc) / 2
	return BaseFreqs{at, gc / 2, gc / 2, at}
}

// sampleBase draws one nucleotide from freqs.
func sampleBase(rng *rand.Rand, freqs BaseFreqs) byte {
	draw := rng.Float64()
	acc := 0.0
	for j := 0; j < 3; j++ {
		acc += freqs[j]
		if draw < acc {
			return bases[j]
		}
	}
	return bases[3]
}

// backgroundGenerator produces the sequence that motif occurrences are
// embedded into.
type backgroundGenerator interface {
	Generate(rng *rand.Rand) []byte
}

// ZeroOrderBackground draws every position independently from a base
// frequency distribution.
type ZeroOrderBackground struct {
	// Length of the generated sequence
	Length int

	// Freqs is the per-base composition
	Freqs BaseFreqs
}

// NewZeroOrderBackground validates the length and composition.
func NewZeroOrderBackground(length int, freqs BaseFreqs) (*ZeroOrderBackground, error) {
	if length <= 0 {
		return nil, &ValidationError{
			Setting: "seqLength",
			Reason:  fmt.Sprintf("must be positive, got %d", length),
		}
	}
	if err := checkFreqs(freqs[:]); err != nil {
		return nil, &ValidationError{Setting: "background frequencies", Reason: err.Error()}
	}
	return &ZeroOrderBackground{Length: length, Freqs: freqs}, nil
}

// Generate consumes Length draws from rng.
func (g *ZeroOrderBackground) Generate(rng *rand.Rand) []byte {
	seq := make([]byte, g.Length)
	for i := range seq {
		seq[i] = sampleBase(rng, g.Freqs)
	}
	return seq
}

// FirstOrderBackground draws the first base from a prior distribution
// and every later base from a transition distribution conditioned on
// its predecessor, ie a first-order Markov chain.
type FirstOrderBackground struct {
	// Length of the generated sequence
	Length int

	// prior distribution of the first base
	prior BaseFreqs

	// trans[baseIndex(prev)] is the distribution of the next base
	trans [4]BaseFreqs
}

// NewFirstOrderBackground derives the transition matrix from the given
// dinucleotide frequencies, normalizing each row.
func NewFirstOrderBackground(
	length int,
	prior BaseFreqs,
	dinucFreqs map[string]float64,
) (*FirstOrderBackground, error) {
	if length <= 0 {
		return nil, &ValidationError{
			Setting: "seqLength",
			Reason:  fmt.Sprintf("must be positive, got %d", length),
		}
	}
	if err := checkFreqs(prior[:]); err != nil {
		return nil, &ValidationError{Setting: "prior frequencies", Reason: err.Error()}
	}

	g := &FirstOrderBackground{Length: length, prior: prior}
	total := 0.0
	for dinuc, freq := range dinucFreqs {
		if len(dinuc) != 2 || baseIndex(dinuc[0]) < 0 || baseIndex(dinuc[1]) < 0 {
			return nil, &ValidationError{
				Setting: "dinucleotide frequencies",
				Reason:  fmt.Sprintf("bad dinucleotide %q", dinuc),
			}
		}
		g.trans[baseIndex(dinuc[0])][baseIndex(dinuc[1])] = freq
		total += freq
	}
	if math.Abs(total-1.0) > 1e-5 {
		return nil, &ValidationError{
			Setting: "dinucleotide frequencies",
			Reason:  fmt.Sprintf("sum to %f, want 1", total),
		}
	}

	// normalize each conditional row
	for i := range g.trans {
		rowSum := 0.0
		for _, w := range g.trans[i] {
			rowSum += w
		}
		if rowSum == 0 {
			return nil, &ValidationError{
				Setting: "dinucleotide frequencies",
				Reason:  fmt.Sprintf("no transitions out of %c", bases[i]),
			}
		}
		for j := range g.trans[i] {
			g.trans[i][j] /= rowSum
		}
	}

	return g, nil
}

// Generate walks the chain for Length steps.
func (g *FirstOrderBackground) Generate(rng *rand.Rand) []byte {
	seq := make([]byte, g.Length)
	seq[0] = sampleBase(rng, g.prior)
	for i := 1; i < len(seq); i++ {
		seq[i] = sampleBase(rng, g.trans[baseIndex(seq[i-1])])
	}
	return seq
}

// checkFreqs verifies a distribution is non-negative and sums to ~1.
func checkFreqs(freqs []float64) error {
	sum := 0.0
	for _, w := range freqs {
		if w < 0 {
			return fmt.Errorf("negative frequency %f", w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-5 {
		return fmt.Errorf("frequencies sum to %f, want 1", sum)
	}
	return nil
}
