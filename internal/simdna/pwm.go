package simdna

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// bases is the nucleotide alphabet in its fixed order. The order also
// breaks ties when computing a PWM's consensus.
const bases = "ACGT"

// baseIndex maps a nucleotide to its row-column in a PWM.
func baseIndex(b byte) int {
	switch b {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	case 'T':
		return 3
	}
	return -1
}

// PWM is a positional probability matrix: one probability distribution
// over the four nucleotides per motif position. Immutable once built.
type PWM struct {
	// Name of the motif, eg "TAL1_known1"
	Name string

	// rows[i][baseIndex(b)] is the probability of base b at position i
	rows [][4]float64

	// logRows caches the natural log of rows for window scoring
	logRows [][4]float64

	// consensus is the per-position argmax of rows, ties broken A<C<G<T
	consensus string
}

// NewPWM builds a PWM from raw probability rows, smoothing each row with
// the pseudocount and renormalizing. Each input row must have exactly
// four entries summing to ~1.
func NewPWM(name string, rows [][]float64, pseudocount float64) (*PWM, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("motif %q has no rows", name)
	}
	if pseudocount < 0 || pseudocount >= 1 {
		return nil, fmt.Errorf("motif %q: pseudocount %f outside [0,1)", name, pseudocount)
	}

	p := &PWM{
		Name:    name,
		rows:    make([][4]float64, len(rows)),
		logRows: make([][4]float64, len(rows)),
	}

	consensus := make([]byte, len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			return nil, fmt.Errorf("motif %q row %d has %d entries, want 4", name, i, len(row))
		}

		sum := 0.0
		best := 0
		for j, w := range row {
			w = w*(1-pseudocount) + pseudocount/4
			p.rows[i][j] = w
			p.logRows[i][j] = math.Log(w)
			sum += w
			if w > p.rows[i][best] {
				best = j
			}
		}
		if math.Abs(sum-1.0) > 1e-4 {
			return nil, fmt.Errorf("motif %q row %d sums to %f, want 1", name, i, sum)
		}
		consensus[i] = bases[best]
	}
	p.consensus = string(consensus)

	return p, nil
}

// Len is the number of positions in the motif.
func (p *PWM) Len() int {
	return len(p.rows)
}

// Sample draws one nucleotide per row, independently, and returns the
// realized subsequence.
func (p *PWM) Sample(rng *rand.Rand) string {
	sampled := make([]byte, len(p.rows))
	for i, row := range p.rows {
		draw := rng.Float64()
		acc := 0.0
		sampled[i] = bases[3] // guard against accumulated float error
		for j := 0; j < 4; j++ {
			acc += row[j]
			if draw < acc {
				sampled[i] = bases[j]
				break
			}
		}
	}
	return string(sampled)
}

// Consensus returns the highest-probability realization of the motif.
func (p *PWM) Consensus() string {
	return p.consensus
}

// Score is the log likelihood of the window seq[start:start+Len()]
// under the motif.
func (p *PWM) Score(seq []byte, start int) float64 {
	score := 0.0
	for i := range p.logRows {
		score += p.logRows[i][baseIndex(seq[start+i])]
	}
	return score
}

// BestWindow scans every length-matching window of seq and returns the
// offset and score of the strongest match. Ties go to the leftmost
// offset. Returns offset -1 if the motif is longer than seq.
func (p *PWM) BestWindow(seq []byte) (int, float64) {
	if p.Len() > len(seq) {
		return -1, math.Inf(-1)
	}

	bestStart, bestScore := -1, math.Inf(-1)
	for start := 0; start+p.Len() <= len(seq); start++ {
		if s := p.Score(seq, start); s > bestScore {
			bestStart, bestScore = start, s
		}
	}
	return bestStart, bestScore
}
