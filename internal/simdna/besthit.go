package simdna

import "math"

// rescanBestHits replaces each occurrence's recorded position with the
// position of the strongest window for its motif on the finished
// sequence. Per-position stochastic instantiation can, by chance, leave
// a higher-scoring match in the background than the embedding itself;
// rescanning guarantees the recorded label is always the top match,
// which downstream evaluation relies on as ground truth.
//
// Occurrences are re-recorded in order; each takes the best window that
// does not overlap one already re-recorded, so the first occurrence of
// a motif always lands on the global maximum. Ties go to the leftmost
// offset. The sequence content is unchanged.
func rescanBestHits(seq []byte, occs []Occurrence, pwms map[string]*PWM) []Occurrence {
	taken := make([][2]int, 0, len(occs))

	for i, occ := range occs {
		p := pwms[occ.Motif]
		start := bestFreeWindow(p, seq, taken)
		if start < 0 {
			// nowhere left to record this occurrence; keep the placement
			taken = append(taken, [2]int{occ.Start, occ.End})
			continue
		}

		occs[i].Start = start
		occs[i].End = start + p.Len()
		occs[i].Seq = string(seq[start : start+p.Len()])
		taken = append(taken, [2]int{start, start + p.Len()})
	}
	return occs
}

// bestFreeWindow is PWM.BestWindow restricted to windows that do not
// overlap any interval in taken. Returns -1 when no window qualifies.
func bestFreeWindow(p *PWM, seq []byte, taken [][2]int) int {
	bestStart, bestScore := -1, math.Inf(-1)
	for start := 0; start+p.Len() <= len(seq); start++ {
		if overlapsAny(start, start+p.Len(), taken) {
			continue
		}
		if s := p.Score(seq, start); s > bestScore {
			bestStart, bestScore = start, s
		}
	}
	return bestStart
}

func overlapsAny(start, end int, taken [][2]int) bool {
	for _, iv := range taken {
		if start < iv[1] && iv[0] < end {
			return true
		}
	}
	return false
}
