package simdna

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBackground(t *testing.T, length int) *ZeroOrderBackground {
	t.Helper()
	g, err := NewZeroOrderBackground(length, DefaultBaseFreqs)
	require.NoError(t, err)
	return g
}

func TestNewSimulator_Validation(t *testing.T) {
	bg := testBackground(t, 100)

	_, err := NewSimulator(-1, "synth", 1, bg, EmptyStrategy{})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestNewSimulator_DefaultPrefix(t *testing.T) {
	bg := testBackground(t, 100)

	s, err := NewSimulator(5, "", 1, bg, EmptyStrategy{})
	require.NoError(t, err)
	assert.Equal(t, "synth", s.Prefix)
}

func TestSimulator_Density(t *testing.T) {
	bg := testBackground(t, 100)
	strategy := &DensityStrategy{
		Motifs:   []*PWM{testPWM(t, "m1", "ACGT"), testPWM(t, "m2", "TTTGGG")},
		Counts:   CountSampler{Min: 1, Max: 2, Mean: 1},
		Attempts: 1000,
	}

	s, err := NewSimulator(20, "synth", 1, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)
	require.Len(t, records, 20)

	for i, r := range records {
		assert.Len(t, r.Seq, 100)
		assert.Equal(t, "synth"+strconv.Itoa(i), r.Name)

		// 1-2 occurrences of each of the two motifs
		assert.GreaterOrEqual(t, len(r.Embeddings), 2)
		assert.LessOrEqual(t, len(r.Embeddings), 4)

		for j, occ := range r.Embeddings {
			assert.GreaterOrEqual(t, occ.Start, 0)
			assert.LessOrEqual(t, occ.End, 100)
			assert.Equal(t, occ.Seq, r.Seq[occ.Start:occ.End], "label does not match sequence content")
			assert.Equal(t, "+", occ.Strand)

			if j > 0 {
				prev := r.Embeddings[j-1]
				assert.GreaterOrEqual(t, occ.Start, prev.End, "occurrences overlap or are unsorted")
			}
		}
	}
}

func TestSimulator_Determinism(t *testing.T) {
	run := func(workers int) []Record {
		bg := testBackground(t, 80)
		strategy := &DensityStrategy{
			Motifs:   []*PWM{testPWM(t, "m1", "ACGT")},
			Counts:   CountSampler{Min: 1, Max: 3, Mean: 2},
			Attempts: 1000,
		}
		s, err := NewSimulator(30, "synth", 7, bg, strategy)
		require.NoError(t, err)
		s.Workers = workers

		records, err := s.Run()
		require.NoError(t, err)
		return records
	}

	serial := run(1)
	assert.Equal(t, serial, run(1), "same seed should reproduce the run")
	assert.Equal(t, serial, run(4), "parallel generation should match serial output")
}

func TestSimulator_GrammarFixedSpacing(t *testing.T) {
	bg := testBackground(t, 60)
	strategy := &GrammarStrategy{
		Motif1:      testPWM(t, "m1", "ACGT"),
		Motif2:      testPWM(t, "m2", "TTTGGG"),
		Arrangement: TwoMotifsFixedSpacing,
		MinSpacing:  3,
		Attempts:    1000,
	}

	s, err := NewSimulator(25, "synthPos", 3, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)

	for _, r := range records {
		require.Len(t, r.Embeddings, 2)
		left, right := r.Embeddings[0], r.Embeddings[1]
		assert.Equal(t, 3, right.Start-left.End, "gap between the pair")
		assert.NotEqual(t, left.Motif, right.Motif)
	}
}

// With random left-right order, both orientations should show up.
func TestSimulator_GrammarPairOrder(t *testing.T) {
	bg := testBackground(t, 60)
	strategy := &GrammarStrategy{
		Motif1:      testPWM(t, "m1", "ACGT"),
		Motif2:      testPWM(t, "m2", "TTTGGG"),
		Arrangement: TwoMotifsFixedSpacing,
		MinSpacing:  2,
		Attempts:    1000,
	}

	s, err := NewSimulator(50, "synthPos", 9, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)

	m1Left := 0
	for _, r := range records {
		require.Len(t, r.Embeddings, 2)
		if r.Embeddings[0].Motif == "m1" {
			m1Left++
		}
	}
	assert.Greater(t, m1Left, 0, "m1 never placed left")
	assert.Less(t, m1Left, 50, "m1 never placed right")
}

func TestSimulator_GrammarVariableSpacing(t *testing.T) {
	bg := testBackground(t, 60)
	strategy := &GrammarStrategy{
		Motif1:      testPWM(t, "m1", "ACGT"),
		Motif2:      testPWM(t, "m2", "TTTGGG"),
		Arrangement: TwoMotifsVariableSpacing,
		MinSpacing:  1,
		MaxSpacing:  5,
		Attempts:    1000,
	}

	s, err := NewSimulator(40, "synthPos", 5, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)

	for _, r := range records {
		require.Len(t, r.Embeddings, 2)
		gap := r.Embeddings[1].Start - r.Embeddings[0].End
		assert.GreaterOrEqual(t, gap, 1)
		assert.LessOrEqual(t, gap, 5)
	}
}

func TestSimulator_GrammarTwoMotifsIndependent(t *testing.T) {
	bg := testBackground(t, 60)
	strategy := &GrammarStrategy{
		Motif1:      testPWM(t, "m1", "ACGT"),
		Motif2:      testPWM(t, "m2", "TTTGGG"),
		Arrangement: TwoMotifs,
		Attempts:    1000,
	}

	s, err := NewSimulator(25, "synthNeg", 13, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)

	for _, r := range records {
		require.Len(t, r.Embeddings, 2)
		assert.NotEqual(t, r.Embeddings[0].Motif, r.Embeddings[1].Motif)
		assert.GreaterOrEqual(t, r.Embeddings[1].Start, r.Embeddings[0].End, "occurrences overlap")
	}
}

func TestSimulator_GrammarAllBackground(t *testing.T) {
	bg := testBackground(t, 60)
	strategy := &GrammarStrategy{
		Motif1:      testPWM(t, "m1", "ACGT"),
		Motif2:      testPWM(t, "m2", "TTTGGG"),
		Arrangement: AllBackground,
		Attempts:    1000,
	}

	s, err := NewSimulator(10, "synthNeg", 2, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)

	for _, r := range records {
		assert.Empty(t, r.Embeddings)
	}
}

func TestSimulator_GrammarSingleMotif(t *testing.T) {
	bg := testBackground(t, 60)
	strategy := &GrammarStrategy{
		Motif1:      testPWM(t, "m1", "ACGT"),
		Motif2:      testPWM(t, "m2", "TTTGGG"),
		Arrangement: SingleMotif2,
		Attempts:    1000,
	}

	s, err := NewSimulator(10, "synthPos", 2, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)

	for _, r := range records {
		require.Len(t, r.Embeddings, 1)
		assert.Equal(t, "m2", r.Embeddings[0].Motif)
	}
}

// A best-hit run must record the strongest scoring window on the
// finished sequence, and the label must match the sequence content.
func TestSimulator_DensityBestHit(t *testing.T) {
	bg := testBackground(t, 100)
	p := testPWM(t, "m1", "ACGTACGT")
	strategy := &DensityStrategy{
		Motifs:   []*PWM{p},
		Counts:   CountSampler{Min: 1, Max: 1, Mean: 1},
		BestHit:  true,
		Attempts: 1000,
	}

	s, err := NewSimulator(15, "synth", 11, bg, strategy)
	require.NoError(t, err)

	records, err := s.Run()
	require.NoError(t, err)

	for _, r := range records {
		require.Len(t, r.Embeddings, 1)
		occ := r.Embeddings[0]

		best, _ := p.BestWindow([]byte(r.Seq))
		assert.Equal(t, best, occ.Start, "label not at the strongest window")
		assert.Equal(t, r.Seq[occ.Start:occ.End], occ.Seq)
	}
}

func TestRescanBestHits(t *testing.T) {
	p := testPWM(t, "m1", "ACGT")
	seq := []byte("TTACGTTT")

	// the occurrence was recorded at 0 but the match sits at 2
	occs := []Occurrence{{Motif: "m1", Start: 0, End: 4, Strand: "+", Seq: "TTAC"}}
	occs = rescanBestHits(seq, occs, map[string]*PWM{"m1": p})

	require.Len(t, occs, 1)
	assert.Equal(t, 2, occs[0].Start)
	assert.Equal(t, 6, occs[0].End)
	assert.Equal(t, "ACGT", occs[0].Seq)
}

// Two occurrences of the same motif may not be re-recorded onto the
// same window; the second takes the best non-overlapping one.
func TestRescanBestHits_NoDoubleCounting(t *testing.T) {
	p := testPWM(t, "m1", "ACGT")
	seq := []byte("ACGTTTACGT")

	occs := []Occurrence{
		{Motif: "m1", Start: 0, End: 4, Strand: "+", Seq: "ACGT"},
		{Motif: "m1", Start: 6, End: 10, Strand: "+", Seq: "ACGT"},
	}
	occs = rescanBestHits(seq, occs, map[string]*PWM{"m1": p})

	require.Len(t, occs, 2)
	assert.NotEqual(t, occs[0].Start, occs[1].Start)
	assert.ElementsMatch(t, []int{0, 6}, []int{occs[0].Start, occs[1].Start})
}

func TestSimulator_PlacementExhausted(t *testing.T) {
	// two 5bp occurrences in 10bp with a single placement attempt fail
	// almost every time
	bg := testBackground(t, 10)
	strategy := &DensityStrategy{
		Motifs:   []*PWM{testPWM(t, "m1", "ACGTA")},
		Counts:   CountSampler{Min: 2, Max: 2, Mean: 2},
		Attempts: 1,
	}

	s, err := NewSimulator(50, "synth", 1, bg, strategy)
	require.NoError(t, err)

	_, err = s.Run()
	var exhaustedErr *PlacementExhaustedError
	require.ErrorAs(t, err, &exhaustedErr)
	assert.Equal(t, "m1", exhaustedErr.Motif)
	assert.Equal(t, 1, exhaustedErr.Attempts)
}

func TestSimulator_SkipFailures(t *testing.T) {
	bg := testBackground(t, 10)
	strategy := &DensityStrategy{
		Motifs:   []*PWM{testPWM(t, "m1", "ACGTA")},
		Counts:   CountSampler{Min: 2, Max: 2, Mean: 2},
		Attempts: 1,
	}

	s, err := NewSimulator(50, "synth", 1, bg, strategy)
	require.NoError(t, err)
	s.SkipFailures = true

	records, err := s.Run()
	require.NoError(t, err)
	assert.Less(t, len(records), 50, "expected at least one dropped sequence")
}

func TestGrammarStrategy_ValidateInfeasible(t *testing.T) {
	m1 := testPWM(t, "m1", "ACGTACGT")
	m2 := testPWM(t, "m2", "TTTGGGTT")

	tests := []struct {
		name      string
		strategy  *GrammarStrategy
		seqLength int
		wantAs    interface{}
	}{
		{
			"pair plus spacing does not fit",
			&GrammarStrategy{Motif1: m1, Motif2: m2, Arrangement: TwoMotifsFixedSpacing, MinSpacing: 10},
			20,
			new(*ConfigError),
		},
		{
			"single motif does not fit",
			&GrammarStrategy{Motif1: m1, Motif2: m2, Arrangement: SingleMotif1},
			5,
			new(*ConfigError),
		},
		{
			"negative spacing",
			&GrammarStrategy{Motif1: m1, Motif2: m2, Arrangement: TwoMotifsFixedSpacing, MinSpacing: -1},
			100,
			new(*ValidationError),
		},
		{
			"min spacing above max",
			&GrammarStrategy{Motif1: m1, Motif2: m2, Arrangement: TwoMotifsVariableSpacing, MinSpacing: 5, MaxSpacing: 2},
			100,
			new(*ValidationError),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.strategy.validate(tt.seqLength)
			assert.ErrorAs(t, err, tt.wantAs)
		})
	}
}

func TestParseArrangement(t *testing.T) {
	for name, want := range arrangementNames {
		got, err := ParseArrangement(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ParseArrangement("threeMotifs")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestArrangement_Positive(t *testing.T) {
	assert.False(t, AllBackground.Positive())
	assert.False(t, TwoMotifs.Positive())
	assert.True(t, SingleMotif1.Positive())
	assert.True(t, TwoMotifsFixedSpacing.Positive())
	assert.True(t, TwoMotifsVariableSpacing.Positive())
}
