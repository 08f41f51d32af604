package simdna

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/exp/rand"
)

// Occurrence is one embedded motif instance: the ground-truth label for
// a stretch of a generated sequence.
type Occurrence struct {
	// Motif name, eg "TAL1_known1"
	Motif string `json:"motif"`

	// Start offset of the occurrence on the sequence
	Start int `json:"start"`

	// End offset, exclusive
	End int `json:"end"`

	// Strand is always "+"; only the forward strand is simulated
	Strand string `json:"strand"`

	// Seq is the realized subsequence
	Seq string `json:"seq"`
}

// Record is one generated sequence together with its embedding label.
type Record struct {
	// Name of the sequence, eg "synth12"
	Name string

	// Seq is the full generated sequence
	Seq string

	// Embeddings of motif occurrences, ordered by start offset
	Embeddings []Occurrence
}

// embedStrategy realizes and places occurrences into one sequence under
// construction. Implementations correspond to the simulation modes.
type embedStrategy interface {
	// validate rejects geometry that no random draw can satisfy
	validate(seqLength int) error

	// embed writes occurrences into seq, claiming their intervals in occ
	embed(rng *rand.Rand, seq []byte, occ *occupancy, seqIndex int) ([]Occurrence, error)
}

// Simulator drives one simulation run: numSeqs independent sequences,
// each built from its own random substream so results are identical
// whether sequences are generated serially or in parallel.
type Simulator struct {
	// NumSeqs is the number of sequences to generate
	NumSeqs int

	// Prefix of generated sequence names, eg "synth"
	Prefix string

	// Seed of the run; substreams are derived per sequence index
	Seed uint64

	// Background generates the sequence occurrences are embedded into
	Background backgroundGenerator

	// Strategy realizes and places occurrences
	Strategy embedStrategy

	// Workers is the number of goroutines generating sequences; values
	// below 2 mean serial generation
	Workers int

	// SkipFailures logs and drops failed sequences instead of aborting
	SkipFailures bool

	// seqLength is cached from the background generator for validation
	seqLength int
}

// NewSimulator wires a simulator and validates everything that can be
// checked before randomness is involved.
func NewSimulator(
	numSeqs int,
	prefix string,
	seed uint64,
	bg backgroundGenerator,
	strategy embedStrategy,
) (*Simulator, error) {
	if numSeqs < 0 {
		return nil, &ValidationError{
			Setting: "numSeqs",
			Reason:  fmt.Sprintf("must be non-negative, got %d", numSeqs),
		}
	}
	if prefix == "" {
		prefix = "synth"
	}

	var length int
	switch g := bg.(type) {
	case *ZeroOrderBackground:
		length = g.Length
	case *FirstOrderBackground:
		length = g.Length
	default:
		return nil, fmt.Errorf("unsupported background generator %T", bg)
	}

	if err := strategy.validate(length); err != nil {
		return nil, err
	}

	return &Simulator{
		NumSeqs:    numSeqs,
		Prefix:     prefix,
		Seed:       seed,
		Background: bg,
		Strategy:   strategy,
		Workers:    1,
		seqLength:  length,
	}, nil
}

// streamFor derives the independent random stream for one sequence
// index from the run seed. The multiplier spreads consecutive indices
// across the seed space so substreams don't correlate.
func streamFor(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewSource(seed ^ (0x9e3779b97f4a7c15 * (uint64(index) + 1))))
}

// Run generates all sequences and returns them in index order. With
// SkipFailures set, sequences whose pipeline failed are dropped and the
// rest returned; otherwise the first failure aborts the whole run.
func (s *Simulator) Run() ([]Record, error) {
	records := make([]Record, s.NumSeqs)
	errs := make([]error, s.NumSeqs)

	generate := func(i int) {
		rng := streamFor(s.Seed, i)
		seq := s.Background.Generate(rng)
		occ := newOccupancy(len(seq))

		embeddings, err := s.Strategy.embed(rng, seq, occ, i)
		if err != nil {
			errs[i] = err
			return
		}

		sort.SliceStable(embeddings, func(a, b int) bool {
			return embeddings[a].Start < embeddings[b].Start
		})
		records[i] = Record{
			Name:       s.Prefix + strconv.Itoa(i),
			Seq:        string(seq),
			Embeddings: embeddings,
		}
	}

	if s.Workers > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < s.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					generate(i)
				}
			}()
		}
		for i := 0; i < s.NumSeqs; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i := 0; i < s.NumSeqs; i++ {
			generate(i)
		}
	}

	kept := records[:0:0]
	for i, err := range errs {
		if err == nil {
			kept = append(kept, records[i])
			continue
		}
		if !s.SkipFailures {
			return nil, err
		}
		stderr.Printf("skipping sequence %d: %v", i, err)
	}
	return kept, nil
}

// DensityStrategy embeds a sampled number of occurrences of each motif
// at uniformly random non-overlapping positions.
type DensityStrategy struct {
	// Motifs to embed; each samples its own occurrence count
	Motifs []*PWM

	// Counts draws the per-motif occurrence count
	Counts CountSampler

	// BestHit embeds each motif's consensus and rescans the finished
	// sequence for the strongest window when recording labels
	BestHit bool

	// Attempts bounds the per-occurrence placement retry loop
	Attempts int
}

func (d *DensityStrategy) validate(seqLength int) error {
	if len(d.Motifs) == 0 {
		return &ValidationError{Setting: "motifNames", Reason: "no motifs to embed"}
	}
	if err := d.Counts.validate(); err != nil {
		return err
	}
	for _, p := range d.Motifs {
		if p.Len() > seqLength {
			return &ConfigError{Reason: fmt.Sprintf(
				"motif %q is %dbp but the sequence is only %dbp",
				p.Name, p.Len(), seqLength,
			)}
		}
	}
	return nil
}

func (d *DensityStrategy) embed(rng *rand.Rand, seq []byte, occ *occupancy, seqIndex int) ([]Occurrence, error) {
	var occs []Occurrence
	for _, p := range d.Motifs {
		count := d.Counts.Sample(rng)
		for j := 0; j < count; j++ {
			realized := p.Sample(rng)
			if d.BestHit {
				realized = p.Consensus()
			}

			start, ok := placeUniform(rng, occ, p.Len(), d.Attempts)
			if !ok {
				return nil, &PlacementExhaustedError{
					SeqIndex: seqIndex,
					Motif:    p.Name,
					Attempts: d.Attempts,
				}
			}
			copy(seq[start:], realized)
			occ.claim(start, start+p.Len())
			occs = append(occs, Occurrence{
				Motif:  p.Name,
				Start:  start,
				End:    start + p.Len(),
				Strand: "+",
				Seq:    realized,
			})
		}
	}

	if d.BestHit {
		occs = rescanBestHits(seq, occs, pwmsByName(d.Motifs))
	}
	return occs, nil
}

// Arrangement is the tagged set of two-motif grammar layouts.
type Arrangement int

const (
	// AllBackground embeds nothing; every label is empty
	AllBackground Arrangement = iota

	// SingleMotif1 embeds one occurrence of the first motif only
	SingleMotif1

	// SingleMotif2 embeds one occurrence of the second motif only
	SingleMotif2

	// TwoMotifs embeds both motifs independently with no spacing rule
	TwoMotifs

	// TwoMotifsFixedSpacing embeds both motifs separated by exactly
	// the configured spacing, in random left-right order
	TwoMotifsFixedSpacing

	// TwoMotifsVariableSpacing embeds both motifs separated by a
	// uniformly drawn spacing, in random left-right order
	TwoMotifsVariableSpacing
)

// arrangementNames maps the CLI generation settings to their variants.
var arrangementNames = map[string]Arrangement{
	"allBackground":            AllBackground,
	"singleMotif1":             SingleMotif1,
	"singleMotif2":             SingleMotif2,
	"twoMotifs":                TwoMotifs,
	"twoMotifsFixedSpacing":    TwoMotifsFixedSpacing,
	"twoMotifsVariableSpacing": TwoMotifsVariableSpacing,
}

// ParseArrangement resolves a generation setting name.
func ParseArrangement(setting string) (Arrangement, error) {
	a, ok := arrangementNames[setting]
	if !ok {
		return 0, &ValidationError{
			Setting: "generationSetting",
			Reason:  fmt.Sprintf("unrecognized setting %q", setting),
		}
	}
	return a, nil
}

func (a Arrangement) String() string {
	for name, v := range arrangementNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}

// Positive reports whether the arrangement embeds anything, which
// decides the synthPos/synthNeg sequence name prefix.
func (a Arrangement) Positive() bool {
	return a != AllBackground && a != TwoMotifs
}

// GrammarStrategy embeds up to two motifs under a positional grammar.
type GrammarStrategy struct {
	// Motif1 and Motif2 are the grammar's two motifs. Motif2 may be nil
	// for SingleMotif1 and vice versa.
	Motif1, Motif2 *PWM

	// Arrangement selects the layout
	Arrangement Arrangement

	// MinSpacing is the exact gap for fixed spacing and the lower bound
	// for variable spacing
	MinSpacing int

	// MaxSpacing is the upper bound for variable spacing
	MaxSpacing int

	// BestHit embeds consensus sequences and rescans for labels
	BestHit bool

	// Attempts bounds the placement retry loops
	Attempts int
}

func (g *GrammarStrategy) validate(seqLength int) error {
	switch g.Arrangement {
	case AllBackground:
		return nil

	case SingleMotif1, SingleMotif2:
		p := g.Motif1
		if g.Arrangement == SingleMotif2 {
			p = g.Motif2
		}
		if p.Len() > seqLength {
			return &ConfigError{Reason: fmt.Sprintf(
				"motif %q is %dbp but the sequence is only %dbp",
				p.Name, p.Len(), seqLength,
			)}
		}
		return nil

	case TwoMotifs:
		if g.Motif1.Len()+g.Motif2.Len() > seqLength {
			return &ConfigError{Reason: fmt.Sprintf(
				"motifs %q and %q total %dbp but the sequence is only %dbp",
				g.Motif1.Name, g.Motif2.Name, g.Motif1.Len()+g.Motif2.Len(), seqLength,
			)}
		}
		return nil

	case TwoMotifsFixedSpacing, TwoMotifsVariableSpacing:
		if g.MinSpacing < 0 {
			return &ValidationError{
				Setting: "fixedSpacingOrMinSpacing",
				Reason:  fmt.Sprintf("must be non-negative, got %d", g.MinSpacing),
			}
		}
		if g.Arrangement == TwoMotifsVariableSpacing && g.MinSpacing > g.MaxSpacing {
			return &ValidationError{
				Setting: "maxSpacing",
				Reason:  fmt.Sprintf("min spacing %d exceeds max spacing %d", g.MinSpacing, g.MaxSpacing),
			}
		}
		if span := g.Motif1.Len() + g.Motif2.Len() + g.MinSpacing; span > seqLength {
			return &ConfigError{Reason: fmt.Sprintf(
				"motifs %q and %q plus %dbp spacing total %dbp but the sequence is only %dbp",
				g.Motif1.Name, g.Motif2.Name, g.MinSpacing, span, seqLength,
			)}
		}
		return nil
	}
	return &ValidationError{Setting: "generationSetting", Reason: "unrecognized arrangement"}
}

func (g *GrammarStrategy) embed(rng *rand.Rand, seq []byte, occ *occupancy, seqIndex int) ([]Occurrence, error) {
	var occs []Occurrence

	place := func(p *PWM) error {
		realized := g.realize(p, rng)
		start, ok := placeUniform(rng, occ, p.Len(), g.Attempts)
		if !ok {
			return &PlacementExhaustedError{
				SeqIndex: seqIndex,
				Motif:    p.Name,
				Attempts: g.Attempts,
			}
		}
		copy(seq[start:], realized)
		occ.claim(start, start+p.Len())
		occs = append(occs, Occurrence{
			Motif:  p.Name,
			Start:  start,
			End:    start + p.Len(),
			Strand: "+",
			Seq:    realized,
		})
		return nil
	}

	switch g.Arrangement {
	case AllBackground:
		return nil, nil

	case SingleMotif1:
		if err := place(g.Motif1); err != nil {
			return nil, err
		}

	case SingleMotif2:
		if err := place(g.Motif2); err != nil {
			return nil, err
		}

	case TwoMotifs:
		if err := place(g.Motif1); err != nil {
			return nil, err
		}
		if err := place(g.Motif2); err != nil {
			return nil, err
		}

	case TwoMotifsFixedSpacing, TwoMotifsVariableSpacing:
		if err := g.embedPair(rng, seq, occ, seqIndex, &occs); err != nil {
			return nil, err
		}
	}

	if g.BestHit {
		occs = rescanBestHits(seq, occs, g.pwms())
	}
	return occs, nil
}

// embedPair places both motifs as one span: first motif, gap, second
// motif. The left-to-right order is chosen uniformly at random and the
// gap is claimed too, so nothing can be embedded between the pair.
func (g *GrammarStrategy) embedPair(rng *rand.Rand, seq []byte, occ *occupancy, seqIndex int, occs *[]Occurrence) error {
	gap := g.MinSpacing
	if g.Arrangement == TwoMotifsVariableSpacing {
		hi := g.MaxSpacing
		// a drawn gap must still fit; clamp the range so it always does
		if fit := len(seq) - g.Motif1.Len() - g.Motif2.Len(); hi > fit {
			hi = fit
		}
		gap = uniformInt(rng, g.MinSpacing, hi)
	}

	first, second := g.Motif1, g.Motif2
	if rng.Intn(2) == 1 {
		first, second = second, first
	}

	span := first.Len() + gap + second.Len()
	start, ok := placeUniform(rng, occ, span, g.Attempts)
	if !ok {
		return &PlacementExhaustedError{
			SeqIndex: seqIndex,
			Motif:    first.Name,
			Attempts: g.Attempts,
		}
	}
	occ.claim(start, start+span)

	secondStart := start + first.Len() + gap
	for _, placed := range []struct {
		pwm   *PWM
		start int
	}{
		{first, start},
		{second, secondStart},
	} {
		realized := g.realize(placed.pwm, rng)
		copy(seq[placed.start:], realized)
		*occs = append(*occs, Occurrence{
			Motif:  placed.pwm.Name,
			Start:  placed.start,
			End:    placed.start + placed.pwm.Len(),
			Strand: "+",
			Seq:    realized,
		})
	}
	return nil
}

func (g *GrammarStrategy) realize(p *PWM, rng *rand.Rand) string {
	if g.BestHit {
		return p.Consensus()
	}
	return p.Sample(rng)
}

func (g *GrammarStrategy) pwms() map[string]*PWM {
	m := make(map[string]*PWM, 2)
	if g.Motif1 != nil {
		m[g.Motif1.Name] = g.Motif1
	}
	if g.Motif2 != nil {
		m[g.Motif2.Name] = g.Motif2
	}
	return m
}

// EmptyStrategy embeds nothing; used for the empty-background mode.
type EmptyStrategy struct{}

func (EmptyStrategy) validate(int) error { return nil }

func (EmptyStrategy) embed(*rand.Rand, []byte, *occupancy, int) ([]Occurrence, error) {
	return nil, nil
}

func pwmsByName(pwms []*PWM) map[string]*PWM {
	m := make(map[string]*PWM, len(pwms))
	for _, p := range pwms {
		m[p.Name] = p
	}
	return m
}
