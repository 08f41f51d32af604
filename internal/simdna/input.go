package simdna

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra flags shared by the simulation commands.
type Flags struct {
	// out is the path the simdata file is written to; derived from the
	// other settings when empty
	out string

	// pathToMotifs is the ENCODE-format motif file
	pathToMotifs string

	// prefix is prepended to sequence names in the output
	prefix string

	// seqLength of every generated sequence
	seqLength int

	// numSeqs to generate
	numSeqs int

	// bestHit embeds consensus sequences and rescans for labels
	bestHit bool

	// seed of the run
	seed uint64

	// density mode settings
	motifNames []string
	minMotifs  int
	maxMotifs  int
	meanMotifs float64
	zeroProb   float64

	// grammar mode settings
	motifName1        string
	motifName2        string
	generationSetting string
	minSpacing        int
	maxSpacing        int
}

// inputParser contains methods for gathering flags from the input
// &cobra.Command.
type inputParser struct{}

func (inputParser) shared(cmd *cobra.Command, numSeqsFlag string) (f Flags, err error) {
	if f.out, err = cmd.Flags().GetString("out"); err != nil {
		return f, err
	}
	if f.seqLength, err = cmd.Flags().GetInt("seqLength"); err != nil {
		return f, err
	}
	if f.numSeqs, err = cmd.Flags().GetInt(numSeqsFlag); err != nil {
		return f, err
	}
	f.seed, err = cmd.Flags().GetUint64("seed")
	return f, err
}

// parseDensityFlags gathers the density command's flags.
func parseDensityFlags(cmd *cobra.Command) (Flags, error) {
	p := inputParser{}
	f, err := p.shared(cmd, "numSeqs")
	if err != nil {
		return f, err
	}

	if f.prefix, err = cmd.Flags().GetString("prefix"); err != nil {
		return f, err
	}
	if f.pathToMotifs, err = cmd.Flags().GetString("pathToMotifs"); err != nil {
		return f, err
	}
	if f.motifNames, err = cmd.Flags().GetStringSlice("motifNames"); err != nil {
		return f, err
	}
	if f.minMotifs, err = cmd.Flags().GetInt("min-motifs"); err != nil {
		return f, err
	}
	if f.maxMotifs, err = cmd.Flags().GetInt("max-motifs"); err != nil {
		return f, err
	}
	if f.meanMotifs, err = cmd.Flags().GetFloat64("mean-motifs"); err != nil {
		return f, err
	}
	if f.zeroProb, err = cmd.Flags().GetFloat64("zero-prob"); err != nil {
		return f, err
	}
	f.bestHit, err = cmd.Flags().GetBool("bestHit")
	return f, err
}

// parseGrammarFlags gathers the grammar command's flags.
func parseGrammarFlags(cmd *cobra.Command) (Flags, error) {
	p := inputParser{}
	f, err := p.shared(cmd, "numSeq")
	if err != nil {
		return f, err
	}

	if f.pathToMotifs, err = cmd.Flags().GetString("pathToMotifs"); err != nil {
		return f, err
	}
	if f.motifName1, err = cmd.Flags().GetString("motifName1"); err != nil {
		return f, err
	}
	if f.motifName2, err = cmd.Flags().GetString("motifName2"); err != nil {
		return f, err
	}
	if f.generationSetting, err = cmd.Flags().GetString("generationSetting"); err != nil {
		return f, err
	}
	if f.minSpacing, err = cmd.Flags().GetInt("fixedSpacingOrMinSpacing"); err != nil {
		return f, err
	}
	if f.maxSpacing, err = cmd.Flags().GetInt("maxSpacing"); err != nil {
		return f, err
	}
	f.bestHit, err = cmd.Flags().GetBool("bestHit")
	return f, err
}

// parseBackgroundFlags gathers the background command's flags.
func parseBackgroundFlags(cmd *cobra.Command) (Flags, error) {
	p := inputParser{}
	f, err := p.shared(cmd, "numSeqs")
	if err != nil {
		return f, err
	}
	f.prefix, err = cmd.Flags().GetString("prefix")
	return f, err
}

// densityOutputName builds the default density output filename from the
// run's settings, eg
// "DensityEmbedding_motifs-M1+M2_min-1_max-3_mean-2_seqLength-200_numSeqs-100.simdata".
func densityOutputName(f Flags) string {
	parts := []string{"DensityEmbedding"}
	if f.prefix != "" {
		parts = append(parts, "prefix-"+f.prefix)
	}
	if f.bestHit {
		parts = append(parts, "bestHit")
	}
	parts = append(parts,
		"motifs-"+strings.Join(f.motifNames, "+"),
		fmt.Sprintf("min-%d", f.minMotifs),
		fmt.Sprintf("max-%d", f.maxMotifs),
		fmt.Sprintf("mean-%g", f.meanMotifs),
	)
	if f.zeroProb > 0 {
		parts = append(parts, fmt.Sprintf("zeroProb-%g", f.zeroProb))
	}
	parts = append(parts,
		fmt.Sprintf("seqLength-%d", f.seqLength),
		fmt.Sprintf("numSeqs-%d", f.numSeqs),
	)
	return strings.Join(parts, "_") + ".simdata"
}

// grammarOutputName builds the default grammar output filename, eg
// "motifGrammarSimulation_twoMotifsFixedSpacing_motif1-X_motif2-Y_seqLength-200_numSeq-100.simdata".
func grammarOutputName(f Flags, arrangement Arrangement) string {
	parts := []string{"motifGrammarSimulation", f.generationSetting}
	if f.bestHit {
		parts = append(parts, "bestHit")
	}
	if arrangement != SingleMotif2 {
		parts = append(parts, "motif1-"+f.motifName1)
	}
	if arrangement != SingleMotif1 {
		parts = append(parts, "motif2-"+f.motifName2)
	}
	parts = append(parts,
		fmt.Sprintf("seqLength-%d", f.seqLength),
		fmt.Sprintf("numSeq-%d", f.numSeqs),
	)
	return strings.Join(parts, "_") + ".simdata"
}

// backgroundOutputName builds the default empty-background filename.
func backgroundOutputName(f Flags) string {
	parts := []string{"EmptyBackground"}
	if f.prefix != "" {
		parts = append(parts, "prefix-"+f.prefix)
	}
	parts = append(parts,
		fmt.Sprintf("seqLength-%d", f.seqLength),
		fmt.Sprintf("numSeqs-%d", f.numSeqs),
	)
	return strings.Join(parts, "_") + ".simdata"
}
