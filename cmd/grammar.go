package cmd

import (
	"github.com/kundajelab/simdna/internal/simdna"
	"github.com/spf13/cobra"
)

// grammarCmd embeds up to two motifs under a positional grammar
var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Embed a pair of motifs under a fixed or variable spacing grammar",
	Run:   simdna.GrammarCmd,
	Long: `Generate sequences whose motif content follows a two-motif grammar.
The generation setting picks the arrangement:

  twoMotifsFixedSpacing     both motifs, separated by exactly fixedSpacingOrMinSpacing
  twoMotifsVariableSpacing  both motifs, separated by a uniform draw in
                            [fixedSpacingOrMinSpacing, maxSpacing]
  twoMotifs                 both motifs, placed independently
  singleMotif1              one occurrence of motifName1 only
  singleMotif2              one occurrence of motifName2 only
  allBackground             no motifs at all

For the spacing grammars the left-to-right order of the two motifs is
chosen uniformly at random per sequence.`,
}

func init() {
	rootCmd.AddCommand(grammarCmd)

	grammarCmd.Flags().String("pathToMotifs", "motifs.txt", "path to an ENCODE-format motif file")
	grammarCmd.Flags().String("motifName1", "", "name of the grammar's first motif")
	grammarCmd.Flags().String("motifName2", "", "name of the grammar's second motif")
	grammarCmd.Flags().String("generationSetting", "twoMotifsFixedSpacing", "arrangement of the two motifs")
	grammarCmd.Flags().Int("fixedSpacingOrMinSpacing", 0, "exact gap (fixed spacing) or minimum gap (variable spacing)")
	grammarCmd.Flags().Int("maxSpacing", 0, "maximum gap for variable spacing")
	grammarCmd.Flags().Int("seqLength", 0, "length of every generated sequence")
	grammarCmd.Flags().Int("numSeq", 0, "number of sequences to generate")
	grammarCmd.Flags().Bool("bestHit", false, "embed consensus sequences and record the strongest windows as labels")
	grammarCmd.Flags().Uint64("seed", 1, "random seed for the run")
	grammarCmd.Flags().String("out", "", "output path; derived from the settings when empty")

	grammarCmd.MarkFlagRequired("motifName1")
	grammarCmd.MarkFlagRequired("motifName2")
	grammarCmd.MarkFlagRequired("seqLength")
	grammarCmd.MarkFlagRequired("numSeq")
}
