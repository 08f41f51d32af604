package cmd

import (
	"github.com/kundajelab/simdna/internal/simdna"
	"github.com/spf13/cobra"
)

// densityCmd embeds a sampled number of motif occurrences per sequence
var densityCmd = &cobra.Command{
	Use:   "density",
	Short: "Embed a Poisson-distributed number of motif occurrences per sequence",
	Run:   simdna.DensityCmd,
	Long: `Generate background sequences and embed each requested motif a random
number of times at non-overlapping positions. The occurrence count is
drawn per motif from a Poisson distribution with the given mean, clipped
into [min-motifs, max-motifs], and optionally zero-inflated so a
fraction of sequences carry no occurrences at all.`,
}

func init() {
	rootCmd.AddCommand(densityCmd)

	densityCmd.Flags().String("prefix", "", "prefix prepended to generated sequence names")
	densityCmd.Flags().String("pathToMotifs", "motifs.txt", "path to an ENCODE-format motif file")
	densityCmd.Flags().StringSlice("motifNames", nil, "names of the motifs to embed")
	densityCmd.Flags().Int("min-motifs", 0, "minimum occurrences of each motif per sequence")
	densityCmd.Flags().Int("max-motifs", 0, "maximum occurrences of each motif per sequence")
	densityCmd.Flags().Float64("mean-motifs", 0, "mean of the Poisson occurrence count")
	densityCmd.Flags().Float64("zero-prob", 0, "probability of zero occurrences regardless of the Poisson draw")
	densityCmd.Flags().Int("seqLength", 0, "length of every generated sequence")
	densityCmd.Flags().Int("numSeqs", 0, "number of sequences to generate")
	densityCmd.Flags().Bool("bestHit", false, "embed each motif's consensus and record the strongest window as the label")
	densityCmd.Flags().Uint64("seed", 1, "random seed for the run")
	densityCmd.Flags().String("out", "", "output path; derived from the settings when empty")

	densityCmd.MarkFlagRequired("motifNames")
	densityCmd.MarkFlagRequired("max-motifs")
	densityCmd.MarkFlagRequired("mean-motifs")
	densityCmd.MarkFlagRequired("seqLength")
	densityCmd.MarkFlagRequired("numSeqs")
}
