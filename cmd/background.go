package cmd

import (
	"github.com/kundajelab/simdna/internal/simdna"
	"github.com/spf13/cobra"
)

// backgroundCmd generates sequences with no embeddings at all
var backgroundCmd = &cobra.Command{
	Use:   "background",
	Short: "Generate pure background sequences with empty labels",
	Run:   simdna.BackgroundCmd,
	Long: `Generate sequences from the background composition alone, with no motif
embeddings. Useful as a negative set for classifiers trained on the
density or grammar datasets.`,
}

func init() {
	rootCmd.AddCommand(backgroundCmd)

	backgroundCmd.Flags().String("prefix", "", "prefix prepended to generated sequence names")
	backgroundCmd.Flags().Int("seqLength", 0, "length of every generated sequence")
	backgroundCmd.Flags().Int("numSeqs", 0, "number of sequences to generate")
	backgroundCmd.Flags().Uint64("seed", 1, "random seed for the run")
	backgroundCmd.Flags().String("out", "", "output path; derived from the settings when empty")

	backgroundCmd.MarkFlagRequired("seqLength")
	backgroundCmd.MarkFlagRequired("numSeqs")
}
