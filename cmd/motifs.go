package cmd

import (
	"github.com/kundajelab/simdna/internal/simdna"
	"github.com/spf13/cobra"
)

// motifsCmd lists the motifs available in a motif file
var motifsCmd = &cobra.Command{
	Use:   "motifs",
	Short: "List the motifs in a motif file with their lengths and consensus sequences",
	Run:   simdna.MotifsCmd,
}

func init() {
	rootCmd.AddCommand(motifsCmd)

	motifsCmd.Flags().String("pathToMotifs", "motifs.txt", "path to the motif file to list")
	motifsCmd.Flags().Bool("homer", false, "read the file in Homer format instead of ENCODE")
}
