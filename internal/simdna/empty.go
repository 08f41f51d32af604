package simdna

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kundajelab/simdna/config"
	"github.com/spf13/cobra"
)

// BackgroundCmd takes a cobra command (with its flags) and runs
// Background.
func BackgroundCmd(cmd *cobra.Command, args []string) {
	flags, err := parseBackgroundFlags(cmd)
	if err != nil {
		stderr.Fatalln(err)
	}
	if err := Background(flags, config.New()); err != nil {
		stderr.Fatalln(err)
	}
}

// Background generates sequences with no embeddings at all: pure
// background with empty labels, for negative sets.
func Background(f Flags, conf *config.Config) error {
	bg, err := NewZeroOrderBackground(f.seqLength, GCBaseFreqs(conf.GCContent))
	if err != nil {
		return err
	}

	sim, err := NewSimulator(f.numSeqs, "empty", f.seed, bg, EmptyStrategy{})
	if err != nil {
		return err
	}
	sim.Workers = conf.Workers
	sim.SkipFailures = conf.SkipFailures

	records, err := sim.Run()
	if err != nil {
		return err
	}

	out := f.out
	if out == "" {
		out = backgroundOutputName(f)
	}
	if err := WriteSimData(out, records, true, f.prefix); err != nil {
		return err
	}

	return writeInfo(out, "background", f.seed, f.numSeqs, f.seqLength, nil)
}

// MotifsCmd lists the motifs in a motif file with their lengths and
// consensus sequences.
func MotifsCmd(cmd *cobra.Command, args []string) {
	path, err := cmd.Flags().GetString("pathToMotifs")
	if err != nil {
		stderr.Fatalln(err)
	}
	homer, err := cmd.Flags().GetBool("homer")
	if err != nil {
		stderr.Fatalln(err)
	}

	conf := config.New()
	load := LoadEncodeMotifs
	if homer {
		load = LoadHomerMotifs
	}
	lib, err := load(path, conf.PseudocountProb)
	if err != nil {
		stderr.Fatalln(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(w, "name\tlength\tconsensus\n")
	for _, name := range lib.Names() {
		p, _ := lib.PWM(name)
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, p.Len(), p.Consensus())
	}
	w.Flush()
}
