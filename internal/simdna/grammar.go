package simdna

import (
	"github.com/kundajelab/simdna/config"
	"github.com/spf13/cobra"
)

// GrammarCmd takes a cobra command (with its flags) and runs Grammar.
func GrammarCmd(cmd *cobra.Command, args []string) {
	flags, err := parseGrammarFlags(cmd)
	if err != nil {
		stderr.Fatalln(err)
	}
	if err := Grammar(flags, config.New()); err != nil {
		stderr.Fatalln(err)
	}
}

// Grammar generates sequences with up to two motifs arranged under a
// positional grammar and writes the labeled dataset.
func Grammar(f Flags, conf *config.Config) error {
	arrangement, err := ParseArrangement(f.generationSetting)
	if err != nil {
		return err
	}

	lib, err := LoadEncodeMotifs(f.pathToMotifs, conf.PseudocountProb)
	if err != nil {
		return err
	}

	// both motifs are resolved up front even when the arrangement only
	// embeds one of them; a bad name should fail the run immediately
	strategy := &GrammarStrategy{
		Arrangement: arrangement,
		MinSpacing:  f.minSpacing,
		MaxSpacing:  f.maxSpacing,
		BestHit:     f.bestHit,
		Attempts:    conf.PlacementAttempts,
	}
	if strategy.Motif1, err = lib.PWM(f.motifName1); err != nil {
		return err
	}
	if strategy.Motif2, err = lib.PWM(f.motifName2); err != nil {
		return err
	}

	bg, err := NewZeroOrderBackground(f.seqLength, GCBaseFreqs(conf.GCContent))
	if err != nil {
		return err
	}

	prefix := "synthNeg"
	if arrangement.Positive() {
		prefix = "synthPos"
	}

	sim, err := NewSimulator(f.numSeqs, prefix, f.seed, bg, strategy)
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
		out = grammarOutputName(f, arrangement)
	}
	if err := WriteSimData(out, records, false, ""); err != nil {
		return err
	}

	return writeInfo(out, "grammar", f.seed, f.numSeqs, f.seqLength, map[string]interface{}{
		"motifName1":        f.motifName1,
		"motifName2":        f.motifName2,
		"generationSetting": f.generationSetting,
		"minSpacing":        f.minSpacing,
		"maxSpacing":        f.maxSpacing,
		"bestHit":           f.bestHit,
	})
}
