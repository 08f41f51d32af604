package simdna

import (
	"github.com/kundajelab/simdna/config"
	"github.com/spf13/cobra"
)

// DensityCmd takes a cobra command (with its flags) and runs Density.
func DensityCmd(cmd *cobra.Command, args []string) {
	flags, err := parseDensityFlags(cmd)
	if err != nil {
		stderr.Fatalln(err)
	}
	if err := Density(flags, config.New()); err != nil {
		stderr.Fatalln(err)
	}
}

// Density generates sequences with a Poisson-distributed number of
// occurrences of each requested motif and writes the labeled dataset.
func Density(f Flags, conf *config.Config) error {
	lib, err := LoadEncodeMotifs(f.pathToMotifs, conf.PseudocountProb)
	if err != nil {
		return err
	}

	pwms := make([]*PWM, len(f.motifNames))
	for i, name := range f.motifNames {
		if pwms[i], err = lib.PWM(name); err != nil {
			return err
		}
	}

	bg, err := NewZeroOrderBackground(f.seqLength, GCBaseFreqs(conf.GCContent))
	if err != nil {
		return err
	}

	sim, err := NewSimulator(f.numSeqs, "synth", f.seed, bg, &DensityStrategy{
		Motifs: pwms,
		Counts: CountSampler{
			Min:      f.minMotifs,
			Max:      f.maxMotifs,
			Mean:     f.meanMotifs,
			ZeroProb: f.zeroProb,
		},
		BestHit:  f.bestHit,
		Attempts: conf.PlacementAttempts,
	})
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
		out = densityOutputName(f)
	}
	if err := WriteSimData(out, records, true, f.prefix); err != nil {
		return err
	}

	return writeInfo(out, "density", f.seed, f.numSeqs, f.seqLength, map[string]interface{}{
		"motifNames": f.motifNames,
		"minMotifs":  f.minMotifs,
		"maxMotifs":  f.maxMotifs,
		"meanMotifs": f.meanMotifs,
		"zeroProb":   f.zeroProb,
		"bestHit":    f.bestHit,
	})
}
