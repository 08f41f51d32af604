// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"runtime"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// the maximum number of random placement attempts per occurrence
	// before the run is failed with a placement error
	PlacementAttempts int `mapstructure:"placement-attempts"`

	// the probability mass added to every PWM row on load to avoid
	// zero-probability positions
	PseudocountProb float64 `mapstructure:"pseudocount-prob"`

	// the GC fraction of the zero-order background distribution
	GCContent float64 `mapstructure:"gc-content"`

	// the number of goroutines generating sequences in parallel
	Workers int `mapstructure:"workers"`

	// whether to log and continue past a failed sequence instead of
	// aborting the whole run
	SkipFailures bool `mapstructure:"skip-failures"`
}

// New returns a new Config struct populated by Viper settings
// (either from the local settings.yaml) and/or command line arguments
func New() *Config {
	viper.SetDefault("placement-attempts", 1000)
	viper.SetDefault("pseudocount-prob", 0.001)
	viper.SetDefault("gc-content", 0.4)
	viper.SetDefault("workers", runtime.NumCPU())
	viper.SetDefault("skip-failures", false)

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	// workers <= 0 means one goroutine per CPU
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}

	return &c
}
