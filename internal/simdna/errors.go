package simdna

import "fmt"

// ValidationError is a rejected combination of user supplied settings.
// It is raised before any sequence is generated.
type ValidationError struct {
	// Setting that failed validation, eg "zero-prob"
	Setting string

	// Reason the setting was rejected
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Setting, e.Reason)
}

// UnknownMotifError is a motif name that could not be resolved against
// the loaded motif file. The run depends on the motif, so this aborts.
type UnknownMotifError struct {
	// Name of the motif that was requested
	Name string

	// Path of the motif file that was searched
	Path string
}

func (e *UnknownMotifError) Error() string {
	return fmt.Sprintf("unknown motif %q: not found in %s", e.Name, e.Path)
}

// ConfigError is a geometric constraint that cannot be satisfied by any
// random draw, eg motifs plus spacing longer than the sequence. It is
// detected before placement rather than discovered via exhausted retries.
type ConfigError struct {
	// Reason the requested geometry is infeasible
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("infeasible settings: %s", e.Reason)
}

// PlacementExhaustedError is a bounded-retry placement search that
// failed to find a non-overlapping arrangement. It distinguishes a
// statistically unlucky run from a structurally infeasible one, which
// fails earlier as a ConfigError.
type PlacementExhaustedError struct {
	// SeqIndex of the sequence whose placement failed
	SeqIndex int

	// Motif being placed when the attempt budget ran out
	Motif string

	// Attempts made before giving up
	Attempts int
}

func (e *PlacementExhaustedError) Error() string {
	return fmt.Sprintf(
		"sequence %d: gave up placing motif %q after %d attempts",
		e.SeqIndex, e.Motif, e.Attempts,
	)
}
