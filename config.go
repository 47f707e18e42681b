package regex

import "github.com/serrainoalessio/regex/prefilter"

// Config controls compilation. The zero value disables every optimization;
// use DefaultConfig for the standard pipeline.
type Config struct {
	// OptimizeAST normalizes the parsed tree (flattening, quantifier
	// fusion, numeric-repetition lowering) before NFA construction.
	OptimizeAST bool

	// ReduceNFA runs the state reducer over the constructed automaton.
	ReduceNFA bool

	// Prefilter builds a required-literal prefilter when the pattern
	// yields one, letting Match reject many inputs without running an
	// evaluator.
	Prefilter bool

	// PrefilterLimits bounds literal extraction.
	PrefilterLimits prefilter.Config
}

// DefaultConfig returns the standard configuration: every optimization on.
//
// Example:
//
//	config := regex.DefaultConfig()
//	config.Prefilter = false // always run the evaluators
//	re, err := regex.CompileWithConfig("(a|b)c", config)
func DefaultConfig() Config {
	return Config{
		OptimizeAST:     true,
		ReduceNFA:       true,
		Prefilter:       true,
		PrefilterLimits: prefilter.DefaultConfig(),
	}
}
