package rex

import (
	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/hybrid"
	"github.com/coregx/rex/internal/rclass"
	"github.com/coregx/rex/nfa"
)

// Config controls compilation and matching behavior: the classifier's
// structural caps, the DFA state budget, the NFA recursion limit, and
// whether DFA compilation is attempted at all. Grounded on the
// teacher's meta.Config / meta.DefaultConfig / (Config).Validate,
// narrowed to the knobs this core's spec actually exposes — no capture,
// Unicode, or case-insensitivity flags, since those are Non-goals.
type Config struct {
	// MaxDFAStates bounds the DFA compiler's state budget (spec §4.7).
	// Default: 4096.
	MaxDFAStates int

	// MaxAltBranches caps how many alternation branches the classifier
	// (spec §4.3) and DFA compiler (spec §4.7) will treat as SIMPLE.
	// Default: 8.
	MaxAltBranches int

	// MaxConcatRun caps how many simple atoms a flat concatenation may
	// hold and still classify SIMPLE (spec §4.3). Default: 6.
	MaxConcatRun int

	// MaxGroupDepth caps nested group/alternation depth before the
	// classifier demotes a pattern past MEDIUM (spec §4.3). Default: 4.
	MaxGroupDepth int

	// MaxRecursionDepth caps the NFA backtracking matcher's recursion
	// depth (spec §4.9, §4.12). Default: 4096.
	MaxRecursionDepth int

	// EnableDFA enables DFA compilation. When false, every pattern runs
	// on the NFA backtracker regardless of complexity. Default: true.
	EnableDFA bool

	// MinLiteralLen is the shortest literal the optimizer (spec §4.6)
	// will flag as SIMD-worthy. Default: 2.
	MinLiteralLen int
}

// DefaultConfig returns the configuration spec.md's examples are tuned
// around.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates:      4096,
		MaxAltBranches:    8,
		MaxConcatRun:      6,
		MaxGroupDepth:     4,
		MaxRecursionDepth: 4096,
		EnableDFA:         true,
		MinLiteralLen:     2,
	}
}

// Validate checks that every field is within a workable range.
func (c Config) Validate() error {
	if c.MaxDFAStates < 1 {
		return &ConfigError{Field: "MaxDFAStates", Message: "must be >= 1"}
	}
	if c.MaxAltBranches < 1 {
		return &ConfigError{Field: "MaxAltBranches", Message: "must be >= 1"}
	}
	if c.MaxConcatRun < 1 {
		return &ConfigError{Field: "MaxConcatRun", Message: "must be >= 1"}
	}
	if c.MaxGroupDepth < 1 {
		return &ConfigError{Field: "MaxGroupDepth", Message: "must be >= 1"}
	}
	if c.MaxRecursionDepth < 1 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be >= 1"}
	}
	if c.MinLiteralLen < 1 {
		return &ConfigError{Field: "MinLiteralLen", Message: "must be >= 1"}
	}
	return nil
}

// toLimits lowers Config to the per-package Limits types the internal
// engines consume, filling in the caps Config doesn't expose (e.g.
// rclass.MaxGroupChildren) from rclass's own defaults.
func (c Config) toLimits() hybrid.Limits {
	cl := rclass.DefaultLimits()
	cl.MaxConcatRun = c.MaxConcatRun
	cl.MaxAltBranches = c.MaxAltBranches
	cl.MaxGroupDepth = c.MaxGroupDepth
	cl.SimpleStateBudget = c.MaxDFAStates
	cl.MediumStateBudget = c.MaxDFAStates * 4

	dl := dfa.DefaultLimits()
	dl.MaxStates = c.MaxDFAStates
	dl.MaxAltBranches = c.MaxAltBranches

	nl := nfa.DefaultLimits()
	nl.MaxDepth = c.MaxRecursionDepth

	return hybrid.Limits{
		Classify:      cl,
		DFA:           dl,
		NFA:           nl,
		EnableDFA:     c.EnableDFA,
		MinLiteralLen: c.MinLiteralLen,
	}
}

// ConfigError reports an out-of-range Config field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "rex: invalid config: " + e.Field + ": " + e.Message
}
