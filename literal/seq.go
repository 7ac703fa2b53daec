// Package literal extracts literal byte sequences from a pattern AST for
// use as prefilter hints: a literal prefix, a literal required anywhere in
// every match, and — for literal-heavy alternations — a multi-literal set.
// None of this package's output is load-bearing for correctness; the DFA
// and NFA engines (packages dfa and nfa) both work without it, and only
// consult it to skip regions of the input they already know cannot match
// (spec §4.6, §9 "Optimization hints").
package literal

// Engine is the engine a pattern's hints suggest using. It mirrors the
// DFA/Hybrid/NFA choice the dispatcher in package hybrid makes, without
// literal depending on either engine package.
type Engine uint8

const (
	EngineDFA Engine = iota
	EngineHybrid
	EngineNFA
)

func (e Engine) String() string {
	switch e {
	case EngineDFA:
		return "DFA"
	case EngineHybrid:
		return "Hybrid"
	case EngineNFA:
		return "NFA"
	default:
		return "Unknown"
	}
}

// Hints is the Optimization hints record from spec §3: what literal
// material, if any, every match is guaranteed to contain, plus whether
// the pattern is a good candidate for SIMD-accelerated scanning.
type Hints struct {
	HasLiteralPrefix   bool
	LiteralPrefix      []byte
	HasRequiredLiteral bool
	RequiredLiteral    []byte
	BenefitsFromSIMD   bool
	SuggestedEngine    Engine

	// MultiLiteral holds the per-branch literal set extracted from a
	// literal-only alternation (spec §4.6's "emit a multi-literal set
	// when all branches are pure literal runs"). Empty when the
	// pattern's top-level shape isn't such an alternation.
	MultiLiteral [][]byte
}

// GetBestLiteral picks the single best literal to prefilter on: the
// longest required literal, else the longest prefix, else the longest
// literal found anywhere in the pattern (spec §4.6's final paragraph).
func (h Hints) GetBestLiteral(anyLiteral [][]byte) []byte {
	if h.HasRequiredLiteral {
		return h.RequiredLiteral
	}
	if h.HasLiteralPrefix {
		return h.LiteralPrefix
	}
	var best []byte
	for _, lit := range anyLiteral {
		if len(lit) > len(best) {
			best = lit
		}
	}
	return best
}
