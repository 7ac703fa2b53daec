package rclass

import "github.com/coregx/rex/internal/rast"

// estimateStates approximates how many DFA states compiling n would
// need: a rough, cheap-to-compute upper bound, not an exact count. It
// exists solely to drive the SIMPLE/MEDIUM and MEDIUM/COMPLEX
// tie-breaks (spec §4.3's "only place size heuristics enter").
func estimateStates(n *rast.Node) int {
	base := 1
	switch n.Kind {
	case rast.KindGroup:
		base = 0
		for _, c := range n.Children {
			base += estimateStates(c)
		}
		if base == 0 {
			base = 1
		}
	case rast.KindAlternation:
		base = 1 + estimateStates(n.Children[0]) + estimateStates(n.Children[1])
	default:
		base = 1
	}

	switch {
	case n.Max == rast.Unbounded:
		return base * 2
	case n.Min == 1 && n.Max == 1:
		return base
	default:
		// Counted repetition needs roughly one state per additional
		// allowed occurrence (spec §4.7's "{n,m} states count up to n
		// mandatorily then up to m optionally").
		width := int(n.Max) + 1
		if width < 1 {
			width = 1
		}
		return base * width
	}
}
