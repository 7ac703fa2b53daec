// Package rclass implements the complexity classifier (spec §4.3): it
// walks a pattern AST and tags it SIMPLE, MEDIUM, or COMPLEX, alongside
// the literal-based optimization hints from package literal. The tag
// tells package hybrid whether to attempt a DFA compile at all.
package rclass

import (
	"github.com/coregx/rex/internal/rast"
	"github.com/coregx/rex/literal"
)

// Tag is the complexity classification of a pattern.
type Tag uint8

const (
	Simple Tag = iota
	Medium
	Complex
)

func (t Tag) String() string {
	switch t {
	case Simple:
		return "SIMPLE"
	case Medium:
		return "MEDIUM"
	case Complex:
		return "COMPLEX"
	default:
		return "UNKNOWN"
	}
}

// Limits bounds the classifier's structural caps (spec §4.3). Callers
// build these from rex.Config; DefaultLimits matches rex.DefaultConfig.
type Limits struct {
	MaxConcatRun     int // SIMPLE: atoms per flat concatenation (default 6)
	MaxAltBranches   int // SIMPLE: alternation branches (default 8)
	MaxGroupDepth    int // MEDIUM: nested group/alternation depth (default 4)
	MaxGroupChildren int // MEDIUM: children per group (default 5)
	SimpleStateBudget int // tie-break: DFA states a SIMPLE pattern may need (default 4096)
	MediumStateBudget int // ceiling before MEDIUM demotes to COMPLEX (default 4x SimpleStateBudget)
}

// DefaultLimits returns the limits spec.md's examples are tuned around.
func DefaultLimits() Limits {
	return Limits{
		MaxConcatRun:      6,
		MaxAltBranches:    8,
		MaxGroupDepth:     4,
		MaxGroupChildren:  5,
		SimpleStateBudget: 4096,
		MediumStateBudget: 4096 * 4,
	}
}

// Result is the classifier's verdict: the complexity tag plus the
// optimization hints extracted alongside it.
type Result struct {
	Tag   Tag
	Hints literal.Hints
}

// Classify walks root and produces a Result (spec §4.3).
func Classify(root *rast.Node, limits Limits) Result {
	tag := classifyNode(root, limits, 0)

	// Tie-break (spec §4.3): a borderline SIMPLE pattern whose estimated
	// DFA state count exceeds the budget is demoted to MEDIUM. A MEDIUM
	// pattern whose estimate blows the larger ceiling demotes further to
	// COMPLEX. This is the only place size heuristics enter.
	states := estimateStates(root)
	if tag == Simple && states > limits.SimpleStateBudget {
		tag = Medium
	}
	if tag == Medium && states > limits.MediumStateBudget {
		tag = Complex
	}

	return Result{Tag: tag, Hints: literal.Extract(root)}
}

// classifyNode classifies the top-level shape of root. depth counts
// nested Group/Alternation levels for the MEDIUM depth bound.
func classifyNode(root *rast.Node, limits Limits, depth int) Tag {
	// An unquantified group around a single node (e.g. the parentheses
	// of `(apple|banana|cherry)`) adds no structure of its own: classify
	// what it wraps, one nesting level deeper.
	if root.Kind == rast.KindGroup && !root.Quantified() && len(root.Children) == 1 {
		return classifyNode(root.Children[0], limits, depth+1)
	}

	children := stripAnchors(root)

	if isFlatSimpleRun(children, limits) {
		return Simple
	}

	if root.Kind == rast.KindAlternation {
		return classifyAlternation(root, limits, depth)
	}

	if root.Kind == rast.KindGroup {
		return classifyGroup(root, limits, depth)
	}

	// A single class/literal/wildcard atom, however quantified, is
	// always SIMPLE on its own.
	if len(children) == 1 && isSimpleAtom(children[0]) {
		return Simple
	}

	return Complex
}

// stripAnchors returns root's top-level sequence with a leading
// AnchorStart and/or trailing AnchorEnd removed — the classifier
// treats `^...$` framing as free, per spec's "optional leading ^ and
// trailing $".
func stripAnchors(root *rast.Node) []*rast.Node {
	var seq []*rast.Node
	if root.Kind == rast.KindGroup {
		seq = append(seq, root.Children...)
	} else {
		seq = append(seq, root)
	}
	if len(seq) > 0 && seq[0].Kind == rast.KindAnchorStart {
		seq = seq[1:]
	}
	if len(seq) > 0 && seq[len(seq)-1].Kind == rast.KindAnchorEnd {
		seq = seq[:len(seq)-1]
	}
	return seq
}

// isSimpleAtom reports whether n is a literal, a wildcard, or a single
// character class, with any quantifier — the atom shapes spec §4.3
// allows directly into a SIMPLE concatenation.
func isSimpleAtom(n *rast.Node) bool {
	switch n.Kind {
	case rast.KindLiteral, rast.KindClass, rast.KindWildcard:
		return true
	default:
		return false
	}
}

// isFlatSimpleRun reports whether children is a concatenation of at
// most limits.MaxConcatRun simple atoms (spec §4.3's "concatenations
// of up to a small bound of the preceding").
func isFlatSimpleRun(children []*rast.Node, limits Limits) bool {
	if len(children) == 0 || len(children) > limits.MaxConcatRun {
		return false
	}
	for _, c := range children {
		if !isSimpleAtom(c) {
			return false
		}
	}
	return true
}

// classifyAlternation applies spec §4.3's alternation rules: SIMPLE
// when every branch is a literal run or a single class and there are
// at most MaxAltBranches of them; otherwise MEDIUM when within the
// depth/children bounds or when the literal-branch ratio is high
// enough to benefit from a multi-literal DFA path; otherwise COMPLEX.
func classifyAlternation(n *rast.Node, limits Limits, depth int) Tag {
	branches := flattenAlternation(n)

	if len(branches) <= limits.MaxAltBranches && allLiteralOrClassBranches(branches) {
		return Simple
	}

	if depth >= limits.MaxGroupDepth {
		return Complex
	}

	literalBranches := 0
	for _, b := range branches {
		if isPureLiteralBranch(b) {
			literalBranches++
		}
	}
	if len(branches) > 0 && float64(literalBranches)/float64(len(branches)) >= 0.8 {
		return Medium
	}

	for _, b := range branches {
		if b.Kind == rast.KindGroup && len(b.Children) > limits.MaxGroupChildren {
			return Complex
		}
		if sub := classifyNode(b, limits, depth+1); sub == Complex {
			return Complex
		}
	}
	return Medium
}

func isPureLiteralBranch(n *rast.Node) bool {
	if n.Kind == rast.KindLiteral && n.Min == 1 && n.Max == 1 {
		return true
	}
	if n.Kind != rast.KindGroup {
		return false
	}
	for _, c := range n.Children {
		if c.Kind != rast.KindLiteral || c.Min != 1 || c.Max != 1 {
			return false
		}
	}
	return true
}

func allLiteralOrClassBranches(branches []*rast.Node) bool {
	for _, b := range branches {
		if isPureLiteralBranch(b) {
			continue
		}
		if isSimpleAtom(b) {
			continue
		}
		return false
	}
	return true
}

func flattenAlternation(n *rast.Node) []*rast.Node {
	var out []*rast.Node
	var walk func(*rast.Node)
	walk = func(n *rast.Node) {
		if n.Kind != rast.KindAlternation {
			out = append(out, n)
			return
		}
		walk(n.Children[0])
		walk(n.Children[1])
	}
	walk(n)
	return out
}

// classifyGroup classifies a top-level concatenation Group that wasn't
// already a flat SIMPLE run: look for nested groups/alternations within
// the MEDIUM depth/size bounds.
func classifyGroup(n *rast.Node, limits Limits, depth int) Tag {
	if depth >= limits.MaxGroupDepth {
		return Complex
	}
	if len(n.Children) > limits.MaxGroupChildren && len(n.Children) > limits.MaxConcatRun {
		return Complex
	}
	worst := Simple
	for _, c := range n.Children {
		var sub Tag
		switch c.Kind {
		case rast.KindGroup, rast.KindAlternation:
			sub = classifyNode(c, limits, depth+1)
		default:
			sub = Simple
		}
		if sub > worst {
			worst = sub
		}
	}
	if worst == Simple {
		// Contains nested structure that individually classified
		// SIMPLE but didn't fit the flat-run fast path (e.g. mixed
		// groups) — still not a plain SIMPLE shape, but not worse
		// than MEDIUM either.
		return Medium
	}
	return worst
}
