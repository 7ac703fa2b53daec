package nfa

import "github.com/coregx/rex/internal/rast"

// Limits bounds the backtracking matcher (spec §4.9, §4.12).
type Limits struct {
	MaxDepth    int // recursion depth cap
	MaxAttempts int // total backtracking attempts cap (VisitedSet)
}

// DefaultLimits matches the depth/attempt budgets spec.md's "a few
// thousand frames" guidance.
func DefaultLimits() Limits {
	return Limits{MaxDepth: 4096, MaxAttempts: 2_000_000}
}

// cont is one link of the explicit continuation chain match_at walks
// (spec §4.9's conceptual "k" parameter): "match node, then match
// whatever next points to". A nil *cont means "nothing left to match —
// succeed". This is a plain linked list built on demand rather than a
// captured closure, so the matcher's call graph stays a single
// recursive function instead of a tree of ad hoc closures.
type cont struct {
	node *rast.Node
	next *cont
}

// matcher holds the per-call state a single top-level match attempt
// needs: the alternation accelerators built once for the pattern, and
// the depth/attempt guards for this attempt.
type matcher struct {
	limits     Limits
	alt        map[*rast.Node]*alternationMatcher
	visited    *VisitedSet
	tooComplex bool
	complexWhy string
}

// newMatcher builds a matcher for root, precomputing an
// alternationMatcher for every Alternation node whose flattened
// branch set qualifies (spec's MEDIUM "mostly literal" alternations).
func newMatcher(root *rast.Node, limits Limits) *matcher {
	m := &matcher{
		limits:  limits,
		alt:     make(map[*rast.Node]*alternationMatcher),
		visited: NewVisitedSet(limits.MaxAttempts),
	}
	m.indexAlternations(root)
	return m
}

func (m *matcher) indexAlternations(n *rast.Node) {
	switch n.Kind {
	case rast.KindAlternation:
		branches := flattenAlternation(n)
		if am := buildAlternationMatcher(branches); am != nil {
			m.alt[n] = am
		}
		for _, b := range branches {
			m.indexAlternations(b)
		}
	case rast.KindGroup:
		for _, c := range n.Children {
			m.indexAlternations(c)
		}
	}
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

// matchAt implements spec §4.9's match_at: it tries to match k's node
// at pos, then continue with k.next, returning the end position of a
// full match of the continuation chain, or ok=false.
func (m *matcher) matchAt(k *cont, text []byte, pos, depth int) (int, bool) {
	if depth > m.limits.MaxDepth {
		m.tooComplex = true
		m.complexWhy = "recursion depth exceeded"
		return 0, false
	}
	if k == nil {
		return pos, true
	}
	n := k.node

	if n.Quantified() {
		return m.matchQuantified(n, k.next, text, pos, depth+1)
	}

	switch n.Kind {
	case rast.KindLiteral:
		if pos < len(text) && text[pos] == n.Byte {
			return m.matchAt(k.next, text, pos+1, depth+1)
		}
		return 0, false

	case rast.KindClass:
		if pos < len(text) && n.Class.Contains(text[pos]) {
			return m.matchAt(k.next, text, pos+1, depth+1)
		}
		return 0, false

	case rast.KindWildcard:
		if pos < len(text) && text[pos] != '\n' {
			return m.matchAt(k.next, text, pos+1, depth+1)
		}
		return 0, false

	case rast.KindAnchorStart:
		if pos == 0 {
			return m.matchAt(k.next, text, pos, depth+1)
		}
		return 0, false

	case rast.KindAnchorEnd:
		if pos == len(text) {
			return m.matchAt(k.next, text, pos, depth+1)
		}
		return 0, false

	case rast.KindGroup:
		chain := k.next
		for i := len(n.Children) - 1; i >= 0; i-- {
			chain = &cont{n.Children[i], chain}
		}
		return m.matchAt(chain, text, pos, depth+1)

	case rast.KindAlternation:
		if !m.visited.Enter(n, pos) {
			m.tooComplex = true
			m.complexWhy = "backtracking attempt budget exceeded"
			return 0, false
		}
		if am, ok := m.alt[n]; ok {
			for _, idx := range am.MatchingBranches(text, pos) {
				if end, ok := m.matchAt(&cont{am.branches[idx], k.next}, text, pos, depth+1); ok {
					return end, true
				}
			}
			return 0, false
		}
		branches := flattenAlternation(n)
		for _, b := range branches {
			if end, ok := m.matchAt(&cont{b, k.next}, text, pos, depth+1); ok {
				return end, true
			}
		}
		return 0, false

	default:
		return 0, false
	}
}

// matchQuantified implements spec §4.9's greedy unroll-then-peel-back
// quantifier handling, generalized across every node kind since the
// quantifier lives on the node itself: attempt as many occurrences of
// node (ignoring its own quantifier) as allowed, then peel back one at
// a time, trying tail at each candidate position, until tail succeeds
// or the occurrence count drops below node.Min.
func (m *matcher) matchQuantified(node *rast.Node, tail *cont, text []byte, pos, depth int) (int, bool) {
	once := *node
	once.Min, once.Max = 1, 1

	// Cap the occurrence count by how much input remains rather than by
	// node.Max directly: a single non-zero-width occurrence consumes at
	// least one byte, so no more than len(text)-pos+1 of them can ever
	// succeed. Without this, a large bounded quantifier like
	// a{100000000} against a short text would pre-size positions for up
	// to node.Max occurrences before the backtracking budget gets a
	// chance to fire.
	max := node.Max
	if textCap := uint64(len(text)-pos) + 1; uint64(max) > textCap {
		max = uint32(textCap)
	}

	positions := make([]int, 1, max+1)
	positions[0] = pos
	cur := pos
	var count uint32
	for count < max {
		if !m.visited.Enter(&once, cur) {
			m.tooComplex = true
			m.complexWhy = "backtracking attempt budget exceeded"
			return 0, false
		}
		next, ok := m.matchAt(&cont{&once, nil}, text, cur, depth+1)
		if !ok {
			break
		}
		zeroWidth := next == cur
		cur = next
		count++
		positions = append(positions, cur)
		if zeroWidth {
			break
		}
	}
	if count < node.Min {
		return 0, false
	}

	for i := len(positions) - 1; i >= int(node.Min); i-- {
		if end, ok := m.matchAt(tail, text, positions[i], depth+1); ok {
			return end, true
		}
	}
	return 0, false
}
