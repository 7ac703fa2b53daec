package literal

import "github.com/coregx/rex/internal/rast"

// isPlainLiteral reports whether n is a single, unquantified literal
// byte node — the only node shape that can be merged into a contiguous
// literal run.
func isPlainLiteral(n *rast.Node) bool {
	return n.Kind == rast.KindLiteral && n.Min == 1 && n.Max == 1
}

// sequence returns the ordered child list a concatenation-shaped node
// presents: a Group's Children, or the single node itself for anything
// else (so callers can treat a bare atom root the same as a one-child
// Group).
func sequence(n *rast.Node) []*rast.Node {
	if n.Kind == rast.KindGroup {
		return n.Children
	}
	return []*rast.Node{n}
}

// Extract builds the Optimization hints record for root (spec §4.6).
func Extract(root *rast.Node) Hints {
	var h Hints

	prefix := extractPrefix(root)
	if len(prefix) > 0 {
		h.HasLiteralPrefix = true
		h.LiteralPrefix = prefix
	}

	required := longestRequiredRun(root, true)
	if len(required) > 0 {
		h.HasRequiredLiteral = true
		h.RequiredLiteral = required
	}

	if root.Kind == rast.KindAlternation {
		multi, allPure := flattenAlternationLiterals(root)
		if allPure {
			h.MultiLiteral = multi
		} else if !h.HasLiteralPrefix {
			// Not every branch is a pure literal run: fall back to the
			// longest common prefix across branches, if substantial
			// enough to bother prefiltering on (spec §4.6's "take the
			// longest common prefix across branches if >= 3 bytes").
			var branches []*rast.Node
			collectAltBranches(root, &branches)
			var literals [][]byte
			for _, b := range branches {
				literals = append(literals, leadingLiteralRun(b))
			}
			if common := CommonPrefix(literals); len(common) >= 3 {
				h.HasLiteralPrefix = true
				h.LiteralPrefix = common
			}
		}
	}

	best := h.GetBestLiteral(CollectAll(root))
	h.BenefitsFromSIMD = len(best) >= 2
	switch {
	case len(h.MultiLiteral) >= 2:
		h.SuggestedEngine = EngineHybrid
	case h.HasRequiredLiteral || h.HasLiteralPrefix:
		h.SuggestedEngine = EngineDFA
	default:
		h.SuggestedEngine = EngineNFA
	}

	return h
}

// leadingLiteralRun collects n's own leading run of unquantified
// literal bytes, stopping at the first non-literal child — used to
// build a per-branch prefix for CommonPrefix when an alternation's
// branches aren't all pure literal runs (spec §4.6).
func leadingLiteralRun(n *rast.Node) []byte {
	var out []byte
	for _, c := range sequence(n) {
		if !isPlainLiteral(c) {
			break
		}
		out = append(out, c.Byte)
	}
	return out
}

// extractPrefix collects the leading run of unquantified literal nodes
// at the root of the pattern, skipping a leading '^' anchor (it is
// zero-width and doesn't break the prefix). A root that may match zero
// times has no prefix.
func extractPrefix(root *rast.Node) []byte {
	if root.Min == 0 {
		return nil
	}
	children := sequence(root)
	var out []byte
	for i, c := range children {
		if i == 0 && c.Kind == rast.KindAnchorStart {
			continue
		}
		if !isPlainLiteral(c) {
			break
		}
		out = append(out, c.Byte)
	}
	return out
}

// longestRequiredRun walks n looking for the longest contiguous literal
// run that every successful match is guaranteed to contain: runs never
// cross an Alternation boundary (one branch may omit it) and never
// include a subtree whose own quantifier allows zero occurrences.
// mandatory is false when n itself sits behind a Min==0 quantifier or
// inside an alternation branch (so it must not contribute upward).
func longestRequiredRun(n *rast.Node, mandatory bool) []byte {
	if !mandatory || n.Min == 0 {
		return nil
	}

	switch n.Kind {
	case rast.KindAlternation:
		// An alternation's own children never count as "required" for
		// the parent (either branch could have been taken instead);
		// only look inside if this very node is itself a chain link,
		// which longestRequiredRun never is for Alternation — nothing
		// to contribute.
		return nil
	case rast.KindGroup:
		var best, run []byte
		flush := func() {
			if len(run) > len(best) {
				best = append([]byte(nil), run...)
			}
			run = nil
		}
		for _, c := range n.Children {
			if isPlainLiteral(c) {
				run = append(run, c.Byte)
				continue
			}
			flush()
			if sub := longestRequiredRun(c, c.Min >= 1); len(sub) > len(best) {
				best = sub
			}
		}
		flush()
		return best
	default:
		if isPlainLiteral(n) {
			return []byte{n.Byte}
		}
		return nil
	}
}

// flattenAlternationLiterals walks a right-leaning Alternation chain
// and, if every branch is a pure run of unquantified literals (or a
// single literal), returns one byte slice per branch plus true. If any
// branch isn't a pure literal run, it returns (nil, false) — the
// classifier falls back to the longest-common-prefix rule in that case
// (see CommonPrefix).
func flattenAlternationLiterals(n *rast.Node) ([][]byte, bool) {
	var branches []*rast.Node
	collectAltBranches(n, &branches)

	out := make([][]byte, 0, len(branches))
	for _, b := range branches {
		lit, ok := pureLiteralRun(b)
		if !ok {
			return nil, false
		}
		out = append(out, lit)
	}
	return out, true
}

func collectAltBranches(n *rast.Node, out *[]*rast.Node) {
	if n.Kind != rast.KindAlternation {
		*out = append(*out, n)
		return
	}
	collectAltBranches(n.Children[0], out)
	collectAltBranches(n.Children[1], out)
}

// pureLiteralRun reports whether n is entirely made of unquantified
// literal bytes — a bare literal, or a Group of nothing but.
func pureLiteralRun(n *rast.Node) ([]byte, bool) {
	if isPlainLiteral(n) {
		return []byte{n.Byte}, true
	}
	if n.Kind != rast.KindGroup {
		return nil, false
	}
	if len(n.Children) == 0 {
		return []byte{}, true
	}
	out := make([]byte, 0, len(n.Children))
	for _, c := range n.Children {
		if !isPlainLiteral(c) {
			return nil, false
		}
		out = append(out, c.Byte)
	}
	return out, true
}

// CommonPrefix returns the longest common byte prefix shared by every
// branch of branches.
func CommonPrefix(branches [][]byte) []byte {
	if len(branches) == 0 {
		return nil
	}
	prefix := branches[0]
	for _, b := range branches[1:] {
		n := len(prefix)
		if len(b) < n {
			n = len(b)
		}
		i := 0
		for i < n && prefix[i] == b[i] {
			i++
		}
		prefix = prefix[:i]
		if len(prefix) == 0 {
			break
		}
	}
	out := make([]byte, len(prefix))
	copy(out, prefix)
	return out
}

// CollectAll returns every literal run anywhere in the tree, with no
// guarantees about whether it's mandatory, a prefix, or guarded by an
// alternation — the last-resort source for GetBestLiteral.
func CollectAll(n *rast.Node) [][]byte {
	var out [][]byte
	var run []byte
	flush := func() {
		if len(run) > 0 {
			out = append(out, run)
			run = nil
		}
	}

	var walk func(*rast.Node)
	walk = func(n *rast.Node) {
		switch n.Kind {
		case rast.KindGroup:
			for _, c := range n.Children {
				if isPlainLiteral(c) {
					run = append(run, c.Byte)
					continue
				}
				flush()
				walk(c)
			}
			flush()
		case rast.KindAlternation:
			flush()
			walk(n.Children[0])
			walk(n.Children[1])
		default:
			if isPlainLiteral(n) {
				run = append(run, n.Byte)
			}
			flush()
		}
	}
	walk(n)
	flush()
	return out
}
