package nfa

import (
	"bytes"

	"github.com/coregx/rex/internal/rast"
	ahocorasick "github.com/itgcl/ahocorasick"
)

// altAccelerationThreshold caps how many literal branches the plain try-each
// backtracking path handles before switching to the Aho-Corasick
// prefilter, mirroring dfa's SIMPLE branch cap (spec §4.3's ≤8,
// extended here to the MEDIUM "mostly literal" alternations that
// don't fit in the DFA but still benefit).
const altAccelerationThreshold = 8

// alternationMatcher accelerates a wide, mostly-literal alternation:
// Contains gives an O(n) answer to "could any branch possibly start in
// this window" before paying the O(k) cost of checking each branch's
// literal against the text individually (spec's "O(n) multi-literal
// dispatch instead of trying each branch in turn").
type alternationMatcher struct {
	branches []*rast.Node
	literals [][]byte
	maxLen   int
	ac       *ahocorasick.Matcher
}

// buildAlternationMatcher returns an accelerated matcher for branches
// when every branch is a plain literal run and there are more branches
// than altAccelerationThreshold; otherwise it returns nil so the
// caller falls back to ordinary binary alternation recursion.
func buildAlternationMatcher(branches []*rast.Node) *alternationMatcher {
	if len(branches) <= altAccelerationThreshold {
		return nil
	}
	literals := make([][]byte, len(branches))
	maxLen := 0
	for i, b := range branches {
		lit, ok := pureLiteralBytes(b)
		if !ok {
			return nil
		}
		literals[i] = lit
		if len(lit) > maxLen {
			maxLen = len(lit)
		}
	}
	return &alternationMatcher{
		branches: branches,
		literals: literals,
		maxLen:   maxLen,
		ac:       ahocorasick.NewMatcher(literals),
	}
}

// pureLiteralBytes extracts the literal byte string a branch
// represents if it is a Literal atom or an unquantified Group of
// Literal atoms; otherwise ok is false.
func pureLiteralBytes(n *rast.Node) ([]byte, bool) {
	if n.Kind == rast.KindLiteral && n.Min == 1 && n.Max == 1 {
		return []byte{n.Byte}, true
	}
	if n.Kind != rast.KindGroup || n.Quantified() {
		return nil, false
	}
	var out []byte
	for _, c := range n.Children {
		if c.Kind != rast.KindLiteral || c.Min != 1 || c.Max != 1 {
			return nil, false
		}
		out = append(out, c.Byte)
	}
	return out, true
}

// MatchingBranches returns the indices, in declared left-to-right
// order, of every branch whose literal is a prefix of text[pos:]. It
// returns nil immediately (without checking any individual branch)
// when the Aho-Corasick prefilter finds no branch literal anywhere in
// the bounded window ahead of pos.
func (a *alternationMatcher) MatchingBranches(text []byte, pos int) []int {
	end := pos + a.maxLen
	if end > len(text) {
		end = len(text)
	}
	if pos >= end || !a.ac.Contains(text[pos:end]) {
		return nil
	}
	var out []int
	rest := text[pos:]
	for i, lit := range a.literals {
		if bytes.HasPrefix(rest, lit) {
			out = append(out, i)
		}
	}
	return out
}
