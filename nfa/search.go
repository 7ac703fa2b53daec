package nfa

import (
	"github.com/coregx/rex/internal/rast"
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/simd"
)

// Matcher is a compiled backtracking matcher for one pattern (spec
// §4.9). It is safe for concurrent use: each Search/FindAll call
// builds its own per-attempt matcher state.
type Matcher struct {
	root   *rast.Node
	hints  literal.Hints
	limits Limits
}

// New builds a Matcher over root. hints comes from package literal's
// extractor and guides the outer search loop: a literal prefix moves
// the start position straight to each occurrence of the prefix, while
// a required literal that is not a prefix never moves the start
// position — it only ends the search early once it no longer occurs
// at or after the current start.
func New(root *rast.Node, hints literal.Hints, limits Limits) *Matcher {
	return &Matcher{root: root, hints: hints, limits: limits}
}

// Search finds the first match at or after start, scanning left to
// right. It returns the match bounds, or ok=false if none exists, or a
// non-nil error (always *PatternTooComplexError) if a match attempt
// exhausted its recursion depth or backtracking budget.
func (m *Matcher) Search(text []byte, start int) (matchStart, matchEnd int, ok bool, err error) {
	// A literal *prefix* must begin exactly where the match begins, so
	// the outer loop can jump sp directly to each candidate (spec's
	// "jump pos to each candidate position, skipping regions that
	// cannot contain the match"). A merely *required* literal can
	// occur anywhere inside the match, so it only justifies an early
	// dead-zone bailout — jumping sp to its position would skip valid
	// earlier start candidates whose match region extends up to that
	// literal.
	usePrefixJump := m.hints.HasLiteralPrefix && len(m.hints.LiteralPrefix) > 0
	prefix := m.hints.LiteralPrefix
	required := m.hints.GetBestLiteral(nil)

	sp := start
	for sp <= len(text) {
		if usePrefixJump {
			jump, found := simd.Search(prefix, text, sp)
			if !found {
				return 0, 0, false, nil
			}
			sp = jump
		} else if len(required) > 0 {
			if _, found := simd.Search(required, text, sp); !found {
				return 0, 0, false, nil
			}
		}

		mm := newMatcher(m.root, m.limits)
		end, matched := mm.matchAt(&cont{m.root, nil}, text, sp, 0)
		if mm.tooComplex {
			return 0, 0, false, &PatternTooComplexError{Reason: mm.complexWhy, Limit: m.limits.MaxDepth}
		}
		if matched {
			return sp, end, true, nil
		}
		sp++
	}
	return 0, 0, false, nil
}

// MatchAt attempts a single match anchored at exactly pos, with no
// outer scan and no literal-guided jump — the primitive package
// hybrid's match-at-zero operation needs, since spec §6's
// match_at_zero only ever tries position 0.
func (m *Matcher) MatchAt(text []byte, pos int) (end int, ok bool, err error) {
	mm := newMatcher(m.root, m.limits)
	end, matched := mm.matchAt(&cont{m.root, nil}, text, pos, 0)
	if mm.tooComplex {
		return 0, false, &PatternTooComplexError{Reason: mm.complexWhy, Limit: m.limits.MaxDepth}
	}
	return end, matched, nil
}

// FindAll returns every non-overlapping match in text, advancing by
// max(matchLength, 1) after each hit (spec §4.8/§4.9's shared
// ordering rule).
func (m *Matcher) FindAll(text []byte) ([][2]int, error) {
	var out [][2]int
	pos := 0
	for pos <= len(text) {
		ms, me, ok, err := m.Search(text, pos)
		if err != nil {
			return out, err
		}
		if !ok {
			break
		}
		out = append(out, [2]int{ms, me})
		l := me - ms
		if l < 1 {
			l = 1
		}
		pos = ms + l
	}
	return out, nil
}
