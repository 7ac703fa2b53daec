package nfa

import "github.com/coregx/rex/internal/rast"

// VisitedSet is a bounded-backtracking guard: a circuit breaker, not a
// memoization cache. It does not skip re-attempting a (node, position)
// pair once seen — doing that while ignoring the continuation would
// risk silently missing legitimate matches reachable through a
// different continuation — it only counts total attempts and, once
// the budget is exhausted, fails the match with PatternTooComplexError
// instead of continuing to backtrack without bound (spec §4.9's
// recursion/complexity budget, extended to bound total work rather
// than only stack depth).
type VisitedSet struct {
	attempts int
	limit    int
}

// NewVisitedSet builds a guard that allows at most limit total
// backtracking attempts across one top-level match call.
func NewVisitedSet(limit int) *VisitedSet {
	return &VisitedSet{limit: limit}
}

// Enter records one attempt at (node, pos) and reports whether the
// matcher may proceed with it.
func (v *VisitedSet) Enter(node *rast.Node, pos int) bool {
	v.attempts++
	return v.attempts <= v.limit
}
