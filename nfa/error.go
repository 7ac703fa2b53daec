// Package nfa implements the backtracking matcher (spec §4.9): a
// recursive descent over the AST driven by an explicit continuation
// chain (rather than Go closures) and a child-index-free cursor, so
// recursion depth and total backtracking work are both visible and
// boundable. Grounded on the teacher's nfa package's PikeVM-style
// explicit-state-machine approach to avoiding native call-stack
// recursion, adapted here to a continuation-linked-list shape that
// still recurses (bounded) rather than running a Thompson VM, since
// this core does not build a Thompson program for the NFA tier.
package nfa

import "fmt"

// PatternTooComplexError is returned when a match attempt exceeds the
// matcher's recursion depth or total backtracking work budget (spec
// §4.9's "recursion budget ... to prevent stack overflow on
// pathological patterns", §4.12).
type PatternTooComplexError struct {
	Reason string
	Limit  int
}

func (e *PatternTooComplexError) Error() string {
	return fmt.Sprintf("nfa: pattern too complex: %s (limit %d)", e.Reason, e.Limit)
}
