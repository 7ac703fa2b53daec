// Package dfa implements the DFA compiler and executor (spec §4.7,
// §4.8, §4.11): a Thompson-style NFA construction over a SIMPLE
// pattern AST, determinized by subset construction into a dense
// transition table, bounded by a state budget. Grounded on the
// teacher's dfa/onepass package's table-and-builder split
// (onepass.go/builder.go), generalized here from one-pass
// anchored-only matching to full unanchored greedy search.
package dfa

import "github.com/coregx/rex/simd"

// DeadState marks a transition that can never reach an accepting
// state; the executor stops advancing a start position the moment it
// lands here.
const DeadState int32 = -1

// Table is a compiled DFA: a dense state-by-byte transition table plus
// the flags and per-state SIMD matchers the executor needs (spec
// §4.11).
type Table struct {
	// Transitions[state][b] is the next state on input byte b.
	Transitions [][256]int32
	// Accept[state] reports whether state is an accepting state.
	Accept []bool

	// ClassMatchers[state], when non-nil, is a SIMD matcher for the
	// byte class on which state loops back to itself (its only non-dead
	// transitions) — the executor uses it to bulk-skip a run of matching bytes instead of
	// stepping one transition at a time (spec §4.8's "vectorized
	// scanning to find the first non-member byte").
	ClassMatchers []*simd.ClassMatcher

	AnchoredStart bool
	AnchoredEnd   bool

	StartState int32
}

// NumStates returns the number of states in the table.
func (t *Table) NumStates() int { return len(t.Transitions) }
