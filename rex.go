// Package rex is a hybrid DFA/NFA regular-expression engine: patterns
// that admit a bounded deterministic automaton run on an O(n) DFA,
// everything else runs on a backtracking NFA, and both share SIMD byte
// scanning and literal-prefix optimization. See SPEC_FULL.md for the
// full subsystem breakdown.
//
// Basic usage:
//
//	re, err := rex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.Test([]byte("call 555-1234 now")) {
//	    fmt.Println("matched!")
//	}
//
// Supported syntax (spec §6): literals, `.`, `^`, `$`, `[...]`,
// `[^...]`, ranges, `\s` `\d` `\w`, escapes, `|`, `(...)`, `(?:...)`,
// `?`, `*`, `+`, `{n}`, `{n,}`, `{,m}`, `{n,m}`. Not supported: Unicode
// properties, lookaround, backreferences, lazy/possessive quantifiers,
// named capture extraction, case-insensitive and multiline modes,
// replace/split.
package rex

import "github.com/coregx/rex/hybrid"

// Match is a single match: a half-open byte-offset span into the
// input text plus the matched bytes (spec §3's Match record).
type Match = hybrid.Match

// Regex is a compiled pattern. It is immutable after Compile returns
// and safe to use concurrently from multiple goroutines (spec §5).
type Regex struct {
	pattern *hybrid.Pattern
}

// Compile compiles pattern with DefaultConfig. Syntax is the subset
// spec §6 documents; Non-goals (Unicode classes, lookaround,
// backreferences, lazy/possessive quantifiers) are rejected at parse
// time as *rex.CompileError wrapping a *rast.ParseError.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics on error. Intended for
// patterns known to be valid at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// CompileWithConfig compiles pattern under a caller-supplied Config,
// tuning the classifier's structural caps, the DFA state budget, and
// the NFA recursion limit.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := hybrid.Compile(pattern, cfg.toLimits())
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return &Regex{pattern: p}, nil
}

// MatchAtZero implements spec §6's match_at_zero: a non-nil Match iff
// the pattern matches starting exactly at byte offset 0.
func (r *Regex) MatchAtZero(text []byte) (*Match, error) {
	return r.pattern.MatchAtZero(text)
}

// Search implements spec §6's search: the leftmost match anywhere in
// text, or nil if none exists.
func (r *Regex) Search(text []byte) (*Match, error) {
	return r.pattern.Search(text)
}

// FindAll implements spec §6's find_all: every leftmost,
// non-overlapping match, left to right, with strictly increasing
// start positions (spec §8 property 2).
func (r *Regex) FindAll(text []byte) ([]Match, error) {
	return r.pattern.FindAll(text)
}

// Test reports whether text contains any match. It swallows
// *PatternTooComplexError as "no match" — callers that need to
// distinguish the two should call Search directly.
func (r *Regex) Test(text []byte) bool {
	m, err := r.pattern.Search(text)
	return err == nil && m != nil
}

// GetStats returns spec §6's diagnostic string: pattern, chosen
// engine, and classifier complexity tag.
func (r *Regex) GetStats() string {
	return r.pattern.GetStats()
}

// String returns the original pattern source.
func (r *Regex) String() string {
	return r.pattern.String()
}

// NumSubexp returns the number of capturing groups the parser
// assigned. The core does not extract capture text (a Non-goal);
// group counting is exposed because it's already available and
// useful for diagnostics.
func (r *Regex) NumSubexp() int {
	return int(r.pattern.NumGroups())
}
