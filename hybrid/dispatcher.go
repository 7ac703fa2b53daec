// Package hybrid implements the hybrid dispatcher (spec §4.10): it owns
// both the DFA and NFA engines for one compiled pattern, picks one at
// compile time based on the classifier's verdict, and falls back to
// the NFA when DFA construction fails. It exposes the three match_at_zero
// /search/find_all operations spec §6 names and records which engine it
// chose so callers can inspect it (spec's GetStats).
//
// Grounded on the teacher's meta package: meta.Engine plays the same
// "own every strategy, pick one at compile time, delegate" role over
// meta's three strategies (prefilter/lazy-DFA/NFA); this package narrows
// that down to the two strategies this core's spec defines.
package hybrid

import (
	"fmt"

	"github.com/coregx/rex/dfa"
	"github.com/coregx/rex/internal/rast"
	"github.com/coregx/rex/internal/rclass"
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/nfa"
)

// Limits aggregates every sub-engine's tunable bounds (spec §4.3's,
// §4.7's and §4.9's Limits types), plus the two dispatcher-level knobs
// spec §9/§4.10 call out directly: whether to attempt DFA compilation
// at all, and the best-literal length from which the pattern's hints
// report BenefitsFromSIMD.
type Limits struct {
	Classify      rclass.Limits
	DFA           dfa.Limits
	NFA           nfa.Limits
	EnableDFA     bool
	MinLiteralLen int
}

// DefaultLimits returns the bounds spec.md's examples are tuned
// around, matching rex.DefaultConfig.
func DefaultLimits() Limits {
	return Limits{
		Classify:      rclass.DefaultLimits(),
		DFA:           dfa.DefaultLimits(),
		NFA:           nfa.DefaultLimits(),
		EnableDFA:     true,
		MinLiteralLen: 2,
	}
}

// Match is the spec §3 Match record: a half-open byte-offset span into
// the input, plus the matched bytes themselves (a slice into the
// caller's input, never copied).
type Match struct {
	Start int
	End   int
	Text  []byte
}

// Bytes returns the matched substring.
func (m Match) Bytes() []byte { return m.Text }

// Pattern is a compiled pattern: the AST, the classifier's verdict,
// the literal hints, and exactly one live engine (spec §3's Compiled
// pattern — "exactly one DFA table OR one NFA program"). It is
// immutable after Compile returns and safe to share and match against
// concurrently (spec §5).
type Pattern struct {
	source     string
	root       *rast.Node
	groupCount uint32

	tag   rclass.Tag
	hints literal.Hints

	dfaTable   *dfa.Table
	nfaMatcher *nfa.Matcher
	engine     literal.Engine
}

// Compile parses pattern, classifies it, and builds whichever engine
// the classifier and limits select (spec §4.10): DFA for SIMPLE
// patterns, and for MEDIUM patterns the literal hints already flag as
// DFA-friendly; NFA otherwise, and as the fallback whenever DFA
// construction fails. Parse errors (spec's MalformedPattern) are the
// only error Compile can return — DFA compile failures are recovered
// internally, never surfaced.
func Compile(pattern string, limits Limits) (*Pattern, error) {
	root, groupCount, err := rast.Parse(pattern)
	if err != nil {
		return nil, err
	}

	result := rclass.Classify(root, limits.Classify)
	// Apply the configured literal floor in place of the extractor's
	// built-in one.
	best := result.Hints.GetBestLiteral(literal.CollectAll(root))
	result.Hints.BenefitsFromSIMD = len(best) >= limits.MinLiteralLen

	p := &Pattern{
		source:     pattern,
		root:       root,
		groupCount: groupCount,
		tag:        result.Tag,
		hints:      result.Hints,
	}

	if limits.EnableDFA && shouldAttemptDFA(result.Tag, result.Hints) {
		if table, cerr := dfa.Compile(root, limits.DFA); cerr == nil {
			p.dfaTable = table
			p.engine = literal.EngineDFA
			return p, nil
		}
		// Compile failure (state budget or unsupported construct):
		// fall through to the NFA, per spec §4.10/§4.12.
	}

	p.nfaMatcher = nfa.New(root, result.Hints, limits.NFA)
	p.engine = literal.EngineNFA
	return p, nil
}

// shouldAttemptDFA reports whether the dispatcher should try compiling
// a DFA at all (spec §4.10: "try to compile DFA when SIMPLE or when
// classifier recommends DFA-for-MEDIUM"). MEDIUM patterns the literal
// extractor already marked as prefix/required-literal-friendly are
// usually DFA-shaped concatenations the classifier demoted only for
// the state-budget tie-break — worth trying before paying for NFA
// recursion; EngineHybrid-tagged MEDIUM patterns (wide literal
// alternations) are not, since those need the NFA's Aho-Corasick
// acceleration (package nfa) rather than a DFA.
func shouldAttemptDFA(tag rclass.Tag, hints literal.Hints) bool {
	if tag == rclass.Simple {
		return true
	}
	return tag == rclass.Medium && hints.SuggestedEngine == literal.EngineDFA
}

// MatchAtZero implements spec §6's match_at_zero: Some(m) iff the
// pattern matches starting exactly at position 0.
func (p *Pattern) MatchAtZero(text []byte) (*Match, error) {
	if p.dfaTable != nil {
		end, ok := p.dfaTable.MatchAt(text, 0)
		if !ok {
			return nil, nil
		}
		return &Match{Start: 0, End: end, Text: text[0:end]}, nil
	}

	end, ok, err := p.nfaMatcher.MatchAt(text, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &Match{Start: 0, End: end, Text: text[0:end]}, nil
}

// Search implements spec §6's search: the leftmost match at any start
// position, or nil if none exists. err is non-nil only for
// PatternTooComplex (NFA recursion/backtracking budget exceeded).
func (p *Pattern) Search(text []byte) (*Match, error) {
	return p.searchFrom(text, 0)
}

func (p *Pattern) searchFrom(text []byte, start int) (*Match, error) {
	if p.dfaTable != nil {
		ms, me, ok := p.dfaTable.Search(text, start)
		if !ok {
			return nil, nil
		}
		return &Match{Start: ms, End: me, Text: text[ms:me]}, nil
	}

	ms, me, ok, err := p.nfaMatcher.Search(text, start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &Match{Start: ms, End: me, Text: text[ms:me]}, nil
}

// FindAll implements spec §6's find_all: every leftmost, non-overlapping
// match, left to right (spec §4.8/§4.9's shared advance-by-max(len,1)
// ordering rule).
func (p *Pattern) FindAll(text []byte) ([]Match, error) {
	if p.dfaTable != nil {
		pairs := p.dfaTable.FindAll(text)
		return pairsToMatches(pairs, text), nil
	}

	pairs, err := p.nfaMatcher.FindAll(text)
	if err != nil {
		return nil, err
	}
	return pairsToMatches(pairs, text), nil
}

func pairsToMatches(pairs [][2]int, text []byte) []Match {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]Match, len(pairs))
	for i, pr := range pairs {
		out[i] = Match{Start: pr[0], End: pr[1], Text: text[pr[0]:pr[1]]}
	}
	return out
}

// Engine reports which engine this pattern actually runs on.
func (p *Pattern) Engine() literal.Engine { return p.engine }

// Complexity reports the classifier's verdict for this pattern.
func (p *Pattern) Complexity() rclass.Tag { return p.tag }

// NumGroups returns the number of capturing groups the parser assigned.
// The core does not extract capture text (spec's Non-goals), but group
// counting is a cheap, already-available diagnostic.
func (p *Pattern) NumGroups() uint32 { return p.groupCount }

// String returns the original pattern source.
func (p *Pattern) String() string { return p.source }

// GetStats implements spec §6's diagnostic surface: a human-readable
// (pattern, engine_type, complexity) string for tests and benchmarks.
func (p *Pattern) GetStats() string {
	return fmt.Sprintf("pattern=%q engine=%s complexity=%s", p.source, p.engine, p.tag)
}
