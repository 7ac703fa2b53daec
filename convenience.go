package rex

import "github.com/coregx/rex/hybrid"

// defaultCache backs the package-level convenience functions below,
// the process-wide optional state spec §5 allows: init-on-first-use,
// internally synchronized, and never load-bearing for correctness
// (every function here falls back to a fresh compile on a miss).
var defaultCache = hybrid.NewCache(DefaultConfig().toLimits())

// ClearCache empties the process-wide pattern cache the convenience
// functions share. Exposed for deterministic tests and long-running
// processes that want to reclaim memory after compiling many distinct
// patterns (spec §5's "must permit clearing").
func ClearCache() {
	defaultCache.Clear()
}

// Search compiles pattern (using the shared cache) and returns the
// leftmost match in text, or nil if none.
func Search(pattern string, text []byte) (*Match, error) {
	p, err := defaultCache.GetOrCompile(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return p.Search(text)
}

// FindAll compiles pattern (using the shared cache) and returns every
// leftmost, non-overlapping match in text, left to right.
func FindAll(pattern string, text []byte) ([]Match, error) {
	p, err := defaultCache.GetOrCompile(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return p.FindAll(text)
}

// MatchAtZero compiles pattern (using the shared cache) and reports
// whether it matches starting exactly at byte offset 0 of text.
func MatchAtZero(pattern string, text []byte) (*Match, error) {
	p, err := defaultCache.GetOrCompile(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return p.MatchAtZero(text)
}

// Test compiles pattern (using the shared cache) and reports whether
// text contains any match.
func Test(pattern string, text []byte) (bool, error) {
	m, err := Search(pattern, text)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// Stats compiles pattern (using the shared cache) and returns spec
// §6's diagnostic string for it.
func Stats(pattern string) (string, error) {
	p, err := defaultCache.GetOrCompile(pattern)
	if err != nil {
		return "", &CompileError{Pattern: pattern, Err: err}
	}
	return p.GetStats(), nil
}
