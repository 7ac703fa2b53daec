package hybrid

import (
	"testing"

	"github.com/coregx/rex/internal/rclass"
	"github.com/coregx/rex/literal"
)

func compileT(t *testing.T, pattern string) *Pattern {
	t.Helper()
	p, err := Compile(pattern, DefaultLimits())
	if err != nil {
		t.Fatalf("Compile(%q) = _, %v", pattern, err)
	}
	return p
}

func TestCompileSimplePicksDFA(t *testing.T) {
	p := compileT(t, `[0-9]+`)
	if p.Engine() != literal.EngineDFA {
		t.Fatalf("Engine() = %v, want DFA", p.Engine())
	}
	if p.Complexity() != rclass.Simple {
		t.Fatalf("Complexity() = %v, want SIMPLE", p.Complexity())
	}
}

func TestCompileComplexPicksNFA(t *testing.T) {
	// Nested groups beyond the MEDIUM depth cap.
	p := compileT(t, `(a(b(c(d(e)))))`)
	if p.Engine() != literal.EngineNFA {
		t.Fatalf("Engine() = %v, want NFA", p.Engine())
	}
}

func TestCompileMalformedPropagates(t *testing.T) {
	_, err := Compile(`(unclosed`, DefaultLimits())
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSearchLiteralScenarios(t *testing.T) {
	cases := []struct {
		pattern string
		text    string
		want    [][3]any
	}{
		{"hello", "hello world hello", [][3]any{{0, 5, "hello"}, {12, 17, "hello"}}},
		{"a", "banana", [][3]any{{1, 2, "a"}, {3, 4, "a"}, {5, 6, "a"}}},
		{`[0-9]+`, "abc123def456", [][3]any{{3, 6, "123"}, {9, 12, "456"}}},
	}
	for _, tc := range cases {
		p := compileT(t, tc.pattern)
		matches, err := p.FindAll([]byte(tc.text))
		if err != nil {
			t.Fatalf("FindAll(%q on %q) error: %v", tc.pattern, tc.text, err)
		}
		if len(matches) != len(tc.want) {
			t.Fatalf("pattern %q text %q: got %d matches, want %d (%v)", tc.pattern, tc.text, len(matches), len(tc.want), matches)
		}
		for i, m := range matches {
			want := tc.want[i]
			if m.Start != want[0] || m.End != want[1] || string(m.Text) != want[2] {
				t.Errorf("match[%d] = (%d,%d,%q), want (%v,%v,%v)", i, m.Start, m.End, m.Text, want[0], want[1], want[2])
			}
		}
	}
}

func TestAnchoredPatternRejectsOffsetStart(t *testing.T) {
	p := compileT(t, `^[a-z]+$`)
	if m, err := p.Search([]byte("hello")); err != nil || m == nil || m.Start != 0 || m.End != 5 {
		t.Fatalf("Search(hello) = %v, %v", m, err)
	}
	if m, err := p.Search([]byte("Hello")); err != nil || m != nil {
		t.Fatalf("Search(Hello) = %v, %v, want no match", m, err)
	}
}

func TestMatchAtZeroAgreesWithSearchStart(t *testing.T) {
	p := compileT(t, `[0-9]+`)
	text := []byte("abc123")
	if m, _ := p.MatchAtZero(text); m != nil {
		t.Fatalf("MatchAtZero(abc123) = %v, want nil", m)
	}

	text2 := []byte("123abc")
	m, err := p.MatchAtZero(text2)
	if err != nil || m == nil || m.Start != 0 {
		t.Fatalf("MatchAtZero(123abc) = %v, %v", m, err)
	}
	sm, _ := p.Search(text2)
	if sm.Start != 0 || sm.End != m.End {
		t.Fatalf("Search/MatchAtZero disagree: %v vs %v", sm, m)
	}
}

func TestAlternationScenario(t *testing.T) {
	p := compileT(t, `(apple|banana|cherry)`)
	matches, err := p.FindAll([]byte("I like apple and banana"))
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		s, e int
		text string
	}{{7, 12, "apple"}, {17, 23, "banana"}}
	if len(matches) != len(want) {
		t.Fatalf("got %d matches, want %d: %v", len(matches), len(want), matches)
	}
	for i, m := range matches {
		if m.Start != want[i].s || m.End != want[i].e || string(m.Text) != want[i].text {
			t.Errorf("match[%d] = %v, want %v", i, m, want[i])
		}
	}
}

func TestGetStatsFormat(t *testing.T) {
	p := compileT(t, `abc`)
	stats := p.GetStats()
	if stats == "" {
		t.Fatal("GetStats returned empty string")
	}
}

func TestDFAAndNFAAgreeOnSimplePatterns(t *testing.T) {
	patterns := []string{`[0-9]+`, `hello`, `[a-z]{3,5}`, `a|b|c`}
	texts := []string{"abc123def", "hello world", "xyzabcde", "xayzbyc"}

	limitsDFAOnly := DefaultLimits()
	limitsNFAOnly := DefaultLimits()
	limitsNFAOnly.EnableDFA = false

	for _, pattern := range patterns {
		dfaP, err := Compile(pattern, limitsDFAOnly)
		if err != nil {
			t.Fatal(err)
		}
		nfaP, err := Compile(pattern, limitsNFAOnly)
		if err != nil {
			t.Fatal(err)
		}
		if dfaP.Engine() != literal.EngineDFA {
			t.Skipf("pattern %q did not compile to DFA, skipping agreement check", pattern)
		}
		for _, text := range texts {
			dm, derr := dfaP.FindAll([]byte(text))
			nm, nerr := nfaP.FindAll([]byte(text))
			if derr != nil || nerr != nil {
				t.Fatalf("pattern %q text %q: dfa err=%v nfa err=%v", pattern, text, derr, nerr)
			}
			if len(dm) != len(nm) {
				t.Fatalf("pattern %q text %q: dfa=%v nfa=%v", pattern, text, dm, nm)
			}
			for i := range dm {
				if dm[i].Start != nm[i].Start || dm[i].End != nm[i].End {
					t.Errorf("pattern %q text %q match[%d]: dfa=%v nfa=%v", pattern, text, i, dm[i], nm[i])
				}
			}
		}
	}
}
