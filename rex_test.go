package rex

import "testing"

func TestCompileAndSearchBasic(t *testing.T) {
	re, err := Compile(`hello`)
	if err != nil {
		t.Fatal(err)
	}
	if !re.Test([]byte("hello world")) {
		t.Fatal("expected match")
	}
	if re.Test([]byte("goodbye")) {
		t.Fatal("expected no match")
	}
}

func TestMustCompilePanicsOnMalformed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on malformed pattern")
		}
	}()
	MustCompile(`(unclosed`)
}

func TestCompileReturnsCompileError(t *testing.T) {
	_, err := Compile(`[a-`)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*CompileError); !ok {
		t.Fatalf("err = %T, want *CompileError", err)
	}
}

func TestFindAllScenarios(t *testing.T) {
	cases := []struct {
		pattern string
		text    string
		starts  []int
		ends    []int
		subs    []string
	}{
		{"hello", "hello world hello", []int{0, 12}, []int{5, 17}, []string{"hello", "hello"}},
		{"a", "banana", []int{1, 3, 5}, []int{2, 4, 6}, []string{"a", "a", "a"}},
		{`[0-9]+`, "abc123def456", []int{3, 9}, []int{6, 12}, []string{"123", "456"}},
		{`^[a-z]+$`, "hello", []int{0}, []int{5}, []string{"hello"}},
		{`^[a-z]+$`, "Hello", nil, nil, nil},
		{`(apple|banana|cherry)`, "I like apple and banana", []int{7, 17}, []int{12, 23}, []string{"apple", "banana"}},
		{`\d{3}-\d{3}-\d{4}`, "call 555-123-4567 now", []int{5}, []int{17}, []string{"555-123-4567"}},
	}

	for _, tc := range cases {
		re, err := Compile(tc.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tc.pattern, err)
		}
		matches, err := re.FindAll([]byte(tc.text))
		if err != nil {
			t.Fatalf("FindAll(%q, %q): %v", tc.pattern, tc.text, err)
		}
		if len(matches) != len(tc.starts) {
			t.Fatalf("pattern %q text %q: got %d matches %v, want %d", tc.pattern, tc.text, len(matches), matches, len(tc.starts))
		}
		for i, m := range matches {
			if m.Start != tc.starts[i] || m.End != tc.ends[i] || string(m.Text) != tc.subs[i] {
				t.Errorf("pattern %q text %q match[%d] = (%d,%d,%q), want (%d,%d,%q)",
					tc.pattern, tc.text, i, m.Start, m.End, m.Text, tc.starts[i], tc.ends[i], tc.subs[i])
			}
		}
	}
}

func TestFindAllStrictlyIncreasingAndDisjoint(t *testing.T) {
	re := MustCompile(`[a-z]+`)
	matches, err := re.FindAll([]byte("foo1bar2baz3qux"))
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Start <= matches[i-1].Start {
			t.Fatalf("match starts not strictly increasing: %v", matches)
		}
		if matches[i].Start < matches[i-1].End {
			t.Fatalf("matches overlap: %v", matches)
		}
	}
}

func TestMatchAtZeroIffSearchStartsAtZero(t *testing.T) {
	patterns := []string{`hello`, `[0-9]+`, `a*`, `^x`}
	texts := []string{"hello world", "abc123", "aaabbb", "xyz", "yxz"}

	for _, pattern := range patterns {
		re, err := Compile(pattern)
		if err != nil {
			t.Fatal(err)
		}
		for _, text := range texts {
			zm, zerr := re.MatchAtZero([]byte(text))
			sm, serr := re.Search([]byte(text))
			if zerr != nil || serr != nil {
				continue // PatternTooComplex not expected for these small inputs
			}
			zeroMatches := zm != nil
			searchAtZero := sm != nil && sm.Start == 0
			if zeroMatches != searchAtZero {
				t.Errorf("pattern %q text %q: MatchAtZero=%v but search-starts-at-zero=%v", pattern, text, zeroMatches, searchAtZero)
			}
		}
	}
}

func TestGreedyStarIdempotence(t *testing.T) {
	re := MustCompile(`a*`)
	cases := map[string]int{
		"":        0,
		"b":       0,
		"a":       1,
		"aaa":     3,
		"aaab":    3,
		"aaaaaaa": 7,
	}
	for text, want := range cases {
		m, err := re.MatchAtZero([]byte(text))
		if err != nil {
			t.Fatal(err)
		}
		got := 0
		if m != nil {
			got = m.End - m.Start
		}
		if got != want {
			t.Errorf("a* against %q: matched %d leading a's, want %d", text, got, want)
		}
	}
}

func TestAnchorLaws(t *testing.T) {
	re := MustCompile(`^foo`)
	matches, err := re.FindAll([]byte("xxxfooyyyfoo"))
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range matches {
		if m.Start != 0 {
			t.Fatalf("^foo matched at non-zero start: %v", m)
		}
	}

	re2 := MustCompile(`bar$`)
	text := []byte("barxxxbar")
	sm, err := re2.Search(text)
	if err != nil {
		t.Fatal(err)
	}
	if sm == nil || sm.End != len(text) {
		t.Fatalf("bar$ should match only ending at text length, got %v", sm)
	}
}

func TestClassDualityCoversEveryByte(t *testing.T) {
	pos, err := Compile(`[a-m]`)
	if err != nil {
		t.Fatal(err)
	}
	neg, err := Compile(`[^a-m]`)
	if err != nil {
		t.Fatal(err)
	}
	for b := 0; b < 256; b++ {
		if b == '\n' {
			continue // wildcard exclusion doesn't apply; classes still test \n normally
		}
		text := []byte{byte(b)}
		pm, _ := pos.Search(text)
		nm, _ := neg.Search(text)
		if (pm != nil) == (nm != nil) {
			t.Fatalf("byte %d: [a-m] match=%v, [^a-m] match=%v, exactly one should match", b, pm != nil, nm != nil)
		}
	}
}

func TestEngineAgreementAcrossHybrid(t *testing.T) {
	patterns := []string{`[0-9]+`, `hello`, `[a-z]{2,4}`}
	text := []byte("xx hello 123 yyzz abcdef")

	for _, pattern := range patterns {
		cfgDFA := DefaultConfig()
		cfgNFA := DefaultConfig()
		cfgNFA.EnableDFA = false

		reDFA, err := CompileWithConfig(pattern, cfgDFA)
		if err != nil {
			t.Fatal(err)
		}
		reNFA, err := CompileWithConfig(pattern, cfgNFA)
		if err != nil {
			t.Fatal(err)
		}

		dm, derr := reDFA.FindAll(text)
		nm, nerr := reNFA.FindAll(text)
		if derr != nil || nerr != nil {
			t.Fatalf("pattern %q: dfa err=%v nfa err=%v", pattern, derr, nerr)
		}
		if len(dm) != len(nm) {
			t.Fatalf("pattern %q: dfa=%v nfa=%v", pattern, dm, nm)
		}
		for i := range dm {
			if dm[i].Start != nm[i].Start || dm[i].End != nm[i].End {
				t.Errorf("pattern %q match[%d]: dfa=%v nfa=%v", pattern, i, dm[i], nm[i])
			}
		}
	}
}

func TestConfigValidateRejectsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDFAStates = 0
	if _, err := CompileWithConfig(`abc`, cfg); err == nil {
		t.Fatal("expected ConfigError for MaxDFAStates = 0")
	}
}

func TestPackageLevelConvenienceFunctions(t *testing.T) {
	defer ClearCache()

	ok, err := Test(`\d+`, []byte("room 42"))
	if err != nil || !ok {
		t.Fatalf("Test = %v, %v", ok, err)
	}

	m, err := Search(`\d+`, []byte("room 42"))
	if err != nil || m == nil || string(m.Text) != "42" {
		t.Fatalf("Search = %v, %v", m, err)
	}

	stats, err := Stats(`\d+`)
	if err != nil || stats == "" {
		t.Fatalf("Stats = %q, %v", stats, err)
	}
}
