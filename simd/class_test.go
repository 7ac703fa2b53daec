package simd

import "testing"

func memberFromRanges(ranges ...[2]byte) [256]bool {
	var m [256]bool
	for _, r := range ranges {
		for c := int(r[0]); c <= int(r[1]); c++ {
			m[c] = true
		}
	}
	return m
}

func TestClassMatcherRangeStrategy(t *testing.T) {
	m := NewClassMatcher(memberFromRanges([2]byte{'0', '9'}))
	if m.Strategy() != StrategyRange {
		t.Fatalf("got %v, want range", m.Strategy())
	}
	for c := 0; c < 256; c++ {
		want := c >= '0' && c <= '9'
		if got := m.Contains(byte(c)); got != want {
			t.Errorf("Contains(%q) = %v, want %v", byte(c), got, want)
		}
	}
}

func TestClassMatcherTwoRanges(t *testing.T) {
	m := NewClassMatcher(memberFromRanges([2]byte{'a', 'f'}, [2]byte{'A', 'F'}))
	if m.Strategy() != StrategyRange {
		t.Fatalf("got %v, want range", m.Strategy())
	}
	if !m.Contains('c') || !m.Contains('C') || m.Contains('g') {
		t.Fatalf("unexpected membership")
	}
}

func TestClassMatcherNibbleShuffle(t *testing.T) {
	// {0,1,...,9} ∪ {a,b,...,f} has hex digits as high/low nibble
	// cross product only for a contrived set; build one explicitly:
	// members = {b : (b&0xF) in {0x0,0x2} and (b>>4) in {0x3,0x4}}
	// i.e. '0','2','@','B' — four separate runs, so not a range class.
	var m [256]bool
	for _, b := range []byte{0x30, 0x32, 0x40, 0x42} {
		m[b] = true
	}
	cm := NewClassMatcher(m)
	if cm.Strategy() != StrategyNibble {
		t.Fatalf("got %v, want nibble-shuffle", cm.Strategy())
	}
	for c := 0; c < 256; c++ {
		if got := cm.Contains(byte(c)); got != m[c] {
			t.Errorf("Contains(%#x) = %v, want %v", c, got, m[c])
		}
	}
}

func TestClassMatcherGenericFallback(t *testing.T) {
	var m [256]bool
	for _, b := range []byte("aeiouAEIOU13") {
		m[b] = true
	}
	cm := NewClassMatcher(m)
	if cm.Strategy() != StrategyGeneric {
		t.Fatalf("got %v, want generic", cm.Strategy())
	}
	for c := 0; c < 256; c++ {
		if got := cm.Contains(byte(c)); got != m[c] {
			t.Errorf("Contains(%q) = %v, want %v", byte(c), got, m[c])
		}
	}
}

func TestClassMatcherFindFirst(t *testing.T) {
	m := NewClassMatcher(memberFromRanges([2]byte{'0', '9'}))
	text := []byte("abcdefgh123xyz")
	idx, ok := m.FindFirst(text, 0)
	if !ok || idx != 8 {
		t.Fatalf("got (%d,%v), want (8,true)", idx, ok)
	}
	if idx, ok := m.FindFirst(text, 11); ok {
		t.Fatalf("expected no digit after index 11, got %d", idx)
	}
}

func TestClassMatcherFindFirstAcrossChunkBoundary(t *testing.T) {
	m := NewClassMatcher(memberFromRanges([2]byte{'X', 'X'}))
	text := []byte("0123456789X")
	idx, ok := m.FindFirst(text, 0)
	if !ok || idx != 10 {
		t.Fatalf("got (%d,%v), want (10,true)", idx, ok)
	}
}

func TestClassMatcherFindAllAndCount(t *testing.T) {
	m := NewClassMatcher(memberFromRanges([2]byte{'0', '9'}))
	text := []byte("a1b22c333")
	all := m.FindAll(text)
	if len(all) != 6 {
		t.Fatalf("got %d digit positions, want 6: %v", len(all), all)
	}
	if n := m.Count(text, 0, len(text)); n != 6 {
		t.Fatalf("Count = %d, want 6", n)
	}
}

func TestClassMatcherSkipRun(t *testing.T) {
	m := NewClassMatcher(memberFromRanges([2]byte{'0', '9'}))
	text := []byte("1234567890abc")
	if end := m.SkipRun(text, 0); end != 10 {
		t.Fatalf("SkipRun = %d, want 10", end)
	}
	text2 := []byte("123abc")
	if end := m.SkipRun(text2, 0); end != 3 {
		t.Fatalf("SkipRun = %d, want 3", end)
	}
	all9 := []byte("11111111")
	if end := m.SkipRun(all9, 0); end != len(all9) {
		t.Fatalf("SkipRun over full run = %d, want %d", end, len(all9))
	}
}

func TestClassMatcherNoMembers(t *testing.T) {
	var m [256]bool
	cm := NewClassMatcher(m)
	if cm.Contains('a') {
		t.Fatal("empty class should contain nothing")
	}
	if _, ok := cm.FindFirst([]byte("abc"), 0); ok {
		t.Fatal("empty class FindFirst should fail")
	}
}

func TestClassMatcherAllMembers(t *testing.T) {
	var m [256]bool
	for c := 0; c < 256; c++ {
		m[c] = true
	}
	cm := NewClassMatcher(m)
	if cm.Strategy() != StrategyRange {
		t.Fatalf("got %v, want range (single full run)", cm.Strategy())
	}
	if end := cm.SkipRun([]byte("abcdefgh"), 0); end != 8 {
		t.Fatalf("SkipRun = %d, want 8", end)
	}
}
