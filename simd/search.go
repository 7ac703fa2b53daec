package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// memchrByte returns the index at or after start of the first
// occurrence of b in haystack, or -1. It scans 8-byte words at a time
// using the classic "does this word contain a zero byte" SWAR trick
// applied to haystack XOR broadcast(b) (grounded on the teacher's
// memchrGeneric fallback, spec §4.5's "SIMD byte-scan fast path").
func memchrByte(haystack []byte, b byte, start int) int {
	n := len(haystack)
	i := start
	bc := broadcast(b)
	stride := wordSize()
	for i+stride <= n {
		for off := 0; off < stride; off += 8 {
			word := binary.LittleEndian.Uint64(haystack[i+off:]) ^ bc
			if zero := (word - lo8) &^ word & hi8; zero != 0 {
				return i + off + bits.TrailingZeros64(zero)/8
			}
		}
		i += stride
	}
	for ; i < n; i++ {
		if haystack[i] == b {
			return i
		}
	}
	return -1
}

// Search implements spec §4.5's `search(needle, haystack, start)`: the
// index of the first occurrence of needle in haystack at or after
// start, found via a rare-byte SIMD scan followed by full-needle
// verification at each candidate (the same two-phase shape as the
// teacher's memmemShort, generalized to any needle length rather than
// splitting at a fixed cutoff). It does not use Two-Way's critical
// factorization.
func Search(needle, haystack []byte, start int) (int, bool) {
	if len(needle) == 0 {
		if start > len(haystack) {
			return 0, false
		}
		return start, true
	}
	if start > len(haystack)-len(needle) {
		return 0, false
	}
	if len(needle) == 1 {
		if idx := memchrByte(haystack, needle[0], start); idx >= 0 {
			return idx, true
		}
		return 0, false
	}

	rare, rarePos := rarestByte(needle)
	maxStart := len(haystack) - len(needle)
	probe := start + rarePos
	for {
		cand := memchrByte(haystack, rare, probe)
		if cand < 0 {
			return 0, false
		}
		matchStart := cand - rarePos
		if matchStart < start {
			probe = cand + 1
			continue
		}
		if matchStart > maxStart {
			return 0, false
		}
		if bytes.Equal(haystack[matchStart:matchStart+len(needle)], needle) {
			return matchStart, true
		}
		probe = cand + 1
	}
}

// SearchAll implements spec §4.5's `search_all`: every non-overlapping
// occurrence of needle in haystack, advancing by needle length (or by
// 1 for an empty needle, to terminate) after each hit.
func SearchAll(needle, haystack []byte) []int {
	var out []int
	pos := 0
	step := len(needle)
	if step == 0 {
		step = 1
	}
	for {
		idx, ok := Search(needle, haystack, pos)
		if !ok {
			return out
		}
		out = append(out, idx)
		pos = idx + step
	}
}

// MultiLiteralSearcher finds the earliest occurrence, across a fixed
// set of needles, by driving one shared byte scan over the rarest byte
// of each needle and verifying whichever candidate comes first (spec
// §4.5's "running per-needle searches in parallel through shared byte
// scanning").
type MultiLiteralSearcher struct {
	needles [][]byte
}

// NewMultiLiteralSearcher builds a searcher over needles. None may be
// empty.
func NewMultiLiteralSearcher(needles [][]byte) *MultiLiteralSearcher {
	cp := make([][]byte, len(needles))
	copy(cp, needles)
	return &MultiLiteralSearcher{needles: cp}
}

// Search returns the position and index (into the needle set) of the
// earliest match at or after start, or ok=false if none of the needles
// occur.
func (s *MultiLiteralSearcher) Search(haystack []byte, start int) (pos int, idx int, ok bool) {
	bestPos := -1
	bestIdx := -1
	for i, needle := range s.needles {
		p, found := Search(needle, haystack, start)
		if !found {
			continue
		}
		if bestPos == -1 || p < bestPos {
			bestPos = p
			bestIdx = i
		}
	}
	if bestPos == -1 {
		return 0, 0, false
	}
	return bestPos, bestIdx, true
}
