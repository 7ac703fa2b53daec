// Package simd provides the byte-level acceleration primitives both the
// DFA and NFA engines build on (spec §4.4, §4.5): character-class
// membership tests, literal substring search, and multi-literal search.
//
// This package deliberately knows nothing about the pattern AST — it
// operates on plain byte membership tables and byte slices, so package
// dfa and package nfa can each build a matcher from whatever
// intermediate representation they already have.
//
// The word-at-a-time scans here (memchrByte, and FindFirst/SkipRun for
// a single-range class) use the SWAR (SIMD-within-a-register)
// technique: broadcast a comparison across every byte of a uint64,
// then use the standard zero-byte/high-bit detection formulas to test
// eight lanes in one branch. Every other strategy, and the tail of
// each scan, tests one byte at a time. On amd64 with
// AVX2 available, CPU feature detection (see cpu_amd64.go) is still
// wired in so a real assembly backend could be dropped in later
// without touching call sites — but no such backend ships here. See
// DESIGN.md for why.
package simd

import (
	"encoding/binary"
	"math/bits"
)

// Strategy names the concrete matching approach ClassMatcher picked for
// a particular membership table (spec §4.4).
type Strategy uint8

const (
	StrategyRange Strategy = iota
	StrategyNibble
	StrategyGeneric
)

func (s Strategy) String() string {
	switch s {
	case StrategyRange:
		return "range"
	case StrategyNibble:
		return "nibble-shuffle"
	case StrategyGeneric:
		return "generic-lookup"
	default:
		return "unknown"
	}
}

// ClassMatcher tests byte membership in a fixed 256-entry set, chosen
// from three concrete strategies by a small analyzer (spec §4.4):
//
//  1. Range — one or two contiguous byte ranges: compare against low/high
//     bounds.
//  2. Nibble-shuffle — members are exactly the cross product of a
//     low-nibble set and a high-nibble set: two 16-entry tables indexed
//     by shuffled nibbles.
//  3. Generic lookup — anything else: a cached 256-entry byte table.
type ClassMatcher struct {
	strategy Strategy

	// StrategyRange
	ranges [2][2]byte
	nRange int

	// StrategyNibble
	loSet, hiSet [16]bool

	// StrategyGeneric (kept for every strategy, but Contains reads it
	// only when the generic strategy was selected)
	table [256]bool
}

// NewClassMatcher builds a ClassMatcher for the given 256-entry
// membership table (member[b] is true iff byte b is in the class).
func NewClassMatcher(member [256]bool) *ClassMatcher {
	m := &ClassMatcher{table: member}
	if ranges, ok := asRanges(member); ok {
		m.strategy = StrategyRange
		m.nRange = len(ranges)
		copy(m.ranges[:], ranges)
		return m
	}
	if lo, hi, ok := asNibbleCrossProduct(member); ok {
		m.strategy = StrategyNibble
		m.loSet = lo
		m.hiSet = hi
		return m
	}
	m.strategy = StrategyGeneric
	return m
}

// Strategy reports which concrete strategy was selected.
func (m *ClassMatcher) Strategy() Strategy { return m.strategy }

// asRanges decomposes member into at most two contiguous [lo,hi] runs.
func asRanges(member [256]bool) ([][2]byte, bool) {
	var runs [][2]byte
	inRun := false
	var lo byte
	for c := 0; c < 256; c++ {
		if member[c] && !inRun {
			inRun = true
			lo = byte(c)
		}
		if !member[c] && inRun {
			runs = append(runs, [2]byte{lo, byte(c - 1)})
			inRun = false
			if len(runs) > 2 {
				return nil, false
			}
		}
	}
	if inRun {
		runs = append(runs, [2]byte{lo, 255})
	}
	if len(runs) == 0 || len(runs) > 2 {
		return nil, false
	}
	return runs, true
}

// asNibbleCrossProduct checks whether member is exactly
// {b : loNibble(b) in lo AND hiNibble(b) in hi} for some 16-entry sets
// lo, hi, which lets membership be tested with two tiny lookup tables.
func asNibbleCrossProduct(member [256]bool) (lo, hi [16]bool, ok bool) {
	// Derive candidate sets from which nibble combinations are present.
	var loCand, hiCand [16]bool
	for c := 0; c < 256; c++ {
		if member[c] {
			loCand[c&0xF] = true
			hiCand[c>>4] = true
		}
	}
	// Verify the cross product reconstructs member exactly.
	for c := 0; c < 256; c++ {
		want := loCand[c&0xF] && hiCand[c>>4]
		if want != member[c] {
			return lo, hi, false
		}
	}
	return loCand, hiCand, true
}

// Contains reports whether b is a member of the class.
func (m *ClassMatcher) Contains(b byte) bool {
	switch m.strategy {
	case StrategyRange:
		for i := 0; i < m.nRange; i++ {
			if b >= m.ranges[i][0] && b <= m.ranges[i][1] {
				return true
			}
		}
		return false
	case StrategyNibble:
		return m.loSet[b&0xF] && m.hiSet[b>>4]
	default:
		return m.table[b]
	}
}

// FindFirst returns the index of the first member byte in text at or
// after start, or (-1, false) if there is none. For a single-range
// class, wordSize()-byte strides are tested via SWAR, 8 bytes at a time
// within each stride; other classes, and the bytes after the last full
// stride, are tested one byte at a time.
func (m *ClassMatcher) FindFirst(text []byte, start int) (int, bool) {
	n := len(text)
	i := start
	if m.strategy == StrategyRange && m.nRange == 1 {
		lo, hi := m.ranges[0][0], m.ranges[0][1]
		stride := wordSize()
		for i+stride <= n {
			for off := 0; off < stride; off += 8 {
				chunk := binary.LittleEndian.Uint64(text[i+off:])
				if mask := rangeMask(chunk, lo, hi); mask != 0 {
					return i + off + bits.TrailingZeros64(mask)/8, true
				}
			}
			i += stride
		}
	}
	for ; i < n; i++ {
		if m.Contains(text[i]) {
			return i, true
		}
	}
	return -1, false
}

// FindAll returns the index of every member byte in text, in order.
func (m *ClassMatcher) FindAll(text []byte) []int {
	var out []int
	for i := 0; i < len(text); i++ {
		if m.Contains(text[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Count returns the number of member bytes in text[start:end].
func (m *ClassMatcher) Count(text []byte, start, end int) int {
	n := 0
	for i := start; i < end; i++ {
		if m.Contains(text[i]) {
			n++
		}
	}
	return n
}

// SkipRun advances past a maximal run of member bytes starting at pos,
// returning the index of the first non-member byte (or len(text) if
// the run reaches the end). This is the operation the NFA's quantifier
// unroller and the DFA's class-state executor use to bulk-advance
// through a repeated character class instead of stepping byte by byte
// (spec §4.8, §4.9).
func (m *ClassMatcher) SkipRun(text []byte, pos int) int {
	n := len(text)
	i := pos
	if m.strategy == StrategyRange && m.nRange == 1 {
		lo, hi := m.ranges[0][0], m.ranges[0][1]
		stride := wordSize()
		for i+stride <= n {
			for off := 0; off < stride; off += 8 {
				chunk := binary.LittleEndian.Uint64(text[i+off:])
				mask := rangeMask(chunk, lo, hi)
				if mask != 0xFFFFFFFFFFFFFFFF {
					// Find the first non-member lane within this chunk.
					inv := ^mask
					return i + off + bits.TrailingZeros64(inv)/8
				}
			}
			i += stride
		}
	}
	for i < n && m.Contains(text[i]) {
		i++
	}
	return i
}

// rangeMask computes, for each of the 8 bytes packed in chunk, a mask
// byte of 0xFF if that byte lies in [lo,hi] and 0x00 otherwise, packed
// back into a uint64 (one bit group per lane, tested via TrailingZeros
// for position).
//
// It works by testing "byte - lo does not borrow" (byte >= lo) and
// "hi - byte does not borrow" (byte <= hi) per lane using the classic
// SWAR unsigned-compare trick, then ANDing the two lane masks.
func rangeMask(chunk uint64, lo, hi byte) uint64 {
	geLo := swarGE(chunk, broadcast(lo))
	leHi := swarLE(chunk, broadcast(hi))
	return geLo & leHi
}

func broadcast(b byte) uint64 {
	return uint64(b) * 0x0101010101010101
}

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// swarGE returns, per byte lane, 0xFF if a's lane >= b's lane else 0x00.
func swarGE(a, b uint64) uint64 {
	// Compare the low 7 bits of each lane with a borrow-free
	// subtraction: biasing a's lanes by 0x80 and clearing b's high bits
	// keeps every lane's difference in [1, 0xFF], so its high bit is set
	// exactly when a's low 7 bits >= b's. The lanes' own high bits decide
	// the rest: a >= b when a's high bit is set and b's is not, or when
	// the high bits are equal and the low-bit comparison holds.
	low := (a | hi8) - (b &^ hi8)
	return expandHighBit((a &^ b) | (^(a ^ b) & low))
}

// swarLE returns, per byte lane, 0xFF if a's lane <= b's lane else 0x00.
func swarLE(a, b uint64) uint64 {
	return swarGE(b, a)
}

// expandHighBit turns a mask with only the high bit of each lane
// meaningful into a full 0xFF/0x00 per lane mask.
func expandHighBit(hiBits uint64) uint64 {
	hiBits &= hi8
	return (hiBits >> 7) * 0xFF
}
