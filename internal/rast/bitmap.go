// Package rast holds the pattern AST: the lexer, the recursive-descent
// parser, and the tagged node tree they produce. It is internal because
// the AST shape is compiler plumbing, not public surface — callers only
// ever see a compiled pattern (see package rex and package hybrid).
package rast

// Bitmap256 is a dense 256-bit membership set over all byte values.
// Character classes are always stored this way internally regardless of
// the source syntax that produced them (ranges, shorthand, literals);
// conversion happens once, in the parser.
type Bitmap256 [4]uint64

// Set marks b as a member of the bitmap.
func (bm *Bitmap256) Set(b byte) {
	bm[b>>6] |= 1 << (b & 63)
}

// SetRange marks every byte in [lo, hi] (inclusive) as a member.
func (bm *Bitmap256) SetRange(lo, hi byte) {
	for c := int(lo); c <= int(hi); c++ {
		bm.Set(byte(c))
	}
}

// Union merges other's members into bm.
func (bm *Bitmap256) Union(other Bitmap256) {
	for i := range bm {
		bm[i] |= other[i]
	}
}

// Contains reports whether b is a member.
func (bm Bitmap256) Contains(b byte) bool {
	return bm[b>>6]&(1<<(b&63)) != 0
}

// Negated returns the complement bitmap (every byte not in bm).
func (bm Bitmap256) Negated() Bitmap256 {
	var out Bitmap256
	for i := range out {
		out[i] = ^bm[i]
	}
	return out
}

// Count returns the number of member bytes.
func (bm Bitmap256) Count() int {
	n := 0
	for _, word := range bm {
		for word != 0 {
			word &= word - 1
			n++
		}
	}
	return n
}

// Ranges decomposes the bitmap into maximal contiguous [lo, hi] runs, in
// ascending order. Used by the DFA compiler to turn a class or the
// wildcard into byte-range transition edges.
func (bm Bitmap256) Ranges() [][2]byte {
	var ranges [][2]byte
	inRun := false
	var lo byte
	for c := 0; c < 256; c++ {
		member := bm.Contains(byte(c))
		if member && !inRun {
			inRun = true
			lo = byte(c)
		}
		if !member && inRun {
			ranges = append(ranges, [2]byte{lo, byte(c - 1)})
			inRun = false
		}
	}
	if inRun {
		ranges = append(ranges, [2]byte{lo, 255})
	}
	return ranges
}

// DigitBitmap returns the bitmap for \d = [0-9].
func DigitBitmap() Bitmap256 {
	var bm Bitmap256
	bm.SetRange('0', '9')
	return bm
}

// WordBitmap returns the bitmap for \w = [A-Za-z0-9_].
func WordBitmap() Bitmap256 {
	var bm Bitmap256
	bm.SetRange('A', 'Z')
	bm.SetRange('a', 'z')
	bm.SetRange('0', '9')
	bm.Set('_')
	return bm
}

// SpaceBitmap returns the bitmap for \s = [ \t\n\r\f\v].
func SpaceBitmap() Bitmap256 {
	var bm Bitmap256
	for _, c := range []byte{' ', '\t', '\n', '\r', '\f', '\v'} {
		bm.Set(c)
	}
	return bm
}

// NewlineBitmap returns the bitmap for the single byte '\n', used to build
// the wildcard's complement (. matches any byte except '\n').
func NewlineBitmap() Bitmap256 {
	var bm Bitmap256
	bm.Set('\n')
	return bm
}
