package simd

// rarityRank scores each byte value by how often it tends to appear in
// typical text/source input: lower is rarer, and rarer bytes make
// better anchors for a byte-scan fast path since they skip more of the
// haystack per probe (the same heuristic the teacher's
// ByteFrequencies/ByteRank pair uses, grounded on the approach
// Rust's memchr crate documents for its own rare-byte selection).
//
// The table is built from a handful of named bands rather than listed
// byte-by-byte: control bytes and high-bit (non-ASCII continuation)
// bytes are rarest, punctuation is uncommon, digits are moderate, and
// the most frequent English letters are the least rare.
var rarityRank = buildRarityRank()

func buildRarityRank() [256]uint8 {
	var r [256]uint8

	// Control characters: rare except for the handful used as
	// whitespace/line separators.
	for c := 0; c < 0x20; c++ {
		r[c] = 2
	}
	r['\t'] = 10
	r['\n'] = 15
	r['\r'] = 8

	// Printable punctuation: moderately rare, space is the exception.
	for c := 0x20; c < 0x40; c++ {
		r[c] = 60
	}
	r[' '] = 250
	r['.'] = 180
	r[','] = 170
	r['"'] = 120
	r['\''] = 130
	r['-'] = 120

	// Digits: common in structured data, moderate rank.
	for c := '0'; c <= '9'; c++ {
		r[c] = 150
	}

	// Uppercase letters: rarer than lowercase in prose overall.
	for c := 'A'; c <= 'Z'; c++ {
		r[c] = 90
	}
	// A handful of genuinely rare uppercase letters.
	for _, c := range []byte("JKQVXZ") {
		r[c] = 25
	}

	// Lowercase letters: the common case, ranked by rough English
	// letter frequency (highest first).
	freq := "etaoinshrdlcumwfgypbvkjxqz"
	for i, c := range []byte(freq) {
		// Spread ranks from 245 down to ~150 across the alphabet so
		// the rarest common letters ('q','z', etc) still beat
		// punctuation but trail 'e','t','a'.
		r[c] = uint8(245 - i*4)
	}

	// Remaining symbols/braces.
	for _, c := range []byte("{}[]()<>/\\|~`^%$&*+=") {
		r[c] = 70
	}

	// Non-ASCII / UTF-8 continuation bytes: rare in ASCII-heavy
	// patterns and haystacks, which dominate regex workloads.
	for c := 0x80; c < 0x100; c++ {
		r[c] = 5
	}

	return r
}

// rarestByte returns the byte in needle with the lowest rarityRank,
// breaking ties toward the earliest occurrence so search behavior is
// deterministic.
func rarestByte(needle []byte) (b byte, pos int) {
	pos = 0
	b = needle[0]
	best := rarityRank[b]
	for i := 1; i < len(needle); i++ {
		if rarityRank[needle[i]] < best {
			best = rarityRank[needle[i]]
			b = needle[i]
			pos = i
		}
	}
	return b, pos
}
