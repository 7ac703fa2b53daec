//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// hasAVX2 and hasSSE42 mirror the teacher's feature-detection flags
// (cpu.X86.HasAVX2/HasSSE42). They gate wordSize's stride below instead
// of a real vectorized assembly kernel: see DESIGN.md for why no .s
// files ship here.
var (
	hasAVX2  = cpu.X86.HasAVX2
	hasSSE42 = cpu.X86.HasSSE42
)

// wordSize is the number of bytes this package's SWAR loops advance by
// per outer iteration, built from 8-byte uint64 lanes since Go exposes
// no vector register type — see rangeMask, memchrByte. A CPU reporting
// AVX2 processes four 8-byte lanes per stride, SSE4.2 two, otherwise
// one: the feature detection still changes how much input one loop
// iteration covers even without a real 32-byte or 16-byte vector load.
func wordSize() int {
	switch {
	case hasAVX2:
		return 32
	case hasSSE42:
		return 16
	default:
		return 8
	}
}
