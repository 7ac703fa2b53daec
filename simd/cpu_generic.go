//go:build !amd64

package simd

// On non-amd64 platforms there is no AVX2/SSE4.2 to detect; the SWAR
// path is always the implementation, not just the fallback.
var (
	hasAVX2  = false
	hasSSE42 = false
)

func wordSize() int { return 8 }
