// Package simdcaps defines the Backend enum shared by the ldpc and polar
// packages and a Detect probe over golang.org/x/sys/cpu feature flags.
// It replaces the teacher's #cgo/void-pointer dispatch table with a plain
// enum. The ldpc and polar constructors take the back-end as an explicit
// argument; nothing in this module calls Detect.
package simdcaps

import "golang.org/x/sys/cpu"

// Backend names a concrete kernel implementation. The zero value is
// Scalar, so a zero-valued Backend field always degrades gracefully.
type Backend int

const (
	Scalar Backend = iota
	AVX2
	AVX512
)

func (b Backend) String() string {
	switch b {
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "scalar"
	}
}

// Detect returns the best back-end the running process can use. Encoders
// and decoders accept an explicit override too, so tests can pin a
// back-end and get host-independent, bit-exact results.
func Detect() Backend {
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW {
		return AVX512
	}
	if cpu.X86.HasAVX2 {
		return AVX2
	}
	return Scalar
}
