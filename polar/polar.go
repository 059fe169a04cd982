// Package polar implements the 5G NR polar codec used on PDCCH/PBCH:
// the G_N butterfly encoder and the SSC (simplified successive
// cancellation) decoder with Rate-0/Rate-1/Rate-R node pruning, at
// float/int16/int8 precision.
//
// Grounded on spec.md §4.6; the SIMD scalar/AVX2-small/AVX2-large split
// is collapsed into the Backend enum already used by package ldpc (per
// spec.md §9), since no pack example implements an assembly-level
// cross-lane shuffle in pure Go. Message saturation reuses ldpc.Precision
// so both coding families share one fixed-point convention.
package polar

import (
	"fmt"
	"sort"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/ldpc"
)

// Backend is re-exported from ldpc so callers of both codecs use one enum.
type Backend = ldpc.Backend

const (
	Scalar = ldpc.Scalar
	AVX2   = ldpc.AVX2
	AVX512 = ldpc.AVX512
)

// Precision is re-exported from ldpc: both decoders share one saturation
// and infinity convention.
type Precision = ldpc.Precision

const (
	Float = ldpc.Float
	Int16 = ldpc.Int16
	Int8  = ldpc.Int8
)

// FrozenSet is the sorted set of frozen bit indices within a length-N
// polar code (0-indexed, N = 2^n).
type FrozenSet []int

func (fs FrozenSet) valid(n int) bool {
	for i, idx := range fs {
		if idx < 0 || idx >= n {
			return false
		}
		if i > 0 && fs[i-1] >= idx {
			return false
		}
	}
	return true
}

func (fs FrozenSet) mask(n int) []bool {
	out := make([]bool, n)
	for _, idx := range fs {
		out[idx] = true
	}
	return out
}

// Mask returns a length-n boolean vector marking which positions fs
// freezes, for callers outside this package that need to place their own
// information bits around the frozen set (e.g. a CLI driver building a
// random test vector).
func (fs FrozenSet) Mask(n int) []bool { return fs.mask(n) }

// Encoder runs the G_N butterfly transform: output = G_N * input (mod 2).
type Encoder struct {
	n       int
	backend Backend
}

// NewEncoder builds an Encoder for code length N = 2^n.
func NewEncoder(n int, backend Backend) (*Encoder, error) {
	if n <= 0 || n > 20 {
		return nil, fmt.Errorf("polar: invalid order n=%d: %w", n, fec.ErrInvalidParameter)
	}
	return &Encoder{n: n, backend: backend}, nil
}

// N returns the code length 2^n.
func (e *Encoder) N() int { return 1 << e.n }

// Backend reports which kernel variant this Encoder was constructed with.
func (e *Encoder) Backend() Backend { return e.backend }

// Encode writes G_N*input (mod 2) into output; both must have length N.
func (e *Encoder) Encode(input, output []fec.Bit) error {
	n := e.N()
	if len(input) != n || len(output) != n {
		return fmt.Errorf("polar: buffers must have length %d: %w", n, fec.ErrLengthMismatch)
	}
	u := make([]byte, n)
	for i, b := range input {
		u[i] = byte(b)
	}
	polarTransform(u)
	for i, b := range u {
		output[i] = fec.Bit(b)
	}
	return nil
}

// polarTransform runs the in-place butterfly computing G_N*u (mod 2),
// the n-fold Kronecker product of [[1,0],[1,1]]. Implementations for
// n<=5 collapsing the stages into one 256-bit-lane shuffle, and n>5
// splitting into a pairwise-XOR prefix plus an inner 5-stage shuffle, are
// a SIMD lane-packing concern (spec.md §4.6) that this pure-Go back-end
// does not distinguish; see DESIGN.md.
func polarTransform(u []byte) {
	n := len(u)
	for step := 1; step < n; step <<= 1 {
		for i := 0; i < n; i += 2 * step {
			for j := 0; j < step; j++ {
				u[i+j] ^= u[i+j+step]
			}
		}
	}
}

func validateFrozenSet(fs FrozenSet, n, k int) error {
	if len(fs) != n-k {
		return fmt.Errorf("polar: frozen set has %d entries, want %d: %w", len(fs), n-k, fec.ErrInvalidFrozenSet)
	}
	if !fs.valid(n) {
		return fmt.Errorf("polar: frozen set must be sorted and within [0,%d): %w", n, fec.ErrInvalidFrozenSet)
	}
	return nil
}

// SortedFrozenSet returns a defensive, sorted copy of indices — a
// convenience for callers building a FrozenSet from an unordered index
// list (e.g. a reliability-ordered sequence from 3GPP TS 38.212 Table
// 5.3.1.2-1).
func SortedFrozenSet(indices []int) FrozenSet {
	out := append([]int(nil), indices...)
	sort.Ints(out)
	return out
}
