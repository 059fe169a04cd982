package polar

import (
	"fmt"
	"sort"

	"github.com/srsgo/fec"
)

// BhattacharyyaFrozenSet builds a FrozenSet of size (2^n - k) for a
// length-2^n polar code using Arikan's Bhattacharyya-parameter
// recursion ("Channel Polarization", 2009): starting from a single
// binary erasure channel of parameter z0, n levels of
//
//	Z(W2i)   = 2*Z(Wi) - Z(Wi)^2
//	Z(W2i+1) = Z(Wi)^2
//
// give each of the 2^n synthetic bit-channels an erasure parameter; the
// k channels with the smallest Z (most reliable) carry information bits,
// the rest are frozen. This is the textbook polar construction method,
// not a transcription of 3GPP TS 38.212 Table 5.3.1.2-1 (the literal
// reliability sequence 3GPP publishes): that table is not present
// anywhere in this pack, so this function stands in as a principled,
// named substitute rather than an arbitrary index list — see
// DESIGN.md.
func BhattacharyyaFrozenSet(n, k int, z0 float64) (FrozenSet, error) {
	if n <= 0 || n > 20 {
		return nil, fmt.Errorf("polar: invalid order n=%d: %w", n, fec.ErrInvalidParameter)
	}
	size := 1 << n
	if k <= 0 || k >= size {
		return nil, fmt.Errorf("polar: invalid info length k=%d for n=%d: %w", k, n, fec.ErrInvalidParameter)
	}
	if z0 <= 0 || z0 >= 1 {
		return nil, fmt.Errorf("polar: invalid base erasure parameter z0=%g: %w", z0, fec.ErrInvalidParameter)
	}

	z := []float64{z0}
	for level := 0; level < n; level++ {
		next := make([]float64, len(z)*2)
		for i, zi := range z {
			next[2*i] = 2*zi - zi*zi // worse (more erasure) child
			next[2*i+1] = zi * zi    // better (less erasure) child
		}
		z = next
	}

	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	// Most reliable (smallest Z) first.
	sort.Slice(idx, func(a, b int) bool { return z[idx[a]] < z[idx[b]] })

	frozen := append([]int(nil), idx[k:]...)
	return SortedFrozenSet(frozen), nil
}
