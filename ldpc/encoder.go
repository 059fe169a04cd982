package ldpc

import (
	"fmt"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/basegraph"
)

// Encoder produces an LDPC codeword from one segmented code block's
// systematic bits, for a fixed (base graph, lifting size) pair. An Encoder
// is immutable after NewEncoder, which builds its own Expanded table, and
// Encode allocates its working buffers per call, so one Encoder may be
// used concurrently from many goroutines.
type Encoder struct {
	bg       basegraph.BG
	z        int
	expanded *basegraph.Expanded
	backend  Backend
}

// NewEncoder builds an Encoder for base graph bg at lifting size z, using
// the requested backend. Expand is run once here; the teacher's lib_init
// pattern of resolving a kernel set at construction time rather than per
// call (lib/src/phy/fec/ldpc/ldpc_encoder.c's srslte_ldpc_encoder_init) is
// followed the same way.
func NewEncoder(bg basegraph.BG, z int, backend Backend) (*Encoder, error) {
	expanded, err := basegraph.Expand(bg, z)
	if err != nil {
		return nil, err
	}
	return &Encoder{bg: bg, z: z, expanded: expanded, backend: backend}, nil
}

// Backend reports which kernel variant this Encoder was constructed with.
func (enc *Encoder) Backend() Backend { return enc.backend }

// Encode implements spec.md §4.3: a systematic copy with the first 2Z bits
// punctured, aux accumulation over the base graph's connectivity, the
// closed-form high-rate region, and the extended-region accumulate chain.
// message must hold exactly bgK*Z bits (the segmented code block,
// including any filler placed by the segment package). output is sized to
// e bits, the rate-matcher's requested output length; e is clamped into
// [(bgK+2)*Z, bgN*Z-2*Z] and rounded up to the next multiple of Z to
// determine how many parity check nodes actually need computing.
func (enc *Encoder) Encode(message []fec.Bit, output []fec.Bit, e int) error {
	d := enc.bg.Dims()
	z := enc.z
	kBits := d.K * z

	if len(message) != kBits {
		return fmt.Errorf("ldpc: message length %d, want %d: %w", len(message), kBits, fec.ErrLengthMismatch)
	}

	minE := (d.K + 2) * z
	maxE := d.N*z - 2*z
	clampedE := ceilToMultiple(clamp(e, minE, maxE), z)
	if len(output) < clampedE {
		return fmt.Errorf("ldpc: output buffer too small (%d), need %d: %w", len(output), clampedE, fec.ErrLengthMismatch)
	}

	nLayers := clamp(ceilDiv(clampedE, z)-d.K+2, 4, d.M)

	// sys is the masked (0/1) working copy used for every XOR reduction
	// below; message itself (which may carry fec.Filler markers) is what
	// gets copied into the systematic region of output, so the rate
	// matcher downstream can still see which positions are filler.
	sys := make([]byte, kBits)
	for i, b := range message {
		sys[i] = bitVal(byte(b))
	}

	aux := make([][]byte, nLayers)
	for m := 0; m < nLayers; m++ {
		aux[m] = enc.computeAux(sys, m)
	}

	p0, p1, p2, p3 := solveCore(enc.expanded.Case, aux[0], aux[1], aux[2], aux[3], z)
	parity := make([][]byte, nLayers)
	parity[0], parity[1], parity[2], parity[3] = p0, p1, p2, p3

	for m := 4; m < nLayers; m++ {
		acc := aux[m]
		for j := 0; j < 4; j++ {
			shift := int(enc.expanded.Shifts[m][d.K+j])
			if shift == basegraph.NoConnection {
				continue
			}
			acc = vecXor(acc, vecRotateRight(parity[j], shift))
		}
		parity[m] = acc
	}

	pos := 0
	for i := 2 * z; i < kBits && pos < clampedE; i, pos = i+1, pos+1 {
		output[pos] = message[i]
	}
	for m := 0; m < nLayers && pos < clampedE; m++ {
		for i := 0; i < z && pos < clampedE; i, pos = i+1, pos+1 {
			output[pos] = fec.Bit(parity[m][i])
		}
	}
	return nil
}

// computeAux XORs, over the systematic columns check row m connects to,
// rotate_left(node, shift) — the aux[m] term of spec.md §4.3's step 2 and
// step 4.
func (enc *Encoder) computeAux(sys []byte, m int) []byte {
	z := enc.z
	k := enc.bg.Dims().K
	out := make([]byte, z)
	for _, col16 := range enc.expanded.VarIndices[m] {
		col := int(col16)
		if col < 0 {
			break
		}
		if col >= k {
			continue
		}
		shift := int(enc.expanded.Shifts[m][col])
		base := col * z
		for i := 0; i < z; i++ {
			out[i] ^= rotateLeftBit(sys, base, z, shift, i)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func ceilToMultiple(v, m int) int {
	return ceilDiv(v, m) * m
}
