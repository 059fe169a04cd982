// Package ratematch implements the 5G NR LDPC circular-buffer rate
// matcher and dematcher of 3GPP TS 38.212 §5.4.2: selecting a starting
// offset k0 from the redundancy version and lifting set, walking the
// lifted codeword circularly while skipping the punctured prefix and any
// filler positions, and (on receive) soft-combining LLRs back into a
// fixed-size codeword buffer.
//
// Grounded on spec.md §4.4; no teacher or pack example implements 5G rate
// matching directly, so the circular-buffer bookkeeping follows the
// encoder/decoder's own node-indexed layout in package ldpc for
// consistency, and the three LLR-width saturating-add variants reuse
// ldpc.Precision so the two packages share one saturation convention.
package ratematch

import (
	"fmt"
	"math"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/basegraph"
	"github.com/srsgo/fec/ldpc"
)

var positiveInfinity = math.Inf(1)

// RV identifies one of the four 5G NR redundancy versions.
type RV int

const (
	RV0 RV = iota
	RV1
	RV2
	RV3
)

// ModType is the modulation order the rate-matched length E must be a
// multiple of (Qm bits per symbol).
type ModType int

const (
	QPSK ModType = iota
	QAM16
	QAM64
	QAM256
)

// Qm returns the bits-per-symbol of m.
func (m ModType) Qm() int {
	switch m {
	case QPSK:
		return 2
	case QAM16:
		return 4
	case QAM64:
		return 6
	case QAM256:
		return 8
	default:
		return 1
	}
}

// k0Coefficients are the 3GPP TS 38.212 Table 5.4.2.1-2 starting-offset
// fractions num/den such that k0 = floor(num*Ncb/(den*Z)) * Z for rv>0,
// and k0 = 0 for rv0. They are equivalent to the per-(rv, lift-set-index)
// table real decoders tabulate, since within a lift set the fraction is
// constant and only Z varies.
var k0Coefficients = map[basegraph.BG][3][2]int{
	basegraph.BG1: {{17, 66}, {33, 66}, {56, 66}},
	basegraph.BG2: {{13, 50}, {25, 50}, {43, 50}},
}

func k0(bg basegraph.BG, rv RV, z, ncb int) int {
	if rv == RV0 {
		return 0
	}
	coef := k0Coefficients[bg][rv-1]
	return (coef[0] * ncb / (coef[1] * z)) * z
}

// Matcher rate-matches (Transmit) and rate-dematches (Receive) one code
// block for a fixed (base graph, lifting size, redundancy version,
// modulation, reference size, filler count) configuration.
type Matcher struct {
	bg     basegraph.BG
	z      int
	rv     RV
	mod    ModType
	nref   int // Nref: 0 means "no limit", i.e. Ncb = N
	filler int // F: number of filler bits at the tail of the K systematic bits
}

// New builds a Matcher. nref <= 0 means no limited buffer (Ncb = N).
func New(bg basegraph.BG, z int, rv RV, mod ModType, nref int, filler int) *Matcher {
	return &Matcher{bg: bg, z: z, rv: rv, mod: mod, nref: nref, filler: filler}
}

func (m *Matcher) dims() (n, ncb int) {
	d := m.bg.Dims()
	n = d.N * m.z
	ncb = n
	if m.nref > 0 && m.nref < n {
		ncb = m.nref
	}
	return n, ncb
}

// Transmit implements rm_tx: input is the full lifted codeword (length
// bgN*Z, with fec.Filler marking filler positions), output is sized to
// exactly e bits.
func (m *Matcher) Transmit(input []fec.Bit, e int) ([]fec.Bit, error) {
	n, ncb := m.dims()
	if len(input) != n {
		return nil, fmt.Errorf("ratematch: input length %d, want %d: %w", len(input), n, fec.ErrLengthMismatch)
	}
	if e <= 0 || e%m.mod.Qm() != 0 {
		return nil, fmt.Errorf("ratematch: e=%d must be a positive multiple of Qm=%d: %w", e, m.mod.Qm(), fec.ErrInvalidParameter)
	}

	k0 := k0(m.bg, m.rv, m.z, ncb)
	out := make([]fec.Bit, e)
	collected := 0
	for step := 0; collected < e; step++ {
		if step > 2*ncb {
			return nil, fmt.Errorf("ratematch: could not collect %d bits from a %d-bit circular buffer: %w", e, ncb, fec.ErrInvalidParameter)
		}
		pos := (k0 + step) % ncb
		if pos < 2*m.z {
			continue
		}
		if input[pos] == fec.Filler {
			continue
		}
		out[collected] = input[pos]
		collected++
	}
	return out, nil
}

// Receive implements rm_rx: input holds e soft LLR values, inout is the
// full bgN*Z-length codeword LLR buffer the caller pre-initialised (zero,
// or a previous RV's accumulated values for chase/incremental-redundancy
// combining). Receive adds this call's contribution in place, saturating
// per p's soft-bit clip, and forces filler positions to +infinity.
func (m *Matcher) Receive(input []float64, inout []float64, p ldpc.Precision) error {
	n, ncb := m.dims()
	if len(inout) != n {
		return fmt.Errorf("ratematch: inout length %d, want %d: %w", len(inout), n, fec.ErrLengthMismatch)
	}

	k0 := k0(m.bg, m.rv, m.z, ncb)
	d := m.bg.Dims()
	kBits := d.K * m.z
	fillerStart := kBits - m.filler

	collected := 0
	for step := 0; collected < len(input); step++ {
		if step > 2*ncb {
			return fmt.Errorf("ratematch: could not place %d LLRs into a %d-bit circular buffer: %w", len(input), ncb, fec.ErrInvalidParameter)
		}
		pos := (k0 + step) % ncb
		if pos < 2*m.z {
			continue
		}
		if pos >= fillerStart && pos < kBits {
			continue // filler: never carries a channel LLR
		}
		inout[pos] = ldpc.SaturatingAdd(inout[pos], input[collected], p)
		collected++
	}

	for i := fillerStart; i < kBits; i++ {
		inout[i] = positiveInfinity
	}
	return nil
}
