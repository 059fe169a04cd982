package ldpc

import (
	"fmt"
	"math"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/basegraph"
)

// Schedule selects which of the two update orders the Decoder runs.
type Schedule int

const (
	Layered Schedule = iota
	Flooded
)

// DecodeStatus is the outcome tag of one Decode call.
type DecodeStatus int

const (
	Converged DecodeStatus = iota
	MaxIter
	CrcFail
)

// DecodeResult reports how a decode attempt ended and how many rounds of
// the three-step update it took.
type DecodeResult struct {
	Status     DecodeStatus
	Iterations int
}

// CRCOracle lets a caller plug in an early-termination test: Check
// receives the decoder's current hard decision for all bgK*Z systematic
// bits and reports whether they pass. crc.Oracle implements this,
// checking only the PayloadLen + CRC length prefix it was built for.
type CRCOracle interface {
	Check(bits []byte) bool
}

// Decoder runs the layered or flooded normalised min-sum schedule over
// one (base graph, lifting size) Tanner graph. A Decoder is immutable
// parameters plus reused working memory; it is not safe for concurrent
// use by multiple goroutines (spec.md §5) — run independent Decoder
// instances on separate goroutines instead.
//
// Grounded on lib/src/phy/fec/ldpc/ldpc_decoder.c: the layered schedule,
// the v2c/c2v/soft_bits three-buffer layout, and the min1/min2/argmin/
// sign-product row reduction all follow its structure; the
// scalar/AVX2/AVX512 back-end split is collapsed into the Backend enum
// per spec.md §9, and the float/int16/int8 back-end split is collapsed
// into Precision.
type Decoder struct {
	bg        basegraph.BG
	z         int
	maxIter   int
	alpha     float64
	precision Precision
	schedule  Schedule
	backend   Backend
	expanded  *basegraph.Expanded

	softBits []float64
	v2c      [][]float64
	c2v      [][]float64
}

// NewDecoder builds a Decoder for base graph bg at lifting size z, with
// the given iteration budget, min-sum scaling factor alpha, precision and
// schedule.
func NewDecoder(bg basegraph.BG, z int, maxIter int, alpha float64, precision Precision, schedule Schedule, backend Backend) (*Decoder, error) {
	if maxIter <= 0 || alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("ldpc: invalid decoder parameters (maxIter=%d, alpha=%g): %w", maxIter, alpha, fec.ErrInvalidParameter)
	}
	expanded, err := basegraph.Expand(bg, z)
	if err != nil {
		return nil, err
	}
	d := bg.Dims()
	dec := &Decoder{
		bg: bg, z: z, maxIter: maxIter, alpha: alpha,
		precision: precision, schedule: schedule, backend: backend,
		expanded: expanded,
		softBits: make([]float64, d.N*z),
		v2c:      make([][]float64, d.M),
		c2v:      make([][]float64, d.M),
	}
	for m := 0; m < d.M; m++ {
		dec.v2c[m] = make([]float64, basegraph.MaxConnections*z)
		dec.c2v[m] = make([]float64, basegraph.MaxConnections*z)
	}
	return dec, nil
}

// Backend reports which kernel variant this Decoder was constructed with.
func (dec *Decoder) Backend() Backend { return dec.backend }

// Decode implements spec.md §4.5. llrs must hold the full lifted codeword
// (bgN*Z channel LLRs, first 2*Z positions zero for the punctured
// systematic bits). message receives the bgK*Z recovered systematic bits.
// e is the rate-matched length used to derive the decoding-layer count;
// oracle, if non-nil, is consulted after every round for early
// termination.
func (dec *Decoder) Decode(llrs []float64, message []fec.Bit, e int, oracle CRCOracle) (DecodeResult, error) {
	d := dec.bg.Dims()
	z := dec.z
	if len(llrs) != d.N*z {
		return DecodeResult{}, fmt.Errorf("ldpc: llrs length %d, want %d: %w", len(llrs), d.N*z, fec.ErrLengthMismatch)
	}
	kBits := d.K * z
	if len(message) < kBits {
		return DecodeResult{}, fmt.Errorf("ldpc: message buffer too small (%d), need %d: %w", len(message), kBits, fec.ErrLengthMismatch)
	}

	nLayers := clamp(ceilDiv(e, z)-d.K+2, 4, d.M)

	copy(dec.softBits, llrs)
	for m := 0; m < nLayers; m++ {
		for i := range dec.v2c[m] {
			dec.v2c[m][i] = 0
		}
		for i := range dec.c2v[m] {
			dec.c2v[m][i] = 0
		}
	}

	check := func(round int) (DecodeResult, bool) {
		if oracle == nil {
			return DecodeResult{}, false
		}
		hard := dec.hardDecision(kBits)
		if oracle.Check(hard) {
			dec.writeMessage(message, kBits)
			return DecodeResult{Status: Converged, Iterations: round}, true
		}
		return DecodeResult{}, false
	}

	ran := dec.maxIter
	if dec.schedule == Layered {
		for i := 0; i < dec.maxIter; i++ {
			for layer := 0; layer < nLayers; layer++ {
				dec.layeredLayer(layer)
			}
			if res, done := check(i + 1); done {
				return res, nil
			}
		}
	} else {
		rounds := dec.maxIter * 2
		ran = rounds
		for i := 0; i < rounds; i++ {
			dec.floodedRound(nLayers)
			if res, done := check(i + 1); done {
				return res, nil
			}
		}
	}

	dec.writeMessage(message, kBits)
	if oracle != nil {
		return DecodeResult{Status: CrcFail, Iterations: ran}, nil
	}
	return DecodeResult{Status: MaxIter, Iterations: ran}, nil
}

func (dec *Decoder) writeMessage(message []fec.Bit, kBits int) {
	for i := 0; i < kBits; i++ {
		message[i] = fec.Bit(sign(dec.softBits[i]))
	}
}

func (dec *Decoder) hardDecision(kBits int) []byte {
	out := make([]byte, kBits)
	for i := 0; i < kBits; i++ {
		out[i] = byte(sign(dec.softBits[i]))
	}
	return out
}

// layeredLayer runs the three update steps for one check row, writing the
// new soft bits back immediately (the defining trait of the layered
// schedule).
func (dec *Decoder) layeredLayer(layer int) {
	dec.stepV2C(layer, dec.softBits)
	dec.stepC2V(layer)
	z := dec.z
	clip := dec.precision.softClip()
	for s, col16 := range dec.expanded.VarIndices[layer] {
		col := int(col16)
		if col < 0 {
			break
		}
		for i := 0; i < z; i++ {
			c := dec.c2v[layer][s*z+i]
			v := dec.v2c[layer][s*z+i]
			dec.softBits[col*z+i] = dec.precision.quantize(saturate(sumWithInf(c, v), clip))
		}
	}
}

// floodedRound computes v2c/c2v for every active layer from one frozen
// snapshot of soft_bits, then recombines every edge's delta into the
// per-variable total in a single pass — the flooded schedule's
// order-independence requirement (spec.md §5) means no edge may see
// another edge's update mid-round, unlike the layered schedule above.
func (dec *Decoder) floodedRound(nLayers int) {
	z := dec.z
	softPrev := append([]float64(nil), dec.softBits...)
	oldC2V := make([][]float64, nLayers)
	for l := 0; l < nLayers; l++ {
		oldC2V[l] = append([]float64(nil), dec.c2v[l]...)
	}

	for l := 0; l < nLayers; l++ {
		dec.stepV2C(l, softPrev)
	}
	for l := 0; l < nLayers; l++ {
		dec.stepC2V(l)
	}

	raw := append([]float64(nil), softPrev...)
	for l := 0; l < nLayers; l++ {
		for s, col16 := range dec.expanded.VarIndices[l] {
			col := int(col16)
			if col < 0 {
				break
			}
			for i := 0; i < z; i++ {
				raw[col*z+i] += dec.c2v[l][s*z+i] - oldC2V[l][s*z+i]
			}
		}
	}
	clip := dec.precision.softClip()
	for i := range raw {
		dec.softBits[i] = dec.precision.quantize(saturate(raw[i], clip))
	}
}

// stepV2C is the variable-to-check update: v2c = soft_bits - c2v_prev,
// saturating, with an already-infinite soft bit passed through unchanged.
func (dec *Decoder) stepV2C(layer int, source []float64) {
	z := dec.z
	clip := dec.precision.messageClip()
	for s, col16 := range dec.expanded.VarIndices[layer] {
		col := int(col16)
		if col < 0 {
			break
		}
		for i := 0; i < z; i++ {
			sb := source[col*z+i]
			if math.IsInf(sb, 0) {
				dec.v2c[layer][s*z+i] = sb
				continue
			}
			dec.v2c[layer][s*z+i] = dec.precision.quantize(saturate(sb-dec.c2v[layer][s*z+i], clip))
		}
	}
}

// stepC2V is the check-to-variable min-sum update: rotate each connected
// variable's v2c message into the row's canonical alignment, reduce to
// (min1, min2, arg-min, sign-product) per lane, then rotate the result
// back before storing.
func (dec *Decoder) stepC2V(layer int) {
	z := dec.z
	row := dec.expanded.Shifts[layer]
	var slots []int
	var cols []int
	for s, col16 := range dec.expanded.VarIndices[layer] {
		col := int(col16)
		if col < 0 {
			break
		}
		slots = append(slots, s)
		cols = append(cols, col)
	}
	n := len(slots)
	rotated := make([][]float64, n)
	for idx := range slots {
		shift := int(row[cols[idx]])
		rotated[idx] = vecRotateRightF64(dec.v2c[layer][slots[idx]*z:slots[idx]*z+z], shift)
	}

	min1 := make([]float64, z)
	min2 := make([]float64, z)
	argmin := make([]int, z)
	signProd := make([]int, z)
	for i := 0; i < z; i++ {
		m1, m2, arg, sp := math.Inf(1), math.Inf(1), -1, 0
		for idx := 0; idx < n; idx++ {
			v := rotated[idx][i]
			mag := math.Abs(v)
			sp ^= sign(v)
			if mag < m1 {
				m2 = m1
				m1 = mag
				arg = idx
			} else if mag < m2 {
				m2 = mag
			}
		}
		min1[i], min2[i], argmin[i], signProd[i] = m1, m2, arg, sp
	}

	clip := dec.precision.messageClip()
	for idx := range slots {
		res := make([]float64, z)
		for i := 0; i < z; i++ {
			v := rotated[idx][i]
			sgn := signProd[i] ^ sign(v)
			mag := min1[i]
			if idx == argmin[i] {
				mag = min2[i]
			}
			val := dec.alpha * mag
			if sgn == 1 {
				val = -val
			}
			res[i] = dec.precision.quantize(saturate(val, clip))
		}
		shift := int(row[cols[idx]])
		final := vecRotateLeftF64(res, shift)
		copy(dec.c2v[layer][slots[idx]*z:slots[idx]*z+z], final)
	}
}

func sumWithInf(a, b float64) float64 {
	if math.IsInf(a, 0) {
		return a
	}
	if math.IsInf(b, 0) {
		return b
	}
	return a + b
}
