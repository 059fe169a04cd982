package polar

import (
	"fmt"
	"math"

	"github.com/srsgo/fec"
)

// nodeType classifies a subtree of the SSC recursion so whole frozen or
// whole informative subtrees can be resolved without visiting their
// leaves individually.
type nodeType int

const (
	rate0 nodeType = iota
	rate1
	rateR
)

// Decoder runs the SSC (simplified successive cancellation) decoder over
// a length-N = 2^n polar code with a fixed frozen set. A Decoder is
// immutable parameters plus reused working memory, built once per
// (n, frozenSet, precision) and not safe for concurrent use (spec.md §5),
// matching package ldpc's Decoder lifecycle.
type Decoder struct {
	n         int
	frozen    []bool
	nodeTypes [][]nodeType // nodeTypes[stage][blockIndex]
	precision Precision
	backend   Backend
}

// NewDecoder builds a Decoder for code order n with the given frozen set
// and precision. The per-stage node-type table (spec.md §4.6) is built
// once here and reused across every Decode call.
func NewDecoder(n int, frozenSet FrozenSet, precision Precision, backend Backend) (*Decoder, error) {
	if n <= 0 || n > 20 {
		return nil, fmt.Errorf("polar: invalid order n=%d: %w", n, fec.ErrInvalidParameter)
	}
	size := 1 << n
	k := size - len(frozenSet)
	if err := validateFrozenSet(frozenSet, size, k); err != nil {
		return nil, err
	}

	dec := &Decoder{n: n, frozen: frozenSet.mask(size), precision: precision, backend: backend}
	dec.nodeTypes = make([][]nodeType, n+1)
	for s := 0; s <= n; s++ {
		dec.nodeTypes[s] = make([]nodeType, size>>s)
	}
	dec.classify(n, 0)
	return dec, nil
}

// Backend reports which kernel variant this Decoder was constructed with.
func (dec *Decoder) Backend() Backend { return dec.backend }

// classify fills nodeTypes for the subtree rooted at (stage, start) and
// returns that subtree's own type.
func (dec *Decoder) classify(stage, start int) nodeType {
	width := 1 << stage
	if stage == 0 {
		t := rate1
		if dec.frozen[start] {
			t = rate0
		}
		dec.nodeTypes[0][start] = t
		return t
	}
	half := width / 2
	lt := dec.classify(stage-1, start)
	rt := dec.classify(stage-1, start+half)

	var t nodeType
	switch {
	case lt == rate0 && rt == rate0:
		t = rate0
	case lt == rate1 && rt == rate1:
		t = rate1
	default:
		t = rateR
	}
	dec.nodeTypes[stage][start>>stage] = t
	return t
}

// Decode runs SSC over llrs (length N = 2^n) and writes the recovered
// source vector u (length N, frozen positions identically zero) into
// out.
func (dec *Decoder) Decode(llrs []float64, out []fec.Bit) error {
	n := 1 << dec.n
	if len(llrs) != n {
		return fmt.Errorf("polar: llrs length %d, want %d: %w", len(llrs), n, fec.ErrLengthMismatch)
	}
	if len(out) != n {
		return fmt.Errorf("polar: out length %d, want %d: %w", len(out), n, fec.ErrLengthMismatch)
	}

	u := make([]byte, n)
	dec.decodeNode(dec.n, 0, llrs, u)

	for i, b := range u {
		out[i] = fec.Bit(b)
	}
	return nil
}

// decodeNode recursively decodes the subtree at (stage, start), writing
// recovered source bits into u and returning the subtree's G-encoded
// "est" bit vector (beta), which the parent needs for its f/g
// combination.
func (dec *Decoder) decodeNode(stage, start int, llrs []float64, u []byte) []byte {
	width := 1 << stage

	if stage == 0 {
		if dec.frozen[start] {
			u[start] = 0
			return []byte{0}
		}
		b := hardDecide(llrs[0])
		u[start] = b
		return []byte{b}
	}

	t := dec.nodeTypes[stage][start>>stage]
	switch t {
	case rate0:
		for i := 0; i < width; i++ {
			u[start+i] = 0
		}
		return make([]byte, width)
	case rate1:
		est := make([]byte, width)
		for i := 0; i < width; i++ {
			est[i] = hardDecide(llrs[i])
		}
		src := append([]byte(nil), est...)
		polarTransform(src)
		copy(u[start:start+width], src)
		return est
	default:
		return dec.decodeRateR(stage, start, llrs, u)
	}
}

func (dec *Decoder) decodeRateR(stage, start int, llrs []float64, u []byte) []byte {
	width := 1 << stage
	half := width / 2
	clip := dec.precision.MessageClip()

	lLLR := make([]float64, half)
	for i := 0; i < half; i++ {
		lLLR[i] = dec.precision.Quantize(saturatePolar(fCombine(llrs[i], llrs[half+i]), clip))
	}
	leftEst := dec.decodeNode(stage-1, start, lLLR, u)

	rLLR := make([]float64, half)
	for i := 0; i < half; i++ {
		rLLR[i] = dec.precision.Quantize(saturatePolar(gCombine(leftEst[i], llrs[i], llrs[half+i]), clip))
	}
	rightEst := dec.decodeNode(stage-1, start+half, rLLR, u)

	est := make([]byte, width)
	for i := 0; i < half; i++ {
		est[i] = leftEst[i] ^ rightEst[i]
		est[half+i] = rightEst[i]
	}
	return est
}

// fCombine implements f(l, r) = sign(l)*sign(r)*min(|l|, |r|).
func fCombine(l, r float64) float64 {
	mag := math.Min(math.Abs(l), math.Abs(r))
	if (l < 0) != (r < 0) {
		return -mag
	}
	return mag
}

// gCombine implements g(b, l, r) = (b == 0 ? l : -l) + r.
func gCombine(b byte, l, r float64) float64 {
	if b == 0 {
		return l + r
	}
	return r - l
}

func hardDecide(llr float64) byte {
	if llr < 0 {
		return 1
	}
	return 0
}

func saturatePolar(x, clip float64) float64 {
	if math.IsInf(x, 0) {
		return x
	}
	if x > clip {
		return clip
	}
	if x < -clip {
		return -clip
	}
	return x
}
