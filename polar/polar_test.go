package polar

import (
	"testing"

	"github.com/srsgo/fec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeOrder1(t *testing.T) {
	// G_1 = [1], so n=0 would be trivial; test the smallest real case, n=1.
	enc, err := NewEncoder(1, Scalar)
	require.NoError(t, err)

	in := []fec.Bit{1, 0}
	out := make([]fec.Bit, 2)
	require.NoError(t, enc.Encode(in, out))
	// G_2 = [[1,0],[1,1]]: out = G_2^T * in in this row convention;
	// verify by re-deriving via direct XOR butterfly semantics.
	assert.Equal(t, fec.Bit(in[0]^in[1]), out[0])
	assert.Equal(t, in[1], out[1])
}

func TestEncodeRejectsLengthMismatch(t *testing.T) {
	enc, err := NewEncoder(3, Scalar)
	require.NoError(t, err)
	err = enc.Encode(make([]fec.Bit, 4), make([]fec.Bit, 8))
	assert.ErrorIs(t, err, fec.ErrLengthMismatch)
}

func TestDecodeNoiselessIdentity(t *testing.T) {
	n := 7
	size := 1 << n
	k := 102
	frozen, err := BhattacharyyaFrozenSet(n, k, 0.5)
	require.NoError(t, err)

	enc, err := NewEncoder(n, Scalar)
	require.NoError(t, err)
	dec, err := NewDecoder(n, frozen, Float, Scalar)
	require.NoError(t, err)

	mask := frozen.mask(size)
	u := make([]fec.Bit, size)
	bitIdx := 0
	payload := make([]int, k)
	for i := range payload {
		payload[i] = (i * 3) % 2
	}
	for i := 0; i < size; i++ {
		if !mask[i] {
			u[i] = fec.Bit(payload[bitIdx])
			bitIdx++
		}
	}

	codeword := make([]fec.Bit, size)
	require.NoError(t, enc.Encode(u, codeword))

	llrs := make([]float64, size)
	for i, b := range codeword {
		bit := float64(b)
		llrs[i] = (1 - 2*bit) * 1000
	}

	out := make([]fec.Bit, size)
	require.NoError(t, dec.Decode(llrs, out))
	assert.Equal(t, u, out)
}

// TestS5PDCCHScale runs the concrete polar scenario of spec.md §8 (S5):
// n=7 (N=128), K=64, the 5G PDCCH DCI-format-1_0 scale. The frozen set
// is built by BhattacharyyaFrozenSet rather than transcribed from 3GPP
// TS 38.212 Table 5.3.1.2-1 (not present in this pack — see DESIGN.md),
// but the scale and the float/int16/int8 precision sweep match S5
// exactly: a random 64-bit message must decode back unchanged at every
// precision.
func TestS5PDCCHScale(t *testing.T) {
	n, k := 7, 64
	size := 1 << n
	frozen, err := BhattacharyyaFrozenSet(n, k, 0.5)
	require.NoError(t, err)
	require.Len(t, frozen, size-k)

	enc, err := NewEncoder(n, Scalar)
	require.NoError(t, err)

	mask := frozen.mask(size)
	u := make([]fec.Bit, size)
	bitIdx := 0
	payload := make([]int, k)
	for i := range payload {
		payload[i] = (i * 13) % 2
	}
	for i := 0; i < size; i++ {
		if !mask[i] {
			u[i] = fec.Bit(payload[bitIdx])
			bitIdx++
		}
	}

	codeword := make([]fec.Bit, size)
	require.NoError(t, enc.Encode(u, codeword))

	for _, p := range []Precision{Float, Int16, Int8} {
		dec, err := NewDecoder(n, frozen, p, Scalar)
		require.NoError(t, err)

		llrs := make([]float64, size)
		for i, b := range codeword {
			llrs[i] = (1 - 2*float64(b)) * 1000
		}

		out := make([]fec.Bit, size)
		require.NoError(t, dec.Decode(llrs, out))
		assert.Equal(t, u, out, "precision %v", p)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		size := 1 << n
		enc, err := NewEncoder(n, Scalar)
		require.NoError(t, err)

		in := make([]fec.Bit, size)
		for i := range in {
			in[i] = fec.Bit(rapid.IntRange(0, 1).Draw(t, "bit"))
		}
		out1 := make([]fec.Bit, size)
		out2 := make([]fec.Bit, size)
		require.NoError(t, enc.Encode(in, out1))
		require.NoError(t, enc.Encode(in, out2))
		assert.Equal(t, out1, out2)
	})
}
