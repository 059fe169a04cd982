package ldpc

import (
	"testing"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/basegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNoiselessLLRs encodes msg at full rate (E = maxE, so every parity
// layer is transmitted) and turns the resulting codeword into large-
// magnitude LLRs: LLR = (1 - 2*bit) * mag.
func buildNoiselessLLRs(t *testing.T, bg basegraph.BG, z int, msg []fec.Bit, mag float64) []float64 {
	t.Helper()
	enc, err := NewEncoder(bg, z, Scalar)
	require.NoError(t, err)

	d := bg.Dims()
	maxE := d.N*z - 2*z
	out := make([]fec.Bit, maxE)
	require.NoError(t, enc.Encode(msg, out, maxE))

	llrs := make([]float64, d.N*z)
	for i := 0; i < maxE; i++ {
		bit := float64(out[i])
		llrs[2*z+i] = (1 - 2*bit) * mag
	}
	return llrs
}

func TestDecodeNoiselessIdentityLayered(t *testing.T) {
	bg, z := basegraph.BG1, 22
	d := bg.Dims()
	kBits := d.K * z

	msg := make([]fec.Bit, kBits)
	for i := range msg {
		msg[i] = fec.Bit((i * 13) % 2)
	}

	llrs := buildNoiselessLLRs(t, bg, z, msg, 1000)

	dec, err := NewDecoder(bg, z, 4, 0.8, Float, Layered, Scalar)
	require.NoError(t, err)

	maxE := d.N*z - 2*z
	out := make([]fec.Bit, kBits)
	_, err = dec.Decode(llrs, out, maxE, nil)
	require.NoError(t, err)
	assert.Equal(t, msg, out)
}

func TestDecodeNoiselessIdentityFlooded(t *testing.T) {
	bg, z := basegraph.BG2, 10
	d := bg.Dims()
	kBits := d.K * z

	msg := make([]fec.Bit, kBits)
	for i := range msg {
		msg[i] = fec.Bit((i * 5) % 2)
	}

	llrs := buildNoiselessLLRs(t, bg, z, msg, 1000)

	dec, err := NewDecoder(bg, z, 4, 0.8, Float, Flooded, Scalar)
	require.NoError(t, err)

	maxE := d.N*z - 2*z
	out := make([]fec.Bit, kBits)
	_, err = dec.Decode(llrs, out, maxE, nil)
	require.NoError(t, err)
	assert.Equal(t, msg, out)
}

func TestDecodeConvergesWithCRCOracle(t *testing.T) {
	bg, z := basegraph.BG1, 22
	d := bg.Dims()
	kBits := d.K * z

	msg := make([]fec.Bit, kBits)
	for i := range msg {
		msg[i] = fec.Bit((i * 13) % 2)
	}

	llrs := buildNoiselessLLRs(t, bg, z, msg, 1000)

	dec, err := NewDecoder(bg, z, 4, 0.8, Float, Layered, Scalar)
	require.NoError(t, err)

	maxE := d.N*z - 2*z
	out := make([]fec.Bit, kBits)
	res, err := dec.Decode(llrs, out, maxE, alwaysPass{})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, msg, out)
}

type alwaysPass struct{}

func (alwaysPass) Check([]byte) bool { return true }

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	dec, err := NewDecoder(basegraph.BG1, 22, 4, 0.8, Float, Layered, Scalar)
	require.NoError(t, err)

	out := make([]fec.Bit, 10)
	_, err = dec.Decode(make([]float64, 5), out, 1000, nil)
	assert.ErrorIs(t, err, fec.ErrLengthMismatch)
}
