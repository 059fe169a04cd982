package ratematch

import (
	"testing"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/basegraph"
	"github.com/srsgo/fec/ldpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTransmitSkipsPuncturedPrefix(t *testing.T) {
	bg, z := basegraph.BG1, 22
	n := bg.Dims().N * z
	input := make([]fec.Bit, n)
	for i := range input {
		input[i] = fec.Bit(i % 2)
	}

	m := New(bg, z, RV0, QPSK, 0, 0)
	out, err := m.Transmit(input, 1000)
	require.NoError(t, err)
	assert.Len(t, out, 1000)

	// RV0 starts at k0=0, so the first emitted bit is input[2*z] (the
	// first non-punctured position).
	assert.Equal(t, input[2*z], out[0])
}

func TestTransmitSkipsFiller(t *testing.T) {
	bg, z := basegraph.BG2, 10
	n := bg.Dims().N * z
	input := make([]fec.Bit, n)
	kBits := bg.Dims().K * z
	for i := range input {
		input[i] = fec.Bit(i % 2)
	}
	// Mark the last 5 systematic bits as filler.
	for i := kBits - 5; i < kBits; i++ {
		input[i] = fec.Filler
	}

	m := New(bg, z, RV0, QPSK, 0, 0)
	out, err := m.Transmit(input, n-2*z)
	require.NoError(t, err)
	for _, b := range out {
		assert.NotEqual(t, fec.Filler, b)
	}
}

func TestTransmitRejectsBadE(t *testing.T) {
	bg, z := basegraph.BG1, 22
	n := bg.Dims().N * z
	input := make([]fec.Bit, n)

	m := New(bg, z, RV0, QPSK, 0, 0)
	_, err := m.Transmit(input, 7) // not a multiple of Qm=2
	assert.ErrorIs(t, err, fec.ErrInvalidParameter)
}

func TestReceiveForcesFillerToInfinity(t *testing.T) {
	bg, z := basegraph.BG1, 22
	n := bg.Dims().N * z
	kBits := bg.Dims().K * z
	filler := 6

	m := New(bg, z, RV0, QPSK, 0, filler)
	inout := make([]float64, n)
	input := make([]float64, n-2*z)
	for i := range input {
		input[i] = 5
	}

	require.NoError(t, m.Receive(input, inout, ldpc.Float))
	for i := kBits - filler; i < kBits; i++ {
		assert.True(t, inout[i] > 1e300, "filler position %d should be +inf-like, got %v", i, inout[i])
	}
}

func TestReceiveRejectsLengthMismatch(t *testing.T) {
	m := New(basegraph.BG1, 22, RV0, QPSK, 0, 0)
	err := m.Receive([]float64{1, 2, 3}, make([]float64, 5), ldpc.Float)
	assert.ErrorIs(t, err, fec.ErrLengthMismatch)
}

// TestS3RateMatchChainBG1Z208 runs the concrete rate-match scenario of
// spec.md §8 (S3): BG1, Z=208, rv=0, Qm=2 (QPSK), Nref=N (unbounded
// circular buffer), E=3840 — a random 22*208-bit message, encoded,
// rate-matched to E, dematched into an N-sized float LLR vector
// (noiseless), fed to the float decoder: the decoded message must equal
// the input exactly.
func TestS3RateMatchChainBG1Z208(t *testing.T) {
	bg, z := basegraph.BG1, 208
	d := bg.Dims()
	kBits := d.K * z
	n := d.N * z
	const e = 3840

	msg := make([]fec.Bit, kBits)
	for i := range msg {
		msg[i] = fec.Bit((i * 13) % 2)
	}

	enc, err := ldpc.NewEncoder(bg, z, ldpc.Scalar)
	require.NoError(t, err)
	full := make([]fec.Bit, n-2*z)
	require.NoError(t, enc.Encode(msg, full, n-2*z))

	codeword := make([]fec.Bit, n)
	copy(codeword[2*z:], full)

	tx := New(bg, z, RV0, QPSK, 0 /* Nref = N */, 0)
	out, err := tx.Transmit(codeword, e)
	require.NoError(t, err)
	assert.Len(t, out, e)

	llrs := make([]float64, e)
	for i, b := range out {
		llrs[i] = (1 - 2*float64(b)) * 1000
	}

	rx := New(bg, z, RV0, QPSK, 0, 0)
	inout := make([]float64, n)
	require.NoError(t, rx.Receive(llrs, inout, ldpc.Float))

	dec, err := ldpc.NewDecoder(bg, z, 8, 0.8, ldpc.Float, ldpc.Layered, ldpc.Scalar)
	require.NoError(t, err)
	decoded := make([]fec.Bit, kBits)
	_, err = dec.Decode(inout, decoded, e, nil)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestTransmitDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bg := basegraph.BG(rapid.IntRange(0, 1).Draw(t, "bg"))
		z := rapid.SampledFrom(basegraph.AllLiftSizes).Draw(t, "z")
		rv := RV(rapid.IntRange(0, 3).Draw(t, "rv"))
		n := bg.Dims().N * z

		input := make([]fec.Bit, n)
		for i := range input {
			input[i] = fec.Bit(rapid.IntRange(0, 1).Draw(t, "bit"))
		}

		e := (n - 2*z) / 2 * 2 // keep it an even, Qm=2-friendly length
		if e == 0 {
			return
		}
		m := New(bg, z, rv, QPSK, 0, 0)
		out1, err1 := m.Transmit(input, e)
		out2, err2 := m.Transmit(input, e)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, out1, out2)
	})
}
