package crc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAttachCheckRoundTrip(t *testing.T) {
	for _, p := range []Poly{CRC16, CRC24A, CRC24B, CRC24C} {
		payload := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 1, 0, 1, 1, 0, 0}
		framed := p.Attach(payload)
		assert.Equal(t, len(payload)+p.Len(), len(framed))
		assert.True(t, p.Check(framed), "poly %v should check", p)
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	payload := []byte{1, 1, 0, 1, 0, 0, 1, 1, 0, 1}
	framed := CRC24A.Attach(payload)
	framed[0] ^= 1
	assert.False(t, CRC24A.Check(framed))
}

func TestOracleChecksOnlyPrefix(t *testing.T) {
	payload := []byte{1, 0, 0, 1, 1, 0, 1, 0}
	framed := CRC16.Attach(payload)
	extra := append(append([]byte{}, framed...), 1, 0, 1, 1) // trailing junk past the CRC
	o := Oracle{Poly: CRC16, PayloadLen: len(payload)}
	assert.True(t, o.Check(extra))
}

func TestComputeDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(t, "n")
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(rapid.IntRange(0, 1).Draw(t, "bit"))
		}
		p := Poly(rapid.IntRange(0, 3).Draw(t, "poly"))

		a := p.Compute(data)
		b := p.Compute(data)
		assert.Equal(t, a, b)
		assert.Equal(t, p.Len(), len(a))

		framed := append(append([]byte{}, data...), a...)
		assert.True(t, p.Check(framed))
	})
}
