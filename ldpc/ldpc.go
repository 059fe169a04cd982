// Package ldpc implements the 5G NR LDPC encoder and decoder: base-graph
// driven encoding with a closed-form high-rate region and an accumulate
// extension region, and layered/flooded min-sum decoding at float, int16
// and int8 precision.
//
// Grounded on lib/src/phy/fec/ldpc/ldpc_encoder.c (the high-rate closed
// form plus extended-region accumulate loop) and
// lib/src/phy/fec/ldpc/ldpc_decoder.c (the layered min-sum schedule, the
// f/g/xor message kernels, and the int8/int16 saturation convention). The
// SIMD back-end split (ldpc_enc_avx2.c / ldpc_enc_avx512.c /
// ldpc_dec_c_avx2_flood.c / ...) is replaced, per spec.md §9's
// "void-pointer inheritance" redesign flag, by a Backend enum selected at
// construction instead of function-pointer dispatch.
package ldpc

import "github.com/srsgo/fec/simdcaps"

// Backend selects which kernel implementation an Encoder or Decoder uses.
// All backends are required to be bit-exact with each other (spec.md §6);
// here the chosen value is only recorded and reported by Backend(): every
// backend runs the same pure-Go code, since this module carries no real
// assembly (see DESIGN.md).
type Backend = simdcaps.Backend

const (
	Scalar = simdcaps.Scalar
	AVX2   = simdcaps.AVX2
	AVX512 = simdcaps.AVX512
)
