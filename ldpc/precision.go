package ldpc

import "math"

// Precision selects the LLR/message word width the decoder emulates.
// Every precision shares one float64 execution substrate; messageClip,
// softClip and quantize are what actually differentiate them, rounding
// to integer steps and folding
// the saturation/infinity convention spec.md §4.5 assigns to int16 and
// int8 messages. Collapsing the teacher's per-precision kernel
// duplication into one generic function parameterised on Precision
// follows spec.md §9's "macro-expanded template" redesign flag.
type Precision int

const (
	Float Precision = iota
	Int16
	Int8
)

// messageClip is the saturation magnitude for a v2c/c2v message (2^14-1
// for int16, 2^6-1 for int8; unbounded for float).
func (p Precision) messageClip() float64 {
	switch p {
	case Int16:
		return 1<<14 - 1
	case Int8:
		return 1<<6 - 1
	default:
		return math.Inf(1)
	}
}

// softClip is the saturation magnitude for a soft-bit accumulator
// (2^15-1 for int16, 2^7-1 for int8; unbounded for float).
func (p Precision) softClip() float64 {
	switch p {
	case Int16:
		return 1<<15 - 1
	case Int8:
		return 1<<7 - 1
	default:
		return math.Inf(1)
	}
}

// quantize rounds x to the nearest representable step for p; float is
// the identity.
func (p Precision) quantize(x float64) float64 {
	if p == Float {
		return x
	}
	return math.Round(x)
}

// saturate clips x into [-clip, clip], carrying an already-infinite input
// through as infinity (the "sticky infinity" rule of spec.md §4.5).
func saturate(x, clip float64) float64 {
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

// MessageClip exposes messageClip for other packages (polar) that share
// this saturation convention but live outside package ldpc.
func (p Precision) MessageClip() float64 { return p.messageClip() }

// Quantize exposes quantize for other packages (polar) that share this
// saturation convention but live outside package ldpc.
func (p Precision) Quantize(x float64) float64 { return p.quantize(x) }

// SaturatingAdd accumulates b into a under p's soft-bit saturation
// convention (clip magnitude, integer rounding, sticky infinity): used by
// package ratematch when soft-combining a new redundancy version's LLRs
// into a previously accumulated codeword buffer.
func SaturatingAdd(a, b float64, p Precision) float64 {
	return p.quantize(saturate(sumWithInf(a, b), p.softClip()))
}

func sign(x float64) int {
	if x < 0 {
		return 1
	}
	return 0
}
