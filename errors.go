package fec

import "errors"

// Error taxonomy for the FEC core. Every error the codec and ctrlplane
// constructors and calls return is one of these four kinds (fecconfig.Load
// also passes file-read and YAML-parse errors through), wrapped with context via
// fmt.Errorf("...: %w", ...) — never a bare string and never a panic in
// the hot path (encode/decode/rate-match/rate-dematch).
var (
	// ErrInvalidParameter marks an unsupported base graph, lifting size,
	// polar order, redundancy version, modulation order, or a transport
	// block size for which no lifting size satisfies segmentation.
	ErrInvalidParameter = errors.New("fec: invalid parameter")

	// ErrLengthMismatch marks a buffer whose length is inconsistent with
	// the declared (BG, Z, E) or polar (n, frozen set) parameters.
	ErrLengthMismatch = errors.New("fec: length mismatch")

	// ErrInvalidFrozenSet marks a polar frozen set that is unsorted, out
	// of range, or of the wrong cardinality.
	ErrInvalidFrozenSet = errors.New("fec: invalid frozen set")

	// ErrResource marks an allocation failure at construction time.
	ErrResource = errors.New("fec: resource allocation failed")
)
