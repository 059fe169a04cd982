// Package segment implements 5G NR code-block segmentation: given a
// transport block size and a base graph, it derives the number of code
// blocks, the lifting size, the filler count, and the CRC lengths.
//
// Grounded on lib/src/phy/fec/cbsegm.c ("cbsegm" computes exactly this
// tuple from tbs and a rate hint) and spec.md §4.2.
package segment

import (
	"fmt"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/basegraph"
)

// Segmentation is the result of segmenting one transport block.
type Segmentation struct {
	BG          basegraph.BG
	TBS         int // original transport block size, bits
	TBCRCLen    int // L_tb: 16 or 24
	CBCRCLen    int // L_cb: 0 (single CB) or 24
	NumCBs      int // C
	Filler      int // F, total filler bits across all code blocks
	Z           int // lifting size
	SetIndex    int // 0-based lift-set index
	PayloadK    int // K = 22*Z (BG1) or 10*Z (BG2): per-CB payload including filler
	SegmentedB  int // B', the padded bit count actually carried across all CBs
}

// Of computes the code-block segmentation of a transport block of size
// tbs bits against base graph bg.
func Of(bg basegraph.BG, tbs int) (Segmentation, error) {
	if tbs <= 0 {
		return Segmentation{}, fmt.Errorf("segment: tbs must be positive, got %d: %w", tbs, fec.ErrInvalidParameter)
	}

	tbCRC := 16
	if tbs > 3824 {
		tbCRC = 24
	}

	maxCB := bg.MaxCodeBlockSize()
	b := tbs + tbCRC

	var numCBs, cbCRC, bPrime int
	if b <= maxCB {
		numCBs = 1
		cbCRC = 0
		bPrime = b
	} else {
		numCBs = ceilDiv(b, maxCB-24)
		cbCRC = 24
		bPrime = b + 24*numCBs
	}

	kPrime := ceilDiv(bPrime, numCBs)
	kb := kbFor(bg, bPrime)

	z, ok := basegraph.SmallestLiftSizeAtLeast(kb, kPrime)
	if !ok {
		return Segmentation{}, fmt.Errorf("segment: no lifting size satisfies kb*Z >= %d: %w", kPrime, fec.ErrInvalidParameter)
	}
	setIdx, _ := basegraph.SetIndexOf(z)

	payloadMultiplier := 22
	if bg == basegraph.BG2 {
		payloadMultiplier = 10
	}
	k := payloadMultiplier * z
	filler := k*numCBs - bPrime

	return Segmentation{
		BG:         bg,
		TBS:        tbs,
		TBCRCLen:   tbCRC,
		CBCRCLen:   cbCRC,
		NumCBs:     numCBs,
		Filler:     filler,
		Z:          z,
		SetIndex:   setIdx,
		PayloadK:   k,
		SegmentedB: bPrime,
	}, nil
}

// kbFor implements spec.md §4.2 step 5's K_b rule.
func kbFor(bg basegraph.BG, b int) int {
	if bg == basegraph.BG1 {
		return 22
	}
	switch {
	case b > 640:
		return 10
	case b > 560:
		return 9
	case b > 192:
		return 8
	default:
		return 6
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
