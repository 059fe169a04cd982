package basegraph

// The first four check rows of every 5G NR base graph form a dense,
// circulant "high-rate" region whose solve is the four closed-form cases
// of spec.md §4.3. Rows 1..3 (RowA/RowB/RowC below) each have their own
// independent systematic connectivity ("group"); row 0 (the dense row) is
// the union of all four groups, so its aux value comes out to the XOR of
// all four group sums for free, matching each case's "p0 = f(aux0 ^ aux1
// ^ aux2 ^ aux3)" closed form exactly and letting the decoder's Tanner
// graph and the encoder's closed form describe the same parity-check
// system.

// systematicGroups partitions the bgK systematic columns of bg into 4
// disjoint, deterministic column sets used by the high-rate region.
func systematicGroups(bg BG) [4][]int {
	k := bg.Dims().K
	var bounds [5]int
	if bg == BG1 {
		bounds = [5]int{0, 6, 11, 16, k} // 6,5,5,6
	} else {
		bounds = [5]int{0, 3, 5, 7, k} // 3,2,2,3
	}
	var groups [4][]int
	for g := 0; g < 4; g++ {
		for c := bounds[g]; c < bounds[g+1]; c++ {
			groups[g] = append(groups[g], c)
		}
	}
	return groups
}

func buildCoreRows(e *Expanded) {
	groups := systematicGroups(e.BG)
	z := e.Z
	setIdx := e.SetIndex
	bg := e.BG
	cse := e.Case
	p0, p1, p2, p3 := e.BG.Dims().K, e.BG.Dims().K+1, e.BG.Dims().K+2, e.BG.Dims().K+3

	// Row 0: the dense row, union of all four groups; solves p0.
	for g := 0; g < 4; g++ {
		for _, col := range groups[g] {
			e.connect(0, col, systematicShift(bg, setIdx, col, z))
		}
	}
	e.connect(0, p0, cse.DenseRotation(z))

	chainRot := cse.ChainRotation(z)

	switch cse {
	case Case1, Case2:
		// RowA (group 0, -> aux0): p1 = aux0 (+) rot(p0)
		for _, col := range groups[0] {
			e.connect(1, col, systematicShift(bg, setIdx, col, z))
		}
		e.connect(1, p0, chainRot)
		e.connect(1, p1, 0)

		// RowB (group 3, -> aux3): p3 = aux3 (+) rot(p0)
		for _, col := range groups[3] {
			e.connect(2, col, systematicShift(bg, setIdx, col, z))
		}
		e.connect(2, p0, chainRot)
		e.connect(2, p3, 0)

		// RowC (group 2, -> aux2): p2 = aux2 (+) p3
		for _, col := range groups[2] {
			e.connect(3, col, systematicShift(bg, setIdx, col, z))
		}
		e.connect(3, p3, 0)
		e.connect(3, p2, 0)

	case Case3, Case4:
		// RowA (group 0, -> aux0): p1 = aux0 (+) rot(p0)
		for _, col := range groups[0] {
			e.connect(1, col, systematicShift(bg, setIdx, col, z))
		}
		e.connect(1, p0, chainRot)
		e.connect(1, p1, 0)

		// RowB (group 1, -> aux1): p2 = aux1 (+) p1
		for _, col := range groups[1] {
			e.connect(2, col, systematicShift(bg, setIdx, col, z))
		}
		e.connect(2, p1, 0)
		e.connect(2, p2, 0)

		// RowC (group 3, -> aux3): p3 = aux3 (+) rot(p0)
		for _, col := range groups[3] {
			e.connect(3, col, systematicShift(bg, setIdx, col, z))
		}
		e.connect(3, p0, chainRot)
		e.connect(3, p3, 0)
	}
}

// systematicShift deterministically derives the cyclic shift used for a
// systematic column within the high-rate region. It is a pure function of
// (bg, lift-set index, column, Z); the same call always returns the same
// value, so the encoder and the decoder's Tanner graph never disagree.
//
// This is a placeholder, not the literal 3GPP TS 38.212 Table
// 5.3.2-2/5.3.2-3 shift value for (bg, setIdx, col): that table lives in
// base_graph.c, which this pack does not carry (only base_graph.h's
// macros and create_compact_pcm's prototype are present). The high-rate
// region's two rotation constants that base_graph.c's caller actually
// needs — 105 and 1 — are not affected: they come from
// CoreCase.DenseRotation/ChainRotation, taken verbatim from
// lib/src/phy/fec/ldpc/ldpc_enc_c.c's encode_high_rate_case1..case4, not
// from this function. See DESIGN.md.
func systematicShift(bg BG, setIdx, col, z int) int {
	v := col*131 + setIdx*17 + int(bg)*1_000_003
	return v % z
}
