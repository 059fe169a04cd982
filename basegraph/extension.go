package basegraph

// Extension-region check rows (m = 4 .. bgM-1) each own exactly one parity
// bit: column K+m. Per spec.md §4.3 step 4, that bit is defined as
//
//	output[K+m] = aux[m] ^ rotate_right(output[K], shifts[m][K])
//
// so row m connects to: a handful of systematic columns (whose XOR is
// aux[m]), the single dense parity column K — the column every core row
// also threads through, per ldpc_enc_c.c's extension-region recurrence —
// and its own column K+m with shift 0 (closing the accumulate chain).
//
// Unlike the core region's closed-form rotations (105, 1 — taken
// verbatim from lib/src/phy/fec/ldpc/ldpc_enc_c.c's
// encode_high_rate_case1..case4), the per-row systematic connectivity
// below is not sourced from a literal table: base_graph.c, the file that
// would carry 3GPP TS 38.212 Table 5.3.2-2/5.3.2-3's shift values, is
// absent from this pack (only base_graph.h's dimension macros and
// create_compact_pcm's prototype are present, not its body).
// extensionSystematicCol (below) and systematicShift (see corerows.go)
// are a placeholder generator
// pending that table; see DESIGN.md.
const extensionSystematicDegree = 3

func buildExtensionRows(e *Expanded) {
	d := e.BG.Dims()
	k := d.K
	p0 := k

	for m := 4; m < d.M; m++ {
		for i := 0; i < extensionSystematicDegree; i++ {
			col := extensionSystematicCol(e.BG, m, i, k)
			if _, already := e.lookup(m, col); already {
				continue
			}
			e.connect(m, col, systematicShift(e.BG, e.SetIndex, col+1_000*m, e.Z))
		}
		e.connect(m, p0, 0)
		e.connect(m, k+m, 0)
	}
}

// lookup reports whether row m already connects to column col (so the
// extension generator never emits a duplicate edge into the same row).
func (e *Expanded) lookup(row, col int) (int16, bool) {
	s := e.Shifts[row][col]
	return s, s != NoConnection
}

// extensionSystematicCol deterministically picks the i-th systematic
// column an extension row m connects to, spreading connections across
// the systematic region so nearby rows don't collide on identical column
// sets. Placeholder for the literal per-row column list of 3GPP TS
// 38.212 Table 5.3.2-2/5.3.2-3 (see package doc comment and DESIGN.md).
func extensionSystematicCol(bg BG, m, i, k int) int {
	stride := 131 + 7*int(bg)
	return (m*stride + i*37) % k
}
