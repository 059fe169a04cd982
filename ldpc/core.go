package ldpc

import "github.com/srsgo/fec/basegraph"

// solveCore evaluates the four closed-form high-rate parity equations of
// spec.md §4.3 from the four aux values. The two closed forms that differ
// between the base-graph cases (how p2/p3 chain off p1 versus off p0) are
// exactly the RowB/RowC connectivity basegraph.buildCoreRows lays down, so
// this function and the generated Tanner graph describe the same system.
func solveCore(c basegraph.CoreCase, aux0, aux1, aux2, aux3 []byte, z int) (p0, p1, p2, p3 []byte) {
	auxSum := vecXor(vecXor(aux0, aux1), vecXor(aux2, aux3))
	p0 = vecRotateLeft(auxSum, c.DenseRotation(z))
	t := vecRotateRight(p0, c.ChainRotation(z))
	p1 = vecXor(aux0, t)

	switch c {
	case basegraph.Case1, basegraph.Case2:
		p3 = vecXor(aux3, t)
		p2 = vecXor(aux2, p3)
	default: // Case3, Case4
		p2 = vecXor(aux1, p1)
		p3 = vecXor(aux3, t)
	}
	return p0, p1, p2, p3
}
