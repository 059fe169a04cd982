package basegraph

// VoidLiftSize is the sentinel returned by SetIndexOf for a Z that is not
// a member of any of the 8 lifting-size sets defined by 3GPP TS 38.212
// Table 5.3.2-1.
const VoidLiftSize = -1

// liftSets enumerates the 8 lifting-size sets, smallest to largest member.
var liftSets = [8][]int{
	{2, 4, 8, 16, 32, 64, 128, 256},
	{3, 6, 12, 24, 48, 96, 192, 384},
	{5, 10, 20, 40, 80, 160, 320},
	{7, 14, 28, 56, 112, 224},
	{9, 18, 36, 72, 144, 288},
	{11, 22, 44, 88, 176, 352},
	{13, 26, 52, 104, 208},
	{15, 30, 60, 120, 240},
}

// AllLiftSizes lists every valid Z across all 8 sets, ascending.
var AllLiftSizes = sortedLiftSizes()

func sortedLiftSizes() []int {
	var out []int
	for _, set := range liftSets {
		out = append(out, set...)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// SetIndexOf returns the index (0..7) of the lifting-size set containing
// z, or (VoidLiftSize, false) if z is not a valid 5G NR lifting size.
func SetIndexOf(z int) (int, bool) {
	for idx, set := range liftSets {
		for _, v := range set {
			if v == z {
				return idx, true
			}
		}
	}
	return VoidLiftSize, false
}

// SmallestLiftSizeAtLeast returns the smallest valid Z such that
// kb*Z >= target, and true if one exists within the 5G set.
func SmallestLiftSizeAtLeast(kb, target int) (int, bool) {
	best := -1
	for _, z := range AllLiftSizes {
		if kb*z >= target {
			if best == -1 || z < best {
				best = z
			}
		}
	}
	return best, best != -1
}
