package bench

import "math"

// Sizes returns lo, lo*factor, lo*factor^2, ... up to and including hi.
// It returns nil when the arguments cannot form a series.
func Sizes(lo, hi, factor int) []int {
	if lo < 1 || hi < lo || factor < 2 {
		return nil
	}
	var out []int
	for s := lo; s <= hi; s *= factor {
		out = append(out, s)
		if s > math.MaxInt/factor {
			break
		}
	}
	return out
}
