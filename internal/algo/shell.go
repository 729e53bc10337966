package algo

import (
	"cmp"
	"math"
)

// Ciura's experimentally derived gaps, extended by a factor of ~2.25.
var ciuraGaps = []int{20622, 8855, 3802, 1633, 701, 301, 132, 57, 23, 10, 4, 1}

// ShellCiura runs gapped insertion passes over Ciura's sequence.
func ShellCiura[T cmp.Ordered](s []T) {
	for _, gap := range ciuraGaps {
		if gap < len(s) {
			insertionGap(s, gap)
		}
	}
}

// ShellKnuth uses gaps (3^k - 1) / 2.
func ShellKnuth[T cmp.Ordered](s []T) {
	shellFunc(s, func(k int) int {
		return (pow(3, k+1) - 1) / 2
	})
}

// ShellTokuda uses gaps ceil((9^k - 4^k) / (5 * 4^(k-1))).
func ShellTokuda[T cmp.Ordered](s []T) {
	shellFunc(s, func(k int) int {
		return int(math.Ceil((math.Pow(9, float64(k+1)) - math.Pow(4, float64(k+1))) / (5 * math.Pow(4, float64(k)))))
	})
}

// ShellSedgewick86 uses 4^k + 3*2^(k-1) + 1, prefixed with 1.
func ShellSedgewick86[T cmp.Ordered](s []T) {
	shellFunc(s, func(k int) int {
		if k == 0 {
			return 1
		}
		return pow(4, k) + 3*pow(2, k-1) + 1
	})
}

// shellFunc finds the largest gap below len(s) and walks the sequence back down.
// gap must be strictly increasing in k.
func shellFunc[T cmp.Ordered](s []T, gap func(k int) int) {
	k := 0
	for gap(k) < len(s) {
		k++
	}
	for k--; k >= 0; k-- {
		insertionGap(s, gap(k))
	}
}

func pow(base, exp int) int {
	r := 1
	for ; exp > 0; exp-- {
		r *= base
	}
	return r
}
