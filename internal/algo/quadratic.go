package algo

import "cmp"

// Bubble stops each pass at the position of the previous pass's last swap.
func Bubble[T cmp.Ordered](s []T) {
	for n := len(s); n > 1; {
		last := 0
		for i := 1; i < n; i++ {
			if s[i-1] > s[i] {
				s[i-1], s[i] = s[i], s[i-1]
				last = i
			}
		}
		n = last
	}
}

// CocktailShaker alternates forward and backward bubble passes.
func CocktailShaker[T cmp.Ordered](s []T) {
	lo, hi := 0, len(s)-1
	for lo < hi {
		last := lo
		for i := lo; i < hi; i++ {
			if s[i] > s[i+1] {
				s[i], s[i+1] = s[i+1], s[i]
				last = i
			}
		}
		hi = last

		last = hi
		for i := hi; i > lo; i-- {
			if s[i-1] > s[i] {
				s[i-1], s[i] = s[i], s[i-1]
				last = i
			}
		}
		lo = last
	}
}

func Selection[T cmp.Ordered](s []T) {
	for i := 0; i+1 < len(s); i++ {
		m := i
		for j := i + 1; j < len(s); j++ {
			if s[j] < s[m] {
				m = j
			}
		}
		s[i], s[m] = s[m], s[i]
	}
}

// SelectionMinMax places both the minimum and the maximum of the unsorted
// window on every pass.
func SelectionMinMax[T cmp.Ordered](s []T) {
	lo, hi := 0, len(s)-1
	for lo < hi {
		mn, mx := lo, lo
		for i := lo + 1; i <= hi; i++ {
			if s[i] < s[mn] {
				mn = i
			}
			if s[i] > s[mx] {
				mx = i
			}
		}
		s[lo], s[mn] = s[mn], s[lo]
		if mx == lo {
			mx = mn
		}
		s[hi], s[mx] = s[mx], s[hi]
		lo++
		hi--
	}
}

func Insertion[T cmp.Ordered](s []T) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i
		for j > 0 && s[j-1] > v {
			s[j] = s[j-1]
			j--
		}
		s[j] = v
	}
}

// InsertionSwap is the textbook swapping variant, kept to compare against the
// shifting one above.
func InsertionSwap[T cmp.Ordered](s []T) {
	insertionGap(s, 1)
}

func insertionGap[T cmp.Ordered](s []T, gap int) {
	for i := gap; i < len(s); i++ {
		for j := i; j >= gap && s[j-gap] > s[j]; j -= gap {
			s[j-gap], s[j] = s[j], s[j-gap]
		}
	}
}
