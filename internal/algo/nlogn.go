package algo

import (
	"cmp"
	"math"
	"math/bits"
)

// Below this length the recursive sorts hand over to insertion sort.
const insertionThreshold = 32

// MergeHybrid is a top-down merge sort over one buffer allocated up front.
func MergeHybrid[T cmp.Ordered](s []T) {
	buf := make([]T, len(s))
	mergeSort(s, buf)
}

func mergeSort[T cmp.Ordered](s, buf []T) {
	if len(s) <= insertionThreshold {
		Insertion(s)
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], buf[:mid])
	mergeSort(s[mid:], buf[mid:])
	merge(s, mid, buf)
}

// MergeRepeatedAlloc allocates a fresh buffer for every merge and never
// switches to insertion sort.
func MergeRepeatedAlloc[T cmp.Ordered](s []T) {
	if len(s) < 2 {
		return
	}
	mid := len(s) / 2
	MergeRepeatedAlloc(s[:mid])
	MergeRepeatedAlloc(s[mid:])
	merge(s, mid, make([]T, len(s)))
}

// merge combines the sorted runs s[:mid] and s[mid:] using buf as scratch.
func merge[T cmp.Ordered](s []T, mid int, buf []T) {
	if mid == 0 || mid == len(s) || s[mid-1] <= s[mid] {
		return
	}
	copy(buf, s)
	left, right := buf[:mid], buf[mid:len(s)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if right[j] < left[i] {
			s[k] = right[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}

func sink[T cmp.Ordered](s []T, i, n int) {
	for {
		c := 2*i + 1
		if c >= n {
			return
		}
		if c+1 < n && s[c+1] > s[c] {
			c++
		}
		if s[i] >= s[c] {
			return
		}
		s[i], s[c] = s[c], s[i]
		i = c
	}
}

// HeapTopDown builds the heap by swimming each element up.
func HeapTopDown[T cmp.Ordered](s []T) {
	for i := range s {
		for j := i; j > 0 && s[(j-1)/2] < s[j]; j = (j - 1) / 2 {
			s[j], s[(j-1)/2] = s[(j-1)/2], s[j]
		}
	}
	heapExtract(s)
}

// HeapBottomUp builds the heap by sinking every internal node.
func HeapBottomUp[T cmp.Ordered](s []T) {
	for i := len(s)/2 - 1; i >= 0; i-- {
		sink(s, i, len(s))
	}
	heapExtract(s)
}

func heapExtract[T cmp.Ordered](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		s[0], s[i] = s[i], s[0]
		sink(s, 0, i)
	}
}

// partitionEnd is Lomuto's scheme with the last element as pivot.
func partitionEnd[T cmp.Ordered](s []T) int {
	last := len(s) - 1
	pivot := s[last]
	i := 0
	for j := 0; j < last; j++ {
		if s[j] < pivot {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	s[i], s[last] = s[last], s[i]
	return i
}

// QuickEnd is plain quicksort with the last element as pivot. It recurses into
// the smaller side so already sorted inputs cannot exhaust the stack.
func QuickEnd[T cmp.Ordered](s []T) {
	for len(s) > 1 {
		p := partitionEnd(s)
		if p < len(s)-p-1 {
			QuickEnd(s[:p])
			s = s[p+1:]
		} else {
			QuickEnd(s[p+1:])
			s = s[:p]
		}
	}
}

// QuickHybrid picks a median-of-three pivot and finishes small ranges with
// insertion sort.
func QuickHybrid[T cmp.Ordered](s []T) {
	for len(s) > insertionThreshold {
		medianOfThreeToEnd(s)
		p := partitionEnd(s)
		if p < len(s)-p-1 {
			QuickHybrid(s[:p])
			s = s[p+1:]
		} else {
			QuickHybrid(s[p+1:])
			s = s[:p]
		}
	}
	Insertion(s)
}

func medianOfThreeToEnd[T cmp.Ordered](s []T) {
	a, b, c := 0, len(s)/2, len(s)-1
	if s[a] > s[b] {
		a, b = b, a
	}
	if s[b] > s[c] {
		b = c
		if s[a] > s[b] {
			b = a
		}
	}
	s[b], s[len(s)-1] = s[len(s)-1], s[b]
}

// Intro is quicksort that falls back to heapsort after 2*log2(n) levels.
func Intro[T cmp.Ordered](s []T) {
	introStep(s, 2*bits.Len(uint(len(s))))
}

func introStep[T cmp.Ordered](s []T, depth int) {
	switch {
	case len(s) <= insertionThreshold:
		Insertion(s)
	case depth == 0:
		HeapBottomUp(s)
	default:
		medianOfThreeToEnd(s)
		p := partitionEnd(s)
		introStep(s[:p], depth-1)
		introStep(s[p+1:], depth-1)
	}
}

// ChunkMerge insertion-sorts chunks of sqrt(n) elements and then merges the
// chunks pairwise, which gives O(n^1.5) overall.
func ChunkMerge[T cmp.Ordered](s []T) {
	chunk := int(math.Sqrt(float64(len(s))))
	if chunk < 1 {
		return
	}
	for lo := 0; lo < len(s); lo += chunk {
		Insertion(s[lo:min(lo+chunk, len(s))])
	}
	buf := make([]T, len(s))
	for width := chunk; width < len(s); width *= 2 {
		for lo := 0; lo+width < len(s); lo += 2 * width {
			hi := min(lo+2*width, len(s))
			merge(s[lo:hi], width, buf)
		}
	}
}
