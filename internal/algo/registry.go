package algo

import (
	"slices"
	"sort"
)

// Registry returns every candidate in display order. The returned slice is
// freshly built; callers treat it as read-only once a run starts.
func Registry() []Algorithm {
	return []Algorithm{
		{ID: "bubblesort", Name: "bubblesort", Class: Quadratic, Sort: Bubble[int32]},
		{ID: "cocktail_shaker", Name: "cocktail shaker", Class: Quadratic, Sort: CocktailShaker[int32]},
		{ID: "selectionsort", Name: "selectionsort", Class: Quadratic, Sort: Selection[int32]},
		{ID: "selectionsort_minmax", Name: "selectionsort (min/max)", Class: Quadratic, Sort: SelectionMinMax[int32]},
		{ID: "insertionsort", Name: "insertionsort", Class: Quadratic, Sort: Insertion[int32]},
		{ID: "insertionsort_swap", Name: "insertionsort (swap)", Class: Quadratic, Sort: InsertionSwap[int32]},
		{ID: "shellsort_knuth", Name: "shellsort (knuth)", Class: FourThirds, Sort: ShellKnuth[int32]},
		{ID: "shellsort_sedgewick86", Name: "shellsort (sedgewick86)", Class: FourThirds, Sort: ShellSedgewick86[int32]},
		{ID: "shellsort_tokuda", Name: "shellsort (tokuda)", Class: FourThirds, Sort: ShellTokuda[int32]},
		{ID: "shellsort_ciura", Name: "shellsort (ciura)", Class: FourThirds, Sort: ShellCiura[int32]},
		{ID: "mergesort_hybrid", Name: "mergesort (hybrid)", Class: Linearithmic, Sort: MergeHybrid[int32]},
		{ID: "mergesort_repeated_alloc", Name: "mergesort (repeated alloc)", Class: Linearithmic, Sort: MergeRepeatedAlloc[int32]},
		{ID: "heapsort_top_down", Name: "heapsort (top down)", Class: Linearithmic, Sort: HeapTopDown[int32]},
		{ID: "heapsort_bottom_up", Name: "heapsort (bottom up)", Class: Linearithmic, Sort: HeapBottomUp[int32]},
		{ID: "quicksort_end", Name: "quicksort (end pivot)", Class: Linearithmic, Sort: QuickEnd[int32]},
		{ID: "quicksort_hybrid", Name: "quicksort (hybrid)", Class: Linearithmic, Sort: QuickHybrid[int32]},
		{ID: "introsort", Name: "introsort", Class: Linearithmic, Sort: Intro[int32]},
		{ID: "chunk_merge", Name: "chunk merge (sqrt n)", Class: ThreeHalves, Sort: ChunkMerge[int32]},
		{ID: "radixsort", Name: "radixsort", Class: Linear, Sort: Radix},
		{ID: "gosort", Name: "gosort (slices.Sort)", Class: Linearithmic, Sort: slices.Sort[[]int32]},
		{ID: "gosort_slice", Name: "gosort (sort.Slice)", Class: Linearithmic, Sort: sortSlice},
	}
}

func sortSlice(s []int32) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}
