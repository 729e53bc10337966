package algo

// Radix is an LSD radix sort over the four bytes of an int32. The top byte has
// its sign bit flipped so negative values order before positive ones.
func Radix(s []int32) {
	if len(s) < 2 {
		return
	}
	src, dst := s, make([]int32, len(s))
	for shift := uint(0); shift < 32; shift += 8 {
		var count [257]int
		for _, v := range src {
			count[radixKey(v, shift)+1]++
		}
		for i := 1; i < len(count); i++ {
			count[i] += count[i-1]
		}
		for _, v := range src {
			k := radixKey(v, shift)
			dst[count[k]] = v
			count[k]++
		}
		src, dst = dst, src
	}
	// four passes: the sorted data is back in s
}

func radixKey(v int32, shift uint) int {
	k := uint32(v) >> shift & 0xff
	if shift == 24 {
		k ^= 0x80
	}
	return int(k)
}
