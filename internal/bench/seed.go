package bench

import "math/rand/v2"

const golden64 = 0x9e3779b97f4a7c15

// SeedFor derives the input seed of a trial from the global seed. The
// splitmix64 finalizer is a bijection on uint64, so distinct trials always get
// distinct seeds.
func SeedFor(global uint64, trial int) uint64 {
	z := global + uint64(trial+1)*golden64
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Input builds the pseudo-random input for a trial. Every algorithm sees the
// same input for the same (size, seed).
func Input(size int, seed uint64) []int32 {
	r := rand.New(rand.NewPCG(seed, seed^golden64))
	data := make([]int32, size)
	for i := range data {
		data[i] = int32(r.Uint32())
	}
	return data
}
