package bench

import (
	"math/rand/v2"

	"github.com/p-arndt/sortbench/internal/algo"
)

// Job is one timed run of one algorithm on one input. Algorithm and Size index
// into the coordinator's algorithm table and size series.
type Job struct {
	Algorithm int
	Size      int
	Trial     int
}

// GenerateJobs enumerates every (algorithm, size, trial) combination allowed
// by the complexity-class limits.
func GenerateJobs(algs []algo.Algorithm, sizes []int, trials int, limits algo.Limits) []Job {
	var jobs []Job
	for a, alg := range algs {
		for s, size := range sizes {
			if !limits.Allows(alg.Class, size) {
				continue
			}
			for t := range trials {
				jobs = append(jobs, Job{Algorithm: a, Size: s, Trial: t})
			}
		}
	}
	return jobs
}

// Shuffle permutes jobs in place. The order depends only on seed.
func Shuffle(jobs []Job, seed uint64) {
	r := rand.New(rand.NewPCG(seed, ^seed))
	r.Shuffle(len(jobs), func(i, j int) {
		jobs[i], jobs[j] = jobs[j], jobs[i]
	})
}
