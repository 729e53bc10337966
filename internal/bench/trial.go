package bench

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// runTrial executes on a worker goroutine. Only the Sort call is timed.
func (c *Coordinator) runTrial(ctx context.Context, job Job) (time.Duration, error) {
	alg := c.algs[job.Algorithm]
	size := c.opts.Sizes[job.Size]

	want := Input(size, SeedFor(c.opts.Seed, job.Trial))
	got := slices.Clone(want)

	if c.opts.SettleDelay > 0 {
		timer := time.NewTimer(c.opts.SettleDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	start := time.Now()
	alg.Sort(got)
	elapsed := time.Since(start)

	slices.Sort(want)
	if !slices.Equal(want, got) {
		return 0, fmt.Errorf("%w: %s at size %d, trial %d", ErrCandidateDefect, alg.ID, size, job.Trial)
	}
	c.metrics.observeTrial(alg.Class, elapsed)
	return elapsed, nil
}
