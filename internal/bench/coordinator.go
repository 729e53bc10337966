// Package bench schedules randomized sorting trials across a worker pool under
// a per-cell time budget, then reduces the raw samples into ranked results.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/p-arndt/sortbench/internal/algo"
	"github.com/p-arndt/sortbench/internal/pool"
	"github.com/p-arndt/sortbench/internal/progress"
)

// Outcome is the raw product of a run.
type Outcome struct {
	Cells          Cells
	Generated      int
	Executed       int
	Discarded      int
	Late           int
	ExhaustedCells int
	Workers        int
	Elapsed        time.Duration
}

// Coordinator owns the job stack and the cell table. Both are touched only by
// the goroutine that calls Run; workers see nothing but their own job.
type Coordinator struct {
	opts    Options
	algs    []algo.Algorithm
	logger  *slog.Logger
	metrics *Metrics

	generated      atomic.Int64
	executed       atomic.Int64
	discarded      atomic.Int64
	late           atomic.Int64
	pending        atomic.Int64
	exhaustedCells atomic.Int64
}

// New checks the options and returns a coordinator ready to Run once.
// A nil metrics value records into unregistered collectors.
func New(opts Options, algs []algo.Algorithm, logger *slog.Logger, metrics *Metrics) (*Coordinator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(algs) == 0 {
		return nil, fmt.Errorf("%w: no algorithms selected", ErrInvalidOptions)
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Coordinator{
		opts:    opts,
		algs:    algs,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Progress implements progress.Source.
func (c *Coordinator) Progress() progress.Snapshot {
	return progress.Snapshot{
		Generated:      c.generated.Load(),
		Executed:       c.executed.Load(),
		Discarded:      c.discarded.Load(),
		Late:           c.late.Load(),
		Pending:        c.pending.Load(),
		ExhaustedCells: c.exhaustedCells.Load(),
	}
}

// Run executes every generated job whose cell still has budget left and
// returns the collected samples. A candidate defect or a cancelled ctx stops
// dispatch; jobs already running finish before Run returns.
func (c *Coordinator) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()

	jobs := GenerateJobs(c.algs, c.opts.Sizes, c.opts.Trials, c.opts.Limits)
	Shuffle(jobs, c.opts.Seed)
	c.generated.Store(int64(len(jobs)))
	c.setPending(len(jobs))

	cells := newCells(len(c.algs), len(c.opts.Sizes))
	workers := min(c.opts.Workers, max(1, len(jobs)))

	p := pool.New[Job](workers, c.runTrial, c.logger)
	c.logger.Info("benchmark starting",
		"algorithms", len(c.algs),
		"sizes", c.opts.Sizes,
		"jobs", len(jobs),
		"workers", p.Size(),
		"runtime_limit", c.opts.RuntimeLimit)

	runCtx := p.Start(ctx)

	assignments := make([]*Job, workers)
	ready := make([]bool, workers)
	var protoErr error
	fail := func(err error) {
		if protoErr == nil {
			protoErr = err
		}
		p.ReleaseAll()
	}

	for res := range p.Results() {
		w := res.Worker
		if w < 0 || w >= workers {
			fail(fmt.Errorf("%w: result from unknown worker %d", ErrInternal, w))
			continue
		}

		if res.Ready {
			if ready[w] {
				fail(fmt.Errorf("%w: worker %d identified twice", ErrInternal, w))
				continue
			}
			ready[w] = true
		} else {
			job := assignments[w]
			if job == nil {
				fail(fmt.Errorf("%w: result from idle worker %d", ErrInternal, w))
				continue
			}
			assignments[w] = nil
			c.record(cells, *job, res.Elapsed)
		}

		if protoErr != nil || runCtx.Err() != nil {
			p.Release(w)
			continue
		}
		next, ok := c.pop(&jobs, cells)
		if !ok {
			p.Release(w)
			continue
		}
		assignments[w] = &next
		p.Assign(w, next)
	}

	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("benchmark aborted: %w", err)
	}
	if protoErr != nil {
		return nil, protoErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("benchmark interrupted: %w", err)
	}
	for w := range workers {
		if !p.Released(w) {
			return nil, fmt.Errorf("%w: result stream closed while worker %d was active", ErrInternal, w)
		}
	}

	out := &Outcome{
		Cells:          cells,
		Generated:      int(c.generated.Load()),
		Executed:       int(c.executed.Load()),
		Discarded:      int(c.discarded.Load()),
		Late:           int(c.late.Load()),
		ExhaustedCells: int(c.exhaustedCells.Load()),
		Workers:        p.Size(),
		Elapsed:        time.Since(start),
	}
	c.warnShortCells(cells)
	c.logger.Info("benchmark finished",
		"executed", out.Executed,
		"discarded", out.Discarded,
		"late", out.Late,
		"exhausted_cells", out.ExhaustedCells,
		"elapsed", out.Elapsed)
	return out, nil
}

// record adds one sample to its cell unless the cell ran out of budget while
// the job was in flight.
func (c *Coordinator) record(cells Cells, job Job, elapsed time.Duration) {
	c.executed.Add(1)
	cell := cells.at(job)
	if cell.Exhausted {
		c.late.Add(1)
		c.metrics.jobs.WithLabelValues(outcomeLate).Inc()
		return
	}
	c.metrics.jobs.WithLabelValues(outcomeExecuted).Inc()

	cell.Samples = append(cell.Samples, elapsed)
	cell.Total += elapsed
	if cell.Total >= c.opts.RuntimeLimit {
		cell.Exhausted = true
		c.exhaustedCells.Add(1)
		c.metrics.cellsExhausted.Inc()
		c.logger.Debug("cell exhausted",
			"algorithm", c.algs[job.Algorithm].ID,
			"size", c.opts.Sizes[job.Size],
			"samples", len(cell.Samples))
	}
}

// pop takes jobs off the stack until it finds one whose cell is still active.
func (c *Coordinator) pop(jobs *[]Job, cells Cells) (Job, bool) {
	for len(*jobs) > 0 {
		last := len(*jobs) - 1
		job := (*jobs)[last]
		*jobs = (*jobs)[:last]
		c.setPending(last)
		if cells.at(job).Exhausted {
			c.discarded.Add(1)
			c.metrics.jobs.WithLabelValues(outcomeDiscarded).Inc()
			continue
		}
		return job, true
	}
	return Job{}, false
}

func (c *Coordinator) setPending(n int) {
	c.pending.Store(int64(n))
	c.metrics.pending.Set(float64(n))
}

func (c *Coordinator) warnShortCells(cells Cells) {
	for a, alg := range c.algs {
		for s, size := range c.opts.Sizes {
			if !c.opts.Limits.Allows(alg.Class, size) {
				continue
			}
			if n := len(cells[a][s].Samples); n < c.opts.Trials {
				c.logger.Warn("cell hit the runtime limit before all trials ran",
					"algorithm", alg.ID,
					"size", size,
					"samples", n,
					"trials", c.opts.Trials)
			}
		}
	}
}
