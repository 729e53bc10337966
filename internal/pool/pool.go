// Package pool runs jobs on a fixed set of worker goroutines. Each worker has
// its own inbox fed by a single coordinator; all workers report on one shared
// result channel that is closed once every worker has exited.
package pool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Exec runs one job and returns the time to report for it. A non-nil error
// stops the worker and cancels the pool context.
type Exec[J any] func(ctx context.Context, job J) (time.Duration, error)

// Pool owns the worker goroutines. Assign and Release must only be called from
// the goroutine that consumes Results.
type Pool[J any] struct {
	size     int
	exec     Exec[J]
	logger   *slog.Logger
	inboxes  []chan Message
	released []bool
	results  chan Result
	done     chan struct{}
	err      error
}

func New[J any](size int, exec Exec[J], logger *slog.Logger) *Pool[J] {
	return &Pool[J]{
		size:     size,
		exec:     exec,
		logger:   logger,
		inboxes:  make([]chan Message, size),
		released: make([]bool, size),
		// one outstanding message per worker, so sends never block
		results: make(chan Result, size),
		done:    make(chan struct{}),
	}
}

// Size returns the number of workers.
func (p *Pool[J]) Size() int {
	return p.size
}

// Start spawns the workers and sends each its Identify message. The returned
// context is cancelled when any worker fails or ctx ends.
func (p *Pool[J]) Start(ctx context.Context) context.Context {
	g, gctx := errgroup.WithContext(ctx)
	for i := range p.size {
		inbox := make(chan Message, 1)
		p.inboxes[i] = inbox
		inbox <- Identify{Worker: i}
		g.Go(func() error {
			return p.work(gctx, inbox)
		})
	}
	p.logger.Debug("worker pool started", "workers", p.size)

	go func() {
		p.err = g.Wait()
		close(p.results)
		close(p.done)
	}()
	return gctx
}

func (p *Pool[J]) work(ctx context.Context, inbox <-chan Message) error {
	id := -1
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-inbox:
			if !ok {
				return nil
			}
			switch m := msg.(type) {
			case Identify:
				id = m.Worker
				p.results <- Result{Worker: id, Ready: true}
			case Work[J]:
				elapsed, err := p.exec(ctx, m.Job)
				if err != nil {
					return fmt.Errorf("worker %d: %w", id, err)
				}
				p.results <- Result{Worker: id, Elapsed: elapsed}
			}
		}
	}
}

// Assign hands job to worker. The worker must have no outstanding job.
func (p *Pool[J]) Assign(worker int, job J) {
	p.inboxes[worker] <- Work[J]{Job: job}
}

// Release closes the worker's inbox; the worker exits once it sees it.
// Releasing twice is a no-op.
func (p *Pool[J]) Release(worker int) {
	if p.released[worker] {
		return
	}
	p.released[worker] = true
	close(p.inboxes[worker])
}

// ReleaseAll releases every worker still holding an open inbox.
func (p *Pool[J]) ReleaseAll() {
	for i := range p.size {
		p.Release(i)
	}
}

// Released reports whether worker's inbox has been closed.
func (p *Pool[J]) Released(worker int) bool {
	return p.released[worker]
}

// Results is closed after every worker has exited.
func (p *Pool[J]) Results() <-chan Result {
	return p.results
}

// Wait blocks until all workers have exited and returns the first worker error.
func (p *Pool[J]) Wait() error {
	<-p.done
	return p.err
}
