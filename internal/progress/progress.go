// Package progress periodically logs how far a benchmark run has come.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// Snapshot is a point-in-time copy of the run counters.
type Snapshot struct {
	Generated      int64
	Executed       int64
	Discarded      int64
	Late           int64
	Pending        int64
	ExhaustedCells int64
}

// Done counts jobs that have left the stack, either run or discarded.
func (s Snapshot) Done() int64 {
	return s.Executed + s.Discarded
}

// Percent is Done as a share of Generated.
func (s Snapshot) Percent() float64 {
	if s.Generated == 0 {
		return 100
	}
	return 100 * float64(s.Done()) / float64(s.Generated)
}

// Source yields snapshots. Implementations must be safe to call from another goroutine.
type Source interface {
	Progress() Snapshot
}

type Reporter struct {
	source   Source
	interval time.Duration
	logger   *slog.Logger
}

func New(src Source, interval time.Duration, logger *slog.Logger) *Reporter {
	return &Reporter{
		source:   src,
		interval: interval,
		logger:   logger,
	}
}

// Run logs a snapshot every interval until ctx ends, then logs one last time.
// A non-positive interval disables the periodic lines.
func (r *Reporter) Run(ctx context.Context) {
	if r.interval <= 0 {
		<-ctx.Done()
		r.report()
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.report()
			return
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *Reporter) report() {
	s := r.source.Progress()
	r.logger.Info("benchmark progress",
		"done", humanize.Comma(s.Done()),
		"generated", humanize.Comma(s.Generated),
		"percent", fmt.Sprintf("%.1f", s.Percent()),
		"pending", s.Pending,
		"late", s.Late,
		"exhausted_cells", s.ExhaustedCells)
}
