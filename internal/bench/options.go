package bench

import (
	"fmt"
	"time"

	"github.com/p-arndt/sortbench/internal/algo"
	"github.com/p-arndt/sortbench/internal/config"
	"github.com/p-arndt/sortbench/internal/pool"
)

// Options are the run parameters the coordinator needs, resolved from config.
type Options struct {
	Sizes              []int
	Trials             int
	RuntimeLimit       time.Duration
	Seed               uint64
	Workers            int
	SettleDelay        time.Duration
	Limits             algo.Limits
	MinAcceptable      int
	OutlierCoefficient float64
}

func NewOptions(cfg *config.Config) Options {
	workers := cfg.Workers
	if workers <= 0 {
		workers = pool.DefaultSize()
	}
	return Options{
		Sizes:              Sizes(cfg.MinSize, cfg.MaxSize, cfg.SizeFactor),
		Trials:             cfg.Trials,
		RuntimeLimit:       cfg.RuntimeLimit(),
		Seed:               cfg.Seed,
		Workers:            workers,
		SettleDelay:        cfg.SettleDelay(),
		Limits:             algo.DefaultLimits().Merge(cfg.SizeLimits),
		MinAcceptable:      cfg.MinAcceptableTrials,
		OutlierCoefficient: cfg.OutlierCoefficient,
	}
}

func (o Options) validate() error {
	switch {
	case len(o.Sizes) == 0:
		return fmt.Errorf("%w: empty size series", ErrInvalidOptions)
	case o.Trials < 1:
		return fmt.Errorf("%w: trials must be positive", ErrInvalidOptions)
	case o.RuntimeLimit <= 0:
		return fmt.Errorf("%w: runtime limit must be positive", ErrInvalidOptions)
	case o.Workers < 1:
		return fmt.Errorf("%w: need at least one worker", ErrInvalidOptions)
	}
	return nil
}
