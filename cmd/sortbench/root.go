package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/p-arndt/sortbench/internal/algo"
	"github.com/p-arndt/sortbench/internal/bench"
	"github.com/p-arndt/sortbench/internal/config"
	"github.com/p-arndt/sortbench/internal/progress"
	"github.com/p-arndt/sortbench/internal/report"
	"github.com/p-arndt/sortbench/internal/store"
)

type runFlags struct {
	configPath    string
	workers       int
	trials        int
	seed          uint64
	minSize       string
	maxSize       string
	runtimeLimit  time.Duration
	algorithms    []string
	jsonOut       bool
	jsonPath      string
	sqlitePath    string
	metricsListen string
	logFormat     string
	logLevel      string
}

func newRootCmd() *cobra.Command {
	var f runFlags

	run := &cobra.Command{
		Use:   "run",
		Short: "Benchmark the sorting algorithms and print ranked tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd, &f)
		},
	}
	bindRunFlags(run, &f)

	root := &cobra.Command{
		Use:           "sortbench",
		Short:         "Statistically compare sorting algorithms across input sizes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          run.RunE,
	}
	bindRunFlags(root, &f)

	root.AddCommand(run, newAlgorithmsCmd())
	return root
}

func bindRunFlags(cmd *cobra.Command, f *runFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "path to sortbench.yaml")
	fs.IntVar(&f.workers, "workers", 0, "worker goroutines (0 = half the physical cores)")
	fs.IntVar(&f.trials, "trials", 0, "trials per algorithm and size")
	fs.Uint64Var(&f.seed, "seed", 0, "global seed for inputs and job order")
	fs.StringVar(&f.minSize, "min-size", "", "smallest input size, e.g. 10 or 1k")
	fs.StringVar(&f.maxSize, "max-size", "", "largest input size, e.g. 1M")
	fs.DurationVar(&f.runtimeLimit, "runtime-limit", 0, "time budget per algorithm and size")
	fs.StringSliceVar(&f.algorithms, "algorithms", nil, "algorithm IDs to run (default all)")
	fs.BoolVar(&f.jsonOut, "json", false, "print the report as JSON instead of tables")
	fs.StringVar(&f.jsonPath, "json-out", "", "also write the JSON report to this file")
	fs.StringVar(&f.sqlitePath, "sqlite", "", "also export the report to this SQLite database")
	fs.StringVar(&f.metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address during the run")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, pretty or json")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// applyFlags overlays explicitly set flags on top of the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f *runFlags) error {
	fs := cmd.Flags()
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("trials") {
		cfg.Trials = f.trials
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("min-size") {
		n, err := config.ParseSize(f.minSize)
		if err != nil {
			return fmt.Errorf("%w: --min-size %q", config.ErrInvalid, f.minSize)
		}
		cfg.MinSize = n
	}
	if fs.Changed("max-size") {
		n, err := config.ParseSize(f.maxSize)
		if err != nil {
			return fmt.Errorf("%w: --max-size %q", config.ErrInvalid, f.maxSize)
		}
		cfg.MaxSize = n
	}
	if fs.Changed("runtime-limit") {
		cfg.RuntimeLimitMs = int(f.runtimeLimit.Milliseconds())
	}
	if fs.Changed("algorithms") {
		cfg.Algorithms = f.algorithms
	}
	if fs.Changed("json-out") {
		cfg.Export.JSONPath = f.jsonPath
	}
	if fs.Changed("sqlite") {
		cfg.Export.SQLitePath = f.sqlitePath
	}
	if fs.Changed("metrics-listen") {
		cfg.MetricsListen = f.metricsListen
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	return nil
}

func runBenchmark(cmd *cobra.Command, f *runFlags) error {
	ctx := cmd.Context()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg, f); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	algs, err := algo.Select(algo.Registry(), cfg.Algorithms)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := bench.NewMetrics(reg)
	if cfg.MetricsListen != "" {
		stopMetrics := serveMetrics(cfg.MetricsListen, reg, logger)
		defer stopMetrics()
	}

	opts := bench.NewOptions(cfg)
	coord, err := bench.New(opts, algs, logger, metrics)
	if err != nil {
		return err
	}

	progCtx, stopProgress := context.WithCancel(ctx)
	progDone := make(chan struct{})
	go func() {
		defer close(progDone)
		progress.New(coord, cfg.ProgressInterval(), logger).Run(progCtx)
	}()
	out, err := coord.Run(ctx)
	stopProgress()
	<-progDone
	if err != nil {
		logger.Error("benchmark failed", "error", err)
		return err
	}

	table, err := bench.Compute(out, cfg.MinAcceptableTrials, cfg.OutlierCoefficient)
	if err != nil {
		return err
	}
	rep, err := report.Build(runID, cfg, algs, opts.Sizes, out, table, report.CollectHardware(ctx))
	if err != nil {
		return err
	}

	if f.jsonOut {
		err = report.WriteJSON(cmd.OutOrStdout(), rep)
	} else {
		err = report.Render(cmd.OutOrStdout(), rep)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return export(ctx, cfg.Export, rep, logger)
}

// export hands the report to every configured sink. All sinks are tried even
// when one fails.
func export(ctx context.Context, ec config.ExportConfig, rep *report.Report, logger *slog.Logger) error {
	var sinks []report.Sink
	if ec.JSONPath != "" {
		sinks = append(sinks, report.JSONFile{Path: ec.JSONPath})
	}
	if ec.SQLitePath != "" {
		st, err := store.New(ec.SQLitePath)
		if err != nil {
			return fmt.Errorf("open export database: %w", err)
		}
		defer st.Close()
		sinks = append(sinks, st)
	}

	var errs []error
	for _, s := range sinks {
		if err := s.SaveReport(ctx, rep); err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Info("report exported", "sink", fmt.Sprintf("%T", s))
	}
	return errors.Join(errs...)
}

// serveMetrics exposes reg on addr until the returned stop function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownServer(ctx, srv, logger)
	}
}

// shutdownServer stops srv gracefully, logging if ctx ends first.
func shutdownServer(ctx context.Context, srv *http.Server, logger *slog.Logger) {
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", "error", err)
	}
}
