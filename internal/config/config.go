package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

// Group is a presentation group: the algorithms whose ID contains any Include
// substring and none of the Exclude substrings, ranked against each other.
type Group struct {
	Name    string   `yaml:"name"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

type ExportConfig struct {
	JSONPath   string `yaml:"json_path"`
	SQLitePath string `yaml:"sqlite_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, pretty or json
}

type Config struct {
	MinSize             int            `yaml:"min_size"`
	MaxSize             int            `yaml:"max_size"`
	SizeFactor          int            `yaml:"size_factor"`
	Trials              int            `yaml:"trials"`
	RuntimeLimitMs      int            `yaml:"runtime_limit_ms"`
	MinAcceptableTrials int            `yaml:"min_acceptable_trials"`
	OutlierCoefficient  float64        `yaml:"outlier_coefficient"`
	Alpha               float64        `yaml:"alpha"`
	DiffThreshold       float64        `yaml:"diff_threshold"`
	Seed                uint64         `yaml:"seed"`
	Workers             int            `yaml:"workers"` // 0 picks half the physical cores
	SettleDelayMs       int            `yaml:"settle_delay_ms"`
	ProgressIntervalMs  int            `yaml:"progress_interval_ms"`
	SizeLimits          map[string]int `yaml:"size_limits"` // complexity class -> max size
	Algorithms          []string       `yaml:"algorithms"`
	Groups              []Group        `yaml:"groups"`
	MetricsListen       string         `yaml:"metrics_listen"`
	Export              ExportConfig   `yaml:"export"`
	Log                 LogConfig      `yaml:"log"`
}

// DefaultGroups mirrors the per-family tables of the classic benchmark.
func DefaultGroups() []Group {
	return []Group{
		{Name: "Bubble sorts", Include: []string{"bubble", "cocktail"}},
		{Name: "Insertion sorts", Include: []string{"insertion", "selection", "cocktail"}},
		{Name: "Shell sorts", Include: []string{"shellsort", "insertionsort"}},
		{Name: "Merge sorts", Include: []string{"mergesort", "chunk_merge"}},
		{Name: "Heap sorts", Include: []string{"heapsort"}},
		{Name: "Quick sorts", Include: []string{"quicksort", "introsort"}},
		{Name: "Radix sort", Include: []string{"radix", "gosort"}},
		{Name: "Totals", Include: []string{""}, Exclude: []string{"radix"}},
	}
}

func Default() *Config {
	return &Config{
		MinSize:             10,
		MaxSize:             1_000_000,
		SizeFactor:          10,
		Trials:              200,
		RuntimeLimitMs:      10_000,
		MinAcceptableTrials: 30,
		OutlierCoefficient:  3.0,
		Alpha:               0.001,
		DiffThreshold:       0.05,
		Seed:                2222,
		SettleDelayMs:       10,
		ProgressIntervalMs:  5_000,
		SizeLimits:          make(map[string]int),
		Groups:              DefaultGroups(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(yamlPath string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// ParseSize accepts plain integers as well as human forms such as "10k" or "1M".
func ParseSize(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	n, err := units.FromHumanSize(s)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SORTBENCH_MIN_SIZE"); v != "" {
		if n, err := ParseSize(v); err == nil {
			cfg.MinSize = n
		}
	}
	if v := os.Getenv("SORTBENCH_MAX_SIZE"); v != "" {
		if n, err := ParseSize(v); err == nil {
			cfg.MaxSize = n
		}
	}
	if v := os.Getenv("SORTBENCH_SIZE_FACTOR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SizeFactor = n
		}
	}
	if v := os.Getenv("SORTBENCH_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trials = n
		}
	}
	if v := os.Getenv("SORTBENCH_RUNTIME_LIMIT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RuntimeLimitMs = n
		}
	}
	if v := os.Getenv("SORTBENCH_MIN_ACCEPTABLE_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinAcceptableTrials = n
		}
	}
	if v := os.Getenv("SORTBENCH_OUTLIER_COEFFICIENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.OutlierCoefficient = f
		}
	}
	if v := os.Getenv("SORTBENCH_ALPHA"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Alpha = f
		}
	}
	if v := os.Getenv("SORTBENCH_DIFF_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DiffThreshold = f
		}
	}
	if v := os.Getenv("SORTBENCH_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("SORTBENCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SORTBENCH_SETTLE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SettleDelayMs = n
		}
	}
	if v := os.Getenv("SORTBENCH_PROGRESS_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ProgressIntervalMs = n
		}
	}
	if v := os.Getenv("SORTBENCH_ALGORITHMS"); v != "" {
		cfg.Algorithms = strings.Split(v, ",")
	}
	if v := os.Getenv("SORTBENCH_METRICS_LISTEN"); v != "" {
		cfg.MetricsListen = v
	}
	if v := os.Getenv("SORTBENCH_EXPORT_JSON_PATH"); v != "" {
		cfg.Export.JSONPath = v
	}
	if v := os.Getenv("SORTBENCH_EXPORT_SQLITE_PATH"); v != "" {
		cfg.Export.SQLitePath = v
	}
	if v := os.Getenv("SORTBENCH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SORTBENCH_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// Validate rejects settings the benchmark cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.MinSize >= 1, "min_size must be at least 1, got %d", c.MinSize)
	check(c.MaxSize >= c.MinSize, "max_size %d is below min_size %d", c.MaxSize, c.MinSize)
	check(c.SizeFactor >= 2, "size_factor must be at least 2, got %d", c.SizeFactor)
	check(c.Trials >= 1, "trials must be positive, got %d", c.Trials)
	check(c.RuntimeLimitMs >= 1, "runtime_limit_ms must be positive, got %d", c.RuntimeLimitMs)
	check(c.MinAcceptableTrials >= 2, "min_acceptable_trials must be at least 2, got %d", c.MinAcceptableTrials)
	check(c.OutlierCoefficient > 0, "outlier_coefficient must be positive, got %g", c.OutlierCoefficient)
	check(c.Alpha > 0 && c.Alpha < 1, "alpha must be in (0, 1), got %g", c.Alpha)
	check(c.DiffThreshold >= 0, "diff_threshold must not be negative, got %g", c.DiffThreshold)
	check(c.Workers >= 0, "workers must not be negative, got %d", c.Workers)
	check(c.SettleDelayMs >= 0, "settle_delay_ms must not be negative, got %d", c.SettleDelayMs)
	for class, limit := range c.SizeLimits {
		check(limit >= 1, "size_limits[%s] must be positive, got %d", class, limit)
	}
	for _, g := range c.Groups {
		check(g.Name != "", "group without a name")
	}
	switch c.Log.Format {
	case "", "text", "pretty", "json":
	default:
		check(false, "unknown log format %q", c.Log.Format)
	}
	return errors.Join(errs...)
}

func (c *Config) RuntimeLimit() time.Duration {
	return time.Duration(c.RuntimeLimitMs) * time.Millisecond
}

func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMs) * time.Millisecond
}
