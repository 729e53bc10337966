// Package report turns ranked benchmark tables into a report that can be
// printed as text tables or written as JSON.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/p-arndt/sortbench/internal/algo"
	"github.com/p-arndt/sortbench/internal/bench"
	"github.com/p-arndt/sortbench/internal/config"
)

// Entry is one ranked cell with its confidence interval resolved.
type Entry struct {
	bench.Result
	CI float64 `json:"ci_ns"`
}

type Row struct {
	Algorithm string   `json:"algorithm"`
	Name      string   `json:"name"`
	Class     string   `json:"class"`
	Entries   []*Entry `json:"entries"` // one per size, nil when there was too little data
}

type Group struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

type Settings struct {
	Trials              int           `json:"trials"`
	RuntimeLimit        time.Duration `json:"runtime_limit_ns"`
	MinAcceptableTrials int           `json:"min_acceptable_trials"`
	OutlierCoefficient  float64       `json:"outlier_coefficient"`
	Alpha               float64       `json:"alpha"`
	DiffThreshold       float64       `json:"diff_threshold"`
	Seed                uint64        `json:"seed"`
}

type Counters struct {
	Generated      int `json:"generated"`
	Executed       int `json:"executed"`
	Discarded      int `json:"discarded"`
	Late           int `json:"late"`
	ExhaustedCells int `json:"exhausted_cells"`
	Workers        int `json:"workers"`
}

type Report struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Hardware    Hardware      `json:"hardware"`
	Settings    Settings      `json:"settings"`
	Sizes       []int         `json:"sizes"`
	Groups      []Group       `json:"groups"`
	Counters    Counters      `json:"counters"`
	Runtime     time.Duration `json:"runtime_ns"`
}

// Sink receives finished reports.
type Sink interface {
	SaveReport(ctx context.Context, rep *Report) error
}

// JSONFile is a Sink that writes the report to Path.
type JSONFile struct {
	Path string
}

func (f JSONFile) SaveReport(_ context.Context, rep *Report) error {
	out, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.Path, err)
	}
	if err := WriteJSON(out, rep); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return out.Close()
}

// Members returns the indices of algs that belong to g. An algorithm belongs
// when its ID contains one of the include substrings and none of the excludes.
func Members(g config.Group, algs []algo.Algorithm) []int {
	var out []int
	for i, a := range algs {
		if containsAny(a.ID, g.Include) && !containsAny(a.ID, g.Exclude) {
			out = append(out, i)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Build ranks table separately within every configured group. Groups without
// members are left out.
func Build(runID string, cfg *config.Config, algs []algo.Algorithm, sizes []int, out *bench.Outcome, table bench.Table, hw Hardware) (*Report, error) {
	rep := &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Hardware:    hw,
		Settings: Settings{
			Trials:              cfg.Trials,
			RuntimeLimit:        cfg.RuntimeLimit(),
			MinAcceptableTrials: cfg.MinAcceptableTrials,
			OutlierCoefficient:  cfg.OutlierCoefficient,
			Alpha:               cfg.Alpha,
			DiffThreshold:       cfg.DiffThreshold,
			Seed:                cfg.Seed,
		},
		Sizes: sizes,
		Counters: Counters{
			Generated:      out.Generated,
			Executed:       out.Executed,
			Discarded:      out.Discarded,
			Late:           out.Late,
			ExhaustedCells: out.ExhaustedCells,
			Workers:        out.Workers,
		},
		Runtime: out.Elapsed,
	}

	for _, g := range cfg.Groups {
		members := Members(g, algs)
		if len(members) == 0 {
			continue
		}
		ranked, err := bench.Rank(table, members, cfg.Alpha, cfg.DiffThreshold)
		if err != nil {
			return nil, fmt.Errorf("rank group %q: %w", g.Name, err)
		}
		group := Group{Name: g.Name}
		for _, a := range members {
			row := Row{
				Algorithm: algs[a].ID,
				Name:      algs[a].Name,
				Class:     algs[a].Class,
				Entries:   make([]*Entry, len(sizes)),
			}
			for s, r := range ranked[a] {
				if r == nil {
					continue
				}
				ci, err := r.CI()
				if err != nil {
					return nil, fmt.Errorf("confidence interval of %s: %w", algs[a].ID, err)
				}
				row.Entries[s] = &Entry{Result: *r, CI: ci}
			}
			group.Rows = append(group.Rows, row)
		}
		rep.Groups = append(rep.Groups, group)
	}
	return rep, nil
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
