// Package store exports finished benchmark reports to SQLite. Exports are
// write-once archives for later inspection; the benchmark never reads them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/p-arndt/sortbench/internal/report"
	_ "modernc.org/sqlite"
)

// Sentinel errors
var (
	ErrNotFound = errors.New("not found")
)

// isBusyLock reports whether err indicates SQLite database lock (SQLITE_BUSY).
// Handles wrapped errors from database/sql.
func isBusyLock(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "database is locked") || strings.Contains(s, "SQLITE_BUSY")
}

// retryOnBusy runs fn and retries on SQLITE_BUSY with exponential backoff.
func retryOnBusy(fn func() error) error {
	const maxAttempts = 4
	backoff := 25 * time.Millisecond
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil || !isBusyLock(lastErr) {
			return lastErr
		}
		if attempt < maxAttempts-1 {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return lastErr
}

// Run is the summary row of one exported report.
type Run struct {
	ID             string    `json:"id"`
	GeneratedAt    time.Time `json:"generated_at"`
	Hostname       string    `json:"hostname"`
	CPUModel       string    `json:"cpu_model"`
	GoVersion      string    `json:"go_version"`
	Trials         int       `json:"trials"`
	RuntimeLimitMs int64     `json:"runtime_limit_ms"`
	Seed           uint64    `json:"seed"`
	Alpha          float64   `json:"alpha"`
	DiffThreshold  float64   `json:"diff_threshold"`
	Generated      int       `json:"generated"`
	Executed       int       `json:"executed"`
	Discarded      int       `json:"discarded"`
	Late           int       `json:"late"`
	ExhaustedCells int       `json:"exhausted_cells"`
	Workers        int       `json:"workers"`
	RuntimeMs      int64     `json:"runtime_ms"`
}

// Result is one ranked cell of one group.
type Result struct {
	RunID           string  `json:"run_id"`
	Group           string  `json:"group"`
	Algorithm       string  `json:"algorithm"`
	Class           string  `json:"class"`
	Size            int     `json:"size"`
	MeanNs          float64 `json:"mean_ns"`
	StdevNs         float64 `json:"stdev_ns"`
	CINs            float64 `json:"ci_ns"`
	Count           int     `json:"count"`
	Fastest         bool    `json:"fastest"`
	StatTied        bool    `json:"stat_tied"`
	PracticallyTied bool    `json:"practically_tied"`
}

type Store struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	generated_at     DATETIME NOT NULL,
	hostname         TEXT NOT NULL DEFAULT '',
	cpu_model        TEXT NOT NULL DEFAULT '',
	go_version       TEXT NOT NULL DEFAULT '',
	trials           INTEGER NOT NULL,
	runtime_limit_ms INTEGER NOT NULL,
	seed             INTEGER NOT NULL,
	alpha            REAL NOT NULL,
	diff_threshold   REAL NOT NULL,
	generated        INTEGER NOT NULL DEFAULT 0,
	executed         INTEGER NOT NULL DEFAULT 0,
	discarded        INTEGER NOT NULL DEFAULT 0,
	late             INTEGER NOT NULL DEFAULT 0,
	exhausted_cells  INTEGER NOT NULL DEFAULT 0,
	workers          INTEGER NOT NULL DEFAULT 0,
	runtime_ms       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS results (
	run_id           TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	group_name       TEXT NOT NULL,
	algorithm        TEXT NOT NULL,
	class            TEXT NOT NULL,
	size             INTEGER NOT NULL,
	mean_ns          REAL NOT NULL,
	stdev_ns         REAL NOT NULL,
	ci_ns            REAL NOT NULL,
	count            INTEGER NOT NULL,
	fastest          BOOLEAN NOT NULL DEFAULT 0,
	stat_tied        BOOLEAN NOT NULL DEFAULT 0,
	practically_tied BOOLEAN NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, group_name, algorithm, size)
);
CREATE INDEX IF NOT EXISTS idx_results_algorithm ON results(algorithm);
`

// dsnWithPragmas returns a connection string with busy_timeout and perf
// pragmas applied to every new connection.
func dsnWithPragmas(dbPath string) string {
	// busy_timeout: 15s wait on lock when several exports share one file
	// journal_mode=WAL: readers are not blocked while an export is written
	// synchronous=NORMAL: safe in WAL
	// foreign_keys: results cascade with their run
	return dbPath + "?_pragma=busy_timeout(15000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(1)"
}

// New opens (and creates if needed) the export database at dbPath.
// ":memory:" gives a private in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dsnWithPragmas(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Exports are single-writer; one connection also keeps ":memory:" databases
	// from splitting per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport writes the run and all of its ranked cells in one transaction.
// It implements report.Sink.
func (s *Store) SaveReport(ctx context.Context, rep *report.Report) error {
	err := retryOnBusy(func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := insertRun(ctx, tx, rep); err != nil {
			return err
		}
		for _, g := range rep.Groups {
			for _, row := range g.Rows {
				for i, e := range row.Entries {
					if e == nil {
						continue
					}
					if err := insertResult(ctx, tx, rep.RunID, g.Name, row, rep.Sizes[i], e); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("saving report %s: %w", rep.RunID, err)
	}
	return nil
}

func insertRun(ctx context.Context, tx *sql.Tx, rep *report.Report) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, generated_at, hostname, cpu_model, go_version, trials, runtime_limit_ms, seed,
		                   alpha, diff_threshold, generated, executed, discarded, late, exhausted_cells, workers, runtime_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID, rep.GeneratedAt.UTC(), rep.Hardware.Hostname, rep.Hardware.CPUModel, rep.Hardware.GoVersion,
		rep.Settings.Trials, rep.Settings.RuntimeLimit.Milliseconds(), int64(rep.Settings.Seed),
		rep.Settings.Alpha, rep.Settings.DiffThreshold,
		rep.Counters.Generated, rep.Counters.Executed, rep.Counters.Discarded, rep.Counters.Late,
		rep.Counters.ExhaustedCells, rep.Counters.Workers, rep.Runtime.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func insertResult(ctx context.Context, tx *sql.Tx, runID, group string, row report.Row, size int, e *report.Entry) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO results (run_id, group_name, algorithm, class, size, mean_ns, stdev_ns, ci_ns, count,
		                      fastest, stat_tied, practically_tied)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, group, row.Algorithm, row.Class, size, e.Mean, e.Stdev, e.CI, e.Count,
		e.Fastest, e.StatTied, e.PracticallyTied,
	)
	if err != nil {
		return fmt.Errorf("inserting result %s/%d: %w", row.Algorithm, size, err)
	}
	return nil
}

func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, generated_at, hostname, cpu_model, go_version, trials, runtime_limit_ms, seed, alpha,
		        diff_threshold, generated, executed, discarded, late, exhausted_cells, workers, runtime_ms
		 FROM runs WHERE id = ?`, id,
	)
	var r Run
	var seed int64
	err := row.Scan(
		&r.ID, &r.GeneratedAt, &r.Hostname, &r.CPUModel, &r.GoVersion, &r.Trials, &r.RuntimeLimitMs, &seed,
		&r.Alpha, &r.DiffThreshold, &r.Generated, &r.Executed, &r.Discarded, &r.Late, &r.ExhaustedCells,
		&r.Workers, &r.RuntimeMs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	r.Seed = uint64(seed)
	return &r, nil
}

// ListResults returns the cells of a run ordered by group, algorithm and size.
func (s *Store) ListResults(ctx context.Context, runID string) ([]*Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, group_name, algorithm, class, size, mean_ns, stdev_ns, ci_ns, count,
		        fastest, stat_tied, practically_tied
		 FROM results WHERE run_id = ? ORDER BY group_name, algorithm, size`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var out []*Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.RunID, &r.Group, &r.Algorithm, &r.Class, &r.Size, &r.MeanNs, &r.StdevNs, &r.CINs, &r.Count,
			&r.Fastest, &r.StatTied, &r.PracticallyTied,
		); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return out, nil
}
