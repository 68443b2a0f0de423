// Package db persists benchmark runs in SQL databases. SQLite and PostgreSQL
// share one schema and one implementation; only placeholders and column types
// differ.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"corobench/internal/benchmark"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// rebind rewrites ? placeholders into the dialect's form.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sqlStore implements benchmark.Store on database/sql.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
}

func (s *sqlStore) migrate(idColumn string) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id ` + idColumn + `,
			created_at BIGINT NOT NULL,
			commit_hash TEXT NOT NULL DEFAULT '',
			fib_n INTEGER NOT NULL,
			tasks INTEGER NOT NULL,
			cpu_ghz DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id ` + idColumn + `,
			run_id BIGINT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			tasks INTEGER NOT NULL,
			total_ticks BIGINT NOT NULL,
			total_ns DOUBLE PRECISION NOT NULL,
			avg_ns_per_task DOUBLE PRECISION NOT NULL,
			throughput DOUBLE PRECISION NOT NULL,
			components TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// Save stores a run and its results in one transaction.
func (s *sqlStore) Save(run benchmark.Run) error {
	return s.SaveContext(context.Background(), run)
}

func (s *sqlStore) SaveContext(ctx context.Context, run benchmark.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRowContext(ctx,
		s.dialect.rebind(`INSERT INTO runs (created_at, commit_hash, fib_n, tasks, cpu_ghz) VALUES (?, ?, ?, ?, ?) RETURNING id`),
		run.Timestamp.UnixNano(), run.Commit, run.FibN, run.Tasks, run.FrequencyGHz,
	).Scan(&runID)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	insert := s.dialect.rebind(`INSERT INTO results (run_id, name, tasks, total_ticks, total_ns, avg_ns_per_task, throughput, components) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, r := range run.Results {
		components, err := json.Marshal(r.Components)
		if err != nil {
			return fmt.Errorf("failed to marshal components: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert,
			runID, r.Name, r.Tasks, int64(r.TotalTicks), r.TotalNs, r.AvgNsPerTask, r.Throughput, string(components),
		); err != nil {
			return fmt.Errorf("failed to insert result %s: %w", r.Name, err)
		}
	}

	return tx.Commit()
}

// LoadAll returns every run, oldest first.
func (s *sqlStore) LoadAll() ([]benchmark.Run, error) {
	rows, err := s.db.Query(`SELECT id, created_at, commit_hash, fib_n, tasks, cpu_ghz FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []benchmark.Run{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id      int64
			created int64
			run     benchmark.Run
		)
		if err := rows.Scan(&id, &created, &run.Commit, &run.FibN, &run.Tasks, &run.FrequencyGHz); err != nil {
			return nil, err
		}
		run.Timestamp = time.Unix(0, created)
		index[id] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the connection before the second query; SQLite runs on one.
	rows.Close()
	if len(runs) == 0 {
		return runs, nil
	}

	if err := s.loadResults(runs, index); err != nil {
		return nil, err
	}
	return runs, nil
}

func (s *sqlStore) loadResults(runs []benchmark.Run, index map[int64]int) error {
	rows, err := s.db.Query(`SELECT run_id, name, tasks, total_ticks, total_ns, avg_ns_per_task, throughput, components FROM results ORDER BY run_id, id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			runID      int64
			totalTicks int64
			components string
			r          benchmark.Result
		)
		if err := rows.Scan(&runID, &r.Name, &r.Tasks, &totalTicks, &r.TotalNs, &r.AvgNsPerTask, &r.Throughput, &components); err != nil {
			return err
		}
		r.TotalTicks = uint64(totalTicks)
		if err := json.Unmarshal([]byte(components), &r.Components); err != nil {
			return fmt.Errorf("failed to unmarshal components of %s: %w", r.Name, err)
		}
		i, ok := index[runID]
		if !ok {
			continue
		}
		runs[i].Results = append(runs[i].Results, r)
	}
	return rows.Err()
}

// LoadLatest returns the most recent run or nil when there is none.
func (s *sqlStore) LoadLatest() (*benchmark.Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}
