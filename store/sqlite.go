package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/katalvlaran/epigrid/disease"

	_ "modernc.org/sqlite" // SQLite driver
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("store: run not found")

// Run is one persisted simulation run.
type Run struct {
	ID          string
	Scenario    disease.Scenario
	Size        int
	Generations int
	Seed        int64
	Deaths      int
	CreatedAt   time.Time
}

// Store is a SQLite-backed run store. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the database at path. The special path
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		dsn = path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer; also keeps one :memory: database for the whole pool
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun inserts or replaces a run row.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	if r.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, size, generations, seed, deaths, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scenario = excluded.scenario,
			size = excluded.size,
			generations = excluded.generations,
			seed = excluded.seed,
			deaths = excluded.deaths`,
		r.ID, int(r.Scenario), r.Size, r.Generations, r.Seed, r.Deaths,
		r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.ID, err)
	}
	return nil
}

// AppendCounts records the population counts of one generation of a run.
func (s *Store) AppendCounts(ctx context.Context, runID string, generation int, c disease.Counts) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO generation_counts
			(run_id, generation, healthy, exposed, infected, incubation, sick, recovered, dead)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, generation,
		c.Get(disease.Healthy), c.Get(disease.Exposed), c.Get(disease.Infected),
		c.Get(disease.Incubation), c.Get(disease.Sick), c.Get(disease.Recovered), c.Get(disease.Dead))
	if err != nil {
		return fmt.Errorf("failed to append counts for run %s generation %d: %w", runID, generation, err)
	}
	return nil
}

// ListRuns returns every run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, size, generations, seed, deaths, created_at
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			scenario int
			created  string
		)
		if err := rows.Scan(&r.ID, &scenario, &r.Size, &r.Generations, &r.Seed, &r.Deaths, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Scenario = disease.Scenario(scenario)
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("failed to parse created_at of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Counts returns the recorded per-generation counts of a run, indexed by
// generation. Unrecorded generations inside the range are zero.
func (s *Store) Counts(ctx context.Context, runID string) ([]disease.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up run %s: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("Counts: %w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT generation, healthy, exposed, infected, incubation, sick, recovered, dead
		FROM generation_counts WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts of run %s: %w", runID, err)
	}
	defer rows.Close()

	var history []disease.Counts
	for rows.Next() {
		var (
			g int
			c disease.Counts
		)
		if err := rows.Scan(&g, &c[disease.Healthy], &c[disease.Exposed], &c[disease.Infected],
			&c[disease.Incubation], &c[disease.Sick], &c[disease.Recovered], &c[disease.Dead]); err != nil {
			return nil, fmt.Errorf("failed to scan counts: %w", err)
		}
		for len(history) < g {
			history = append(history, disease.Counts{})
		}
		history = append(history, c)
	}
	return history, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
