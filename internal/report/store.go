package report

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// Register the pure-Go SQLite driver (no CGO required).
	_ "modernc.org/sqlite"

	"github.com/giantswarm/stdthread/internal/stress"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	platform    TEXT    NOT NULL,
	workers     INTEGER NOT NULL,
	iterations  INTEGER NOT NULL,
	rounds      INTEGER NOT NULL,
	failures    INTEGER NOT NULL,
	started_at  INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS rounds (
	run_id      TEXT    NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	idx         INTEGER NOT NULL,
	counter     INTEGER NOT NULL,
	expected    INTEGER NOT NULL,
	blocked     INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	PRIMARY KEY (run_id, idx)
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs(started_at);
`

// Run is a stored stress run summary.
type Run struct {
	ID         string
	Platform   string
	Workers    int
	Iterations int
	Rounds     int
	Failures   int
	StartedAt  time.Time
	Duration   time.Duration
}

// Store is a SQLite-backed stress history. It is safe for concurrent use.
type Store struct {
	db       *sql.DB
	path     string
	lockPath string
	log      *slog.Logger
}

// Open opens or creates the history database at path and ensures its schema.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", path, err)
	}

	// WAL lets readers proceed while another process writes; the busy
	// timeout covers the window between our file lock and SQLite's own.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=foreign_keys(1)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, lockPath: path + ".lock", log: log}

	if err := s.withFileLock(ctx, func() error {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn("report: close sqlite", "error", closeErr)
		}
		return nil, err
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite %s: %w", s.path, err)
	}
	return nil
}

// withFileLock runs fn while holding the cross-process report lock.
func (s *Store) withFileLock(ctx context.Context, fn func() error) error {
	fl, err := acquireFileLock(ctx, s.lockPath)
	if err != nil {
		return err
	}
	defer releaseFileLock(s.log, fl)
	return fn()
}

// Record stores res and all of its rounds in one transaction.
func (s *Store) Record(ctx context.Context, res stress.Result) error {
	return s.withFileLock(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin record transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (id, platform, workers, iterations, rounds, failures, started_at, duration_ns)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			res.ID, res.Platform.String(), res.Workers, res.Iterations, len(res.Rounds),
			res.Failures(), res.StartedAt.UnixNano(), int64(res.Duration),
		); err != nil {
			return fmt.Errorf("insert run %s: %w", res.ID, err)
		}

		for _, r := range res.Rounds {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rounds (run_id, idx, counter, expected, blocked, duration_ns)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				res.ID, r.Index, r.Counter, r.Expected, r.Blocked, int64(r.Duration),
			); err != nil {
				return fmt.Errorf("insert round %d of run %s: %w", r.Index, res.ID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit record transaction: %w", err)
		}

		s.log.Debug("report: recorded run", "id", res.ID, "rounds", len(res.Rounds), "failures", res.Failures())
		return nil
	})
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0, got %d", limit)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, platform, workers, iterations, rounds, failures, started_at, duration_ns
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err() below catches read errors

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt int64
			duration  int64
		)
		if err := rows.Scan(&r.ID, &r.Platform, &r.Workers, &r.Iterations, &r.Rounds,
			&r.Failures, &startedAt, &duration); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.StartedAt = time.Unix(0, startedAt)
		r.Duration = time.Duration(duration)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return runs, nil
}
