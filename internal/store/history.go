// Package store persists parse jobs in a SQLite history database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/fnc/foundation/core/error"
	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/foundation/lang"
)

// DefaultListLimit is used by List when no positive limit is given
const DefaultListLimit = 20

// Job is one recorded parse run
type Job struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Source     string           `json:"source"`
	OK         bool             `json:"ok"`
	Faults     []lang.FaultInfo `json:"faults,omitempty"`
	Stats      lang.Stats       `json:"stats"`
	DurationMS float64          `json:"duration_ms"`
	CreatedAt  time.Time        `json:"created_at"`
}

// JobFromResult builds a Job from an engine result and the parsed source
func JobFromResult(result *lang.Result, source string) *Job {
	return &Job{
		ID:         result.JobID,
		Name:       result.Name,
		Source:     source,
		OK:         result.OK(),
		Faults:     result.FaultInfos(),
		Stats:      result.Stats,
		DurationMS: float64(result.Duration.Microseconds()) / 1000,
	}
}

// Config holds configuration for the SQLite store
type Config struct {
	Path   string
	Logger *mdwlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

// Store implements the job history using SQLite
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *mdwlog.Logger
}

// Open opens or creates the history database at cfg.Path
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	logger = logger.WithField("component", "fnc-store")

	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, mdwerror.Wrap(err, "failed to create directory").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Open").
			WithDetail("path", dir)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open database").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Open").
			WithDetail("path", cfg.Path)
	}

	s := &Store{db: db, logger: logger}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, mdwerror.Wrap(err, "failed to initialize schema").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Open").
			WithDetail("path", cfg.Path)
	}

	logger.Debug("History store opened", mdwlog.Fields{"path": cfg.Path})
	return s, nil
}

// initSchema creates the necessary tables
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL,
		ok INTEGER NOT NULL,
		faults TEXT,
		stats TEXT,
		duration_ms REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save stores a job. A zero ID is replaced by a new one and a zero
// CreatedAt by the current time.
func (s *Store) Save(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	faultsJSON, err := json.Marshal(job.Faults)
	if err != nil {
		return fmt.Errorf("failed to encode faults: %w", err)
	}
	statsJSON, err := json.Marshal(job.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, name, source, ok, faults, stats, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID.String(), job.Name, job.Source, job.OK, string(faultsJSON), string(statsJSON), job.DurationMS, job.CreatedAt)
	if err != nil {
		return mdwerror.Wrap(err, "failed to save job").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Save").
			WithDetail("job_id", job.ID.String())
	}

	s.logger.Debug("Job recorded", mdwlog.Fields{
		"job_id": job.ID.String(),
		"name":   job.Name,
		"ok":     job.OK,
	})
	return nil
}

// Record stores the outcome of an engine run
func (s *Store) Record(ctx context.Context, result *lang.Result, source string) (*Job, error) {
	job := JobFromResult(result, source)
	if err := s.Save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Get retrieves a job by ID
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, ok, faults, stats, duration_ms, created_at
		FROM jobs WHERE id = ?
	`, id.String())

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, mdwerror.New("job not found").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("store.Get").
			WithDetail("job_id", id.String())
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to get job").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Get")
	}
	return job, nil
}

// List returns the most recent jobs, newest first
func (s *Store) List(ctx context.Context, limit int) ([]*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, ok, faults, stats, duration_ms, created_at
		FROM jobs ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to list jobs").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.List")
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Delete removes a job. Deleting an unknown ID is not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id.String())
	if err != nil {
		return mdwerror.Wrap(err, "failed to delete job").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Delete")
	}
	return nil
}

// Count returns the number of recorded jobs
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

// Ping verifies that the database is reachable and the jobs table readable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return mdwerror.Wrap(err, "history database unreachable").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Ping")
	}
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM jobs LIMIT 1").Scan(&one)
	if err != nil && err != sql.ErrNoRows {
		return mdwerror.Wrap(err, "history table unreadable").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("store.Ping")
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		job        Job
		id         string
		faultsJSON sql.NullString
		statsJSON  sql.NullString
	)

	err := row.Scan(&id, &job.Name, &job.Source, &job.OK, &faultsJSON, &statsJSON, &job.DurationMS, &job.CreatedAt)
	if err != nil {
		return nil, err
	}

	job.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid job id %q: %w", id, err)
	}
	if faultsJSON.Valid && faultsJSON.String != "" {
		if err := json.Unmarshal([]byte(faultsJSON.String), &job.Faults); err != nil {
			return nil, fmt.Errorf("invalid faults for job %s: %w", id, err)
		}
	}
	if statsJSON.Valid && statsJSON.String != "" {
		if err := json.Unmarshal([]byte(statsJSON.String), &job.Stats); err != nil {
			return nil, fmt.Errorf("invalid stats for job %s: %w", id, err)
		}
	}
	return &job, nil
}
