// Package storage provides SQLite implementations of the storage ports.
// It records which guided workflows the learner has finished and which git
// commands were run on their behalf.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/xvierd/git-onboard/internal/ports"
	_ "modernc.org/sqlite"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db          *sql.DB
	runRepo     ports.RunRepository
	commandRepo ports.CommandRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database lives and dies with its single connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:          db,
		runRepo:     newRunRepository(db),
		commandRepo: newCommandRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Runs returns the workflow run repository.
func (s *sqliteStorage) Runs() ports.RunRepository {
	return s.runRepo
}

// Commands returns the command history repository.
func (s *sqliteStorage) Commands() ports.CommandRepository {
	return s.commandRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workflow_runs (
		id TEXT PRIMARY KEY,
		workflow TEXT NOT NULL,
		repo_path TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		started_at DATETIME NOT NULL,
		finished_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_runs_repo ON workflow_runs(repo_path, outcome);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON workflow_runs(started_at);

	CREATE TABLE IF NOT EXISTS commands (
		id TEXT PRIMARY KEY,
		run_id TEXT,
		dir TEXT NOT NULL DEFAULT '',
		args TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		ran_at DATETIME NOT NULL,
		FOREIGN KEY (run_id) REFERENCES workflow_runs(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_commands_run ON commands(run_id);
	CREATE INDEX IF NOT EXISTS idx_commands_ran ON commands(ran_at);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}
