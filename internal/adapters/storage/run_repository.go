package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// runRepository implements ports.RunRepository using SQLite.
type runRepository struct {
	db *sql.DB
}

// newRunRepository creates a new workflow run repository.
func newRunRepository(db *sql.DB) ports.RunRepository {
	return &runRepository{db: db}
}

const runColumns = `id, workflow, repo_path, outcome, detail, started_at, finished_at`

// Save persists a new run.
func (r *runRepository) Save(ctx context.Context, run *domain.WorkflowRun) error {
	query := `
		INSERT INTO workflow_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		string(run.Workflow),
		run.RepoPath,
		string(run.Outcome),
		run.Detail,
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Update stores the outcome of a finished run.
func (r *runRepository) Update(ctx context.Context, run *domain.WorkflowRun) error {
	query := `
		UPDATE workflow_runs
		SET repo_path = ?, outcome = ?, detail = ?, finished_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		run.RepoPath,
		string(run.Outcome),
		run.Detail,
		run.FinishedAt,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated run: %w", err)
	}
	if n == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

// FindByID retrieves a run by its identifier.
func (r *runRepository) FindByID(ctx context.Context, id string) (*domain.WorkflowRun, error) {
	query := `SELECT ` + runColumns + ` FROM workflow_runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find run: %w", err)
	}
	return run, nil
}

// FindRecent returns the newest runs first.
func (r *runRepository) FindRecent(ctx context.Context, limit int) ([]*domain.WorkflowRun, error) {
	query := `SELECT ` + runColumns + ` FROM workflow_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*domain.WorkflowRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CompletedWorkflows returns every workflow that succeeded at least once
// for repoPath.
func (r *runRepository) CompletedWorkflows(ctx context.Context, repoPath string) (map[domain.Workflow]bool, error) {
	query := `
		SELECT DISTINCT workflow
		FROM workflow_runs
		WHERE repo_path = ? AND outcome = ?
	`

	rows, err := r.db.QueryContext(ctx, query, repoPath, string(domain.OutcomeSucceeded))
	if err != nil {
		return nil, fmt.Errorf("failed to query completed workflows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	done := make(map[domain.Workflow]bool)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		done[domain.Workflow(w)] = true
	}
	return done, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.WorkflowRun, error) {
	var run domain.WorkflowRun
	var workflow, outcome string
	var finishedAt sql.NullTime

	err := row.Scan(
		&run.ID,
		&workflow,
		&run.RepoPath,
		&outcome,
		&run.Detail,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Workflow = domain.Workflow(workflow)
	run.Outcome = domain.Outcome(outcome)
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	return &run, nil
}
