// Package ports defines the interfaces (driven and driving ports)
// for git-onboard following hexagonal architecture principles.
// These interfaces define the contracts between the workflows and
// external infrastructure: git, the terminal, and the progress store.
package ports

import (
	"context"

	"github.com/xvierd/git-onboard/internal/domain"
)

// RunRepository persists workflow runs.
// This is a driven port (implemented by adapters).
type RunRepository interface {
	// Save persists a new run.
	Save(ctx context.Context, run *domain.WorkflowRun) error

	// Update stores the outcome of a finished run.
	Update(ctx context.Context, run *domain.WorkflowRun) error

	// FindByID retrieves a run by its identifier.
	FindByID(ctx context.Context, id string) (*domain.WorkflowRun, error)

	// FindRecent returns the newest runs first.
	FindRecent(ctx context.Context, limit int) ([]*domain.WorkflowRun, error)

	// CompletedWorkflows returns every workflow that succeeded at least
	// once for the given repository path.
	CompletedWorkflows(ctx context.Context, repoPath string) (map[domain.Workflow]bool, error)
}

// CommandRepository persists the git commands ran for the user.
// This is a driven port (implemented by adapters).
type CommandRepository interface {
	// Save persists a command record.
	Save(ctx context.Context, cmd *domain.CommandRecord) error

	// FindRecent returns the newest commands first.
	FindRecent(ctx context.Context, limit int) ([]*domain.CommandRecord, error)

	// FindByRun returns the commands of one run in execution order.
	FindByRun(ctx context.Context, runID string) ([]*domain.CommandRecord, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Runs provides access to workflow runs.
	Runs() RunRepository

	// Commands provides access to the command history.
	Commands() CommandRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
