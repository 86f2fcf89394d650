package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// commandRepository implements ports.CommandRepository using SQLite.
type commandRepository struct {
	db *sql.DB
}

// newCommandRepository creates a new command history repository.
func newCommandRepository(db *sql.DB) ports.CommandRepository {
	return &commandRepository{db: db}
}

const commandColumns = `id, run_id, dir, args, exit_code, ran_at`

// Save persists a command record. Args are stored as a JSON array so
// arguments containing spaces survive the round trip.
func (r *commandRepository) Save(ctx context.Context, cmd *domain.CommandRecord) error {
	args, err := json.Marshal(cmd.Args)
	if err != nil {
		return fmt.Errorf("failed to encode args: %w", err)
	}

	var runID any
	if cmd.RunID != "" {
		runID = cmd.RunID
	}

	query := `
		INSERT INTO commands (` + commandColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		cmd.ID,
		runID,
		cmd.Dir,
		string(args),
		cmd.ExitCode,
		cmd.RanAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save command: %w", err)
	}
	return nil
}

// FindRecent returns the newest commands first.
func (r *commandRepository) FindRecent(ctx context.Context, limit int) ([]*domain.CommandRecord, error) {
	query := `SELECT ` + commandColumns + ` FROM commands ORDER BY ran_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCommands(rows)
}

// FindByRun returns the commands of one run in execution order.
func (r *commandRepository) FindByRun(ctx context.Context, runID string) ([]*domain.CommandRecord, error) {
	query := `SELECT ` + commandColumns + ` FROM commands WHERE run_id = ? ORDER BY ran_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run commands: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanCommands(rows)
}

func scanCommands(rows *sql.Rows) ([]*domain.CommandRecord, error) {
	var out []*domain.CommandRecord
	for rows.Next() {
		var c domain.CommandRecord
		var runID sql.NullString
		var args string

		if err := rows.Scan(&c.ID, &runID, &c.Dir, &args, &c.ExitCode, &c.RanAt); err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}
		if runID.Valid {
			c.RunID = runID.String
		}
		if err := json.Unmarshal([]byte(args), &c.Args); err != nil {
			return nil, fmt.Errorf("failed to decode args: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
