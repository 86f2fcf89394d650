package ports

import (
	"context"

	"github.com/xvierd/git-onboard/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPLessonProvider exposes the tool's interpretation of git output and
// the learner's progress to the MCP server.
// This is a driven port (implemented by services layer).
type MCPLessonProvider interface {
	// ExplainStatus interprets raw `git status --porcelain` output.
	ExplainStatus(porcelain string) domain.StatusSummary

	// ExplainPushFailure interprets the stderr of a failed push.
	ExplainPushFailure(stderr string) (domain.PushFailure, string)

	// Roadmap returns the learner's roadmap for a repository.
	Roadmap(ctx context.Context, repoPath string) (domain.RoadmapProgress, error)

	// RecentCommands returns the newest git commands ran for the learner.
	RecentCommands(ctx context.Context, limit int) ([]*domain.CommandRecord, error)
}
