// Package mcp provides the MCP (Model Context Protocol) server implementation.
// It lets an assistant reuse the same explanations the menu prints.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// defaultRecentLimit is used when recent_commands gets no limit.
const defaultRecentLimit = 20

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	provider ports.MCPLessonProvider
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.MCPLessonProvider, version string) *Server {
	s := &Server{provider: provider}

	s.server = server.NewMCPServer(
		"git-onboard",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"explain_status",
			mcp.WithDescription("Explain `git status --porcelain` output in beginner terms"),
			mcp.WithString(
				"porcelain",
				mcp.Required(),
				mcp.Description("Raw output of git status --porcelain"),
			),
		),
		s.handleExplainStatus,
	)

	s.server.AddTool(
		mcp.NewTool(
			"explain_push_error",
			mcp.WithDescription("Classify why a git push failed and suggest a fix"),
			mcp.WithString(
				"stderr",
				mcp.Required(),
				mcp.Description("The error output printed by git push"),
			),
		),
		s.handleExplainPushError,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_progress",
			mcp.WithDescription("Show which steps of the init, status, commit, readme, push roadmap a repository has completed"),
			mcp.WithString(
				"repo_path",
				mcp.Required(),
				mcp.Description("Absolute path of the repository root"),
			),
		),
		s.handleGetProgress,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_lessons",
			mcp.WithDescription("List the beginner git glossary"),
		),
		s.handleListLessons,
	)

	s.server.AddTool(
		mcp.NewTool(
			"recent_commands",
			mcp.WithDescription("List the git commands git-onboard recently ran for the learner"),
			mcp.WithNumber(
				"limit",
				mcp.Description("Maximum number of commands to return (default 20)"),
			),
		),
		s.handleRecentCommands,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleExplainStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	porcelain, err := request.RequireString("porcelain")
	if err != nil {
		return mcp.NewToolResultError("porcelain is required: " + err.Error()), nil
	}

	summary := s.provider.ExplainStatus(porcelain)
	return jsonResult(map[string]any{
		"clean":       summary.Clean(),
		"untracked":   summary.Untracked,
		"modified":    summary.Modified,
		"staged":      summary.Staged,
		"conflicted":  summary.Conflicted,
		"explanation": summary.Explain(),
	})
}

func (s *Server) handleExplainPushError(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stderr, err := request.RequireString("stderr")
	if err != nil {
		return mcp.NewToolResultError("stderr is required: " + err.Error()), nil
	}

	kind, advice := s.provider.ExplainPushFailure(stderr)
	return jsonResult(map[string]any{
		"kind":   kind.String(),
		"advice": advice,
	})
}

func (s *Server) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repoPath, err := request.RequireString("repo_path")
	if err != nil {
		return mcp.NewToolResultError("repo_path is required: " + err.Error()), nil
	}

	progress, err := s.provider.Roadmap(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	steps := make([]map[string]any, len(progress.Steps))
	for i, step := range progress.Steps {
		steps[i] = map[string]any{
			"workflow": string(step.Workflow),
			"title":    step.Title,
			"hint":     step.Hint,
			"state":    progress.States[i].String(),
		}
	}
	return jsonResult(map[string]any{
		"repo_path": repoPath,
		"complete":  progress.Complete(),
		"steps":     steps,
	})
}

func (s *Server) handleListLessons(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lessons := make([]map[string]string, len(domain.Lessons))
	for i, l := range domain.Lessons {
		lessons[i] = map[string]string{
			"term":        l.Term,
			"explanation": l.Explanation,
			"workflow":    string(l.Workflow),
		}
	}
	return jsonResult(lessons)
}

func (s *Server) handleRecentCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", defaultRecentLimit))
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	cmds, err := s.provider.RecentCommands(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}

	out := make([]map[string]any, len(cmds))
	for i, c := range cmds {
		out[i] = map[string]any{
			"command":   c.CommandLine(),
			"dir":       c.Dir,
			"exit_code": c.ExitCode,
			"ran_at":    c.RanAt.Format("2006-01-02T15:04:05"),
		}
	}
	return jsonResult(out)
}
