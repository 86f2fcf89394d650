package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xvierd/git-onboard/internal/domain"
)

// mockLessonProvider is a mock implementation of ports.MCPLessonProvider for testing.
type mockLessonProvider struct {
	done      map[domain.Workflow]bool
	commands  []*domain.CommandRecord
	err       error
	lastLimit int
}

func (m *mockLessonProvider) ExplainStatus(porcelain string) domain.StatusSummary {
	return domain.ParsePorcelain(porcelain)
}

func (m *mockLessonProvider) ExplainPushFailure(stderr string) (domain.PushFailure, string) {
	kind := domain.ClassifyPushFailure(stderr)
	return kind, "advice for " + kind.String()
}

func (m *mockLessonProvider) Roadmap(ctx context.Context, repoPath string) (domain.RoadmapProgress, error) {
	if m.err != nil {
		return domain.RoadmapProgress{}, m.err
	}
	return domain.BuildRoadmap(m.done), nil
}

func (m *mockLessonProvider) RecentCommands(ctx context.Context, limit int) ([]*domain.CommandRecord, error) {
	m.lastLimit = limit
	return m.commands, m.err
}

func callArgs(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("nil result")
	}
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	mock := &mockLessonProvider{}
	server := NewServer(mock, "test")

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.provider != mock {
		t.Error("NewServer() did not keep the provider")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(&mockLessonProvider{}, "test")
	if server.IsRunning() {
		t.Error("server should not be running before Start")
	}
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestServer_handleExplainStatus(t *testing.T) {
	server := NewServer(&mockLessonProvider{}, "test")

	result, err := server.handleExplainStatus(context.Background(), callArgs(map[string]interface{}{
		"porcelain": "?? new.txt\nUU story.txt",
	}))
	if err != nil {
		t.Fatalf("handleExplainStatus() error = %v", err)
	}

	var got struct {
		Clean       bool     `json:"clean"`
		Untracked   []string `json:"untracked"`
		Conflicted  []string `json:"conflicted"`
		Explanation []string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Clean {
		t.Error("expected dirty status")
	}
	if len(got.Untracked) != 1 || len(got.Conflicted) != 1 {
		t.Errorf("unexpected classification: %+v", got)
	}
	if len(got.Explanation) != 2 {
		t.Errorf("expected 2 explanation sentences, got %d", len(got.Explanation))
	}
}

func TestServer_handleExplainStatus_Missing(t *testing.T) {
	server := NewServer(&mockLessonProvider{}, "test")

	result, err := server.handleExplainStatus(context.Background(), callArgs(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleExplainStatus() error = %v", err)
	}
	if !result.IsError {
		t.Error("missing porcelain should produce a tool error")
	}
}

func TestServer_handleExplainPushError(t *testing.T) {
	server := NewServer(&mockLessonProvider{}, "test")

	result, err := server.handleExplainPushError(context.Background(), callArgs(map[string]interface{}{
		"stderr": "error: src refspec main does not match any",
	}))
	if err != nil {
		t.Fatalf("handleExplainPushError() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["kind"] != domain.PushNothingCommitted.String() {
		t.Errorf("kind = %q", got["kind"])
	}
}

func TestServer_handleGetProgress(t *testing.T) {
	mock := &mockLessonProvider{done: map[domain.Workflow]bool{domain.WorkflowInit: true}}
	server := NewServer(mock, "test")

	result, err := server.handleGetProgress(context.Background(), callArgs(map[string]interface{}{
		"repo_path": "/home/dev/repo",
	}))
	if err != nil {
		t.Fatalf("handleGetProgress() error = %v", err)
	}

	var got struct {
		Complete bool `json:"complete"`
		Steps    []struct {
			Workflow string `json:"workflow"`
			State    string `json:"state"`
		} `json:"steps"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Complete {
		t.Error("roadmap should not be complete")
	}
	if len(got.Steps) != len(domain.Roadmap) {
		t.Fatalf("got %d steps", len(got.Steps))
	}
	if got.Steps[0].State != "done" || got.Steps[1].State != "next" {
		t.Errorf("unexpected states: %+v", got.Steps)
	}
}

func TestServer_handleGetProgress_Error(t *testing.T) {
	server := NewServer(&mockLessonProvider{err: errors.New("db closed")}, "test")

	_, err := server.handleGetProgress(context.Background(), callArgs(map[string]interface{}{
		"repo_path": "/repo",
	}))
	if err == nil {
		t.Error("expected provider error to be returned")
	}
}

func TestServer_handleListLessons(t *testing.T) {
	server := NewServer(&mockLessonProvider{}, "test")

	result, err := server.handleListLessons(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleListLessons() error = %v", err)
	}

	var got []map[string]string
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != len(domain.Lessons) {
		t.Errorf("got %d lessons, want %d", len(got), len(domain.Lessons))
	}
}

func TestServer_handleRecentCommands(t *testing.T) {
	cmd := domain.NewCommandRecord("run-1", "/repo", []string{"commit", "-m", "First commit"}, 0)
	cmd.RanAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock := &mockLessonProvider{commands: []*domain.CommandRecord{cmd}}
	server := NewServer(mock, "test")

	result, err := server.handleRecentCommands(context.Background(), callArgs(map[string]interface{}{
		"limit": float64(5),
	}))
	if err != nil {
		t.Fatalf("handleRecentCommands() error = %v", err)
	}
	if mock.lastLimit != 5 {
		t.Errorf("limit passed = %d, want 5", mock.lastLimit)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || got[0]["command"] != `git commit -m "First commit"` {
		t.Errorf("unexpected commands: %v", got)
	}
}

func TestServer_handleRecentCommands_DefaultLimit(t *testing.T) {
	mock := &mockLessonProvider{}
	server := NewServer(mock, "test")

	if _, err := server.handleRecentCommands(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("handleRecentCommands() error = %v", err)
	}
	if mock.lastLimit != defaultRecentLimit {
		t.Errorf("limit = %d, want %d", mock.lastLimit, defaultRecentLimit)
	}
}
