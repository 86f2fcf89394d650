package services

import (
	"context"
	"fmt"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// LessonService implements the MCPLessonProvider interface.
type LessonService struct {
	storage  ports.Storage
	repo     ports.RepoInspector
	settings Settings
}

// Ensure LessonService implements ports.MCPLessonProvider.
var _ ports.MCPLessonProvider = (*LessonService)(nil)

// NewLessonService creates a new lesson service. storage may be nil.
func NewLessonService(storage ports.Storage, repo ports.RepoInspector, settings Settings) *LessonService {
	return &LessonService{storage: storage, repo: repo, settings: settings}
}

// ExplainStatus implements ports.MCPLessonProvider.
func (s *LessonService) ExplainStatus(porcelain string) domain.StatusSummary {
	return domain.ParsePorcelain(porcelain)
}

// ExplainPushFailure implements ports.MCPLessonProvider.
func (s *LessonService) ExplainPushFailure(stderr string) (domain.PushFailure, string) {
	kind := domain.ClassifyPushFailure(stderr)
	remote, branch := s.settings.RemoteName, s.settings.DefaultBranch
	if remote == "" {
		remote = "origin"
	}
	if branch == "" {
		branch = "main"
	}
	return kind, PushAdvice(kind, stderr, remote, branch)
}

// Roadmap implements ports.MCPLessonProvider.
func (s *LessonService) Roadmap(ctx context.Context, repoPath string) (domain.RoadmapProgress, error) {
	return roadmapFor(ctx, s.storage, s.repo, repoPath)
}

// RecentCommands implements ports.MCPLessonProvider.
func (s *LessonService) RecentCommands(ctx context.Context, limit int) ([]*domain.CommandRecord, error) {
	if s.storage == nil {
		return nil, nil
	}
	cmds, err := s.storage.Commands().FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load commands: %w", err)
	}
	return cmds, nil
}
