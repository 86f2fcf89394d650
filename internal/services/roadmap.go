package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// Roadmap returns the learner's progress through the five core steps for
// repoPath.
func (c *Coach) Roadmap(ctx context.Context, repoPath string) (domain.RoadmapProgress, error) {
	return roadmapFor(ctx, c.storage, c.repo, repoPath)
}

// roadmapFor builds progress from recorded successful runs. Init counts
// as done for any existing repository, cloned ones included.
func roadmapFor(ctx context.Context, storage ports.Storage, repo ports.RepoInspector, repoPath string) (domain.RoadmapProgress, error) {
	done := map[domain.Workflow]bool{}
	if storage != nil {
		recorded, err := storage.Runs().CompletedWorkflows(ctx, repoPath)
		if err != nil {
			return domain.RoadmapProgress{}, fmt.Errorf("failed to load progress: %w", err)
		}
		done = recorded
	}
	if repoPath != "" && repo != nil && repo.IsRepo(repoPath) {
		done[domain.WorkflowInit] = true
	}
	return domain.BuildRoadmap(done), nil
}

// printRoadmap shows THE FULL FLOW with just marked as the step the
// learner has just completed.
func (c *Coach) printRoadmap(ctx context.Context, repoPath string, just domain.Workflow) {
	progress, err := c.Roadmap(ctx, repoPath)
	if err != nil {
		progress = domain.BuildRoadmap(nil)
	}
	if just != "" {
		for i, step := range progress.Steps {
			if step.Workflow == just {
				progress.States[i] = domain.StepDone
			}
		}
		progress = remarkNext(progress)
	}
	c.println("  THE FULL FLOW:")
	for _, line := range formatRoadmap(progress, just) {
		c.println("  " + line)
	}
	c.println("")
}

// remarkNext moves the next marker to the first step not done.
func remarkNext(p domain.RoadmapProgress) domain.RoadmapProgress {
	done := map[domain.Workflow]bool{}
	for i, s := range p.Steps {
		if p.States[i] == domain.StepDone {
			done[s.Workflow] = true
		}
	}
	return domain.BuildRoadmap(done)
}

// formatRoadmap renders one line per step.
func formatRoadmap(p domain.RoadmapProgress, just domain.Workflow) []string {
	width := 0
	for _, s := range p.Steps {
		if len(s.Title) > width {
			width = len(s.Title)
		}
	}
	lines := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		var mark, note string
		switch p.States[i] {
		case domain.StepDone:
			mark, note = "[done]", "already done"
			if s.Workflow == just {
				note = "you just did this"
			}
		case domain.StepNext:
			mark, note = " -->  ", s.Hint
		default:
			mark, note = "      ", s.Hint
		}
		lines[i] = strings.TrimRight(fmt.Sprintf("%s Step %d. %-*s  - %s", mark, i+1, width, s.Title, note), " ")
	}
	return lines
}
