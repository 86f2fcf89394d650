// Package domain contains the core concepts of git-onboard: the guided
// workflows, the interpretation of git's textual output, and the records
// kept about what the learner has already done. Nothing in this package
// talks to git or the terminal.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	ErrNotRepository = errors.New("not inside a git repository")
	ErrAborted       = errors.New("aborted by user")
	ErrNoCommits     = errors.New("repository has no commits yet")
	ErrInvalidBranch = errors.New("invalid branch name")
	ErrRunNotFound   = errors.New("workflow run not found")
	ErrUnknownFlow   = errors.New("unknown workflow")
)

// Workflow identifies one of the guided lessons offered in the main menu.
type Workflow string

const (
	WorkflowInit   Workflow = "init"
	WorkflowStatus Workflow = "status"
	WorkflowCommit Workflow = "commit"
	WorkflowReadme Workflow = "readme"
	WorkflowPush   Workflow = "push"
	WorkflowLog    Workflow = "log"
	WorkflowClone  Workflow = "clone"
	WorkflowBranch Workflow = "branch"
	WorkflowMerge  Workflow = "merge"
)

// MenuEntry describes one main menu option.
type MenuEntry struct {
	Workflow    Workflow
	Label       string
	Description string
}

// Menu lists the workflows in the order a beginner would typically use them.
var Menu = []MenuEntry{
	{WorkflowInit, "Initialize a new repo", "Set up Git tracking in a project folder. This is always the first step."},
	{WorkflowStatus, "Check status", "See what files have changed since your last save point."},
	{WorkflowCommit, "Stage and commit changes", "Select changes and save a snapshot with a descriptive label."},
	{WorkflowReadme, "Create a README", "Build the front page of your project, the first thing people see on GitHub."},
	{WorkflowPush, "Push to GitHub", "Upload your saved snapshots to your GitHub profile for the world to see."},
	{WorkflowLog, "View commit history", "See a timeline of every snapshot you've saved."},
	{WorkflowClone, "Clone a repo", "Download an existing project from GitHub to your machine."},
	{WorkflowBranch, "Work with branches", "Create, switch and delete separate lines of work."},
	{WorkflowMerge, "Merge a branch", "Bring another branch's work into this one, and fix conflicts if they happen."},
}

// ParseWorkflow validates a workflow name.
func ParseWorkflow(s string) (Workflow, error) {
	for _, e := range Menu {
		if string(e.Workflow) == s {
			return e.Workflow, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlow, s)
}

// Label returns the menu label of the workflow.
func (w Workflow) Label() string {
	for _, e := range Menu {
		if e.Workflow == w {
			return e.Label
		}
	}
	return string(w)
}

// RoadmapStep is one step of the beginner's path from an empty folder to
// a project on GitHub.
type RoadmapStep struct {
	Workflow Workflow
	Title    string
	Hint     string
}

// Roadmap is the fixed five-step path the tool keeps pointing the user at.
var Roadmap = []RoadmapStep{
	{WorkflowInit, "Initialize", "start tracking a folder (option 1)"},
	{WorkflowStatus, "Check status", "see what Git sees (option 2)"},
	{WorkflowCommit, "Stage + commit", "save a snapshot locally (option 3)"},
	{WorkflowReadme, "Create a README", "build your project's front page (option 4)"},
	{WorkflowPush, "Push to GitHub", "upload everything (option 5)"},
}

// StepState marks where a roadmap step stands for a repository.
type StepState int

const (
	StepPending StepState = iota
	StepNext
	StepDone
)

func (s StepState) String() string {
	switch s {
	case StepNext:
		return "next"
	case StepDone:
		return "done"
	default:
		return "pending"
	}
}

// RoadmapProgress pairs every roadmap step with its state.
type RoadmapProgress struct {
	Steps  []RoadmapStep
	States []StepState
}

// BuildRoadmap computes the roadmap for the set of workflows already
// completed. The first step that is not done is marked as next.
func BuildRoadmap(done map[Workflow]bool) RoadmapProgress {
	p := RoadmapProgress{
		Steps:  Roadmap,
		States: make([]StepState, len(Roadmap)),
	}
	nextMarked := false
	for i, step := range Roadmap {
		switch {
		case done[step.Workflow]:
			p.States[i] = StepDone
		case !nextMarked:
			p.States[i] = StepNext
			nextMarked = true
		default:
			p.States[i] = StepPending
		}
	}
	return p
}

// Complete reports whether every step is done.
func (p RoadmapProgress) Complete() bool {
	for _, s := range p.States {
		if s != StepDone {
			return false
		}
	}
	return true
}
