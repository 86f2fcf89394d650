package domain

import (
	"strings"
	"time"
)

// Outcome is how a workflow run ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// WorkflowRun records one pass through a guided workflow.
type WorkflowRun struct {
	ID         string
	Workflow   Workflow
	RepoPath   string
	Outcome    Outcome
	Detail     string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// NewWorkflowRun starts a run record for the given workflow.
func NewWorkflowRun(w Workflow, repoPath string) *WorkflowRun {
	return &WorkflowRun{
		ID:        generateID(),
		Workflow:  w,
		RepoPath:  repoPath,
		StartedAt: time.Now(),
	}
}

// Finish closes the run with an outcome and optional detail.
func (r *WorkflowRun) Finish(outcome Outcome, detail string) {
	now := time.Now()
	r.Outcome = outcome
	r.Detail = detail
	r.FinishedAt = &now
}

// Finished reports whether Finish was called.
func (r *WorkflowRun) Finished() bool {
	return r.FinishedAt != nil
}

// CommandRecord is one git invocation made on the learner's behalf.
type CommandRecord struct {
	ID       string
	RunID    string
	Dir      string
	Args     []string
	ExitCode int
	RanAt    time.Time
}

// NewCommandRecord creates a record for a finished git call.
func NewCommandRecord(runID, dir string, args []string, exitCode int) *CommandRecord {
	return &CommandRecord{
		ID:       generateID(),
		RunID:    runID,
		Dir:      dir,
		Args:     append([]string(nil), args...),
		ExitCode: exitCode,
		RanAt:    time.Now(),
	}
}

// CommandLine renders the command the way a user would type it.
func (c *CommandRecord) CommandLine() string {
	return FormatCommand("git", c.Args)
}

// FormatCommand joins a command line, quoting arguments that contain
// whitespace or are empty.
func FormatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
