// Package services implements the application layer (use cases)
// following hexagonal architecture principles. The Coach walks the learner
// through each guided workflow, running real git commands through the
// GitRunner port and explaining what they did.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
	"go.uber.org/zap"
)

// Settings are the knobs of the workflows that come from configuration.
type Settings struct {
	DefaultBranch  string
	RemoteName     string
	LogLimit       int
	ProtectedPaths []string
}

// DefaultSettings mirrors the defaults of a fresh config file.
func DefaultSettings() Settings {
	return Settings{
		DefaultBranch: "main",
		RemoteName:    "origin",
		LogLimit:      10,
	}
}

// Deps are the ports a Coach drives.
type Deps struct {
	Git      ports.GitRunner
	Repo     ports.RepoInspector
	Prompter ports.Prompter
	Styler   ports.Styler
	Out      io.Writer
	// Storage, Notifier and Interrupts are optional.
	Storage  ports.Storage
	Notifier ports.Notifier
	Logger   *zap.Logger
	// Interrupts cancels the running workflow, which then reports
	// domain.ErrAborted and the menu comes back.
	Interrupts <-chan os.Signal
}

// Coach runs the guided workflows.
type Coach struct {
	git      ports.GitRunner
	repo     ports.RepoInspector
	prompt   ports.Prompter
	style    ports.Styler
	out      io.Writer
	storage  ports.Storage
	notifier ports.Notifier
	logger   *zap.Logger
	settings Settings

	interrupts <-chan os.Signal

	workDir string
	run     *domain.WorkflowRun
}

// NewCoach creates a coach working in workDir.
func NewCoach(deps Deps, settings Settings, workDir string) *Coach {
	c := &Coach{
		git:      deps.Git,
		repo:     deps.Repo,
		prompt:   deps.Prompter,
		style:    deps.Styler,
		out:      deps.Out,
		storage:  deps.Storage,
		notifier: deps.Notifier,
		logger:   deps.Logger,
		settings: settings,
		workDir:  workDir,

		interrupts: deps.Interrupts,
	}
	if c.style == nil {
		c.style = plainStyle{}
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.settings.DefaultBranch == "" {
		c.settings.DefaultBranch = "main"
	}
	if c.settings.RemoteName == "" {
		c.settings.RemoteName = "origin"
	}
	if c.settings.LogLimit <= 0 {
		c.settings.LogLimit = 10
	}
	return c
}

// WorkDir returns the directory the coach currently works in.
func (c *Coach) WorkDir() string {
	return c.workDir
}

// result is what a workflow reports back for the progress store.
type result struct {
	outcome domain.Outcome
	detail  string
	repo    string
}

func succeeded(repo, detail string) result {
	return result{outcome: domain.OutcomeSucceeded, detail: detail, repo: repo}
}

func failed(repo, detail string) result {
	return result{outcome: domain.OutcomeFailed, detail: detail, repo: repo}
}

func cancelled(repo, detail string) result {
	return result{outcome: domain.OutcomeCancelled, detail: detail, repo: repo}
}

type workflowFunc func(c *Coach, ctx context.Context) (result, error)

func workflowFor(w domain.Workflow) (workflowFunc, bool) {
	switch w {
	case domain.WorkflowInit:
		return (*Coach).initRepo, true
	case domain.WorkflowStatus:
		return (*Coach).status, true
	case domain.WorkflowCommit:
		return (*Coach).stageCommit, true
	case domain.WorkflowReadme:
		return (*Coach).readme, true
	case domain.WorkflowPush:
		return (*Coach).push, true
	case domain.WorkflowLog:
		return (*Coach).history, true
	case domain.WorkflowClone:
		return (*Coach).clone, true
	case domain.WorkflowBranch:
		return (*Coach).branches, true
	case domain.WorkflowMerge:
		return (*Coach).merge, true
	}
	return nil, false
}

// Run executes one workflow and records its outcome. domain.ErrAborted is
// returned when the learner backed out of a prompt.
func (c *Coach) Run(ctx context.Context, w domain.Workflow) error {
	fn, ok := workflowFor(w)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFlow, w)
	}

	c.run = domain.NewWorkflowRun(w, c.workDir)
	c.saveRun(ctx)
	c.logger.Info("workflow started", zap.String("workflow", string(w)), zap.String("dir", c.workDir))

	runCtx, stop := c.interruptible(ctx)
	res, err := fn(c, runCtx)
	if runCtx.Err() != nil && !errors.Is(err, domain.ErrAborted) {
		err = domain.ErrAborted
	}
	stop()

	switch {
	case errors.Is(err, domain.ErrAborted):
		res = cancelled(res.repo, "interrupted")
	case err != nil:
		res = failed(res.repo, err.Error())
	}
	c.finishRun(ctx, res)

	c.logger.Info("workflow finished",
		zap.String("workflow", string(w)),
		zap.String("outcome", string(res.outcome)),
		zap.String("detail", res.detail),
		zap.Error(err),
	)
	c.run = nil
	return err
}

// interruptible returns a context cancelled by the next interrupt. An
// interrupt that arrived between workflows is dropped first.
func (c *Coach) interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	if c.interrupts == nil {
		return ctx, cancel
	}
	select {
	case <-c.interrupts:
	default:
	}
	go func() {
		select {
		case sig := <-c.interrupts:
			c.logger.Info("workflow interrupted", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func (c *Coach) saveRun(ctx context.Context) {
	if c.storage == nil {
		return
	}
	if err := c.storage.Runs().Save(ctx, c.run); err != nil {
		c.logger.Warn("failed to save run", zap.Error(err))
	}
}

func (c *Coach) finishRun(ctx context.Context, res result) {
	if res.outcome == "" {
		res.outcome = domain.OutcomeSucceeded
	}
	if res.repo != "" {
		c.run.RepoPath = res.repo
	}
	c.run.Finish(res.outcome, res.detail)
	if c.storage == nil {
		return
	}
	if err := c.storage.Runs().Update(ctx, c.run); err != nil {
		c.logger.Warn("failed to update run", zap.Error(err))
	}
}

// --- output helpers ---

func (c *Coach) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Coach) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

// explain prints an indented block set apart from commands and output.
func (c *Coach) explain(text string) {
	c.println("")
	for _, line := range strings.Split(strings.Trim(text, "\n"), "\n") {
		if line == "" {
			c.println("")
			continue
		}
		c.println("  " + c.style.Explain(line))
	}
	c.println("")
}

// heading prints a workflow or step title.
func (c *Coach) heading(title string) {
	c.println("")
	c.println("  " + c.style.Title(title))
}

// intro shows what a workflow is about, waits, then clears the screen.
func (c *Coach) intro(title, text string) error {
	c.heading("--- " + title + " ---")
	c.explain(text)
	if err := c.prompt.Pause("Press Enter to continue..."); err != nil {
		return err
	}
	c.prompt.Clear()
	return nil
}

// choose wraps Prompter.Choose for inline option lists.
func (c *Coach) choose(title string, labels ...string) (int, error) {
	choices := make([]ports.Choice, len(labels))
	for i, l := range labels {
		choices[i] = ports.Choice{Label: l}
	}
	return c.prompt.Choose(title, choices)
}

// --- git helpers ---

// runGit runs a state-changing git command on the learner's behalf and
// shows exactly what git printed.
func (c *Coach) runGit(ctx context.Context, dir string, args ...string) (*ports.GitResult, error) {
	line := domain.FormatCommand("git", args)

	c.println("")
	c.println("  " + c.style.Command("COMMAND RAN: "+line))
	c.println("")
	c.println(fmt.Sprintf("  Below is the output you'd see if you typed '%s'", line))
	c.println("  directly in your terminal. This is what Git is telling you:")
	c.println("  " + c.style.Separator())

	start := time.Now()
	res, err := c.git.Run(ctx, dir, args...)
	if err != nil && ctx.Err() != nil {
		return nil, domain.ErrAborted
	}
	if err != nil {
		c.println("  " + c.style.Error("ERROR: "+err.Error()))
		c.println("  " + c.style.Separator())
		c.println("")
		return nil, fmt.Errorf("failed to run git: %w", err)
	}

	if res.Stdout != "" {
		c.println(res.Stdout)
	}
	switch {
	case res.Stderr != "" && !res.OK():
		c.println("  " + c.style.Error("ERROR: "+res.Stderr))
	case res.Stderr != "":
		// progress and hints
		c.println(res.Stderr)
	}
	if res.Stdout == "" && res.Stderr == "" {
		c.println("  (no output)")
	}
	c.println("  " + c.style.Separator())
	c.println("")

	c.logger.Debug("ran git for learner",
		zap.Strings("args", args),
		zap.String("dir", dir),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", time.Since(start)),
	)
	c.recordCommand(ctx, dir, args, res.ExitCode)
	return res, nil
}

func (c *Coach) recordCommand(ctx context.Context, dir string, args []string, exitCode int) {
	if c.storage == nil {
		return
	}
	runID := ""
	if c.run != nil {
		runID = c.run.ID
	}
	rec := domain.NewCommandRecord(runID, dir, args, exitCode)
	if err := c.storage.Commands().Save(ctx, rec); err != nil {
		c.logger.Warn("failed to save command", zap.Error(err))
	}
}

// query runs a read-only git command without showing it.
func (c *Coach) query(ctx context.Context, dir string, args ...string) (*ports.GitResult, error) {
	res, err := c.git.Run(ctx, dir, args...)
	if err != nil && ctx.Err() != nil {
		return nil, domain.ErrAborted
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run git: %w", err)
	}
	return res, nil
}

// porcelain returns the classified `git status --porcelain` of dir.
func (c *Coach) porcelain(ctx context.Context, dir string) (domain.StatusSummary, error) {
	out, err := c.git.Output(ctx, dir, "status", "--porcelain")
	if err != nil {
		return domain.StatusSummary{}, fmt.Errorf("failed to read status: %w", err)
	}
	return domain.ParsePorcelain(out), nil
}

// repoRoot finds the repository containing the working directory.
// go-git is asked first; git itself settles anything go-git cannot open.
func (c *Coach) repoRoot(ctx context.Context) (string, error) {
	if c.repo != nil {
		info, err := c.repo.Inspect(ctx, c.workDir)
		if err == nil {
			return info.Root, nil
		}
		if !errors.Is(err, domain.ErrNotRepository) {
			c.logger.Debug("inspector failed, asking git", zap.Error(err))
		}
	}
	res, err := c.query(ctx, c.workDir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	if !res.OK() || res.Stdout == "" {
		return "", domain.ErrNotRepository
	}
	return res.Stdout, nil
}

// requireRepo explains what to do when the working directory is not a
// repository. The returned error is domain.ErrNotRepository in that case.
func (c *Coach) requireRepo(ctx context.Context) (string, error) {
	root, err := c.repoRoot(ctx)
	if errors.Is(err, domain.ErrNotRepository) {
		c.explain("You're not inside a Git repository. Use 'Initialize a new repo' first.")
	}
	return root, err
}

// notRepo turns a requireRepo error into a workflow result. The
// explanation has already been printed.
func notRepo(err error) (result, error) {
	if errors.Is(err, domain.ErrNotRepository) {
		return failed("", "not a repository"), nil
	}
	return result{}, err
}

// notify sends a desktop notification, ignoring failures.
func (c *Coach) notify(title, message string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(title, message); err != nil {
		c.logger.Debug("notification failed", zap.Error(err))
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// plainStyle is used when no Styler is supplied.
type plainStyle struct{}

func (plainStyle) Title(s string) string   { return s }
func (plainStyle) Command(s string) string { return s }
func (plainStyle) Explain(s string) string { return s }
func (plainStyle) Success(s string) string { return s }
func (plainStyle) Error(s string) string   { return s }
func (plainStyle) Hint(s string) string    { return s }
func (plainStyle) Separator() string {
	return strings.Repeat("─", 60)
}
