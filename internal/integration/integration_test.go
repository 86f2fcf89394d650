package integration

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xvierd/git-onboard/internal/adapters/git"
	"github.com/xvierd/git-onboard/internal/adapters/gitexec"
	"github.com/xvierd/git-onboard/internal/adapters/storage"
	"github.com/xvierd/git-onboard/internal/adapters/tui"
	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
	"github.com/xvierd/git-onboard/internal/services"
)

var gitEnv = []string{
	"GIT_AUTHOR_NAME=Test User",
	"GIT_AUTHOR_EMAIL=test@example.com",
	"GIT_COMMITTER_NAME=Test User",
	"GIT_COMMITTER_EMAIL=test@example.com",
	"GIT_CONFIG_NOSYSTEM=1",
	"GIT_CONFIG_GLOBAL=" + os.DevNull,
}

// setupTestStorage creates a temporary database for integration tests
func setupTestStorage(t *testing.T, dbPath string) ports.Storage {
	t.Helper()

	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// lines joins learner input the way it would be typed, one answer per line.
func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

// TestBeginnerPath walks the five roadmap steps in order with the plain
// prompter, pushes to a local bare repository, then clones it back.
func TestBeginnerPath(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	project := filepath.Join(base, "project")
	remote := filepath.Join(base, "remote.git")
	dbPath := filepath.Join(base, "onboard.db")
	if err := os.Mkdir(project, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(project, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := gitexec.NewRunner(gitexec.WithEnv(gitEnv...))
	ctx := context.Background()
	if res, err := runner.Run(ctx, base, "init", "--bare", remote); err != nil || !res.OK() {
		t.Fatalf("failed to create bare remote: %v %+v", err, res)
	}

	input := lines(
		// init: intro, path, .gitignore
		"", "", "y",
		// status: intro
		"",
		// commit: intro, stage all, pause, message
		"", "1", "", "Initial commit",
		// readme: intro, eight questions, confirm
		"", "Demo", "A tiny demo", "", "", "", "", "Go", "", "y",
		// commit the README
		"", "1", "", "Add README",
		// push: intro, have an account, remote URL, pause
		"", "1", remote, "",
		// clone: intro, URL, destination, stay here
		"", remote, "copy", "n",
	)
	out := &bytes.Buffer{}
	store := setupTestStorage(t, dbPath)
	inspector := git.NewInspector()
	coach := services.NewCoach(services.Deps{
		Git:      runner,
		Repo:     inspector,
		Prompter: tui.NewPlainPrompter(strings.NewReader(input), out),
		Out:      out,
		Storage:  store,
	}, services.DefaultSettings(), project)

	steps := []domain.Workflow{
		domain.WorkflowInit,
		domain.WorkflowStatus,
		domain.WorkflowCommit,
		domain.WorkflowReadme,
		domain.WorkflowCommit,
		domain.WorkflowPush,
		domain.WorkflowClone,
	}
	for _, w := range steps {
		if err := coach.Run(ctx, w); err != nil {
			t.Fatalf("%s failed: %v\n%s", w, err, out.String())
		}
	}

	got := out.String()
	for _, want := range []string{
		"COMMAND RAN: git init",
		`COMMAND RAN: git commit -m "Initial commit"`,
		"README.md created at:",
		"COMMAND RAN: git remote add origin " + remote,
		"Your code is now live on GitHub",
		"COMMAND RAN: git clone " + remote + " copy",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if _, err := os.Stat(filepath.Join(base, "project", "copy", "README.md")); err != nil {
		t.Errorf("clone did not bring the README back: %v", err)
	}

	runs, err := store.Runs().FindRecent(ctx, len(steps))
	if err != nil {
		t.Fatalf("failed to load runs: %v", err)
	}
	for _, run := range runs {
		if run.Outcome != domain.OutcomeSucceeded {
			t.Errorf("run %s outcome = %s (%s), want succeeded", run.Workflow, run.Outcome, run.Detail)
		}
	}

	// Progress survives a restart.
	_ = store.Close()
	reopened := setupTestStorage(t, dbPath)
	lessons := services.NewLessonService(reopened, inspector, services.DefaultSettings())

	progress, err := lessons.Roadmap(ctx, project)
	if err != nil {
		t.Fatalf("failed to load roadmap: %v", err)
	}
	if !progress.Complete() {
		t.Errorf("roadmap should be complete, got %v", progress.States)
	}

	cmds, err := lessons.RecentCommands(ctx, 50)
	if err != nil {
		t.Fatalf("failed to load commands: %v", err)
	}
	if len(cmds) == 0 || cmds[0].Args[0] != "clone" {
		t.Errorf("newest command should be the clone, got %+v", cmds)
	}
}

// TestInterruptedWorkflowIsRecorded checks that running out of input in
// the middle of a lesson unwinds as a cancelled run.
func TestInterruptedWorkflowIsRecorded(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := setupTestStorage(t, filepath.Join(dir, "onboard.db"))
	out := &bytes.Buffer{}
	coach := services.NewCoach(services.Deps{
		Git:      gitexec.NewRunner(gitexec.WithEnv(gitEnv...)),
		Repo:     git.NewInspector(),
		Prompter: tui.NewPlainPrompter(strings.NewReader(lines("")), out),
		Out:      out,
		Storage:  store,
	}, services.DefaultSettings(), dir)

	err = coach.Run(context.Background(), domain.WorkflowInit)
	if err == nil || !strings.Contains(err.Error(), domain.ErrAborted.Error()) {
		t.Fatalf("Run() error = %v, want aborted", err)
	}

	runs, err := store.Runs().FindRecent(context.Background(), 1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("FindRecent() = %v, %v", runs, err)
	}
	if runs[0].Outcome != domain.OutcomeCancelled {
		t.Errorf("outcome = %s, want cancelled", runs[0].Outcome)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		t.Error("git init must not run after the learner backed out")
	}
}
