package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/xvierd/git-onboard/internal/domain"
)

func initRepoWithCommit(t *testing.T) (string, plumbing.Hash) {
	t.Helper()
	tmpDir := t.TempDir()

	repo, err := git.PlainInit(tmpDir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	testFile := filepath.Join(tmpDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("hello world\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := worktree.Add("test.txt"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}
	commit, err := worktree.Commit("Initial commit\n\nbody", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
		},
	})
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}
	return tmpDir, commit
}

func TestInspector_Inspect(t *testing.T) {
	dir, commit := initRepoWithCommit(t)

	info, err := NewInspector().Inspect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	if !info.HasCommits {
		t.Error("expected HasCommits after first commit")
	}
	if info.HeadCommit != commit.String() {
		t.Errorf("HeadCommit = %s, want %s", info.HeadCommit, commit)
	}
	if info.HeadMsg != "Initial commit" {
		t.Errorf("HeadMsg = %q, want first line only", info.HeadMsg)
	}
	// go-git defaults to master
	if info.Branch != "master" && info.Branch != "main" {
		t.Errorf("unexpected branch %q", info.Branch)
	}
	if len(info.Branches) != 1 || info.Branches[0] != info.Branch {
		t.Errorf("Branches = %v, want [%s]", info.Branches, info.Branch)
	}
	if info.Root != dir {
		t.Errorf("Root = %s, want %s", info.Root, dir)
	}
}

func TestInspector_Inspect_FromSubdirectory(t *testing.T) {
	dir, _ := initRepoWithCommit(t)
	sub := filepath.Join(dir, "level1", "level2")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	info, err := NewInspector().Inspect(context.Background(), sub)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if info.Root != dir {
		t.Errorf("Root = %s, want %s", info.Root, dir)
	}
}

func TestInspector_Inspect_EmptyRepo(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}

	info, err := NewInspector().Inspect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if info.HasCommits {
		t.Error("fresh repo should have no commits")
	}
	if info.Branch == "" {
		t.Error("branch name should be known before the first commit")
	}
	if len(info.Branches) != 0 {
		t.Errorf("fresh repo should list no branches, got %v", info.Branches)
	}
}

func TestInspector_Inspect_Remotes(t *testing.T) {
	dir, _ := initRepoWithCommit(t)
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen() error = %v", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/learner/first-repo.git"},
	}); err != nil {
		t.Fatalf("CreateRemote() error = %v", err)
	}

	info, err := NewInspector().Inspect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(info.Remotes) != 1 || info.Remotes[0].Name != "origin" {
		t.Fatalf("Remotes = %+v", info.Remotes)
	}
	if got := info.Remotes[0].URLs; len(got) != 1 || got[0] != "https://github.com/learner/first-repo.git" {
		t.Errorf("Remote URLs = %v", got)
	}
}

func TestInspector_NotARepo(t *testing.T) {
	dir := t.TempDir()
	i := NewInspector()

	if i.IsRepo(dir) {
		t.Error("IsRepo() = true for a plain directory")
	}
	_, err := i.Inspect(context.Background(), dir)
	if !errors.Is(err, domain.ErrNotRepository) {
		t.Errorf("Inspect() error = %v, want ErrNotRepository", err)
	}
}
