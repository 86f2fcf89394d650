// Package git provides read-only repository inspection using go-git.
// Nothing here changes a repository; every state change goes through the
// git binary (see package gitexec).
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// Inspector implements the ports.RepoInspector interface using go-git.
type Inspector struct{}

// NewInspector creates a new repository inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Ensure Inspector implements ports.RepoInspector.
var _ ports.RepoInspector = (*Inspector)(nil)

// open finds the repository containing dir by walking up the tree.
func open(dir string) (*git.Repository, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, domain.ErrNotRepository
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return repo, nil
}

// IsRepo reports whether dir is inside a repository.
func (i *Inspector) IsRepo(dir string) bool {
	_, err := open(dir)
	return err == nil
}

// Inspect reads the repository containing dir.
func (i *Inspector) Inspect(ctx context.Context, dir string) (*ports.RepoInfo, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	info := &ports.RepoInfo{}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	info.Root = worktree.Filesystem.Root()

	// HEAD is symbolic even before the first commit, so the branch name is
	// known on a freshly initialized repository.
	headRef, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}
	if headRef.Type() == plumbing.SymbolicReference {
		info.Branch = headRef.Target().Short()
	} else {
		info.Detached = true
		info.Branch = "HEAD detached"
	}

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		info.HasCommits = false
	case err != nil:
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	default:
		info.HasCommits = true
		info.HeadCommit = head.Hash().String()
		if commit, err := repo.CommitObject(head.Hash()); err == nil {
			info.HeadMsg = strings.Split(commit.Message, "\n")[0]
		}
	}

	branches, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		info.Branches = append(info.Branches, ref.Name().Short())
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}
	sort.Strings(info.Branches)

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	for _, r := range remotes {
		cfg := r.Config()
		info.Remotes = append(info.Remotes, ports.Remote{Name: cfg.Name, URLs: cfg.URLs})
	}
	sort.Slice(info.Remotes, func(a, b int) bool { return info.Remotes[a].Name < info.Remotes[b].Name })

	return info, nil
}
