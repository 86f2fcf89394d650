package ports

import (
	"context"
)

// GitResult is the captured outcome of one git invocation.
type GitResult struct {
	Dir      string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

// OK reports a zero exit status.
func (r *GitResult) OK() bool {
	return r != nil && r.ExitCode == 0
}

// Combined returns stdout and stderr joined, for substring checks.
func (r *GitResult) Combined() string {
	if r == nil {
		return ""
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// GitRunner invokes the external git binary.
// This is a driven port (implemented by adapters).
type GitRunner interface {
	// Run executes git in dir. A nonzero exit is reported through the
	// result; err is only set when git could not be started.
	Run(ctx context.Context, dir string, args ...string) (*GitResult, error)

	// Output executes a quiet query and returns trimmed stdout. A nonzero
	// exit is returned as an error.
	Output(ctx context.Context, dir string, args ...string) (string, error)

	// Version returns the `git --version` line.
	Version(ctx context.Context) (string, error)
}

// Remote is a named remote and its URLs.
type Remote struct {
	Name string
	URLs []string
}

// RepoInfo is a read-only snapshot of a repository's shape.
type RepoInfo struct {
	Root       string
	Branch     string
	Detached   bool
	HasCommits bool
	HeadCommit string
	HeadMsg    string
	Branches   []string
	Remotes    []Remote
}

// RepoInspector reads repository metadata without changing anything.
// This is a driven port (implemented by adapters).
type RepoInspector interface {
	// Inspect looks up the repository containing dir.
	Inspect(ctx context.Context, dir string) (*RepoInfo, error)

	// IsRepo reports whether dir is inside a repository.
	IsRepo(dir string) bool
}
