package gitexec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors that can be used with errors.Is() for error type checking
var (
	// ErrGitNotFound indicates the git binary could not be started
	ErrGitNotFound = errors.New("git is not installed or not on PATH")

	// ErrGitOperationFailed indicates a git command returned a nonzero exit code
	ErrGitOperationFailed = errors.New("git operation failed")
)

// GitError represents a failed git invocation.
// It captures the command details, underlying error, and git's stderr.
type GitError struct {
	Operation string
	Args      []string
	ExitCode  int
	Stderr    string
	Err       error
}

// Error implements the error interface.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg = fmt.Sprintf("%s: %s", msg, s)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *GitError) Unwrap() error {
	return e.Err
}

// newGitError builds a GitError for args, naming the operation after the
// first argument (the git subcommand).
func newGitError(args []string, exitCode int, stderr string, err error) *GitError {
	op := ""
	if len(args) > 0 {
		op = args[0]
	}
	return &GitError{
		Operation: op,
		Args:      append([]string(nil), args...),
		ExitCode:  exitCode,
		Stderr:    stderr,
		Err:       err,
	}
}
