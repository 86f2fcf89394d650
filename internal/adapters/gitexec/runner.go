// Package gitexec runs the external git binary and captures what it says.
package gitexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xvierd/git-onboard/internal/ports"
)

// lineEndingNoise are stderr fragments git prints on Windows checkouts.
// They are harmless, not actionable, and confuse beginners.
var lineEndingNoise = []string{
	"LF will be replaced by CRLF",
	"CRLF will be replaced by LF",
}

// Runner implements ports.GitRunner with os/exec.
type Runner struct {
	binary string
	env    []string
	logger *zap.Logger
}

// Ensure Runner implements ports.GitRunner.
var _ ports.GitRunner = (*Runner)(nil)

// Option configures a Runner.
type Option func(*Runner)

// WithBinary overrides the git executable (default "git").
func WithBinary(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.binary = path
		}
	}
}

// WithEnv appends environment variables to every invocation.
func WithEnv(env ...string) Option {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a git runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		binary: "git",
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Binary returns the git executable in use.
func (r *Runner) Binary() string {
	return r.binary
}

// Run implements ports.GitRunner.Run.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (*ports.GitResult, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &ports.GitResult{
		Dir:    dir,
		Args:   append([]string(nil), args...),
		Stdout: trimOutput(stdout.String()),
		Stderr: FilterNoise(stderr.String()),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.logger.Debug("git invocation cancelled",
				zap.Strings("args", args),
				zap.Error(ctxErr))
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.logger.Warn("git could not be started",
				zap.String("binary", r.binary),
				zap.Strings("args", args),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrGitNotFound, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug("git invocation",
		zap.String("dir", dir),
		zap.Strings("args", args),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("took", time.Since(start)))

	return result, nil
}

// Output implements ports.GitRunner.Output.
func (r *Runner) Output(ctx context.Context, dir string, args ...string) (string, error) {
	res, err := r.Run(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", newGitError(args, res.ExitCode, res.Stderr, ErrGitOperationFailed)
	}
	return res.Stdout, nil
}

// Version implements ports.GitRunner.Version.
func (r *Runner) Version(ctx context.Context) (string, error) {
	return r.Output(ctx, "", "--version")
}

// trimOutput drops trailing line endings only. Leading spaces are
// significant in porcelain output (" M file").
func trimOutput(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// FilterNoise drops line-ending warnings from stderr and trims the rest.
func FilterNoise(stderr string) string {
	lines := strings.Split(stderr, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isNoise(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isNoise(line string) bool {
	for _, n := range lineEndingNoise {
		if strings.Contains(line, n) {
			return true
		}
	}
	return false
}
