package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xvierd/git-onboard/internal/domain"
	"go.uber.org/zap"
)

func (c *Coach) merge(ctx context.Context) (result, error) {
	err := c.intro("Merge a Branch", `WHAT THIS DOES:
  'git merge' brings the commits from another branch into the one
  you're on. Most of the time Git combines the work by itself.

  If both branches changed the same lines, Git stops and asks you
  to decide. That's called a MERGE CONFLICT. It sounds scary, but
  it just means Git wants a human to choose. This walks you
  through it, step by step.`)
	if err != nil {
		return result{}, err
	}

	root, err := c.requireRepo(ctx)
	if err != nil {
		return notRepo(err)
	}

	inProgress, err := c.mergeInProgress(ctx, root)
	if err != nil {
		return result{}, err
	}
	if inProgress {
		c.explain(`A merge is already in progress in this repo. Let's pick up
where you left off.`)
		return c.resolveConflicts(ctx, root)
	}

	ok, err := c.hasCommits(ctx, root)
	if err != nil {
		return result{}, err
	}
	if !ok {
		c.explain("This repo has no commits yet, so there's nothing to merge. Make a commit first (option 3).")
		return failed(root, domain.ErrNoCommits.Error()), nil
	}

	summary, err := c.porcelain(ctx, root)
	if err != nil {
		return result{}, err
	}
	if summary.HasTrackedChanges() {
		c.explain(`You have changes that aren't committed yet. A merge could mix
them up with the other branch's work, so Git wants a clean
starting point.

WHAT TO DO:
  Commit your changes first (option 3), or stash them with
  'git stash' if you're not ready to save them. Then come back.`)
		if _, err := c.runGit(ctx, root, "status", "--short"); err != nil {
			return result{}, err
		}
		return failed(root, "uncommitted changes"), nil
	}

	others, current, err := c.otherBranches(ctx, root)
	if err != nil {
		return result{}, err
	}
	if current == "" {
		c.explain(`You're in DETACHED HEAD mode: you're looking at a commit
directly, not standing on a branch. A merge needs a branch to
land on.

WHAT TO DO:
  Switch to a branch first with option 8 (Work with branches),
  or type 'git switch main'. Then come back.`)
		return failed(root, "detached HEAD"), nil
	}
	if len(others) == 0 {
		c.explain(`There's no other branch to merge. Create one with option 8
(Work with branches), commit some work on it, then come back.`)
		return cancelled(root, "no other branches"), nil
	}

	labels := append(append([]string{}, others...), "Return to main menu")
	idx, err := c.choose(fmt.Sprintf("Merge which branch into '%s'?", current), labels...)
	if err != nil {
		return result{}, err
	}
	if idx >= len(others) {
		c.println("  Cancelled.")
		return cancelled(root, "merge cancelled"), nil
	}
	branch := others[idx]

	c.explain(fmt.Sprintf("Merging '%s' into '%s':", branch, current))
	res, err := c.runGit(ctx, root, "merge", branch)
	if err != nil {
		return result{}, err
	}

	outcome := domain.ClassifyMerge(res.OK(), res.Stdout, res.Stderr)
	if outcome == domain.MergeFailed {
		after, err := c.porcelain(ctx, root)
		if err != nil {
			return result{}, err
		}
		if len(after.Conflicted) > 0 {
			outcome = domain.MergeConflict
		}
	}
	c.logger.Info("merge attempted",
		zap.String("branch", branch),
		zap.String("outcome", outcome.String()),
	)

	switch outcome {
	case domain.MergeUpToDate:
		c.explain(fmt.Sprintf(`Nothing to do: '%s' already has everything from '%s'.`, current, branch))
		return succeeded(root, "up to date"), nil
	case domain.MergeFastForward:
		c.explain(fmt.Sprintf(`That was a FAST-FORWARD merge. '%s' hadn't changed since
'%s' branched off, so Git simply moved '%s' forward to
include the new commits. No merge commit was needed.`, current, branch, current))
		return succeeded(root, "fast-forward"), nil
	case domain.MergeCommitted:
		c.explain(fmt.Sprintf(`Both branches had new work, and Git combined them on its own.
It recorded a MERGE COMMIT on '%s', a save point with two
parents that ties the two lines of history together.`, current))
		return succeeded(root, "merge commit"), nil
	case domain.MergeConflict:
		c.explain("Git found a MERGE CONFLICT. Don't worry, nothing is lost.")
		return c.resolveConflicts(ctx, root)
	}

	c.explain(`The merge didn't start. Read Git's message above. Use option 2
(Check status) to see the state of your repo, then try again.`)
	return failed(root, "git merge failed"), nil
}

// resolveConflicts walks the learner from an in-progress merge to a
// merge commit, or back out with an abort.
func (c *Coach) resolveConflicts(ctx context.Context, root string) (result, error) {
	for {
		summary, err := c.porcelain(ctx, root)
		if err != nil {
			return result{}, err
		}
		conflicted := summary.Conflicted

		if len(conflicted) == 0 {
			inProgress, err := c.mergeInProgress(ctx, root)
			if err != nil {
				return result{}, err
			}
			if !inProgress {
				c.explain("There's no merge in progress anymore. Nothing left to do.")
				return cancelled(root, "no merge in progress"), nil
			}
			return c.finalizeMerge(ctx, root)
		}

		c.showConflicts(conflicted)

		next, err := c.waitForFixes(ctx, root, conflicted)
		if err != nil {
			return result{}, err
		}
		switch next {
		case mergeAbort:
			return c.abortMerge(ctx, root)
		case mergeLeave:
			c.explain(`OK, the merge stays in progress. Your files keep their conflict
markers until you finish. Come back to the Merge option any
time and we'll pick up from here.`)
			return cancelled(root, "left in progress"), nil
		}

		c.explain("Marking the fixed files as resolved:")
		args := append([]string{"add", "--"}, conflicted...)
		res, err := c.runGit(ctx, root, args...)
		if err != nil {
			return result{}, err
		}
		if !res.OK() {
			c.explain("Git couldn't stage the files. Read its message above, then check again.")
		}
		// Loop back: anything still unmerged is shown again.
	}
}

type mergeStep int

const (
	mergeStage mergeStep = iota
	mergeAbort
	mergeLeave
)

func (c *Coach) showConflicts(files []string) {
	c.heading("--- Merge Conflict ---")
	c.println("")
	c.println("  These files need your attention:")
	for _, f := range files {
		c.println("    " + c.style.Error(f))
	}
	c.explain(fmt.Sprintf(`Open each file in your editor. Where both branches changed the
same lines, Git left markers like this:

  %s HEAD
  the version on your current branch
  %s
  the version from the branch you're merging
  %s other-branch

Keep the text you want (one side, the other, or a mix of both),
then delete all three marker lines. Save the file.`,
		domain.MarkerOurs, domain.MarkerSplit, domain.MarkerTheirs))
}

// waitForFixes loops until every file is free of markers or the learner
// picks another way out.
func (c *Coach) waitForFixes(ctx context.Context, root string, files []string) (mergeStep, error) {
	for {
		choice, err := c.choose("When you're ready:",
			"I've fixed the files, check again",
			"Abort the merge (go back to how things were)",
			"Leave it for now",
		)
		if err != nil {
			return 0, err
		}
		switch choice {
		case 1:
			return mergeAbort, nil
		case 2:
			return mergeLeave, nil
		}

		unresolved, err := c.scanConflicts(root, files)
		if err != nil {
			return 0, err
		}
		if len(unresolved) == 0 {
			c.explain("No conflict markers left. Nice work.")
			return mergeStage, nil
		}

		c.println("")
		c.println("  These files still have conflict markers:")
		for _, s := range unresolved {
			c.println(fmt.Sprintf("    %s (line %s)", c.style.Error(s.Path), joinInts(s.Lines)))
		}
		c.explain("Fix those lines, save, and check again.")
	}
}

// scanConflicts returns the files that still contain marker lines. A file
// that no longer exists counts as resolved: deleting it is a resolution.
func (c *Coach) scanConflicts(root string, files []string) ([]domain.ConflictScan, error) {
	var unresolved []domain.ConflictScan
	for _, f := range files {
		fh, err := os.Open(filepath.Join(root, filepath.FromSlash(f)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f, err)
		}
		scan, err := domain.ScanConflictMarkers(f, fh)
		_ = fh.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", f, err)
		}
		if !scan.Resolved() {
			unresolved = append(unresolved, scan)
		}
	}
	return unresolved, nil
}

func (c *Coach) finalizeMerge(ctx context.Context, root string) (result, error) {
	c.explain("Everything is resolved. Saving the merge as a commit:")
	res, err := c.runGit(ctx, root, "commit", "--no-edit")
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		c.explainCommitFailure(res.Combined())
		c.explain("The merge is still in progress. Fix the problem above and choose Merge again.")
		return failed(root, "merge commit failed"), nil
	}

	c.explain(`Merge complete! Git saved a MERGE COMMIT that joins both
lines of history. You just resolved a merge conflict by hand,
which is one of the skills people find hardest in Git.`)
	c.printRoadmap(ctx, root, "")
	return succeeded(root, "conflicts resolved"), nil
}

func (c *Coach) abortMerge(ctx context.Context, root string) (result, error) {
	res, err := c.runGit(ctx, root, "merge", "--abort")
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		c.explain("Git couldn't abort the merge. Read its message above and check status (option 2).")
		return failed(root, "merge --abort failed"), nil
	}
	c.explain(`Merge aborted. Your branch and files are back exactly how they
were before you started the merge. You can try again any time.`)
	return cancelled(root, "aborted"), nil
}

// mergeInProgress reports whether MERGE_HEAD exists.
func (c *Coach) mergeInProgress(ctx context.Context, root string) (bool, error) {
	res, err := c.query(ctx, root, "rev-parse", "-q", "--verify", "MERGE_HEAD")
	if err != nil {
		return false, err
	}
	return res.OK(), nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
