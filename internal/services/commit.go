package services

import (
	"context"
	"fmt"

	"github.com/xvierd/git-onboard/internal/domain"
)

func (c *Coach) stageCommit(ctx context.Context) (result, error) {
	err := c.intro("Stage and Commit Changes", `WHAT THIS DOES:
  This is a two-step process:

  1. STAGE (git add):  Pick which changes to include in your next save.
     Think of it as putting items into a box.

  2. COMMIT (git commit):  Seal the box with a label describing what's
     inside. This creates a permanent save point in your history.

  You can't commit without staging first. Git needs you to be
  intentional about what goes into each save point.`)
	if err != nil {
		return result{}, err
	}

	root, err := c.requireRepo(ctx)
	if err != nil {
		return notRepo(err)
	}

	c.heading("--- Stage and Commit: Step 1 of 2, STAGING ---")
	c.explain(`First, let's see what files Git has noticed. The output below
uses shorthand symbols:
  ??  = Untracked (a new file Git hasn't saved before)
  M   = Modified  (a file that changed since your last save)
  A   = Staged    (a file already marked for the next save)`)

	if _, err := c.runGit(ctx, root, "status", "--short"); err != nil {
		return result{}, err
	}

	summary, err := c.porcelain(ctx, root)
	if err != nil {
		return result{}, err
	}
	if summary.Clean() {
		c.explain("Nothing to commit. Your working directory is clean. Make some changes first!")
		return cancelled(root, "nothing to commit"), nil
	}
	if len(summary.Conflicted) > 0 {
		c.explain(`Some files still have merge conflicts. Use the Merge option to
finish (or abort) the merge before making a normal commit.`)
		return failed(root, "unresolved conflicts"), nil
	}

	c.explain(`Now you need to pick which of those files to include in your
next save point. You can stage all of them at once, or pick
specific files. For now, staging everything is usually the
right call.`)

	choice, err := c.choose("How do you want to stage?",
		"Stage all changes",
		"Stage a specific file",
		"Return to main menu",
	)
	if err != nil {
		return result{}, err
	}

	switch choice {
	case 0:
		c.explain("Staging all changes:")
		if _, err := c.runGit(ctx, root, "add", "."); err != nil {
			return result{}, err
		}
	case 1:
		path, err := c.prompt.Ask("Enter the file name (or path) to stage:")
		if err != nil {
			return result{}, err
		}
		if path == "" {
			c.println("  No file specified. Cancelled.")
			return cancelled(root, "no file"), nil
		}
		c.explain(fmt.Sprintf("Staging '%s':", path))
		res, err := c.runGit(ctx, root, "add", path)
		if err != nil {
			return result{}, err
		}
		if !res.OK() {
			c.explain("Git couldn't stage that path. Check the spelling against the list above and try again.")
			return failed(root, "git add failed"), nil
		}
	default:
		c.println("  Cancelled.")
		return cancelled(root, "stage cancelled"), nil
	}

	if err := c.prompt.Pause("Press Enter to continue..."); err != nil {
		return result{}, err
	}
	c.prompt.Clear()

	c.heading("--- Stage and Commit: Step 2 of 2, COMMITTING ---")
	c.explain("Here's what's staged and ready to be saved:")
	if _, err := c.runGit(ctx, root, "status", "--short"); err != nil {
		return result{}, err
	}

	c.explain(`Now you need a commit message: a short label describing what
this save point contains. Good messages describe WHAT changed
and WHY.

Examples:
  "Add player health bar to HUD"
  "Fix login bug where empty password was accepted"
  "Initial commit: project scaffolding"`)

	message, err := c.prompt.Ask("Enter your commit message:")
	if err != nil {
		return result{}, err
	}
	if message == "" {
		c.println("  No message entered. Cancelled.")
		return cancelled(root, "empty message"), nil
	}

	c.explain("Creating commit:")
	res, err := c.runGit(ctx, root, "commit", "-m", message)
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		c.explainCommitFailure(res.Combined())
		return failed(root, "git commit failed"), nil
	}

	c.explain(`Commit created!

WHAT JUST HAPPENED:
  Your changes are saved, but ONLY on your machine. GitHub still
  doesn't have them yet.`)
	c.printRoadmap(ctx, root, domain.WorkflowCommit)
	return succeeded(root, ""), nil
}

// explainCommitFailure covers the two failures beginners hit most.
func (c *Coach) explainCommitFailure(output string) {
	switch {
	case containsAny(output, "Please tell me who you are", "user.email", "user.name"):
		c.explain(`Git doesn't know who you are yet. Every commit records an
author, so Git needs your name and email once per computer.

Run these two commands in a terminal, then try again:
  git config --global user.name "Your Name"
  git config --global user.email "you@example.com"`)
	case containsAny(output, "nothing to commit", "no changes added to commit"):
		c.explain("Nothing was staged, so there was nothing to save. Stage a file first.")
	default:
		c.explain("The commit didn't go through. Read Git's message above, fix what it mentions, and try again.")
	}
}
