package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xvierd/git-onboard/internal/domain"
)

func (c *Coach) branches(ctx context.Context) (result, error) {
	err := c.intro("Work with Branches", `WHAT THIS DOES:
  A branch is a separate line of work. Your first branch is usually
  called 'main'. When you want to try something without risking
  what already works, you create a new branch, work there, and
  merge it back when you're happy.

  Switching branches swaps the files in your folder to match that
  branch. Git keeps every branch safe, so nothing is lost.`)
	if err != nil {
		return result{}, err
	}

	root, err := c.requireRepo(ctx)
	if err != nil {
		return notRepo(err)
	}
	ok, err := c.hasCommits(ctx, root)
	if err != nil {
		return result{}, err
	}
	if !ok {
		c.explain(`Branches point at commits, and this repo has none yet.
Make your first commit with option 3 (Stage and commit), then come back.`)
		return failed(root, domain.ErrNoCommits.Error()), nil
	}

	c.explain("These are your branches. The one with * is the one you're on:")
	if _, err := c.runGit(ctx, root, "branch"); err != nil {
		return result{}, err
	}

	choice, err := c.choose("What do you want to do?",
		"Create a new branch and switch to it",
		"Switch to another branch",
		"Delete a branch",
		"Return to main menu",
	)
	if err != nil {
		return result{}, err
	}

	switch choice {
	case 0:
		return c.createBranch(ctx, root)
	case 1:
		return c.switchBranch(ctx, root)
	case 2:
		return c.deleteBranch(ctx, root)
	}
	c.println("  Cancelled.")
	return cancelled(root, "branch cancelled"), nil
}

func (c *Coach) createBranch(ctx context.Context, root string) (result, error) {
	c.explain(`Pick a short name that says what the work is about, for example:
  add-login-page
  fix/typo-in-readme
Spaces aren't allowed; use dashes instead.`)
	name, err := c.prompt.Ask("New branch name:")
	if err != nil {
		return result{}, err
	}
	if name == "" {
		c.println("  No name entered. Cancelled.")
		return cancelled(root, "no name"), nil
	}

	valid, err := c.validBranchName(ctx, root, name)
	if err != nil {
		return result{}, err
	}
	if !valid {
		c.explain(fmt.Sprintf(`'%s' isn't a valid branch name. Names can't contain spaces,
'..', '~', '^', ':', '?', '*' or '[', and can't start with '-'.`, name))
		return failed(root, domain.ErrInvalidBranch.Error()), nil
	}

	res, err := c.runGit(ctx, root, "switch", "-c", name)
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		if strings.Contains(res.Stderr, "already exists") {
			c.explain(fmt.Sprintf("A branch called '%s' already exists. Use 'Switch to another branch' instead.", name))
		}
		return failed(root, "git switch -c failed"), nil
	}

	c.explain(fmt.Sprintf(`You're now on '%s'. Commits you make from here on go to this
branch only. When the work is ready, switch back to your main branch
and use the Merge option to bring it in.`, name))
	return succeeded(root, "created "+name), nil
}

func (c *Coach) switchBranch(ctx context.Context, root string) (result, error) {
	others, current, err := c.otherBranches(ctx, root)
	if err != nil {
		return result{}, err
	}
	if len(others) == 0 {
		c.explain(fmt.Sprintf("'%s' is your only branch. Create one first.", current))
		return cancelled(root, "no other branches"), nil
	}

	target, err := c.pickBranch(others, "Switch to which branch? (part of the name is enough)")
	if err != nil || target == "" {
		return cancelled(root, "no branch picked"), err
	}

	res, err := c.runGit(ctx, root, "switch", target)
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		c.explain(`Git refused to switch. This usually means you have changes that
would be overwritten. Commit them first (option 3), then switch.`)
		return failed(root, "git switch failed"), nil
	}
	c.explain(fmt.Sprintf("You're now on '%s'. The files in your folder match that branch.", target))
	return succeeded(root, "switched to "+target), nil
}

func (c *Coach) deleteBranch(ctx context.Context, root string) (result, error) {
	others, current, err := c.otherBranches(ctx, root)
	if err != nil {
		return result{}, err
	}
	if len(others) == 0 {
		c.explain(fmt.Sprintf("'%s' is your only branch, and you can't delete the branch you're on.", current))
		return cancelled(root, "no other branches"), nil
	}

	c.explain(fmt.Sprintf("You're on '%s', so it can't be deleted. Switch away first if you need to.", current))
	target, err := c.pickBranch(others, "Delete which branch?")
	if err != nil || target == "" {
		return cancelled(root, "no branch picked"), err
	}

	sure, err := c.prompt.Confirm(fmt.Sprintf("Delete '%s'?", target))
	if err != nil {
		return result{}, err
	}
	if !sure {
		c.println("  Cancelled.")
		return cancelled(root, "delete declined"), nil
	}

	res, err := c.runGit(ctx, root, "branch", "-d", target)
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		if strings.Contains(res.Stderr, "not fully merged") {
			c.explain(fmt.Sprintf(`'%s' has commits that aren't merged anywhere yet, so Git kept it
to protect that work. Merge it first (option 9). If you really want
to throw the work away, run this yourself:
  git branch -D %s`, target, target))
		}
		return failed(root, "git branch -d failed"), nil
	}
	c.explain(fmt.Sprintf("'%s' is gone. Its commits are still part of any branch they were merged into.", target))
	return succeeded(root, "deleted "+target), nil
}

// pickBranch asks for a branch name and fuzzy-matches it against names.
// An empty target means the learner gave up.
func (c *Coach) pickBranch(names []string, prompt string) (string, error) {
	c.println("  Branches:")
	for _, n := range names {
		c.println("    " + n)
	}
	c.println("")

	query, err := c.prompt.Ask(prompt)
	if err != nil {
		return "", err
	}
	if query == "" {
		c.println("  No branch entered. Cancelled.")
		return "", nil
	}
	target, ok := domain.MatchBranch(query, names)
	if !ok {
		c.explain(fmt.Sprintf("No branch matches '%s'. Check the list above.", query))
		return "", nil
	}
	if target != query {
		c.println(fmt.Sprintf("  Using '%s'.", target))
	}
	return target, nil
}

// otherBranches lists local branches except the current one.
func (c *Coach) otherBranches(ctx context.Context, root string) ([]string, string, error) {
	out, err := c.git.Output(ctx, root, "branch")
	if err != nil {
		return nil, "", fmt.Errorf("failed to list branches: %w", err)
	}
	branches := domain.ParseBranchList(out)
	current := ""
	for _, b := range branches {
		if b.Current {
			current = b.Name
		}
	}
	return domain.BranchNames(branches, false), current, nil
}

func (c *Coach) validBranchName(ctx context.Context, root, name string) (bool, error) {
	if strings.HasPrefix(name, "-") {
		return false, nil
	}
	res, err := c.query(ctx, root, "check-ref-format", "--branch", name)
	if err != nil {
		return false, err
	}
	return res.OK(), nil
}

// hasCommits reports whether HEAD points at a commit.
func (c *Coach) hasCommits(ctx context.Context, root string) (bool, error) {
	if c.repo != nil {
		if info, err := c.repo.Inspect(ctx, root); err == nil {
			return info.HasCommits, nil
		}
	}
	res, err := c.query(ctx, root, "rev-parse", "-q", "--verify", "HEAD")
	if err != nil {
		return false, err
	}
	return res.OK(), nil
}
