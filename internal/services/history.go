package services

import (
	"context"
	"fmt"
	"strconv"
)

func (c *Coach) history(ctx context.Context) (result, error) {
	err := c.intro("View Commit History", `WHAT THIS DOES:
  'git log' shows your past commits (save points) in reverse order,
  newest first. Each entry shows:
    - A unique ID (hash), Git's fingerprint for that save
    - The commit message

  Think of it as a timeline of every save you've ever made.`)
	if err != nil {
		return result{}, err
	}

	root, err := c.requireRepo(ctx)
	if err != nil {
		return notRepo(err)
	}

	probe, err := c.query(ctx, root, "log", "--oneline", "-1")
	if err != nil {
		return result{}, err
	}
	if !probe.OK() {
		c.explain("No commits yet. Make your first commit using 'Stage and commit changes.'")
		return cancelled(root, "no commits"), nil
	}

	limit := c.settings.LogLimit
	c.explain(fmt.Sprintf("Showing recent commits (last %d):", limit))
	res, err := c.runGit(ctx, root, "log", "--oneline", "--graph", "-"+strconv.Itoa(limit))
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		return failed(root, "git log failed"), nil
	}
	return succeeded(root, ""), nil
}
