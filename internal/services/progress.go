package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xvierd/git-onboard/internal/domain"
)

// PrintProgress shows the roadmap for the repository in the working
// directory.
func (c *Coach) PrintProgress(ctx context.Context) error {
	root, err := c.requireRepo(ctx)
	if errors.Is(err, domain.ErrNotRepository) {
		return nil
	}
	if err != nil {
		return err
	}

	c.heading("Progress for " + root)
	c.println("")
	c.printRoadmap(ctx, root, "")

	progress, err := c.Roadmap(ctx, root)
	if err != nil {
		return err
	}
	if progress.Complete() {
		c.println("  " + c.style.Success("Every step is done. Keep repeating status, commit, push."))
		c.println("")
	}
	return nil
}

// PrintHistory lists the newest git commands ran for the learner.
func (c *Coach) PrintHistory(ctx context.Context, limit int) error {
	if c.storage == nil {
		c.explain("No history is kept in this session.")
		return nil
	}
	cmds, err := c.storage.Commands().FindRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(cmds) == 0 {
		c.explain("No commands yet. Pick something from the menu and they'll show up here.")
		return nil
	}

	c.heading("Commands ran for you (newest first)")
	c.println("")
	for _, cmd := range cmds {
		status := c.style.Success("ok")
		if cmd.ExitCode != 0 {
			status = c.style.Error(fmt.Sprintf("exit %d", cmd.ExitCode))
		}
		c.println(fmt.Sprintf("  %s  %-8s %s", cmd.RanAt.Format("2006-01-02 15:04"), status, c.style.Command(cmd.CommandLine())))
		if cmd.Dir != "" {
			c.println("                    " + c.style.Hint("in "+cmd.Dir))
		}
	}
	c.println("")
	return nil
}
