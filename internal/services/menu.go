package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
	"go.uber.org/zap"
)

// CheckGit verifies that git can be started and prints install steps when
// it cannot.
func (c *Coach) CheckGit(ctx context.Context) (string, error) {
	version, err := c.git.Version(ctx)
	if err != nil {
		c.explain(`Git is not installed or not found on your system.
You need Git before this tool can do anything.

HOW TO INSTALL:
  1. Go to https://git-scm.com/downloads
  2. Download the installer for your operating system
  3. Run the installer (the default settings are fine)
  4. Close and reopen your terminal
  5. Run this program again`)
		return "", err
	}
	return version, nil
}

// Welcome shows the first-launch introduction to Git, GitHub and the tool.
func (c *Coach) Welcome() error {
	c.prompt.Clear()
	c.println("")
	c.println("  " + c.style.Title("╔══════════════════════════════════╗"))
	c.println("  " + c.style.Title("║       WELCOME TO GIT ONBOARD     ║"))
	c.println("  " + c.style.Title("╚══════════════════════════════════╝"))
	c.explain(`Before we start, let's cover the basics.

── WHAT IS GIT? ──

Git is a version control system. Think of it as an unlimited
'undo history' for your entire project. Every time you save a
snapshot (called a 'commit'), Git remembers exactly what every
file looked like at that moment.

You can go back to any snapshot, see what changed between
them, and never worry about losing your work again.

── WHAT IS GITHUB? ──

GitHub is a website that stores your Git snapshots online.
It's where developers share code, collaborate, and build
portfolios that show off their work to employers.

Git is the tool on your computer. GitHub is the cloud backup.
You use Git locally, then 'push' your work up to GitHub
when you're ready to share it.

── WHAT DOES THIS TOOL DO? ──

Git Onboard walks you through Git step by step. Before every
action, it explains what's about to happen and why. After
every action, it shows you the real Git command that ran.

The goal: you learn Git by using it, not by memorizing
commands. Eventually, you won't need this tool at all.`)

	c.println("  " + c.style.Title("── WORDS YOU'LL SEE ──"))
	c.println("")
	for _, l := range domain.Lessons {
		c.println(fmt.Sprintf("  %s: %s", c.style.Command(l.Term), c.style.Explain(l.Explanation)))
	}
	c.println("")
	return c.prompt.Pause("Press Enter to continue...")
}

// MainMenu loops over the workflows until the learner exits.
func (c *Coach) MainMenu(ctx context.Context) error {
	choices := make([]ports.Choice, 0, len(domain.Menu)+1)
	for i, e := range domain.Menu {
		label := e.Label
		if i == 0 {
			label += " ← start here"
		}
		choices = append(choices, ports.Choice{Label: label, Desc: e.Description})
	}
	choices = append(choices, ports.Choice{Label: "Exit"})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.prompt.Clear()
		c.menuBanner()

		idx, err := c.prompt.Choose("── OPTIONS ──", choices)
		if errors.Is(err, domain.ErrAborted) || (err == nil && idx == len(domain.Menu)) {
			c.println("")
			c.println("  See you next time. Keep committing.")
			c.println("")
			return nil
		}
		if err != nil {
			return err
		}

		c.prompt.Clear()
		runErr := c.Run(ctx, domain.Menu[idx].Workflow)
		switch {
		case errors.Is(runErr, domain.ErrAborted):
			c.println("")
			c.println("  Interrupted. Returning to menu.")
		case runErr != nil:
			c.logger.Error("workflow failed", zap.Error(runErr))
			c.println("")
			c.println("  " + c.style.Error("Something went wrong: "+runErr.Error()))
		}

		// End of input here still returns to the menu, which then exits.
		_ = c.prompt.Pause("Press Enter to return to the menu...")
	}
}

func (c *Coach) menuBanner() {
	c.println("")
	c.println("  " + c.style.Title("╔══════════════════════════════════╗"))
	c.println("  " + c.style.Title("║         GIT ONBOARD              ║"))
	c.println("  " + c.style.Title("║   Your Git learning companion    ║"))
	c.println("  " + c.style.Title("╚══════════════════════════════════╝"))
	c.explain(`── WHAT DO I DO? ──
The options below are listed in the order you'd typically
use them. If this is your first time, start with #1 and
work your way down as you go.`)
	c.println("  " + c.style.Hint("Working in: "+c.workDir))
}
