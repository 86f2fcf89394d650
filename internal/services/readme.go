package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xvierd/git-onboard/internal/domain"
)

func (c *Coach) readme(ctx context.Context) (result, error) {
	err := c.intro("Create a README", `WHAT THIS DOES:
  The README.md is the front page of your project on GitHub.
  It's the first thing recruiters, hiring managers, and other
  developers see when they visit your repo.

  This walks you through creating one that tells the STORY
  of your project: not just what it does, but what problem
  it solves and what impact it had.

  Format: Markdown (.md), a simple text formatting language
  that GitHub renders into nice-looking pages.`)
	if err != nil {
		return result{}, err
	}

	root, err := c.requireRepo(ctx)
	if err != nil {
		return notRepo(err)
	}

	target := filepath.Join(root, "README.md")
	if _, err := os.Stat(target); err == nil {
		overwrite, err := c.prompt.Confirm("README.md already exists. Replace it?")
		if err != nil {
			return result{}, err
		}
		if !overwrite {
			c.println("  Cancelled. Nothing was written.")
			return cancelled(root, "kept existing README"), nil
		}
	}

	c.println("  Answer the following prompts. Press Enter to skip any section.")
	c.println("")

	var a domain.ReadmeAnswers
	questions := []struct {
		prompt string
		dst    *string
	}{
		{"Project name:", &a.ProjectName},
		{"One-line description:", &a.Tagline},
		{"The Problem: what inefficiency/gap/need existed?", &a.Problem},
		{"The Solution: what does this tool/project do?", &a.Solution},
		{"How It Works: high-level architecture (2-3 sentences):", &a.HowItWorks},
		{"Results: measurable impact (hours saved, $ saved, etc.):", &a.Results},
		{"Tech Stack: languages, libraries, APIs:", &a.TechStack},
		{"Status (Active / Complete / In Progress):", &a.Status},
	}
	for _, q := range questions {
		answer, err := c.prompt.Ask(q.prompt)
		if err != nil {
			return result{}, err
		}
		*q.dst = answer
	}

	content := a.Render()

	c.println("")
	c.println("  --- README Preview ---")
	c.println("")
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		c.println("    " + line)
	}
	c.println("")

	write, err := c.prompt.Confirm("Write this to README.md?")
	if err != nil {
		return result{}, err
	}
	if !write {
		c.println("  Cancelled. Nothing was written.")
		return cancelled(root, "not written"), nil
	}

	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		c.explain(fmt.Sprintf("Could not write %s: %v", target, err))
		return failed(root, "write failed"), nil
	}

	c.explain("README.md created at: " + target)
	c.printRoadmap(ctx, root, domain.WorkflowReadme)
	c.explain(`BEFORE YOU PUSH: Go back to option 3 (Stage and commit) to save
the README into your repo history. Then use option 5 to push.`)
	return succeeded(root, ""), nil
}
