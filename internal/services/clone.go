package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xvierd/git-onboard/internal/domain"
)

func (c *Coach) clone(ctx context.Context) (result, error) {
	err := c.intro("Clone a Repository", `WHAT THIS DOES:
  'git clone' downloads a complete copy of a repository from GitHub
  (or any Git host) to your machine. You get all the files AND the
  full version history.

  This is how you grab someone else's project, or pull down your
  own repo onto a new machine.`)
	if err != nil {
		return result{}, err
	}

	url, err := c.prompt.Ask("Enter the repo URL to clone:")
	if err != nil {
		return result{}, err
	}
	if url == "" {
		c.println("  No URL entered. Cancelled.")
		return cancelled("", "no url"), nil
	}

	dest, err := c.prompt.Ask("Clone into which folder? (press Enter for the default):")
	if err != nil {
		return result{}, err
	}

	args := []string{"clone", url}
	target := filepath.Join(c.workDir, domain.CloneDir(url))
	if dest != "" {
		args = append(args, dest)
		if target, err = c.resolvePath(dest); err != nil {
			return result{}, err
		}
		c.explain(fmt.Sprintf("Cloning into '%s':", dest))
	} else {
		c.explain("Cloning:")
	}

	res, err := c.runGit(ctx, c.workDir, args...)
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		c.explain(`The clone didn't work. The most common causes:
  - A typo in the URL (copy it from the green "Code" button on GitHub)
  - The repository is private and you aren't signed in
  - The destination folder already exists and isn't empty`)
		c.notify("Clone failed", url)
		return failed("", "git clone failed"), nil
	}

	c.notify("Clone finished", "Downloaded to "+target)
	c.explain(fmt.Sprintf(`You now have a full copy of the repo in:
  %s

Use your terminal to navigate into the new folder to start working with it.`, target))

	if target != c.workDir {
		move, err := c.prompt.Confirm("Work in the cloned folder for the rest of this session?")
		if err != nil {
			return result{}, err
		}
		if move {
			c.workDir = target
		}
	}
	return succeeded(target, ""), nil
}
