package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xvierd/git-onboard/internal/domain"
)

func (c *Coach) initRepo(ctx context.Context) (result, error) {
	err := c.intro("Initialize a New Repository", `WHAT THIS DOES:
  'git init' creates a hidden .git folder in a project directory.
  (A "project directory" is just a regular folder on your computer,
  wherever your project files live. "Hidden" means your operating
  system doesn't show it by default, but it's still there.)

  That .git folder is where Git stores all your version history.
  Every save point (commit) you'll ever make lives in there. You
  never need to open or edit it directly. Git manages it for you.

  Think of it as telling Git: "Start watching this folder."

  Nothing gets uploaded anywhere. This is purely local, just Git
  setting up its tracking system on your machine.`)
	if err != nil {
		return result{}, err
	}

	c.println("  Enter the path to your project folder")
	c.println("  (the folder with the files you want to track)")
	raw, err := c.prompt.Ask("Press Enter to use the current directory:")
	if err != nil {
		return result{}, err
	}
	path, err := c.resolvePath(raw)
	if err != nil {
		return result{}, err
	}

	if domain.IsProtectedPath(path, c.settings.ProtectedPaths) {
		c.explain(fmt.Sprintf(`That path looks like a system folder:
  %s

You can't (and shouldn't) init a Git repo in a system directory.
You need to point this at YOUR project folder, for example:
  %s

Go back and enter the path to where your actual project files live.`, path, examplePath()))
		return failed(path, "protected path"), nil
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		create, err := c.prompt.Confirm(fmt.Sprintf("'%s' doesn't exist. Create it?", path))
		if err != nil {
			return result{}, err
		}
		if !create {
			c.println("  Cancelled.")
			return cancelled(path, "folder not created"), nil
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			c.explain(fmt.Sprintf("Could not create %s:\n  %v", path, err))
			return failed(path, "mkdir failed"), nil
		}
		c.println("  Created: " + path)
	case err != nil:
		return result{}, fmt.Errorf("failed to check %s: %w", path, err)
	case !info.IsDir():
		c.explain(fmt.Sprintf("%s is a file, not a folder. Point this at the folder that holds your project.", path))
		return failed(path, "not a directory"), nil
	}

	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		c.explain("This folder is already a Git repo. No need to init again.\n  Path: " + path)
		return cancelled(path, "already a repository"), nil
	}

	res, err := c.runGit(ctx, path, "init")
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		c.explain(fmt.Sprintf(`Git init failed for: %s

  This usually means you don't have permission to create files in
  that folder. Make sure the path points to a folder YOU created,
  for example:
    %s

  Try again with the correct path to your project folder.`, path, examplePath()))
		return failed(path, "git init failed"), nil
	}

	if err := c.offerGitignore(path); err != nil {
		return result{}, err
	}

	c.explain(fmt.Sprintf(`Done! Git is now tracking: %s

WHAT JUST HAPPENED:
  Git is watching this folder now, but ONLY on your machine.
  Nothing has been uploaded. GitHub doesn't know about this yet.`, path))
	c.printRoadmap(ctx, path, domain.WorkflowInit)

	if path != c.workDir {
		c.workDir = path
		c.println("  The next steps will work in " + path + ".")
	}
	return succeeded(path, ""), nil
}

// offerGitignore writes the default .gitignore when the learner agrees.
func (c *Coach) offerGitignore(root string) error {
	target := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	c.explain(`One more thing: a .gitignore file tells Git which files to
IGNORE (not track). Without one, Git will try to save everything
in this folder, including junk files like:
  - __pycache__/  (Python's auto-generated cache files)
  - .env          (secret keys and passwords)
  - node_modules/ (thousands of dependency files)

These clutter your repo and can even leak sensitive info.`)

	ok, err := c.prompt.Confirm("Create a .gitignore with common defaults?")
	if err != nil || !ok {
		return err
	}
	if err := os.WriteFile(target, []byte(domain.DefaultGitignore), 0644); err != nil {
		c.explain(fmt.Sprintf("Could not write %s: %v", target, err))
		return nil
	}
	c.println("  Created: " + target)
	return nil
}

// resolvePath makes raw absolute relative to the working directory.
// Empty input means the working directory itself.
func (c *Coach) resolvePath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.workDir, nil
	}
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
	}
	if !filepath.IsAbs(raw) {
		raw = filepath.Join(c.workDir, raw)
	}
	return filepath.Clean(raw), nil
}

// examplePath suggests a sensible project location for the host OS.
func examplePath() string {
	if filepath.Separator == '\\' {
		return `C:\Users\YourName\repos\my-project`
	}
	return "~/repos/my-project"
}
