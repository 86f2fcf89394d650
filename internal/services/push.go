package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xvierd/git-onboard/internal/domain"
)

func (c *Coach) push(ctx context.Context) (result, error) {
	err := c.intro("Push to GitHub", `WHAT THIS DOES:
  Right now, your project and its save history only exist on your
  computer. If your hard drive dies, it's gone.

  'git push' uploads your local commits (save points) to GitHub,
  which stores a copy of your project online. This does two things:
    1. Backs up your work to the cloud
    2. Makes it visible on your GitHub profile (so employers,
       collaborators, or anyone else can see it)

  Think of it as syncing your local saves to an online backup.`)
	if err != nil {
		return result{}, err
	}

	root, err := c.requireRepo(ctx)
	if err != nil {
		return notRepo(err)
	}

	c.explain(`Before we push, you need a GitHub account. If you already
have one, skip ahead. If not, let's set one up now.`)
	choice, err := c.choose("Do you have a GitHub account?",
		"I already have a GitHub account",
		"I need to create one",
		"Return to main menu",
	)
	if err != nil {
		return result{}, err
	}
	switch choice {
	case 1:
		c.prompt.Clear()
		c.heading("--- Setting Up a GitHub Account ---")
		c.explain(signUpSteps)
		if err := c.prompt.Pause("Press Enter when your GitHub account is ready..."); err != nil {
			return result{}, err
		}
		c.prompt.Clear()
	case 2:
		c.println("  Cancelled.")
		return cancelled(root, "no account"), nil
	}

	remote := c.settings.RemoteName
	remotes, err := c.git.Output(ctx, root, "remote", "-v")
	if err != nil {
		return result{}, fmt.Errorf("failed to list remotes: %w", err)
	}

	if remotes == "" {
		c.heading("--- Push: Step 1 of 2, CONNECT TO GITHUB ---")
		c.explain(fmt.Sprintf(connectSteps, remote))

		url, err := c.prompt.Ask("Enter the GitHub repo URL (or press Enter to cancel):")
		if err != nil {
			return result{}, err
		}
		if url == "" {
			c.println("  Cancelled.")
			return cancelled(root, "no remote url"), nil
		}
		if err := c.prompt.Pause("Press Enter to continue..."); err != nil {
			return result{}, err
		}
		c.prompt.Clear()

		c.heading("--- Push: Step 2 of 2, LINKING AND UPLOADING ---")
		c.explain(`Now we'll do two things:
  1. Tell your local repo where to upload (linking the remote)
  2. Push your commits up to GitHub

Linking to GitHub:`)
		res, err := c.runGit(ctx, root, "remote", "add", remote, url)
		if err != nil {
			return result{}, err
		}
		if !res.OK() {
			c.explain("Failed to add remote. Check the URL and try again.")
			return failed(root, "git remote add failed"), nil
		}
	} else {
		c.heading("--- Pushing to GitHub ---")
		c.explain("Remote is already connected:")
		for _, line := range strings.Split(remotes, "\n") {
			c.println("  " + line)
		}
		c.println("")
	}

	branch, err := c.git.Output(ctx, root, "branch", "--show-current")
	if err != nil || branch == "" {
		branch = c.settings.DefaultBranch
	}

	c.explain(fmt.Sprintf("Uploading your commits to GitHub (branch: %s):", branch))
	res, err := c.runGit(ctx, root, "push", "-u", remote, branch)
	if err != nil {
		return result{}, err
	}

	if res.OK() {
		c.notify("Push finished", fmt.Sprintf("%s is now on GitHub.", branch))
		c.explain(`Done! Your code is now live on GitHub.

WHAT JUST HAPPENED:
  Your local commits have been uploaded to your GitHub repo.
  Anyone with the link can now see your project, your code,
  and your README.`)
		c.printRoadmap(ctx, root, domain.WorkflowPush)
		c.explain(`You're all set. From now on, whenever you make changes:
just repeat steps 2, 3, and 5 (status, commit, push).

EXTRA TOOLS (explore these when you need them):
  Option 6. View commit history: look back at past saves
  Option 7. Clone a repo: download someone else's project
  Option 8. Work with branches: try ideas on a separate line
  Option 9. Merge a branch: bring that work back`)
		return succeeded(root, ""), nil
	}

	kind := domain.ClassifyPushFailure(res.Stderr)
	c.notify("Push failed", kind.String())
	c.explain(PushAdvice(kind, res.Stderr, remote, branch))
	return failed(root, kind.String()), nil
}

// PushAdvice explains a failed push to a beginner.
func PushAdvice(kind domain.PushFailure, stderr, remote, branch string) string {
	switch kind {
	case domain.PushNothingCommitted:
		return `Push failed because there's nothing to push yet. You
haven't made any commits (save points) in this repo.

WHAT TO DO:
  Go back to the main menu and use option 3 (Stage and commit)
  to save your files first. Then come back here and push again.`
	case domain.PushRejected:
		return `Push was rejected. This usually means GitHub has files that
your local repo doesn't know about. The most common cause:
you checked 'Add a README' when creating the repo on GitHub.

QUICKEST FIX:
  1. Go to your repo page on GitHub
  2. Click Settings (tab at the top), then scroll to the bottom
  3. Delete the repository
  4. Recreate it at github.com/new. This time DON'T check
     any of the boxes under 'Initialize this repository'
  5. Come back here and try Push again`
	case domain.PushAuthentication:
		return fmt.Sprintf(`Push failed. This is most likely an authentication issue.
GitHub needs to know who you are before it lets you upload.

WHAT TO DO:
  A browser window may have opened asking you to sign in to
  GitHub. Follow the prompts to log in with your GitHub
  account.

  If no window opened, you may need to set up authentication
  manually:
    1. Open a regular terminal (not this tool)
    2. Use 'cd' to navigate to your project folder first
    3. Type: git push -u %s %s
    4. A login prompt or browser window should appear
    5. Sign in with your GitHub credentials
    6. Come back here. Future pushes should work automatically`, remote, branch)
	default:
		if stderr == "" {
			stderr = "No error details available."
		}
		return fmt.Sprintf(`Push failed with an unexpected error. Here's what Git said:

  %s

If you're not sure what this means, try these steps:
  1. Go back to the main menu
  2. Use option 2 (Check status) to see your repo's state
  3. Make sure you've committed (option 3) before pushing
  4. Try pushing again`, stderr)
	}
}

const signUpSteps = `GitHub is free. Here's how to create an account:

  1. Open your browser and go to: github.com
  2. Click the "Sign up" button (top right)
  3. Enter your email address and create a password
  4. Choose a username. This will be your public identity
     (tip: keep it professional. Employers will see this.
     Something like your name or initials works well.)
  5. Complete the verification steps (CAPTCHA, email confirm)
  6. When asked about preferences, you can skip the
     personalization. It doesn't affect anything

Once your account is created and you're signed in,
come back here and press Enter to continue.`

const connectSteps = `Your local repo doesn't know where to upload to yet. You need
to create a repo on GitHub and then tell your local repo:
"when I say push, send it HERE."

That connection is called a 'remote'. We'll name this one '%s',
the name Git uses by default. Think of it as 'the original place
this uploads to.' You only set this up once per project.

HERE'S WHAT TO DO:
  1. Open your browser and go to: github.com/new
     (you must already be signed into GitHub for this to work)
  2. Under "Repository name", type the name of your project
     (tip: match your folder name to keep things clean)
  3. Leave it set to "Public" (so employers can see your work)
  4. DO NOT check any boxes under "Initialize this repository"
     (no README, no .gitignore, no license; we handle that)
  5. Click the green "Create repository" button
  6. You'll see a setup page. Look for a URL near the top
     that looks like: https://github.com/yourname/your-repo.git
  7. Copy that URL and paste it below`
