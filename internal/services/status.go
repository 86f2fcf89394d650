package services

import (
	"context"

	"github.com/xvierd/git-onboard/internal/domain"
)

func (c *Coach) status(ctx context.Context) (result, error) {
	err := c.intro("Check Repository Status", `WHAT THIS DOES:
  'git status' shows you what's changed since your last commit (save point).

  You'll see files in three categories:
    - Staged:     Ready to be committed (in the box, ready to ship)
    - Modified:   Changed but not staged yet (you edited it but haven't
                  put it in the box)
    - Untracked:  Brand new files Git hasn't seen before`)
	if err != nil {
		return result{}, err
	}

	root, err := c.requireRepo(ctx)
	if err != nil {
		return notRepo(err)
	}

	res, err := c.runGit(ctx, root, "status")
	if err != nil {
		return result{}, err
	}
	if !res.OK() {
		return failed(root, "git status failed"), nil
	}

	summary, err := c.porcelain(ctx, root)
	if err != nil {
		return result{}, err
	}
	c.explainStatus(summary)
	return succeeded(root, ""), nil
}

// explainStatus prints the meaning of a classified porcelain listing and
// what to do next.
func (c *Coach) explainStatus(s domain.StatusSummary) {
	if s.Clean() {
		c.explain(`WHAT THIS MEANS:
  Everything is clean. All your files match your last save point.
  There's nothing new to commit right now.`)
		return
	}

	c.heading("WHAT THIS MEANS:")
	c.println("")
	for _, sentence := range s.Explain() {
		c.println("  - " + c.style.Explain(sentence))
	}

	if len(s.Conflicted) > 0 {
		c.explain(`WHAT TO DO NEXT:
  Finish the merge first. Use the Merge option from the main menu
  and pick "check again" once you've fixed the conflicted files.`)
		return
	}
	c.explain(`WHAT TO DO NEXT:
  To save these changes, use option 3 (Stage and commit) from the
  main menu. That will lock them into a snapshot on your machine.
  Then use option 4 (Create a README) to build your project's front
  page, and option 5 (Push to GitHub) to upload everything.`)
}
