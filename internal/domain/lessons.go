package domain

// Lesson is one beginner term and its plain-language meaning.
type Lesson struct {
	Term        string
	Explanation string
	// Workflow is the menu item that practises the term, if any.
	Workflow Workflow
}

// Lessons is the glossary shown on the welcome screen and over MCP.
var Lessons = []Lesson{
	{
		Term:        "Working tree",
		Explanation: "The project files on your disk that Git is watching.",
		Workflow:    WorkflowStatus,
	},
	{
		Term:        "Staging area",
		Explanation: "The changes you picked to go into the next snapshot. git add puts them there.",
		Workflow:    WorkflowCommit,
	},
	{
		Term:        "Commit",
		Explanation: "A saved snapshot of your project. It never changes and is named by a hash like 1a2b3c4.",
		Workflow:    WorkflowCommit,
	},
	{
		Term:        "Branch",
		Explanation: "A movable label pointing at a commit, so you can try ideas without touching the main line.",
		Workflow:    WorkflowBranch,
	},
	{
		Term:        "Merge conflict",
		Explanation: "Two branches changed the same lines and Git cannot pick a winner. You edit the file and decide.",
		Workflow:    WorkflowMerge,
	},
	{
		Term:        "Remote",
		Explanation: "A named copy of your repository hosted somewhere else, like GitHub. Push uploads to it.",
		Workflow:    WorkflowPush,
	},
}
