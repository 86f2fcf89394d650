package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyPushFailure(t *testing.T) {
	tests := []struct {
		stderr string
		want   PushFailure
	}{
		{"error: src refspec main does not match any\nerror: failed to push some refs", PushNothingCommitted},
		{" ! [rejected]        main -> main (fetch first)", PushRejected},
		{"remote: Invalid username or password.\nfatal: Authentication failed for 'https://github.com/x/y.git/'", PushAuthentication},
		{"fatal: could not read Username for 'https://github.com': terminal prompts disabled", PushAuthentication},
		{"fatal: unable to access 'https://github.com/x/y.git/': Could not resolve host: github.com", PushUnknown},
		{"", PushUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := ClassifyPushFailure(tt.stderr); got != tt.want {
				t.Errorf("ClassifyPushFailure(%q) = %v, want %v", tt.stderr, got, tt.want)
			}
		})
	}
}

func TestIsProtectedPath(t *testing.T) {
	protected := []string{
		`C:\Windows\System32`,
		`C:\Program Files\SomeApp`,
		`C:\Program Files (x86)\SomeApp`,
		`C:\Users\Someone\AppData\Local`,
		"/",
		"/etc",
		"/usr/local/bin",
		"/System/Library",
	}
	for _, p := range protected {
		if !IsProtectedPath(p, nil) {
			t.Errorf("IsProtectedPath(%q) = false, want true", p)
		}
	}

	allowed := []string{
		`C:\Users\Dev\repos\my-project`,
		`C:\Projects\website`,
		`D:\code\app`,
		"/home/dev/repos/my-project",
		"/Users/dev/code/usr-tools",
		"/tmp/scratch",
	}
	for _, p := range allowed {
		if IsProtectedPath(p, nil) {
			t.Errorf("IsProtectedPath(%q) = true, want false", p)
		}
	}
}

func TestIsProtectedPath_CustomFragments(t *testing.T) {
	if !IsProtectedPath(`D:\Work\secret`, []string{`\secret`}) {
		t.Error("custom fragment should be honoured")
	}
	if IsProtectedPath(`C:\Windows`, []string{`\secret`}) {
		t.Error("custom fragments replace the defaults")
	}
}

func TestDefaultGitignore(t *testing.T) {
	for _, want := range []string{"__pycache__/", ".env", ".vscode/", ".DS_Store", "node_modules/"} {
		if !strings.Contains(DefaultGitignore, want) {
			t.Errorf("DefaultGitignore missing %q", want)
		}
	}
}

func TestReadmeAnswers_Render(t *testing.T) {
	t.Run("empty answers", func(t *testing.T) {
		got := ReadmeAnswers{}.Render()
		if got != "# Project Name\n" {
			t.Errorf("Render() = %q", got)
		}
	})

	t.Run("some sections", func(t *testing.T) {
		got := ReadmeAnswers{
			ProjectName: "Onboard",
			Tagline:     "Learn git by doing",
			Problem:     "git is scary",
			TechStack:   "Go",
		}.Render()
		want := "# Onboard\n\nLearn git by doing\n\n## The Problem\n\ngit is scary\n\n## Tech Stack\n\nGo\n"
		if got != want {
			t.Errorf("Render() =\n%s\nwant\n%s", got, want)
		}
		if strings.Contains(got, "## Results") {
			t.Error("skipped section should not be rendered")
		}
	})
}

func TestParseBranchList(t *testing.T) {
	out := "  feature\n* main\n  (HEAD detached at 1a2b3c)\n+ worktree-branch\n"
	branches := ParseBranchList(out)
	if len(branches) != 3 {
		t.Fatalf("got %d branches, want 3: %v", len(branches), branches)
	}
	if branches[1].Name != "main" || !branches[1].Current {
		t.Errorf("branches[1] = %+v, want current main", branches[1])
	}
	if names := BranchNames(branches, false); len(names) != 2 {
		t.Errorf("BranchNames without current = %v", names)
	}
}

func TestMatchBranch(t *testing.T) {
	names := []string{"main", "feature/login", "bugfix-header"}

	tests := []struct {
		query  string
		want   string
		wantOK bool
	}{
		{"main", "main", true},
		{"login", "feature/login", true},
		{"bfh", "bugfix-header", true},
		{"zzz", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := MatchBranch(tt.query, names)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("MatchBranch(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBuildRoadmap(t *testing.T) {
	p := BuildRoadmap(map[Workflow]bool{WorkflowInit: true, WorkflowStatus: true})
	want := []StepState{StepDone, StepDone, StepNext, StepPending, StepPending}
	for i, s := range want {
		if p.States[i] != s {
			t.Errorf("step %d state = %v, want %v", i, p.States[i], s)
		}
	}
	if p.Complete() {
		t.Error("roadmap should not be complete")
	}

	all := map[Workflow]bool{}
	for _, s := range Roadmap {
		all[s.Workflow] = true
	}
	if !BuildRoadmap(all).Complete() {
		t.Error("roadmap with every step done should be complete")
	}
}

func TestParseWorkflow(t *testing.T) {
	w, err := ParseWorkflow("merge")
	if err != nil || w != WorkflowMerge {
		t.Errorf("ParseWorkflow(merge) = %v, %v", w, err)
	}
	if _, err := ParseWorkflow("rebase"); !errors.Is(err, ErrUnknownFlow) {
		t.Errorf("ParseWorkflow(rebase) error = %v, want ErrUnknownFlow", err)
	}
}

func TestFormatCommand(t *testing.T) {
	got := FormatCommand("git", []string{"commit", "-m", "Add login page"})
	if got != `git commit -m "Add login page"` {
		t.Errorf("FormatCommand() = %s", got)
	}
}

func TestWorkflowRun_Finish(t *testing.T) {
	run := NewWorkflowRun(WorkflowCommit, "/tmp/repo")
	if run.Finished() {
		t.Fatal("new run should not be finished")
	}
	if !ValidID(run.ID) {
		t.Errorf("run ID %q is not a valid id", run.ID)
	}
	run.Finish(OutcomeSucceeded, "")
	if !run.Finished() || run.Outcome != OutcomeSucceeded {
		t.Errorf("Finish() did not record outcome: %+v", run)
	}
}
