package domain

import (
	"reflect"
	"testing"
)

func TestParsePorcelainLine(t *testing.T) {
	tests := []struct {
		line       string
		wantOK     bool
		wantPath   string
		untracked  bool
		modified   bool
		staged     bool
		conflicted bool
	}{
		{line: "?? notes.txt", wantOK: true, wantPath: "notes.txt", untracked: true},
		{line: " M main.go", wantOK: true, wantPath: "main.go", modified: true},
		{line: "M  main.go", wantOK: true, wantPath: "main.go", staged: true},
		{line: "MM main.go", wantOK: true, wantPath: "main.go", staged: true, modified: true},
		{line: "A  new.go", wantOK: true, wantPath: "new.go", staged: true},
		{line: "D  gone.go", wantOK: true, wantPath: "gone.go", staged: true},
		{line: "R  old.go -> new.go", wantOK: true, wantPath: "new.go", staged: true},
		{line: "UU story.txt", wantOK: true, wantPath: "story.txt", conflicted: true},
		{line: "AA both.txt", wantOK: true, wantPath: "both.txt", conflicted: true},
		{line: "DU deleted-by-us.txt", wantOK: true, wantPath: "deleted-by-us.txt", conflicted: true},
		{line: `?? "with space.txt"`, wantOK: true, wantPath: "with space.txt", untracked: true},
		{line: `UU "caf\303\251.txt"`, wantOK: true, wantPath: "café.txt", conflicted: true},
		{line: `?? "tab\there.txt"`, wantOK: true, wantPath: "tab\there.txt", untracked: true},
		{line: `R  "old name.go" -> "new name.go"`, wantOK: true, wantPath: "new name.go", staged: true},
		{line: "M", wantOK: false},
		{line: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			e, ok := ParsePorcelainLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParsePorcelainLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if e.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", e.Path, tt.wantPath)
			}
			if e.Untracked() != tt.untracked {
				t.Errorf("Untracked() = %v, want %v", e.Untracked(), tt.untracked)
			}
			if e.Modified() != tt.modified {
				t.Errorf("Modified() = %v, want %v", e.Modified(), tt.modified)
			}
			if e.Staged() != tt.staged {
				t.Errorf("Staged() = %v, want %v", e.Staged(), tt.staged)
			}
			if e.Conflicted() != tt.conflicted {
				t.Errorf("Conflicted() = %v, want %v", e.Conflicted(), tt.conflicted)
			}
		})
	}
}

func TestParsePorcelain(t *testing.T) {
	out := "?? a.txt\n M b.txt\nM  c.txt\nUU d.txt\n"
	s := ParsePorcelain(out)

	if s.Clean() {
		t.Fatal("Clean() = true for non-empty output")
	}
	if !reflect.DeepEqual(s.Untracked, []string{"a.txt"}) {
		t.Errorf("Untracked = %v", s.Untracked)
	}
	if !reflect.DeepEqual(s.Modified, []string{"b.txt"}) {
		t.Errorf("Modified = %v", s.Modified)
	}
	if !reflect.DeepEqual(s.Staged, []string{"c.txt"}) {
		t.Errorf("Staged = %v", s.Staged)
	}
	if !reflect.DeepEqual(s.Conflicted, []string{"d.txt"}) {
		t.Errorf("Conflicted = %v", s.Conflicted)
	}
	if got := len(s.Explain()); got != 4 {
		t.Errorf("Explain() returned %d sentences, want 4", got)
	}
}

func TestParsePorcelain_Clean(t *testing.T) {
	s := ParsePorcelain("")
	if !s.Clean() {
		t.Error("empty output should be clean")
	}
	if s.HasTrackedChanges() {
		t.Error("empty output has no tracked changes")
	}
	if len(s.Explain()) != 0 {
		t.Error("clean status needs no explanation")
	}
}

func TestStatusSummary_HasTrackedChanges(t *testing.T) {
	if ParsePorcelain("?? only-new.txt").HasTrackedChanges() {
		t.Error("untracked files alone are not tracked changes")
	}
	if !ParsePorcelain("?? new.txt\n M edited.txt").HasTrackedChanges() {
		t.Error("a modified file is a tracked change")
	}
}
