package domain

import (
	"strconv"
	"strings"
)

// StatusEntry is one line of `git status --porcelain` output.
// X is the index (staging area) column, Y the working tree column.
type StatusEntry struct {
	X    byte
	Y    byte
	Path string
}

// unmergedCodes are the XY pairs git uses for paths with unresolved conflicts.
var unmergedCodes = map[string]bool{
	"DD": true,
	"AU": true,
	"UD": true,
	"UA": true,
	"DU": true,
	"AA": true,
	"UU": true,
}

// Code returns the two-character XY prefix.
func (e StatusEntry) Code() string {
	return string([]byte{e.X, e.Y})
}

// Untracked reports a file git has never seen.
func (e StatusEntry) Untracked() bool {
	return e.X == '?'
}

// Modified reports a file changed in the working tree but not staged.
func (e StatusEntry) Modified() bool {
	return e.Y == 'M'
}

// Staged reports a change that is in the staging area.
func (e StatusEntry) Staged() bool {
	if e.Conflicted() {
		return false
	}
	return strings.IndexByte("MADRC", e.X) >= 0
}

// Conflicted reports a path left unmerged by a merge.
func (e StatusEntry) Conflicted() bool {
	return unmergedCodes[e.Code()]
}

// ParsePorcelainLine parses a single porcelain v1 line. Lines shorter than
// the XY prefix are rejected.
func ParsePorcelainLine(line string) (StatusEntry, bool) {
	line = strings.TrimRight(line, "\r")
	if len(line) < 2 {
		return StatusEntry{}, false
	}
	e := StatusEntry{X: line[0], Y: line[1]}
	if len(line) > 3 {
		e.Path = line[3:]
	}
	// Renames and copies are reported as "old -> new".
	if idx := strings.Index(e.Path, " -> "); idx >= 0 {
		e.Path = e.Path[idx+len(" -> "):]
	}
	e.Path = unquotePath(e.Path)
	return e, true
}

// unquotePath decodes the C-style quoting git applies to paths with
// spaces, control characters or non-ASCII bytes ("caf\303\251.txt").
func unquotePath(p string) string {
	if len(p) < 2 || p[0] != '"' || p[len(p)-1] != '"' {
		return p
	}
	if s, err := strconv.Unquote(p); err == nil {
		return s
	}
	return p[1 : len(p)-1]
}

// StatusSummary groups porcelain entries by what they mean to a beginner.
type StatusSummary struct {
	Entries    []StatusEntry
	Untracked  []string
	Modified   []string
	Staged     []string
	Conflicted []string
}

// ParsePorcelain classifies the full output of `git status --porcelain`.
func ParsePorcelain(output string) StatusSummary {
	var s StatusSummary
	for _, line := range strings.Split(output, "\n") {
		e, ok := ParsePorcelainLine(line)
		if !ok {
			continue
		}
		s.Entries = append(s.Entries, e)
		switch {
		case e.Conflicted():
			s.Conflicted = append(s.Conflicted, e.Path)
			continue
		case e.Untracked():
			s.Untracked = append(s.Untracked, e.Path)
			continue
		}
		if e.Staged() {
			s.Staged = append(s.Staged, e.Path)
		}
		if e.Modified() {
			s.Modified = append(s.Modified, e.Path)
		}
	}
	return s
}

// Clean reports an empty porcelain output.
func (s StatusSummary) Clean() bool {
	return len(s.Entries) == 0
}

// HasTrackedChanges reports any entry other than an untracked file.
// Untracked files never block a merge, tracked changes may.
func (s StatusSummary) HasTrackedChanges() bool {
	for _, e := range s.Entries {
		if !e.Untracked() {
			return true
		}
	}
	return false
}

// Explain returns one plain-language sentence per category present.
func (s StatusSummary) Explain() []string {
	var out []string
	if len(s.Untracked) > 0 {
		out = append(out, "Files listed as 'Untracked' are new files Git can see but hasn't saved yet.")
	}
	if len(s.Modified) > 0 {
		out = append(out, "Files listed as 'Modified' have been edited since your last save point but haven't been staged yet.")
	}
	if len(s.Staged) > 0 {
		out = append(out, "Files listed as 'Staged' are ready to be committed (saved).")
	}
	if len(s.Conflicted) > 0 {
		out = append(out, "Files listed as 'both modified' (or similar) have merge conflicts you need to fix by hand. Use the Merge option to walk through it.")
	}
	return out
}
