package domain

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Branch is a local branch as listed by `git branch`.
type Branch struct {
	Name    string
	Current bool
}

// ParseBranchList parses the output of `git branch`. Detached HEAD lines
// such as "* (HEAD detached at 1a2b3c4)" are skipped.
func ParseBranchList(output string) []Branch {
	var branches []Branch
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		current := strings.HasPrefix(line, "*")
		name := strings.TrimSpace(strings.TrimLeft(line, "*+ "))
		if strings.HasPrefix(name, "(") {
			continue
		}
		branches = append(branches, Branch{Name: name, Current: current})
	}
	return branches
}

// BranchNames returns the names of branches, optionally excluding the
// current one.
func BranchNames(branches []Branch, includeCurrent bool) []string {
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		if b.Current && !includeCurrent {
			continue
		}
		names = append(names, b.Name)
	}
	return names
}

// MatchBranch resolves what the learner typed to an existing branch name.
// An exact match wins; otherwise the best fuzzy match is returned. ok is
// false when nothing matches.
func MatchBranch(query string, names []string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	for _, n := range names {
		if n == query {
			return n, true
		}
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
