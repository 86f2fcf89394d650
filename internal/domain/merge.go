package domain

import (
	"bufio"
	"io"
	"strings"
)

// MergeOutcome is what a `git merge` invocation turned out to do.
type MergeOutcome int

const (
	MergeFailed MergeOutcome = iota
	MergeUpToDate
	MergeFastForward
	MergeCommitted
	MergeConflict
)

// String returns a short label for logs and records.
func (o MergeOutcome) String() string {
	switch o {
	case MergeUpToDate:
		return "up_to_date"
	case MergeFastForward:
		return "fast_forward"
	case MergeCommitted:
		return "merge_commit"
	case MergeConflict:
		return "conflict"
	default:
		return "failed"
	}
}

// ClassifyMerge interprets the exit status and output of `git merge`.
func ClassifyMerge(success bool, stdout, stderr string) MergeOutcome {
	combined := stdout + "\n" + stderr
	if strings.Contains(combined, "CONFLICT") || strings.Contains(combined, "Automatic merge failed") {
		return MergeConflict
	}
	if !success {
		return MergeFailed
	}
	lower := strings.ToLower(combined)
	switch {
	case strings.Contains(lower, "already up to date"), strings.Contains(lower, "already up-to-date"):
		return MergeUpToDate
	case strings.Contains(combined, "Fast-forward"):
		return MergeFastForward
	default:
		return MergeCommitted
	}
}

// Conflict marker prefixes git writes into a conflicted file.
const (
	MarkerOurs   = "<<<<<<<"
	MarkerSplit  = "======="
	MarkerTheirs = ">>>>>>>"
	MarkerBase   = "|||||||"
)

// ConflictScan reports the marker lines still present in a file.
type ConflictScan struct {
	Path    string
	Lines   []int
	Regions int
}

// Resolved reports a file without any conflict markers left.
func (c ConflictScan) Resolved() bool {
	return len(c.Lines) == 0
}

// ScanConflictMarkers reads r and records every line that starts a conflict
// marker. A region is counted for each opening marker.
func ScanConflictMarkers(path string, r io.Reader) (ConflictScan, error) {
	scan := ConflictScan{Path: path}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		switch {
		case isMarker(line, MarkerOurs):
			scan.Regions++
			scan.Lines = append(scan.Lines, n)
		case isMarker(line, MarkerTheirs), isMarker(line, MarkerBase):
			scan.Lines = append(scan.Lines, n)
		case strings.TrimRight(line, "\r") == MarkerSplit:
			scan.Lines = append(scan.Lines, n)
		}
	}
	return scan, sc.Err()
}

// isMarker matches a marker followed by end of line or a space and label.
func isMarker(line, marker string) bool {
	if !strings.HasPrefix(line, marker) {
		return false
	}
	rest := strings.TrimRight(line[len(marker):], "\r")
	return rest == "" || rest[0] == ' '
}
