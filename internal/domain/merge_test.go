package domain

import (
	"strings"
	"testing"
)

func TestClassifyMerge(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		stdout  string
		stderr  string
		want    MergeOutcome
	}{
		{"up to date", true, "Already up to date.", "", MergeUpToDate},
		{"old up-to-date spelling", true, "Already up-to-date.", "", MergeUpToDate},
		{"fast forward", true, "Updating 1a2b..3c4d\nFast-forward\n feature.txt | 1 +", "", MergeFastForward},
		{"merge commit", true, "Merge made by the 'ort' strategy.", "", MergeCommitted},
		{
			"conflict",
			false,
			"Auto-merging test.txt\nCONFLICT (content): Merge conflict in test.txt\nAutomatic merge failed; fix conflicts and then commit the result.",
			"",
			MergeConflict,
		},
		{"dirty tree", false, "", "error: Your local changes to the following files would be overwritten by merge", MergeFailed},
		{"unknown branch", false, "", "merge: nope - not something we can merge", MergeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyMerge(tt.success, tt.stdout, tt.stderr)
			if got != tt.want {
				t.Errorf("ClassifyMerge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanConflictMarkers(t *testing.T) {
	content := strings.Join([]string{
		"intro",
		"<<<<<<< HEAD",
		"main version",
		"=======",
		"branch version",
		">>>>>>> conflict-branch",
		"outro",
		"<<<<<<< HEAD",
		"x",
		"=======",
		"y",
		">>>>>>> conflict-branch",
	}, "\n")

	scan, err := ScanConflictMarkers("test.txt", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ScanConflictMarkers() error = %v", err)
	}
	if scan.Resolved() {
		t.Fatal("file with markers reported as resolved")
	}
	if scan.Regions != 2 {
		t.Errorf("Regions = %d, want 2", scan.Regions)
	}
	if want := []int{2, 4, 6, 8, 10, 12}; len(scan.Lines) != len(want) {
		t.Errorf("Lines = %v, want %v", scan.Lines, want)
	}
}

func TestScanConflictMarkers_Resolved(t *testing.T) {
	content := "main version\nbranch version\n=======heading underline is not a marker\n<<<<<<<<< too long\n"
	scan, err := ScanConflictMarkers("test.txt", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ScanConflictMarkers() error = %v", err)
	}
	if !scan.Resolved() {
		t.Errorf("expected resolved file, got marker lines %v", scan.Lines)
	}
}

func TestScanConflictMarkers_CRLF(t *testing.T) {
	content := "<<<<<<< HEAD\r\na\r\n=======\r\nb\r\n>>>>>>> other\r\n"
	scan, err := ScanConflictMarkers("win.txt", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ScanConflictMarkers() error = %v", err)
	}
	if len(scan.Lines) != 3 {
		t.Errorf("Lines = %v, want 3 marker lines", scan.Lines)
	}
}
