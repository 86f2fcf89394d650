package domain

import "strings"

// PushFailure names the common reasons a beginner's push fails.
type PushFailure int

const (
	PushUnknown PushFailure = iota
	PushNothingCommitted
	PushRejected
	PushAuthentication
)

// String returns a short label for logs and records.
func (f PushFailure) String() string {
	switch f {
	case PushNothingCommitted:
		return "nothing_committed"
	case PushRejected:
		return "rejected"
	case PushAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

// ClassifyPushFailure matches git's stderr against the known failure texts.
// Order matters: an empty repo also reports "error: failed to push".
func ClassifyPushFailure(stderr string) PushFailure {
	switch {
	case strings.Contains(stderr, "src refspec"):
		return PushNothingCommitted
	case strings.Contains(stderr, "rejected"):
		return PushRejected
	case strings.Contains(stderr, "Authentication"), strings.Contains(stderr, "fatal: could not read"):
		return PushAuthentication
	default:
		return PushUnknown
	}
}
