package domain

import "strings"

// RemoteSlug extracts "owner/repo" from a remote URL.
func RemoteSlug(url string) string {
	// Handle SSH URLs like git@github.com:user/repo.git
	if strings.HasPrefix(url, "git@") {
		parts := strings.Split(url, ":")
		if len(parts) >= 2 {
			return strings.TrimSuffix(parts[len(parts)-1], ".git")
		}
	}

	// Handle HTTPS URLs like https://github.com/user/repo.git
	if strings.HasPrefix(url, "http") {
		parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
		if len(parts) >= 2 {
			repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
			return parts[len(parts)-2] + "/" + repo
		}
	}

	return url
}

// CloneDir is the folder name git clone picks when no destination is
// given: the last path component without a .git suffix.
func CloneDir(url string) string {
	u := strings.TrimRight(url, "/\\")
	u = strings.TrimSuffix(u, "/.git")
	if i := strings.LastIndexAny(u, "/\\:"); i >= 0 {
		u = u[i+1:]
	}
	return strings.TrimSuffix(u, ".git")
}

// ShortHash returns a shortened commit hash.
func ShortHash(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
