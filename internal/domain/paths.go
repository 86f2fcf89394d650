package domain

import (
	"path/filepath"
	"strings"
)

// DefaultProtectedFragments are matched case-insensitively anywhere in a
// Windows path. git init in these locations always fails or does damage.
var DefaultProtectedFragments = []string{
	`\windows`,
	`\system32`,
	`\program files`,
	`\program files (x86)`,
	`\appdata`,
}

// posixSystemRoots are top-level trees owned by the operating system.
var posixSystemRoots = []string{
	"/bin", "/boot", "/dev", "/etc", "/lib", "/proc",
	"/sbin", "/sys", "/usr", "/System", "/Library",
}

// IsProtectedPath reports whether path points into a system location.
// fragments replaces DefaultProtectedFragments when non-empty.
func IsProtectedPath(path string, fragments []string) bool {
	if len(fragments) == 0 {
		fragments = DefaultProtectedFragments
	}
	lower := strings.ToLower(path)
	for _, f := range fragments {
		if f != "" && strings.Contains(lower, strings.ToLower(f)) {
			return true
		}
	}

	// POSIX checks only apply to slash-rooted paths.
	if !strings.HasPrefix(path, "/") {
		return false
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == "/" {
		return true
	}
	for _, root := range posixSystemRoots {
		if clean == root || strings.HasPrefix(clean, root+"/") {
			return true
		}
	}
	return false
}

// DefaultGitignore is the starter .gitignore offered after git init.
const DefaultGitignore = `# Python
__pycache__/
*.pyc
.env
venv/

# Node
node_modules/

# Go
/bin/
*.test

# IDE / Editor
.vscode/
.idea/

# OS files
.DS_Store
Thumbs.db
`
