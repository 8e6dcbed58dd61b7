package core

import (
	"path/filepath"
	"strings"
)

// NormalizePath cleans a root-relative path: forward slashes, no leading "./".
func NormalizePath(path string) string {
	clean := filepath.ToSlash(filepath.Clean(path))
	return strings.TrimPrefix(clean, "./")
}

// escapesRoot reports whether joining target onto the directory of fromPath
// normalizes to a path above the configured root.
func escapesRoot(fromPath, target string) bool {
	base := filepath.Dir(fromPath)
	joined := filepath.ToSlash(filepath.Clean(filepath.Join(base, target)))
	return joined == ".." || strings.HasPrefix(joined, "../")
}

// isURL reports whether a target is a network reference. URL targets are
// excluded from scanning and validation entirely.
func isURL(target string) bool {
	return strings.Contains(target, "://")
}
