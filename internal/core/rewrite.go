package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// edit replaces content[start:end] (expected to equal want) with replacement.
type edit struct {
	start, end  int
	want        string
	replacement string
}

// applyEdits applies edits to content in descending offset order so earlier
// edits do not invalidate later offsets. It fails without partial effect on
// out-of-range or overlapping spans, or when a span no longer holds the text
// recorded at scan time.
func applyEdits(content string, edits []edit) (string, error) {
	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start > sorted[j].start })

	for i, e := range sorted {
		if e.start < 0 || e.end > len(content) || e.start > e.end {
			return "", fmt.Errorf("edit span [%d,%d) out of range", e.start, e.end)
		}
		if i > 0 && e.end > sorted[i-1].start {
			return "", fmt.Errorf("overlapping edit spans at offset %d", e.start)
		}
		if got := content[e.start:e.end]; got != e.want {
			return "", fmt.Errorf("document changed since scan: %q at offset %d, want %q", got, e.start, e.want)
		}
	}

	var b strings.Builder
	b.Grow(len(content))
	// Build left to right from the ascending view.
	prev := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		b.WriteString(content[prev:e.start])
		b.WriteString(e.replacement)
		prev = e.end
	}
	b.WriteString(content[prev:])
	return b.String(), nil
}

// rewriteDocument applies edits to one document on disk. The write happens
// only when at least one substitution changed the content; everything outside
// the edited spans is preserved byte for byte, permission bits included.
// With dryRun the new content is computed and checked but never written.
// On failure the returned kind tells which stage broke; the document on disk
// is never left half-written.
func rewriteDocument(root, rel string, edits []edit, dryRun bool) (changed bool, kind DocErrorKind, err error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		return false, DocErrorRead, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return false, DocErrorRead, err
	}
	next, err := applyEdits(string(data), edits)
	if err != nil {
		return false, DocErrorRewrite, err
	}
	if next == string(data) {
		return false, "", nil
	}
	if dryRun {
		return true, "", nil
	}
	if err := writeFilePreservePerm(full, []byte(next), info.Mode().Perm()); err != nil {
		return false, DocErrorWrite, err
	}
	return true, "", nil
}

// writeFilePreservePerm writes data to path with the given permission bits.
// os.WriteFile applies umask on file creation, so os.Chmod is called to
// ensure the exact permission bits are set.
func writeFilePreservePerm(path string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}
