package core

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvedLink is a LinkReference plus its normalized root-relative target
// and validity classification.
type ResolvedLink struct {
	LinkReference
	Resolved  string `json:"resolved,omitempty"`
	Valid     bool   `json:"valid"`
	OutOfRoot bool   `json:"out_of_root,omitempty"`
}

// resolveTarget normalizes a written target to a root-relative path.
// Targets starting with the docs prefix resolve against the root; everything
// else resolves against the source document's directory. Returns ("", true)
// when normalization escapes the root.
func resolveTarget(doc, target, docsPrefix string) (resolved string, outOfRoot bool) {
	if strings.HasPrefix(target, docsPrefix) {
		return NormalizePath(target), false
	}
	if escapesRoot(doc, target) {
		return "", true
	}
	return NormalizePath(filepath.Join(filepath.Dir(doc), target)), false
}

// Resolve classifies every reference against the filesystem. It performs no
// network access and is deterministic for a fixed tree.
func Resolve(root string, cfg Config, refs []LinkReference) []ResolvedLink {
	resolved := make([]ResolvedLink, 0, len(refs))
	for _, ref := range refs {
		rl := ResolvedLink{LinkReference: ref}
		rl.Resolved, rl.OutOfRoot = resolveTarget(ref.Doc, ref.Target, cfg.Resolve.DocsPrefix)
		if !rl.OutOfRoot {
			rl.Valid = fileExists(filepath.Join(root, filepath.FromSlash(rl.Resolved)))
		}
		resolved = append(resolved, rl)
	}
	return resolved
}

// Validate runs Scan followed by Resolve and aggregates a report.
func Validate(root string) (*HealingReport, []ResolvedLink, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, nil, err
	}
	refs, docErrs, err := Scan(root, cfg)
	if err != nil {
		return nil, nil, err
	}
	links := Resolve(root, cfg, refs)
	report := buildReport(links, docErrs)
	return report, links, nil
}

// fileExists reports whether a regular file exists at path.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
