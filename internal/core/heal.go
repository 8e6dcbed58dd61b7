package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HealOptions controls the heal operation.
type HealOptions struct {
	Mapping RenameMapping
	DryRun  bool // compute and report everything, write nothing
	Move    bool // also perform the disk renames themselves
}

// HealedLink reports one rewritten occurrence.
type HealedLink struct {
	Doc    string       `json:"doc"`
	Class  PatternClass `json:"class"`
	OldRef string       `json:"old"`
	NewRef string       `json:"new"`
}

// HealResult reports the outcome of a heal run, including the post-heal
// validation report.
type HealResult struct {
	Healed []HealedLink
	Errors []*DocError
	Report *HealingReport
}

// Heal rewrites every reference whose normalized resolved target is an old
// path of the mapping to the corresponding new path, leaving all other
// content untouched, then re-validates. A mapping that violates the
// uniqueness/no-collision invariant aborts with a ConfigError before any
// write. Per-document failures are isolated: each document is rewritten
// all-or-nothing and an error in one never aborts its siblings. Re-running
// Heal with the same mapping after a successful run is a no-op.
func Heal(root string, opts HealOptions) (*HealResult, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}

	mapping := opts.Mapping.normalized()
	if err := mapping.validate(root); err != nil {
		return nil, err
	}
	if opts.Move {
		for _, p := range mapping.Pairs {
			fromOnDisk := fileExists(filepath.Join(root, filepath.FromSlash(p.From)))
			toOnDisk := fileExists(filepath.Join(root, filepath.FromSlash(p.To)))
			if !fromOnDisk && !toOnDisk {
				return nil, configErrorf("source file not found on disk: %s", p.From)
			}
		}
	}

	refs, scanErrs, err := Scan(root, cfg)
	if err != nil {
		return nil, err
	}
	preLinks := Resolve(root, cfg, refs)

	oldToNew := mapping.oldToNew()

	// Plan edits per document. References are re-spelled relative to the
	// document's post-rename location, so a renamed document's own relative
	// links stay correct after it moves.
	type plannedEdit struct {
		edit
		ref LinkReference
	}
	byDoc := make(map[string][]plannedEdit)
	for _, l := range preLinks {
		if l.OutOfRoot {
			continue
		}
		docAfter := l.Doc
		if to, ok := oldToNew[l.Doc]; ok {
			docAfter = to
		}
		newPath, mapped := oldToNew[l.Resolved]
		if !mapped {
			if docAfter == l.Doc || strings.HasPrefix(l.Target, cfg.Resolve.DocsPrefix) {
				continue
			}
			// The document itself moves; its source-relative references
			// must be re-spelled from the new location even when their
			// targets stay put.
			newPath = l.Resolved
		}
		replacement := spellTarget(l.Target, docAfter, newPath, cfg.Resolve.DocsPrefix)
		if replacement == l.Target {
			continue
		}
		byDoc[l.Doc] = append(byDoc[l.Doc], plannedEdit{
			edit: edit{start: l.Start, end: l.End, want: l.Target, replacement: replacement},
			ref:  l.LinkReference,
		})
	}

	result := &HealResult{Errors: scanErrs}

	docs := make([]string, 0, len(byDoc))
	for d := range byDoc {
		docs = append(docs, d)
	}
	sort.Strings(docs)

	for _, doc := range docs {
		planned := byDoc[doc]
		edits := make([]edit, len(planned))
		for i, pe := range planned {
			edits[i] = pe.edit
		}
		changed, kind, err := rewriteDocument(root, doc, edits, opts.DryRun)
		if err != nil {
			result.Errors = append(result.Errors, &DocError{Doc: doc, Kind: kind, Err: err})
			continue
		}
		if !changed {
			continue
		}
		for _, pe := range planned {
			result.Healed = append(result.Healed, HealedLink{
				Doc:    doc,
				Class:  pe.ref.Class,
				OldRef: pe.ref.Target,
				NewRef: pe.replacement,
			})
		}
	}

	if opts.Move && !opts.DryRun {
		result.Errors = append(result.Errors, moveFiles(root, mapping)...)
	}

	scope := make(map[string]bool, 2*len(mapping.Pairs))
	for _, p := range mapping.Pairs {
		scope[p.From] = true
		scope[p.To] = true
	}

	var postLinks []ResolvedLink
	var postErrs []*DocError
	if opts.DryRun {
		postLinks = projectLinks(root, preLinks, oldToNew, opts.Move)
	} else {
		postRefs, errs, err := Scan(root, cfg)
		if err != nil {
			return nil, err
		}
		postErrs = errs
		postLinks = Resolve(root, cfg, postRefs)
	}

	all := append(append([]*DocError(nil), result.Errors...), postErrs...)
	result.Report = buildHealReport(postLinks, len(result.Healed), scope, dedupeDocErrors(all))
	return result, nil
}

// dedupeDocErrors drops repeated failures: a document unreadable before
// healing is reported again by the post-heal re-scan.
func dedupeDocErrors(errs []*DocError) []*DocError {
	seen := make(map[string]bool, len(errs))
	out := make([]*DocError, 0, len(errs))
	for _, e := range errs {
		if seen[e.Error()] {
			continue
		}
		seen[e.Error()] = true
		out = append(out, e)
	}
	return out
}

// spellTarget writes a root-relative path the way the original reference
// addressed its target: docs-prefixed references stay root-relative when the
// new path still carries the prefix, everything else is spelled relative to
// the document's directory.
func spellTarget(originalTarget, docPath, newPath, docsPrefix string) string {
	if strings.HasPrefix(originalTarget, docsPrefix) && strings.HasPrefix(newPath, docsPrefix) {
		return newPath
	}
	rel, err := filepath.Rel(filepath.Dir(filepath.FromSlash(docPath)), filepath.FromSlash(newPath))
	if err != nil {
		return newPath
	}
	return filepath.ToSlash(rel)
}

// moveFiles performs the disk renames for every pair whose source is still
// at its old location. Pairs already moved by the caller are skipped.
// Failures are isolated per pair.
func moveFiles(root string, mapping RenameMapping) []*DocError {
	var errs []*DocError
	for _, p := range mapping.Pairs {
		fromFull := filepath.Join(root, filepath.FromSlash(p.From))
		toFull := filepath.Join(root, filepath.FromSlash(p.To))
		if !fileExists(fromFull) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(toFull), 0o755); err != nil {
			errs = append(errs, &DocError{Doc: p.From, Kind: DocErrorMove, Err: err})
			continue
		}
		if err := os.Rename(fromFull, toFull); err != nil {
			errs = append(errs, &DocError{Doc: p.From, Kind: DocErrorMove, Err: err})
		}
	}
	return errs
}

// projectLinks synthesizes the post-heal link set for a dry run: mapped
// targets are substituted and re-checked against the current disk state.
func projectLinks(root string, pre []ResolvedLink, oldToNew map[string]string, move bool) []ResolvedLink {
	out := make([]ResolvedLink, 0, len(pre))
	for _, l := range pre {
		if !l.OutOfRoot {
			if to, ok := oldToNew[l.Resolved]; ok {
				old := l.Resolved
				l.Resolved = to
				l.Valid = fileExists(filepath.Join(root, filepath.FromSlash(to)))
				if !l.Valid && move {
					// --move would relocate the file there.
					l.Valid = fileExists(filepath.Join(root, filepath.FromSlash(old)))
				}
			}
		}
		out = append(out, l)
	}
	return out
}
