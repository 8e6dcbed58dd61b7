package core

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// PatternClass identifies the syntactic form a link reference was matched by.
type PatternClass string

const (
	ClassMarkdownLink      PatternClass = "markdown_link"
	ClassRelativePathLink  PatternClass = "relative_path_link"
	ClassDocsReferenceLink PatternClass = "docs_reference_link"
	ClassInlineCodeFileRef PatternClass = "inline_code_file_reference"
	ClassBarePath          PatternClass = "bare_path"
)

// PatternClasses lists every class in match-priority order. A match from an
// earlier class consumes its span and suppresses overlapping later matches,
// so each physical occurrence is recorded exactly once. The three bracket
// forms are ordered most-specific-first; bracket forms beat inline code,
// inline code beats bare paths.
var PatternClasses = []PatternClass{
	ClassRelativePathLink,
	ClassDocsReferenceLink,
	ClassMarkdownLink,
	ClassInlineCodeFileRef,
	ClassBarePath,
}

// LinkReference is one occurrence of a link-like substring in a document.
// Start/End are byte offsets of the target path substring itself, not the
// whole match, so a rewrite can replace exactly the path and nothing else.
type LinkReference struct {
	Doc    string       `json:"doc"`
	Class  PatternClass `json:"class"`
	Raw    string       `json:"raw"`
	Target string       `json:"target"`
	Start  int          `json:"start"`
	End    int          `json:"end"`
}

// pattern is one entry of the ordered matcher table: class tag, compiled
// matcher, and the capture group holding the target path.
type pattern struct {
	class PatternClass
	re    *regexp.Regexp
	group int
}

// compilePatterns builds the matcher table for the configured docs prefix
// and document extensions.
func compilePatterns(cfg Config) []pattern {
	prefix := regexp.QuoteMeta(cfg.Resolve.DocsPrefix)
	exts := make([]string, 0, len(cfg.Scan.Extensions))
	for _, e := range cfg.Scan.Extensions {
		exts = append(exts, regexp.QuoteMeta(e))
	}
	extAlt := "(?:" + strings.Join(exts, "|") + ")"

	return []pattern{
		{ClassRelativePathLink, regexp.MustCompile(`\[[^\]\n]*\]\(((?:\.\./)+[^()\s]+)\)`), 1},
		{ClassDocsReferenceLink, regexp.MustCompile(`\[[^\]\n]*\]\((` + prefix + `[^()\s]+)\)`), 1},
		{ClassMarkdownLink, regexp.MustCompile(`\[[^\]\n]*\]\(([^()\s]+)\)`), 1},
		{ClassInlineCodeFileRef, regexp.MustCompile("`([A-Za-z0-9_\\-./]+" + extAlt + ")`"), 1},
		{ClassBarePath, regexp.MustCompile(`\b(` + prefix + `[\w\-]+(?:/[\w\-]+)*` + extAlt + `)\b`), 1},
	}
}

// Scan walks the document tree and extracts every link reference.
// It is pure: identical content always yields an identical reference set,
// ordered by document path, then offset. Unreadable documents are recorded
// as per-document errors and skipped.
func Scan(root string, cfg Config) ([]LinkReference, []*DocError, error) {
	docs, docErrs, err := collectDocuments(root, cfg)
	if err != nil {
		return nil, nil, err
	}

	pats := compilePatterns(cfg)
	var refs []LinkReference
	for _, rel := range docs {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			docErrs = append(docErrs, &DocError{Doc: rel, Kind: DocErrorRead, Err: err})
			continue
		}
		refs = append(refs, scanContent(rel, string(data), pats)...)
	}
	return refs, docErrs, nil
}

type span struct{ start, end int }

// inlineCodeRe matches a single-line backtick code span. Backtick spans
// belong solely to the inline-code class: a span whose content is not a
// pure path is opaque to every class.
var inlineCodeRe = regexp.MustCompile("`[^`\n]*`")

func overlaps(s span, consumed []span) bool {
	for _, c := range consumed {
		if s.start < c.end && c.start < s.end {
			return true
		}
	}
	return false
}

// scanContent applies the pattern table to one document. Fenced code blocks
// are masked out first; inline backtick spans belong solely to the
// inline-code class.
func scanContent(doc, content string, pats []pattern) []LinkReference {
	masked := maskFences(content)

	var codeSpans []span
	for _, m := range inlineCodeRe.FindAllStringIndex(masked, -1) {
		codeSpans = append(codeSpans, span{m[0], m[1]})
	}

	var refs []LinkReference
	var consumed []span
	for _, p := range pats {
		for _, m := range p.re.FindAllStringSubmatchIndex(masked, -1) {
			full := span{m[0], m[1]}
			if p.class != ClassInlineCodeFileRef && overlaps(full, codeSpans) {
				continue
			}
			if overlaps(full, consumed) {
				continue
			}
			consumed = append(consumed, full)
			target := content[m[2*p.group] : m[2*p.group+1]]
			if isURL(target) {
				continue
			}
			refs = append(refs, LinkReference{
				Doc:    doc,
				Class:  p.class,
				Raw:    content[m[0]:m[1]],
				Target: target,
				Start:  m[2*p.group],
				End:    m[2*p.group+1],
			})
		}
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Start < refs[j].Start })
	return refs
}

// maskFences blanks every byte inside ``` fenced blocks (fence marker lines
// included) so offsets of the remaining text are unchanged.
func maskFences(content string) string {
	b := []byte(content)
	inFence := false
	lineStart := 0
	for i := 0; i <= len(b); i++ {
		if i != len(b) && b[i] != '\n' {
			continue
		}
		line := strings.TrimSpace(string(b[lineStart:i]))
		marker := strings.HasPrefix(line, "```")
		if marker || inFence {
			for j := lineStart; j < i; j++ {
				b[j] = ' '
			}
		}
		if marker {
			inFence = !inFence
		}
		lineStart = i + 1
	}
	return string(b)
}

// collectDocuments returns the sorted root-relative paths of every document
// matched by the configured extensions, minus exclude globs. An unreadable
// directory is recorded as a per-document error and skipped, never an abort.
func collectDocuments(root string, cfg Config) ([]string, []*DocError, error) {
	var files []string
	var docErrs []*DocError
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			rel, rerr := filepath.Rel(root, path)
			if rerr != nil {
				rel = path
			}
			docErrs = append(docErrs, &DocError{Doc: NormalizePath(rel), Kind: DocErrorRead, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == dataDirName {
				return filepath.SkipDir
			}
			return nil
		}
		name := strings.ToLower(d.Name())
		for _, ext := range cfg.Scan.Extensions {
			if strings.HasSuffix(name, ext) {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				files = append(files, NormalizePath(rel))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	files = filterExcludes(files, cfg.Scan.ExcludePaths)
	sort.Strings(files)
	return files, docErrs, nil
}
