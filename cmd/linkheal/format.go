package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ryotapoi/linkheal/internal/core"
)

var (
	brokenColor = color.New(color.FgRed)
	healedColor = color.New(color.FgGreen)
	passColor   = color.New(color.FgGreen, color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
)

// validateFormat checks that format is "json" or "text".
func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %q (must be json or text)", format)
	}
	return nil
}

// --- Scan output ---

func printScanText(w io.Writer, refs []core.LinkReference, docErrs []*core.DocError) {
	for _, r := range refs {
		fmt.Fprintf(w, "%s:%d [%s] %s\n", r.Doc, r.Start, r.Class, r.Target)
	}
	for _, e := range docErrs {
		fmt.Fprintf(w, "error: %v\n", e)
	}
	fmt.Fprintf(w, "%d reference(s)\n", len(refs))
}

func printScanJSON(w io.Writer, refs []core.LinkReference, docErrs []*core.DocError) error {
	m := map[string]any{"references": refs}
	if len(docErrs) > 0 {
		errs := make([]string, len(docErrs))
		for i, e := range docErrs {
			errs[i] = e.Error()
		}
		m["errors"] = errs
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// --- Validate output ---

func brokenLinks(links []core.ResolvedLink) []core.ResolvedLink {
	var out []core.ResolvedLink
	for _, l := range links {
		if !l.Valid {
			out = append(out, l)
		}
	}
	return out
}

func printReportText(w io.Writer, r *core.HealingReport) {
	fmt.Fprintf(w, "links: %d  valid: %d  broken: %s\n",
		r.TotalLinks, r.ValidLinks, countColored(r.BrokenLinks))
	for _, class := range core.PatternClasses {
		t, ok := r.ByClass[class]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-28s total %-4d valid %-4d broken %s\n",
			class, t.Total, t.Valid, countColored(t.Broken))
	}
	for _, doc := range r.Documents() {
		t := r.ByDocument[doc]
		fmt.Fprintf(w, "  %-28s total %-4d valid %-4d broken %s\n",
			doc, t.Total, t.Valid, countColored(t.Broken))
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
}

// countColored renders a broken count, red when nonzero.
func countColored(n int) string {
	if n > 0 {
		return brokenColor.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func printValidateText(w io.Writer, r *core.HealingReport, links []core.ResolvedLink) {
	printReportText(w, r)
	for _, l := range brokenLinks(links) {
		where := l.Resolved
		if l.OutOfRoot {
			where = "escapes root"
		}
		fmt.Fprintf(w, "%s\n", brokenColor.Sprintf("broken: %s:%d %s (%s)", l.Doc, l.Start, l.Target, where))
	}
	printPassLine(w, r.Pass)
}

func printValidateJSON(w io.Writer, r *core.HealingReport, links []core.ResolvedLink) error {
	m := map[string]any{"report": r}
	if broken := brokenLinks(links); len(broken) > 0 {
		m["broken"] = broken
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// --- Heal output ---

func printHealText(w io.Writer, result *core.HealResult) {
	for _, h := range result.Healed {
		fmt.Fprintf(w, "%s\n", healedColor.Sprintf("healed: %s: %s -> %s", h.Doc, h.OldRef, h.NewRef))
	}
	fmt.Fprintf(w, "healed %d reference(s), still broken in scope: %s, baseline broken: %d\n",
		result.Report.Healed, countColored(result.Report.StillBroken), result.Report.BaselineBroken)
	printReportText(w, result.Report)
	printPassLine(w, result.Report.Pass)
}

func printHealJSON(w io.Writer, result *core.HealResult) error {
	m := map[string]any{"report": result.Report}
	if len(result.Healed) > 0 {
		m["healed"] = result.Healed
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func printPassLine(w io.Writer, pass bool) {
	if pass {
		fmt.Fprintf(w, "%s\n", passColor.Sprint("pass"))
	} else {
		fmt.Fprintf(w, "%s\n", failColor.Sprint("fail"))
	}
}
