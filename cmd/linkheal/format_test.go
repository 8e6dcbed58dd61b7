package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ryotapoi/linkheal/internal/core"
)

func TestValidateFormat(t *testing.T) {
	if err := validateFormat("json"); err != nil {
		t.Errorf("json: %v", err)
	}
	if err := validateFormat("text"); err != nil {
		t.Errorf("text: %v", err)
	}
	if err := validateFormat("yaml"); err == nil {
		t.Error("expected error for yaml format")
	}
}

func TestPrintScanText(t *testing.T) {
	color.NoColor = true
	var b strings.Builder
	printScanText(&b, []core.LinkReference{
		{Doc: "a.md", Class: core.ClassMarkdownLink, Target: "b.md", Start: 4},
	}, nil)
	out := b.String()
	if !strings.Contains(out, "a.md:4 [markdown_link] b.md") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "1 reference(s)") {
		t.Errorf("output missing count: %q", out)
	}
}

func TestPrintValidateTextListsBroken(t *testing.T) {
	color.NoColor = true
	links := []core.ResolvedLink{
		{
			LinkReference: core.LinkReference{Doc: "a.md", Class: core.ClassMarkdownLink, Target: "gone.md"},
			Resolved:      "gone.md",
		},
	}
	report := &core.HealingReport{
		TotalLinks:  1,
		BrokenLinks: 1,
		ByClass:     map[core.PatternClass]*core.Tally{},
		ByDocument:  map[string]*core.Tally{},
	}
	var b strings.Builder
	printValidateText(&b, report, links)
	out := b.String()
	if !strings.Contains(out, "broken: a.md:0 gone.md (gone.md)") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "fail") {
		t.Errorf("output missing fail line: %q", out)
	}
}

func TestMultiString(t *testing.T) {
	var m multiString
	if err := m.Set("a=b"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set("c=d"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if m.String() != "a=b,c=d" {
		t.Errorf("String() = %q", m.String())
	}
}
