package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Scan.Extensions) != 2 || cfg.Scan.Extensions[0] != ".md" {
		t.Errorf("extensions = %v", cfg.Scan.Extensions)
	}
	if cfg.Resolve.DocsPrefix != "docs/" {
		t.Errorf("docs prefix = %q, want docs/", cfg.Resolve.DocsPrefix)
	}
}

func TestLoadConfigFile(t *testing.T) {
	root := t.TempDir()
	data := "scan:\n  extensions: [\".MD\"]\n  exclude_paths: [\"drafts/*\"]\nresolve:\n  docs_prefix: \"documentation\"\n"
	if err := os.WriteFile(filepath.Join(root, configFileName), []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Scan.Extensions) != 1 || cfg.Scan.Extensions[0] != ".md" {
		t.Errorf("extensions = %v, want lowercased .md", cfg.Scan.Extensions)
	}
	// Missing trailing slash is added.
	if cfg.Resolve.DocsPrefix != "documentation/" {
		t.Errorf("docs prefix = %q, want documentation/", cfg.Resolve.DocsPrefix)
	}
	if len(cfg.Scan.ExcludePaths) != 1 {
		t.Errorf("exclude paths = %v", cfg.Scan.ExcludePaths)
	}
}

func TestLoadConfigRejectsCharacterClasses(t *testing.T) {
	root := t.TempDir()
	data := "scan:\n  exclude_paths: [\"notes/[ab]*\"]\n"
	if err := os.WriteFile(filepath.Join(root, configFileName), []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(root)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestGlobMatch(t *testing.T) {
	cases := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"*", "anything", true},
		{"drafts/*", "drafts/a.md", true},
		{"drafts/*", "drafts/sub/a.md", true}, // '*' crosses '/'
		{"drafts/*", "other/a.md", false},
		{"?.md", "a.md", true},
		{"?.md", "ab.md", false},
		{"a[b", "a[b", true}, // '[' is literal
	}
	for _, tc := range cases {
		if got := globMatch(tc.pattern, tc.s); got != tc.want {
			t.Errorf("globMatch(%q, %q) = %v, want %v", tc.pattern, tc.s, got, tc.want)
		}
	}
}

func TestScanHonorsExcludePaths(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md":          "[x](b.md)\n",
		"drafts/d.md":   "[y](b.md)\n",
		"linkheal.yaml": "scan:\n  exclude_paths: [\"drafts/*\"]\n",
	})
	cfg := defaultConfig(t, root)
	refs, _, err := Scan(root, cfg)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(refs) != 1 || refs[0].Doc != "a.md" {
		t.Errorf("refs = %+v, want only a.md", refs)
	}
}
