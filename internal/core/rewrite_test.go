package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEditsDescendingOrder(t *testing.T) {
	content := "[a](one.md) [b](two.md)"
	got, err := applyEdits(content, []edit{
		{start: 4, end: 10, want: "one.md", replacement: "1.md"},
		{start: 16, end: 22, want: "two.md", replacement: "second.md"},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := "[a](1.md) [b](second.md)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyEditsOverlapRejected(t *testing.T) {
	_, err := applyEdits("abcdef", []edit{
		{start: 0, end: 4, want: "abcd", replacement: "x"},
		{start: 2, end: 6, want: "cdef", replacement: "y"},
	})
	if err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestApplyEditsStaleSpanRejected(t *testing.T) {
	_, err := applyEdits("abcdef", []edit{
		{start: 0, end: 3, want: "zzz", replacement: "x"},
	})
	if err == nil {
		t.Fatal("expected stale-span error")
	}
}

func TestRewriteDocumentPreservesPermissions(t *testing.T) {
	root := t.TempDir()
	full := filepath.Join(root, "a.md")
	if err := os.WriteFile(full, []byte("[x](old.md)\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	changed, _, err := rewriteDocument(root, "a.md", []edit{
		{start: 4, end: 10, want: "old.md", replacement: "new.md"},
	}, false)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[x](new.md)\n" {
		t.Errorf("content = %q", data)
	}
	info, err := os.Stat(full)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("perm = %o, want 600", info.Mode().Perm())
	}
}

func TestRewriteDocumentDryRun(t *testing.T) {
	root := t.TempDir()
	full := filepath.Join(root, "a.md")
	if err := os.WriteFile(full, []byte("[x](old.md)\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	changed, _, err := rewriteDocument(root, "a.md", []edit{
		{start: 4, end: 10, want: "old.md", replacement: "new.md"},
	}, true)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !changed {
		t.Fatal("dry run should still report the change")
	}
	data, _ := os.ReadFile(full)
	if string(data) != "[x](old.md)\n" {
		t.Errorf("dry run modified the file: %q", data)
	}
}

func TestRewriteDocumentMissing(t *testing.T) {
	root := t.TempDir()
	_, kind, err := rewriteDocument(root, "gone.md", []edit{
		{start: 0, end: 1, want: "x", replacement: "y"},
	}, false)
	if err == nil {
		t.Fatal("expected error for missing document")
	}
	if kind != DocErrorRead {
		t.Errorf("kind = %s, want %s", kind, DocErrorRead)
	}
}
