package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunScan_InvalidFlag(t *testing.T) {
	err := runScan([]string{"--invalid"})
	if err == nil {
		t.Error("expected error for invalid flag")
	}
}

func TestRunScan_InvalidFormat(t *testing.T) {
	err := runScan([]string{"--format", "yaml"})
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("expected invalid format error, got: %v", err)
	}
}

func TestRunHeal_MissingMapping(t *testing.T) {
	err := runHeal([]string{"--root", t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "--mapping or --rename is required") {
		t.Errorf("expected mapping required error, got: %v", err)
	}
}

func TestRunHeal_InvalidRename(t *testing.T) {
	err := runHeal([]string{"--root", t.TempDir(), "--rename", "nopair"})
	if err == nil || !strings.Contains(err.Error(), "invalid rename") {
		t.Errorf("expected invalid rename error, got: %v", err)
	}
}

func TestRunHealEndToEnd(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "new"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.md"), []byte("[x](old/b.md)\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "new", "b.md"), []byte("b\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := runHeal([]string{"--root", root, "--rename", "old/b.md=new/b.md"})
	if err != nil {
		t.Fatalf("heal: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "a.md"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[x](new/b.md)\n" {
		t.Errorf("a.md = %q", data)
	}
}

func TestRunHealFailsWhenScopeStillBroken(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.md"), []byte("[x](old/b.md)\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := runHeal([]string{"--root", root, "--rename", "old/b.md=new/b.md"})
	if err == nil || !strings.Contains(err.Error(), "healing incomplete") {
		t.Errorf("expected healing incomplete error, got: %v", err)
	}
}
