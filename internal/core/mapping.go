package core

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenamePair maps one root-relative old path to its new path.
type RenamePair struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// RenameMapping is the ordered set of renames supplied for a heal run.
type RenameMapping struct {
	Pairs []RenamePair
}

// LoadMapping reads a YAML mapping file: a list of {from, to} entries.
func LoadMapping(path string) (RenameMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenameMapping{}, err
	}
	var pairs []RenamePair
	if err := yaml.Unmarshal(data, &pairs); err != nil {
		return RenameMapping{}, configErrorf("%s: %v", path, err)
	}
	return RenameMapping{Pairs: pairs}, nil
}

// ParseRenameArgs builds a mapping from repeated "old=new" CLI arguments.
func ParseRenameArgs(args []string) (RenameMapping, error) {
	var m RenameMapping
	for _, arg := range args {
		old, new, ok := strings.Cut(arg, "=")
		if !ok || old == "" || new == "" {
			return RenameMapping{}, configErrorf("invalid rename %q (want old=new)", arg)
		}
		m.Pairs = append(m.Pairs, RenamePair{From: old, To: new})
	}
	return m, nil
}

// normalized returns the mapping with both sides of every pair normalized.
func (m RenameMapping) normalized() RenameMapping {
	out := RenameMapping{Pairs: make([]RenamePair, len(m.Pairs))}
	for i, p := range m.Pairs {
		out.Pairs[i] = RenamePair{From: NormalizePath(p.From), To: NormalizePath(p.To)}
	}
	return out
}

// oldToNew returns the normalized old→new lookup table.
func (m RenameMapping) oldToNew() map[string]string {
	out := make(map[string]string, len(m.Pairs))
	for _, p := range m.Pairs {
		out[p.From] = p.To
	}
	return out
}

// validate checks the mapping's self-consistency invariant before any write:
// old paths unique, new paths unique, no pair mapping a path to itself, and
// no new path already on disk unless that path is itself being renamed away.
// The mapping must already be normalized.
func (m RenameMapping) validate(root string) error {
	if len(m.Pairs) == 0 {
		return configErrorf("empty rename mapping")
	}
	olds := make(map[string]bool, len(m.Pairs))
	news := make(map[string]bool, len(m.Pairs))
	for _, p := range m.Pairs {
		if p.From == "" || p.To == "" {
			return configErrorf("rename with empty path")
		}
		if p.From == p.To {
			return configErrorf("rename maps %s to itself", p.From)
		}
		if olds[p.From] {
			return configErrorf("duplicate old path: %s", p.From)
		}
		if news[p.To] {
			return configErrorf("duplicate new path: %s", p.To)
		}
		olds[p.From] = true
		news[p.To] = true
	}
	for _, p := range m.Pairs {
		if olds[p.To] {
			continue // destination is itself being renamed away
		}
		// Old and new both on disk means the rename would clobber an
		// unrelated file. Old gone and new present is the already-moved
		// state and is fine.
		fromOnDisk := fileExists(filepath.Join(root, filepath.FromSlash(p.From)))
		toOnDisk := fileExists(filepath.Join(root, filepath.FromSlash(p.To)))
		if fromOnDisk && toOnDisk {
			return configErrorf("destination already exists: %s", p.To)
		}
	}
	return nil
}
