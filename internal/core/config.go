package core

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "linkheal.yaml"
	dataDirName    = ".linkheal"
)

// Config represents the linkheal.yaml configuration file.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Resolve ResolveConfig `yaml:"resolve"`
}

// ScanConfig holds document discovery settings.
type ScanConfig struct {
	Extensions   []string `yaml:"extensions"`
	ExcludePaths []string `yaml:"exclude_paths"`
}

// ResolveConfig holds path resolution settings.
type ResolveConfig struct {
	DocsPrefix string `yaml:"docs_prefix"`
}

// LoadConfig reads linkheal.yaml from the root and applies defaults.
// A missing file yields the default configuration.
func LoadConfig(root string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filepath.Join(root, configFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, configErrorf("%s: %v", configFileName, err)
	}

	if len(cfg.Scan.Extensions) == 0 {
		cfg.Scan.Extensions = []string{".md", ".markdown"}
	}
	for i, ext := range cfg.Scan.Extensions {
		cfg.Scan.Extensions[i] = strings.ToLower(ext)
	}
	if cfg.Resolve.DocsPrefix == "" {
		cfg.Resolve.DocsPrefix = "docs/"
	}
	if !strings.HasSuffix(cfg.Resolve.DocsPrefix, "/") {
		cfg.Resolve.DocsPrefix += "/"
	}
	if err := validateGlobPatterns(cfg.Scan.ExcludePaths); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validateGlobPatterns checks that none of the patterns use unsupported character classes.
func validateGlobPatterns(patterns []string) error {
	for _, p := range patterns {
		if strings.Contains(p, "[") {
			return configErrorf("unsupported glob pattern (character class): %s", p)
		}
	}
	return nil
}

// filterExcludes removes files matching any of the given glob patterns.
func filterExcludes(files []string, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}
	result := make([]string, 0, len(files))
	for _, f := range files {
		excluded := false
		for _, p := range patterns {
			if globMatch(p, f) {
				excluded = true
				break
			}
		}
		if !excluded {
			result = append(result, f)
		}
	}
	return result
}

// globMatch implements SQLite GLOB semantics in Go.
// '*' matches any sequence of characters (including '/').
// '?' matches exactly one character.
// '[' is treated as a literal character (character classes not supported).
func globMatch(pattern, s string) bool {
	return globMatchImpl([]rune(pattern), []rune(s))
}

func globMatchImpl(pattern, s []rune) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			// Skip consecutive '*'.
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if globMatchImpl(pattern, s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		default:
			if len(s) == 0 || pattern[0] != s[0] {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		}
	}
	return len(s) == 0
}
