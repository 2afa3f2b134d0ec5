package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows discovered modules by name pattern.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the modules whose base name matches the pattern.
// Wildcard patterns ("billing_*.so", "*smoke*") use filepath.Match
// semantics with a substring fallback for patterns like "*smoke*";
// patterns without wildcards match as substrings. An empty pattern
// keeps everything.
func (f *Filter) FilterByName(modules []string, pattern string) []string {
	if pattern == "" {
		return modules
	}

	var filtered []string
	for _, module := range modules {
		if matchName(filepath.Base(module), pattern) {
			filtered = append(filtered, module)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	// flexible fallback: every literal part of the pattern must occur
	parts := strings.Split(pattern, "*")
	hasLiteral := false
	for _, part := range parts {
		if part == "" {
			continue
		}
		hasLiteral = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasLiteral
}
