// Package discovery locates plug-in modules on disk: a positional
// argument naming a directory is expanded into the shared objects it
// contains, optionally narrowed by a wildcard name filter.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ModuleExt is the file extension of loadable plug-in modules.
const ModuleExt = ".so"

// Scanner finds plug-in modules under a directory.
type Scanner struct {
	ignoreDirs []string
}

// NewScanner creates a Scanner that skips the given directory names.
func NewScanner(ignoreDirs []string) *Scanner {
	return &Scanner{ignoreDirs: ignoreDirs}
}

// Scan walks root and returns every plug-in module found, in lexical
// order so load order is deterministic. Root must be an existing
// directory.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var modules []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && s.ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ModuleExt) {
			modules = append(modules, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return modules, nil
}

func (s *Scanner) ignored(name string) bool {
	for _, dir := range s.ignoreDirs {
		if name == dir {
			return true
		}
	}
	return false
}
