package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPathNotFound is wrapped by every path-resolution failure: an
// unmatched segment, or a non-terminal segment addressing a leaf.
var ErrPathNotFound = errors.New("test path not found")

// Path addresses a node by descending from a root suite: each segment
// names a direct child of the node reached by the previous segment. An
// empty path denotes the root itself. Matching is exact and
// case-sensitive.
type Path []string

// ParsePath splits a "/"-separated path string. Leading, trailing and
// doubled separators are tolerated; an empty string yields the empty
// path.
func ParsePath(s string) Path {
	var p Path
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// String returns the "/"-joined form.
func (p Path) String() string {
	return strings.Join(p, "/")
}

// Resolve descends from root and returns the addressed subtree. Running
// the result scopes all counts and events to that subtree; ancestors are
// never entered.
func (p Path) Resolve(root Test) (Test, error) {
	current := root
	for _, seg := range p {
		suite, ok := current.(*Suite)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a suite, cannot descend into %q",
				ErrPathNotFound, current.Name(), seg)
		}
		var next Test
		for _, t := range suite.Tests() {
			if t.Name() == seg {
				next = t
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: no test named %q in %q",
				ErrPathNotFound, seg, current.Name())
		}
		current = next
	}
	return current, nil
}
