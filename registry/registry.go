// Package registry provides the explicit test registry: a per-process
// object collecting the test tree instead of process-wide implicit
// registration. Plug-ins contribute their tests to it during Initialize.
package registry

import "plugtester/engine"

// DefaultRootName names the root suite when none is given.
const DefaultRootName = "All Tests"

// Registry owns the root suite of the runnable tree.
type Registry struct {
	root *engine.Suite
}

// New creates a registry whose root suite carries the given name, or
// DefaultRootName if empty.
func New(name string) *Registry {
	if name == "" {
		name = DefaultRootName
	}
	return &Registry{root: engine.NewSuite(name)}
}

// Add appends a contributed test to the root suite, rejecting additions
// that would make the tree cyclic.
func (r *Registry) Add(t engine.Test) error {
	return r.root.Add(t)
}

// MakeTest returns the root suite as the runnable tree.
func (r *Registry) MakeTest() engine.Test {
	return r.root
}

// Count returns the number of leaf cases currently registered.
func (r *Registry) Count() int {
	return r.root.CountCases()
}
