package engine

import "fmt"

// Suite is a composite test node holding an ordered sequence of children.
// Insertion order is significant: children run and report in the order
// they were added. A suite exclusively holds its children; they are
// reachable only through it.
type Suite struct {
	name  string
	tests []Test
}

// NewSuite creates an empty suite with the given name.
func NewSuite(name string) *Suite {
	return &Suite{name: name}
}

// Add appends a child to the suite. The tree must stay acyclic: adding
// the suite to itself, directly or transitively, is rejected here rather
// than detected during traversal.
func (s *Suite) Add(t Test) error {
	if sub, ok := t.(*Suite); ok {
		if sub == s || sub.contains(s) {
			return fmt.Errorf("adding %q to %q would create a cycle", t.Name(), s.name)
		}
	}
	s.tests = append(s.tests, t)
	return nil
}

// contains reports whether target is reachable from s.
func (s *Suite) contains(target *Suite) bool {
	for _, t := range s.tests {
		sub, ok := t.(*Suite)
		if !ok {
			continue
		}
		if sub == target || sub.contains(target) {
			return true
		}
	}
	return false
}

// Tests returns the suite's children in insertion order.
func (s *Suite) Tests() []Test {
	return s.tests
}

// Clear removes all children. Safe to call on an already-emptied suite.
func (s *Suite) Clear() {
	s.tests = nil
}

// Name returns the suite name.
func (s *Suite) Name() string {
	return s.name
}

// Describe returns the suite's report label.
func (s *Suite) Describe() string {
	return "suite " + s.name
}

// CountCases returns the sum of the children's case counts, for
// arbitrarily deep trees.
func (s *Suite) CountCases() int {
	count := 0
	for _, t := range s.tests {
		count += t.CountCases()
	}
	return count
}

// Run broadcasts StartSuite, runs the children in insertion order, and
// broadcasts EndSuite. The stop flag is checked before each child: once
// set, remaining children are never entered and receive no events, but
// EndSuite is still emitted for a suite already being run. A suite never
// intercepts or reclassifies a child's failures.
func (s *Suite) Run(r *Controller) {
	if r.ShouldStop() {
		return
	}

	r.StartSuite(s)
	for _, t := range s.tests {
		if r.ShouldStop() {
			break
		}
		t.Run(r)
	}
	r.EndSuite(s)
}
