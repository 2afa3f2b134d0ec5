// Package engine implements the composite test tree and the result
// protocol that drives it: test nodes (Case, Suite), the Controller that
// broadcasts lifecycle events to an ordered set of Listeners, the
// Collector that aggregates outcomes, and path-based subtree resolution.
package engine

// Test is the common contract for runnable test units. Both leaves (Case)
// and groupings (Suite) implement it.
type Test interface {
	// Name returns the node's name, used for path resolution.
	Name() string

	// Describe returns a human-readable label for reports.
	Describe() string

	// CountCases returns the number of leaf cases reachable from this node.
	CountCases() int

	// Run executes the node, reporting outcomes through the controller.
	Run(c *Controller)
}
