package engine

// Collector is the built-in listener that aggregates a run's outcome:
// the started tests in start order and every reported failure in report
// order. Renderers consume it read-only after the run completes; it is
// never mutated by them and never sorted.
type Collector struct {
	BaseListener
	tests    []Test
	failures []Failure
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// StartTest records a started test.
func (c *Collector) StartTest(t Test) {
	c.tests = append(c.tests, t)
}

// AddFailure appends the failure, preserving report order.
func (c *Collector) AddFailure(f Failure) {
	c.failures = append(c.failures, f)
}

// WasSuccessful reports overall success: no failure was recorded.
func (c *Collector) WasSuccessful() bool {
	return len(c.failures) == 0
}

// RunCount returns the number of tests started.
func (c *Collector) RunCount() int {
	return len(c.tests)
}

// Tests returns the started tests in start order.
func (c *Collector) Tests() []Test {
	return c.tests
}

// Failures returns the recorded failures in report order.
func (c *Collector) Failures() []Failure {
	return c.failures
}

// FailureCount returns the total number of recorded failures.
func (c *Collector) FailureCount() int {
	return len(c.failures)
}

// ErrorCount returns the number of unexpected faults (IsError).
func (c *Collector) ErrorCount() int {
	n := 0
	for _, f := range c.failures {
		if f.IsError {
			n++
		}
	}
	return n
}

// AssertionCount returns the number of assertion violations.
func (c *Collector) AssertionCount() int {
	return len(c.failures) - c.ErrorCount()
}

// Reset discards all collected state.
func (c *Collector) Reset() {
	c.tests = nil
	c.failures = nil
}
