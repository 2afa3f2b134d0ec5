package engine

import "runtime/debug"

// Controller drives one run. It holds the ordered listener list and the
// cooperative stop flag, and is the single place where test faults are
// caught and classified. A controller is owned by the goroutine driving
// the run; it provides no synchronization and must not be shared between
// concurrent runs.
type Controller struct {
	listeners []Listener
	stop      bool
}

// NewController creates a controller with no listeners.
func NewController() *Controller {
	return &Controller{}
}

// AddListener appends a listener. Registration order is broadcast order
// and must not change while a traversal is in progress.
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// RemoveListener detaches a previously added listener, by identity.
func (c *Controller) RemoveListener(l Listener) {
	for i, x := range c.listeners {
		if x == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Stop requests cooperative termination: no further StartSuite or
// StartTest events are issued anywhere in the tree, but nodes already
// inside Run complete their own bookkeeping before unwinding.
func (c *Controller) Stop() {
	c.stop = true
}

// ShouldStop reports whether a stop was requested.
func (c *Controller) ShouldStop() bool {
	return c.stop
}

// Reset clears the stop flag so the controller can drive another run.
func (c *Controller) Reset() {
	c.stop = false
}

// StartSuite broadcasts the event to every listener in order.
func (c *Controller) StartSuite(t Test) {
	for _, l := range c.listeners {
		l.StartSuite(t)
	}
}

// EndSuite broadcasts the event to every listener in order.
func (c *Controller) EndSuite(t Test) {
	for _, l := range c.listeners {
		l.EndSuite(t)
	}
}

// StartTest broadcasts the event to every listener in order.
func (c *Controller) StartTest(t Test) {
	for _, l := range c.listeners {
		l.StartTest(t)
	}
}

// EndTest broadcasts the event to every listener in order.
func (c *Controller) EndTest(t Test) {
	for _, l := range c.listeners {
		l.EndTest(t)
	}
}

// AddFailure broadcasts a captured fault to every listener in order.
// Failures are reported as received: a test raising several discrete
// violations yields several events, none deduplicated.
func (c *Controller) AddFailure(f Failure) {
	for _, l := range c.listeners {
		l.AddFailure(f)
	}
}

// Protect runs f on behalf of t, capturing and classifying its outcome.
// A non-nil error is recorded as an assertion violation; a panic is
// recovered, wrapped in a PanicError and recorded as an unexpected
// fault. Returns true if f completed without reporting a failure.
// Failures recorded here never abort the run.
func (c *Controller) Protect(t Test, f func() error) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			c.AddFailure(Failure{
				Test:    t,
				Fault:   &PanicError{Value: v, Stack: debug.Stack()},
				IsError: true,
			})
			ok = false
		}
	}()

	if err := f(); err != nil {
		c.AddFailure(Failure{Test: t, Fault: err})
		return false
	}
	return true
}
