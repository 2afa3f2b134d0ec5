package engine

// Listener observes the lifecycle events of one run. Events for a single
// run arrive strictly sequentially, in traversal order; for each event
// listeners are notified in registration order.
type Listener interface {
	// StartSuite is sent when a composite is entered, before any child.
	StartSuite(t Test)

	// EndSuite is sent after all of a composite's children completed or
	// the traversal stopped early.
	EndSuite(t Test)

	// StartTest is sent before a leaf's body executes.
	StartTest(t Test)

	// EndTest is sent after a leaf's body, whether or not it failed.
	EndTest(t Test)

	// AddFailure is sent once per captured fault while a leaf executes.
	AddFailure(f Failure)
}

// BaseListener is a no-op Listener for embedding, so implementations
// only spell out the events they care about.
type BaseListener struct{}

func (BaseListener) StartSuite(Test)    {}
func (BaseListener) EndSuite(Test)      {}
func (BaseListener) StartTest(Test)     {}
func (BaseListener) EndTest(Test)       {}
func (BaseListener) AddFailure(Failure) {}
