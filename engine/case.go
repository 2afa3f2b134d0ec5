package engine

// Case is a leaf test node: a single executable unit with no children.
// Its body reports an assertion violation by returning a non-nil error;
// anything it panics with is classified as an unexpected fault. Both are
// caught by the controller, never by the case itself.
type Case struct {
	name     string
	setUp    func() error
	body     func() error
	tearDown func() error
}

// NewCase creates a leaf test with the given name and body.
func NewCase(name string, body func() error) *Case {
	return &Case{name: name, body: body}
}

// NewFixtureCase creates a leaf test with setUp and tearDown fixture
// functions around the body. Either fixture may be nil. If setUp fails,
// neither the body nor tearDown runs.
func NewFixtureCase(name string, setUp, body, tearDown func() error) *Case {
	return &Case{name: name, setUp: setUp, body: body, tearDown: tearDown}
}

// Name returns the case name.
func (c *Case) Name() string {
	return c.name
}

// Describe returns the case's report label.
func (c *Case) Describe() string {
	return c.name
}

// CountCases returns 1: a leaf is exactly one case.
func (c *Case) CountCases() int {
	return 1
}

// Run executes the case under the controller. StartTest and EndTest are
// always paired; zero or more AddFailure events may occur in between
// (setUp, body and tearDown are protected independently, so one case can
// report several discrete failures). If a stop was already requested the
// case emits no events at all.
func (c *Case) Run(r *Controller) {
	if r.ShouldStop() {
		return
	}

	r.StartTest(c)
	defer r.EndTest(c)

	if c.setUp != nil {
		if !r.Protect(c, c.setUp) {
			return
		}
	}
	if c.body != nil {
		r.Protect(c, c.body)
	}
	if c.tearDown != nil {
		r.Protect(c, c.tearDown)
	}
}
