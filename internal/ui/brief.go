package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"plugtester/engine"
)

// BriefListener prints one line per test: its name, then OK or the
// failure kind.
type BriefListener struct {
	engine.BaseListener
	w      io.Writer
	failed bool
	kind   string
}

// NewBriefListener creates a BriefListener writing to w.
func NewBriefListener(w io.Writer) *BriefListener {
	return &BriefListener{w: w}
}

// StartTest prints the test name.
func (l *BriefListener) StartTest(t engine.Test) {
	l.failed = false
	fmt.Fprint(l.w, t.Name())
}

// AddFailure remembers the failure kind for EndTest.
func (l *BriefListener) AddFailure(f engine.Failure) {
	l.failed = true
	l.kind = f.Kind()
}

// EndTest completes the line with the test's outcome.
func (l *BriefListener) EndTest(engine.Test) {
	if l.failed {
		color.New(color.FgRed).Fprintf(l.w, " : %s\n", l.kind)
		return
	}
	color.New(color.FgGreen).Fprint(l.w, " : OK\n")
}

// Finish is a no-op: every line is already terminated.
func (l *BriefListener) Finish() {}
