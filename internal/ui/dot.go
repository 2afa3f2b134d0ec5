package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"plugtester/engine"
)

// DotListener is the default progress style: one dot per started test,
// a red marker per failure.
type DotListener struct {
	engine.BaseListener
	w io.Writer
}

// NewDotListener creates a DotListener writing to w.
func NewDotListener(w io.Writer) *DotListener {
	return &DotListener{w: w}
}

// StartTest prints one dot.
func (l *DotListener) StartTest(engine.Test) {
	fmt.Fprint(l.w, ".")
}

// AddFailure prints "F" for an assertion violation, "E" for an
// unexpected fault.
func (l *DotListener) AddFailure(f engine.Failure) {
	marker := "F"
	if f.IsError {
		marker = "E"
	}
	color.New(color.FgRed).Fprint(l.w, marker)
}

// Finish terminates the progress line.
func (l *DotListener) Finish() {
	fmt.Fprintln(l.w)
}
