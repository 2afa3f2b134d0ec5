package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"plugtester/engine"
)

// TextOutputter renders a finished collector as plain text: a one-line
// summary on success, or statistics followed by every failure in report
// order.
type TextOutputter struct {
	collector *engine.Collector
	w         io.Writer
}

// NewTextOutputter creates an outputter writing to w.
func NewTextOutputter(c *engine.Collector, w io.Writer) *TextOutputter {
	return &TextOutputter{collector: c, w: w}
}

// Write renders the report. The collector is read only.
func (o *TextOutputter) Write() error {
	if o.collector.WasSuccessful() {
		if _, err := color.New(color.FgGreen).Fprintf(o.w, "OK (%d tests)\n", o.collector.RunCount()); err != nil {
			return err
		}
		return nil
	}

	if _, err := color.New(color.FgRed, color.Bold).Fprintln(o.w, "!!!FAILURES!!!"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(o.w, "Test Results:\nRun: %d   Failures: %d   Errors: %d\n\n",
		o.collector.RunCount(), o.collector.AssertionCount(), o.collector.ErrorCount()); err != nil {
		return err
	}
	for i, f := range o.collector.Failures() {
		if _, err := fmt.Fprintf(o.w, "%d) test: %s (%s)\n%s\n\n",
			i+1, f.Test.Describe(), f.Kind(), f.Message()); err != nil {
			return err
		}
	}
	return nil
}
