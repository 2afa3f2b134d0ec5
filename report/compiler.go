package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"plugtester/engine"
)

// CompilerOutputter renders failures one per line in compiler-diagnostic
// form, so editors and CI log scrapers can jump to them: "file:line:
// kind: message" when the fault carries a source location, otherwise
// "test: kind: message".
type CompilerOutputter struct {
	collector *engine.Collector
	w         io.Writer
}

// NewCompilerOutputter creates an outputter writing to w.
func NewCompilerOutputter(c *engine.Collector, w io.Writer) *CompilerOutputter {
	return &CompilerOutputter{collector: c, w: w}
}

// Write renders the report. The collector is read only.
func (o *CompilerOutputter) Write() error {
	for _, f := range o.collector.Failures() {
		kind := strings.ToLower(f.Kind())
		message := firstLine(f.Message())
		var err error
		if loc, ok := f.Fault.(engine.SourceLocator); ok {
			file, line := loc.SourceLine()
			_, err = fmt.Fprintf(o.w, "%s:%d: %s: %s\n", file, line, kind, message)
		} else {
			_, err = fmt.Fprintf(o.w, "%s: %s: %s\n", f.Test.Describe(), kind, message)
		}
		if err != nil {
			return err
		}
	}

	if o.collector.WasSuccessful() {
		_, err := color.New(color.FgGreen).Fprintf(o.w, "OK (%d tests)\n", o.collector.RunCount())
		return err
	}
	_, err := color.New(color.FgRed).Fprintf(o.w, "Run: %d   Failures: %d   Errors: %d\n",
		o.collector.RunCount(), o.collector.AssertionCount(), o.collector.ErrorCount())
	return err
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
