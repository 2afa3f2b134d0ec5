package report

import (
	"fmt"
	"io"
	"strconv"

	"plugtester/engine"
)

// XMLHook lets a plug-in extend the XML report while it is being built.
// Hooks are attached only for the duration of a single Write call.
type XMLHook interface {
	// BeginDocument is called once the root element exists, before any
	// result element is added.
	BeginDocument(doc *Document)

	// EndDocument is called after the whole document has been built,
	// just before serialization.
	EndDocument(doc *Document)

	// FailTestAdded is called after a FailedTest element was added.
	FailTestAdded(doc *Document, el *Element, t engine.Test, f engine.Failure)

	// SuccessfulTestAdded is called after a Test element was added.
	SuccessfulTestAdded(doc *Document, el *Element, t engine.Test)

	// StatisticsAdded is called after the Statistics element was added.
	StatisticsAdded(doc *Document, el *Element)
}

// BaseXMLHook is a no-op XMLHook for embedding.
type BaseXMLHook struct{}

func (BaseXMLHook) BeginDocument(*Document)                                        {}
func (BaseXMLHook) EndDocument(*Document)                                          {}
func (BaseXMLHook) FailTestAdded(*Document, *Element, engine.Test, engine.Failure) {}
func (BaseXMLHook) SuccessfulTestAdded(*Document, *Element, engine.Test)           {}
func (BaseXMLHook) StatisticsAdded(*Document, *Element)                            {}

// XMLOutputter renders a finished collector as a structured XML document:
// a TestRun root holding FailedTests, SuccessfulTests and Statistics.
type XMLOutputter struct {
	collector  *engine.Collector
	w          io.Writer
	encoding   string
	styleSheet string
	hooks      []XMLHook
}

// NewXMLOutputter creates an outputter writing to w with the given text
// encoding (empty means UTF-8).
func NewXMLOutputter(c *engine.Collector, w io.Writer, encoding string) *XMLOutputter {
	return &XMLOutputter{collector: c, w: w, encoding: encoding}
}

// SetStyleSheet sets the stylesheet reference emitted in the document.
func (o *XMLOutputter) SetStyleSheet(href string) {
	o.styleSheet = href
}

// AddHook attaches a formatting hook for the next Write.
func (o *XMLOutputter) AddHook(h XMLHook) {
	o.hooks = append(o.hooks, h)
}

// RemoveHook detaches a previously attached hook, by identity.
func (o *XMLOutputter) RemoveHook(h XMLHook) {
	for i, x := range o.hooks {
		if x == h {
			o.hooks = append(o.hooks[:i], o.hooks[i+1:]...)
			return
		}
	}
}

// Write builds and serializes the document. The collector is read only.
func (o *XMLOutputter) Write() error {
	doc := NewDocument(o.encoding)
	doc.SetStyleSheet(o.styleSheet)
	root := NewElement("TestRun")
	doc.SetRoot(root)

	for _, h := range o.hooks {
		h.BeginDocument(doc)
	}

	// ids follow start order, 1-based
	ids := make(map[engine.Test]int, len(o.collector.Tests()))
	for i, t := range o.collector.Tests() {
		if _, seen := ids[t]; !seen {
			ids[t] = i + 1
		}
	}
	failed := make(map[engine.Test]bool, len(o.collector.Failures()))
	for _, f := range o.collector.Failures() {
		failed[f.Test] = true
	}

	failedTests := root.AddChild(NewElement("FailedTests"))
	for _, f := range o.collector.Failures() {
		el := failedTests.AddChild(NewElement("FailedTest"))
		el.AddAttribute("id", strconv.Itoa(ids[f.Test]))
		el.AddTextChild("Name", f.Test.Describe())
		el.AddTextChild("FailureType", f.Kind())
		if loc, ok := f.Fault.(engine.SourceLocator); ok {
			file, line := loc.SourceLine()
			location := el.AddChild(NewElement("Location"))
			location.AddTextChild("File", file)
			location.AddTextChild("Line", strconv.Itoa(line))
		}
		el.AddTextChild("Message", f.Message())
		for _, h := range o.hooks {
			h.FailTestAdded(doc, el, f.Test, f)
		}
	}

	successfulTests := root.AddChild(NewElement("SuccessfulTests"))
	for _, t := range o.collector.Tests() {
		if failed[t] {
			continue
		}
		el := successfulTests.AddChild(NewElement("Test"))
		el.AddAttribute("id", strconv.Itoa(ids[t]))
		el.AddTextChild("Name", t.Describe())
		for _, h := range o.hooks {
			h.SuccessfulTestAdded(doc, el, t)
		}
	}

	stats := root.AddChild(NewElement("Statistics"))
	stats.AddTextChild("Tests", strconv.Itoa(o.collector.RunCount()))
	stats.AddTextChild("FailuresTotal", strconv.Itoa(o.collector.FailureCount()))
	stats.AddTextChild("Errors", strconv.Itoa(o.collector.ErrorCount()))
	stats.AddTextChild("Failures", strconv.Itoa(o.collector.AssertionCount()))
	for _, h := range o.hooks {
		h.StatisticsAdded(doc, stats)
	}

	for _, h := range o.hooks {
		h.EndDocument(doc)
	}

	if err := doc.WriteTo(o.w); err != nil {
		return fmt.Errorf("write xml report: %w", err)
	}
	return nil
}
