package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"plugtester/engine"
)

func init() {
	// keep rendered output free of ANSI codes in assertions
	color.NoColor = true
}

// locatedFault is a fault that knows its source position.
type locatedFault struct {
	msg  string
	file string
	line int
}

func (f *locatedFault) Error() string             { return f.msg }
func (f *locatedFault) SourceLine() (string, int) { return f.file, f.line }

func passing() error { return nil }

// finishedCollector returns a collector as left behind by a run with
// tests [ok, broken, exploded], where broken failed an assertion and
// exploded raised an unexpected fault.
func finishedCollector() *engine.Collector {
	ok := engine.NewCase("ok", passing)
	broken := engine.NewCase("broken", passing)
	exploded := engine.NewCase("exploded", passing)

	c := engine.NewCollector()
	c.StartTest(ok)
	c.StartTest(broken)
	c.AddFailure(engine.Failure{
		Test:  broken,
		Fault: &locatedFault{msg: "expected <3> but was <4>", file: "broken.go", line: 42},
	})
	c.StartTest(exploded)
	c.AddFailure(engine.Failure{
		Test:    exploded,
		Fault:   errors.New("panic: nil dereference"),
		IsError: true,
	})
	return c
}

func TestTextOutputter(t *testing.T) {
	t.Run("successful run", func(t *testing.T) {
		c := engine.NewCollector()
		c.StartTest(engine.NewCase("a", passing))
		c.StartTest(engine.NewCase("b", passing))

		var buf bytes.Buffer
		if err := NewTextOutputter(c, &buf).Write(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := buf.String(); got != "OK (2 tests)\n" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("failing run", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewTextOutputter(finishedCollector(), &buf).Write(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := buf.String()
		for _, want := range []string{
			"!!!FAILURES!!!",
			"Run: 3   Failures: 1   Errors: 1",
			"1) test: broken (Assertion)",
			"expected <3> but was <4>",
			"2) test: exploded (Error)",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
		// report order, not sorted
		if strings.Index(got, "broken") > strings.Index(got, "exploded") {
			t.Error("failures rendered out of report order")
		}
	})
}

func TestCompilerOutputter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCompilerOutputter(finishedCollector(), &buf).Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buf.String()

	if !strings.Contains(got, "broken.go:42: assertion: expected <3> but was <4>") {
		t.Errorf("located fault not rendered in file:line form:\n%s", got)
	}
	if !strings.Contains(got, "exploded: error: panic: nil dereference") {
		t.Errorf("unlocated fault not rendered by test name:\n%s", got)
	}
	if !strings.Contains(got, "Run: 3   Failures: 1   Errors: 1") {
		t.Errorf("statistics line missing:\n%s", got)
	}
}

func TestCompilerOutputter_Success(t *testing.T) {
	c := engine.NewCollector()
	c.StartTest(engine.NewCase("a", passing))

	var buf bytes.Buffer
	if err := NewCompilerOutputter(c, &buf).Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "OK (1 tests)\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestXMLOutputter(t *testing.T) {
	var buf bytes.Buffer
	o := NewXMLOutputter(finishedCollector(), &buf, "ISO-8859-1")
	o.SetStyleSheet("report.xsl")
	if err := o.Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		`<?xml version="1.0" encoding="ISO-8859-1" standalone="yes"?>`,
		`<?xml-stylesheet type="text/xsl" href="report.xsl"?>`,
		"<TestRun>",
		"<FailedTests>",
		`<FailedTest id="2">`,
		"<Name>broken</Name>",
		"<FailureType>Assertion</FailureType>",
		"<File>broken.go</File>",
		"<Line>42</Line>",
		`<FailedTest id="3">`,
		"<FailureType>Error</FailureType>",
		"<SuccessfulTests>",
		`<Test id="1">`,
		"<Name>ok</Name>",
		"<Tests>3</Tests>",
		"<FailuresTotal>2</FailuresTotal>",
		"<Errors>1</Errors>",
		"<Failures>1</Failures>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("xml output missing %q:\n%s", want, got)
		}
	}
}

func TestXMLOutputter_EscapesContent(t *testing.T) {
	c := engine.NewCollector()
	tc := engine.NewCase("escapes", passing)
	c.StartTest(tc)
	c.AddFailure(engine.Failure{Test: tc, Fault: errors.New(`expected "<nil>" & got more`)})

	var buf bytes.Buffer
	if err := NewXMLOutputter(c, &buf, "").Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "&lt;nil&gt;") || !strings.Contains(got, "&amp;") {
		t.Errorf("special characters not escaped:\n%s", got)
	}
	if !strings.Contains(got, `encoding="UTF-8"`) {
		t.Errorf("default encoding missing:\n%s", got)
	}
}

// countingHook records how often each hook window fired.
type countingHook struct {
	BaseXMLHook
	begin, end, failed, successful, stats int
}

func (h *countingHook) BeginDocument(*Document) { h.begin++ }
func (h *countingHook) EndDocument(*Document)   { h.end++ }

func (h *countingHook) FailTestAdded(_ *Document, el *Element, _ engine.Test, _ engine.Failure) {
	el.AddTextChild("Annotation", "added by hook")
	h.failed++
}

func (h *countingHook) SuccessfulTestAdded(*Document, *Element, engine.Test) { h.successful++ }
func (h *countingHook) StatisticsAdded(*Document, *Element)                  { h.stats++ }

func TestXMLOutputter_Hooks(t *testing.T) {
	hook := &countingHook{}
	var buf bytes.Buffer
	o := NewXMLOutputter(finishedCollector(), &buf, "")
	o.AddHook(hook)
	if err := o.Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hook.begin != 1 || hook.end != 1 || hook.stats != 1 {
		t.Errorf("document hooks fired %d/%d/%d times, want 1/1/1",
			hook.begin, hook.end, hook.stats)
	}
	if hook.failed != 2 || hook.successful != 1 {
		t.Errorf("per-test hooks fired %d/%d times, want 2/1", hook.failed, hook.successful)
	}
	if !strings.Contains(buf.String(), "<Annotation>added by hook</Annotation>") {
		t.Error("hook-added element missing from output")
	}

	// detached hooks must not fire again
	o.RemoveHook(hook)
	buf.Reset()
	if err := o.Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hook.begin != 1 {
		t.Error("removed hook still firing")
	}
}
