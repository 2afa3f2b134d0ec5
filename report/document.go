// Package report renders a finished run: outputters consume the
// Collector read-only after the run has completed and write one
// representation (plain text, compiler-diagnostic, or XML) to a sink.
// Rendering never mutates collector state, and several outputters may
// share one collector.
package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// attribute is one ordered XML attribute.
type attribute struct {
	name  string
	value string
}

// Element is a node of the XML document model. Outputter hooks may grow
// the tree before it is serialized, which is why the document is built
// explicitly instead of marshalled from structs.
type Element struct {
	name       string
	attributes []attribute
	content    string
	children   []*Element
}

// NewElement creates an element with the given tag name.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// AddAttribute appends an attribute, keeping declaration order.
func (e *Element) AddAttribute(name, value string) *Element {
	e.attributes = append(e.attributes, attribute{name: name, value: value})
	return e
}

// SetContent sets the element's text content.
func (e *Element) SetContent(content string) *Element {
	e.content = content
	return e
}

// AddChild appends a child element and returns it.
func (e *Element) AddChild(child *Element) *Element {
	e.children = append(e.children, child)
	return child
}

// AddTextChild appends a child carrying only text content.
func (e *Element) AddTextChild(name, content string) *Element {
	return e.AddChild(NewElement(name).SetContent(content))
}

// Name returns the element's tag name.
func (e *Element) Name() string {
	return e.name
}

// Children returns the child elements in document order.
func (e *Element) Children() []*Element {
	return e.children
}

func (e *Element) write(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s<%s", indent, e.name); err != nil {
		return err
	}
	for _, a := range e.attributes {
		if _, err := fmt.Fprintf(w, " %s=\"%s\"", a.name, escape(a.value)); err != nil {
			return err
		}
	}
	if len(e.children) == 0 && e.content == "" {
		_, err := fmt.Fprintf(w, "/>\n")
		return err
	}
	if len(e.children) == 0 {
		_, err := fmt.Fprintf(w, ">%s</%s>\n", escape(e.content), e.name)
		return err
	}
	if _, err := fmt.Fprintf(w, ">\n"); err != nil {
		return err
	}
	if e.content != "" {
		if _, err := fmt.Fprintf(w, "%s  %s\n", indent, escape(e.content)); err != nil {
			return err
		}
	}
	for _, child := range e.children {
		if err := child.write(w, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</%s>\n", indent, e.name)
	return err
}

// escape XML-escapes text and attribute content.
func escape(s string) string {
	var buf bytes.Buffer
	// error is always nil for a bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Document is a complete XML document: declaration, optional stylesheet
// processing instruction, and a root element.
type Document struct {
	encoding   string
	styleSheet string
	root       *Element
}

// NewDocument creates a document with the given text encoding; empty
// means UTF-8.
func NewDocument(encoding string) *Document {
	if encoding == "" {
		encoding = "UTF-8"
	}
	return &Document{encoding: encoding}
}

// SetStyleSheet sets the href of an xml-stylesheet processing
// instruction; empty removes it.
func (d *Document) SetStyleSheet(href string) {
	d.styleSheet = href
}

// SetRoot sets the document's root element.
func (d *Document) SetRoot(root *Element) {
	d.root = root
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// WriteTo serializes the document.
func (d *Document) WriteTo(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"%s\" standalone=\"yes\"?>\n", d.encoding); err != nil {
		return err
	}
	if d.styleSheet != "" {
		if _, err := fmt.Fprintf(w, "<?xml-stylesheet type=\"text/xsl\" href=\"%s\"?>\n", escape(d.styleSheet)); err != nil {
			return err
		}
	}
	if d.root == nil {
		return nil
	}
	return d.root.write(w, 0)
}
