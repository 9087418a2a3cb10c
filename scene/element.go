// Package scene parses a rendered SVG document into an element tree and
// builds the connection index that maps each edge to its resolved endpoint
// nodes and label.
package scene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoRoot is returned when the SVG text contains no svg element.
var ErrNoRoot = errors.New("no svg root element found")

// Element is one node of the parsed SVG tree. Attribute order is preserved
// so a re-serialized document stays diffable against the renderer's output.
type Element struct {
	Name     string
	Attrs    map[string]string
	order    []string
	Children []*Element
	Text     string
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// HasAttr reports whether the attribute is present, even if empty.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attrs[name]
	return ok
}

// SetAttr sets an attribute value, appending to the attribute order on first
// write.
func (e *Element) SetAttr(name, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	if _, ok := e.Attrs[name]; !ok {
		e.order = append(e.order, name)
	}
	e.Attrs[name] = value
}

// ID returns the element's id attribute.
func (e *Element) ID() string {
	return e.Attr("id")
}

// Walk visits e and every descendant in document order.
func (e *Element) Walk(visit func(*Element)) {
	visit(e)
	for _, c := range e.Children {
		c.Walk(visit)
	}
}

// FindByID returns the first descendant (or e itself) with the given id.
func (e *Element) FindByID(id string) *Element {
	var found *Element
	e.Walk(func(el *Element) {
		if found == nil && el.ID() == id {
			found = el
		}
	})
	return found
}

// Child returns the first direct child with the given element name.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SVG serializes the element tree back to markup.
func (e *Element) SVG() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Element) write(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.Name)
	for _, name := range e.order {
		fmt.Fprintf(sb, ` %s="%s"`, name, escapeAttr(e.Attrs[name]))
	}
	if len(e.Children) == 0 && e.Text == "" {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	if e.Text != "" {
		sb.WriteString(escapeText(e.Text))
	}
	for _, c := range e.Children {
		c.write(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.Name)
	sb.WriteByte('>')
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// parseSVG decodes markup into an element tree and returns the svg root.
func parseSVG(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: make(map[string]string)}
			for _, a := range t.Attr {
				el.SetAttr(attrName(a), a.Value)
			}
			if len(stack) == 0 {
				if root == nil && el.Name == "svg" {
					root = el
				}
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				text := strings.TrimSpace(string(t))
				if text != "" {
					stack[len(stack)-1].Text += text
				}
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

func attrName(a xml.Attr) string {
	if a.Name.Space == "" {
		return a.Name.Local
	}
	if a.Name.Space == "xmlns" {
		return "xmlns:" + a.Name.Local
	}
	return a.Name.Space + ":" + a.Name.Local
}
