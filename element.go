package ncxml

import (
	"sort"

	"github.com/imdario/mergo"
)

// Attr is a single attribute of an Element. Name may itself be a
// Clark-notation qualified name.
type Attr struct {
	Name  string
	Value string
}

// Element is a node in an XML tree: a tag (Clark-notation qualified when
// namespaced), an ordered attribute list, text content, trailing tail text,
// and an ordered sequence of children. Trees are built by Parse or by the
// NewElement/SubElement constructors.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Tail     string
	Children []*Element
}

// NewElement creates a detached element. The extra maps are merged over
// attrs with override precedence, so a name that appears in both takes its
// value from the later map. Merged attributes are recorded in sorted name
// order to keep serialization deterministic.
func NewElement(tag string, attrs map[string]string, extra ...map[string]string) *Element {
	merged := make(map[string]string, len(attrs))
	for name, value := range attrs {
		merged[name] = value
	}
	for _, override := range extra {
		_ = mergo.Merge(&merged, override, mergo.WithOverride)
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	e := &Element{Tag: tag}
	for _, name := range names {
		e.Attrs = append(e.Attrs, Attr{Name: name, Value: merged[name]})
	}
	return e
}

// SubElement creates an element as for NewElement and appends it as the last
// child of parent.
func SubElement(parent *Element, tag string, attrs map[string]string, extra ...map[string]string) *Element {
	e := NewElement(tag, attrs, extra...)
	parent.AddChild(e)
	return e
}

// AddChild appends c as the last child of e.
func (e *Element) AddChild(c *Element) {
	e.Children = append(e.Children, c)
}

// Attribute delivers the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets the named attribute, replacing an existing value in
// place or appending a new attribute.
func (e *Element) SetAttribute(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Find delivers the first direct child with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll delivers all direct children with the given tag.
func (e *Element) FindAll(tag string) []*Element {
	var found []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			found = append(found, c)
		}
	}
	return found
}

// Copy delivers a deep copy of e and its children.
func (e *Element) Copy() *Element {
	dup := &Element{Tag: e.Tag, Text: e.Text, Tail: e.Tail}
	if len(e.Attrs) > 0 {
		dup.Attrs = make([]Attr, len(e.Attrs))
		copy(dup.Attrs, e.Attrs)
	}
	for _, c := range e.Children {
		dup.Children = append(dup.Children, c.Copy())
	}
	return dup
}
