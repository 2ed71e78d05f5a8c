package ncxml

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestNewElementMergesAttributes(t *testing.T) {
	e := NewElement("config",
		map[string]string{"x": "1", "y": "2"},
		map[string]string{"y": "override", "z": "3"})

	assert.Equal(t, "config", e.Tag)
	assert.Equal(t, []Attr{
		{Name: "x", Value: "1"},
		{Name: "y", Value: "override"},
		{Name: "z", Value: "3"},
	}, e.Attrs)
}

func TestNewElementWithoutAttributes(t *testing.T) {
	e := NewElement("data", nil)
	assert.Empty(t, e.Attrs)
	assert.Empty(t, e.Children)
}

func TestSubElementAppendsChild(t *testing.T) {
	parent := NewElement("rpc", nil)
	first := SubElement(parent, "get-config", nil)
	second := SubElement(parent, "source", map[string]string{"s": "running"})

	assert.Equal(t, []*Element{first, second}, parent.Children)
	value, ok := second.Attribute("s")
	assert.True(t, ok)
	assert.Equal(t, "running", value)
}

func TestSetAttribute(t *testing.T) {
	e := NewElement("rpc", map[string]string{"message-id": "1"})

	e.SetAttribute("message-id", "2")
	value, ok := e.Attribute("message-id")
	assert.True(t, ok)
	assert.Equal(t, "2", value)
	assert.Len(t, e.Attrs, 1)

	e.SetAttribute("other", "x")
	assert.Len(t, e.Attrs, 2)

	_, ok = e.Attribute("absent")
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	parent := NewElement("rpc-reply", nil)
	data := SubElement(parent, "data", nil)
	SubElement(parent, "other", nil)
	SubElement(parent, "data", nil)

	assert.Same(t, data, parent.Find("data"))
	assert.Nil(t, parent.Find("missing"))
	assert.Len(t, parent.FindAll("data"), 2)
	assert.Empty(t, parent.FindAll("missing"))
}

func TestCopyIsDeep(t *testing.T) {
	e := NewElement("rpc", map[string]string{"message-id": "1"})
	child := SubElement(e, "get", nil)
	child.Text = "body"

	dup := e.Copy()
	assert.Equal(t, e, dup)

	dup.SetAttribute("message-id", "2")
	dup.Children[0].Text = "changed"

	value, _ := e.Attribute("message-id")
	assert.Equal(t, "1", value)
	assert.Equal(t, "body", child.Text)
}
