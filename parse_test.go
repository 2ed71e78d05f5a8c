package ncxml

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestParseBuildsTree(t *testing.T) {
	e, err := Parse(`<a x="1">hello<b y="2"/>tail</a>`)
	assert.NoError(t, err)

	assert.Equal(t, "a", e.Tag)
	assert.Equal(t, []Attr{{Name: "x", Value: "1"}}, e.Attrs)
	assert.Equal(t, "hello", e.Text)
	assert.Len(t, e.Children, 1)

	b := e.Children[0]
	assert.Equal(t, "b", b.Tag)
	assert.Equal(t, []Attr{{Name: "y", Value: "2"}}, b.Attrs)
	assert.Equal(t, "tail", b.Tail)
}

func TestParseQualifiesNames(t *testing.T) {
	e, err := Parse(`<rpc xmlns="urn:ietf:params:xml:ns:netconf:base:1.0" message-id="101"><get/></rpc>`)
	assert.NoError(t, err)

	assert.Equal(t, Qualify("rpc"), e.Tag)
	// xmlns declarations are not element attributes
	assert.Equal(t, []Attr{{Name: "message-id", Value: "101"}}, e.Attrs)
	assert.Equal(t, Qualify("get"), e.Children[0].Tag)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(`<a><b></a>`)
	assert.Error(t, err)

	_, err = Parse(`<a>`)
	assert.Error(t, err)
}

func TestParseNoElements(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)

	_, err = Parse("   ")
	assert.Error(t, err)
}

func TestParseRejectsContentAfterRoot(t *testing.T) {
	_, err := Parse(`<a/><b/>`)
	assert.Error(t, err)
}

func TestToElementIdentity(t *testing.T) {
	e := NewElement("rpc", nil)
	got, err := ToElement(e)
	assert.NoError(t, err)
	assert.Same(t, e, got)
}

func TestToElementParsesRaw(t *testing.T) {
	got, err := ToElement(Raw(`<data>value</data>`))
	assert.NoError(t, err)
	assert.Equal(t, "data", got.Tag)
	assert.Equal(t, "value", got.Text)

	_, err = ToElement(Raw(`not xml`))
	assert.Error(t, err)
}

func TestParseRoot(t *testing.T) {
	tag, attrs, err := ParseRoot(`<a x="1"><b/></a>`)
	assert.NoError(t, err)
	assert.Equal(t, "a", tag)
	assert.Equal(t, map[string]string{"x": "1"}, attrs)
}

func TestParseRootStopsAtFirstStartEvent(t *testing.T) {
	// everything beyond the root start tag is irrelevant, damaged or not
	tag, attrs, err := ParseRoot(`<a x="1"><b></a>`)
	assert.NoError(t, err)
	assert.Equal(t, "a", tag)
	assert.Equal(t, map[string]string{"x": "1"}, attrs)
}

func TestParseRootQualifiesNames(t *testing.T) {
	tag, attrs, err := ParseRoot(
		`<rpc-reply xmlns="urn:ietf:params:xml:ns:netconf:base:1.0" message-id="1"><huge/></rpc-reply>`)
	assert.NoError(t, err)
	assert.Equal(t, Qualify("rpc-reply"), tag)
	assert.Equal(t, map[string]string{"message-id": "1"}, attrs)
}

func TestParseRootNoElements(t *testing.T) {
	_, _, err := ParseRoot("")
	assert.Error(t, err)

	_, _, err = ParseRoot("<!-- only a comment -->")
	assert.Error(t, err)
}
