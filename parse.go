package ncxml

import (
	"context"
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Source is XML input: either raw document text (Raw) or an already parsed
// *Element. ToElement resolves a Source to its element form.
type Source interface {
	element() (*Element, error)
}

// Raw is unparsed XML document text.
type Raw string

func (r Raw) element() (*Element, error) {
	return Parse(string(r))
}

func (e *Element) element() (*Element, error) {
	return e, nil
}

// ToElement resolves v to an Element: identity for an *Element, a full
// parse for Raw. Syntax errors from the decoder are returned as-is.
func ToElement(v Source) (*Element, error) {
	return v.element()
}

// Parse builds an element tree from an XML document.
func Parse(raw string) (*Element, error) {
	return ParseContext(context.Background(), raw)
}

// ParseContext is Parse with trace hooks taken from ctx.
func ParseContext(ctx context.Context, raw string) (root *Element, err error) {
	trace := ContextTrace(ctx)
	trace.ParseStart(raw)
	defer func(begin time.Time) {
		trace.ParseDone(root, err, time.Since(begin))
	}(time.Now())

	root, err = parse(raw)
	if err != nil {
		trace.Error("parse", err)
	}
	return root, err
}

func parse(raw string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))

	var root, cur *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if cur == nil && root != nil {
				return nil, errors.New("unexpected element after document root")
			}
			e := &Element{Tag: clarkName(t.Name)}
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}
				e.Attrs = append(e.Attrs, Attr{Name: clarkName(a.Name), Value: a.Value})
			}
			if cur == nil {
				root = e
			} else {
				cur.Children = append(cur.Children, e)
			}
			stack = append(stack, e)
			cur = e
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				cur = nil
			} else {
				cur = stack[len(stack)-1]
			}
		case xml.CharData:
			if cur == nil {
				// whitespace outside the root
				continue
			}
			if n := len(cur.Children); n > 0 {
				cur.Children[n-1].Tail += string(t)
			} else {
				cur.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("document contains no elements")
	}
	return root, nil
}

// ParseRoot inspects only the root element of a document: it streams
// decoder tokens and returns at the first element start event with the
// Clark-qualified tag and the attribute map. Content beyond the root start
// tag is never read, so a large or even damaged payload does not fail the
// call. A document containing no elements is an error.
func ParseRoot(raw string) (string, map[string]string, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", nil, errors.New("document contains no elements")
		}
		if err != nil {
			return "", nil, err
		}
		if t, ok := tok.(xml.StartElement); ok {
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}
				attrs[clarkName(a.Name)] = a.Value
			}
			return clarkName(t.Name), attrs, nil
		}
	}
}

func clarkName(n xml.Name) string {
	return QualifyNS(n.Local, n.Space)
}

// xmlns declarations are namespace machinery, not element attributes.
func isNamespaceDecl(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}
