package ncxml

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// WriteOptions defines properties that configure document serialization.
type WriteOptions struct {
	// Encoding is the IANA name of the character encoding declared in the
	// XML declaration. Output is transcoded when a transcoder for the name
	// is available; UTF-8 output is written directly.
	Encoding string
	// Indent is the per-level indent string used to pretty print element
	// content. Empty writes compact output.
	Indent string
}

// DefaultWriteOptions are applied for any WriteOptions field left unset.
var DefaultWriteOptions = &WriteOptions{
	Encoding: "UTF-8",
}

const xmlDeclPrefix = "<?xml"

// ToXML serializes e to a complete XML document. The returned string always
// begins with exactly one XML declaration naming the configured encoding.
// Namespace URIs with a registered prefix are serialized with that prefix;
// unregistered URIs get generated ns0, ns1, ... prefixes. All namespace
// declarations are emitted on the root element.
func ToXML(e *Element, opts *WriteOptions) (string, error) {
	return ToXMLContext(context.Background(), e, opts)
}

// ToXMLContext is ToXML with trace hooks taken from ctx.
func ToXMLContext(ctx context.Context, e *Element, opts *WriteOptions) (doc string, err error) {
	trace := ContextTrace(ctx)
	trace.WriteStart(e)
	defer func(begin time.Time) {
		trace.WriteDone(doc, err, time.Since(begin))
	}(time.Now())

	resolved := WriteOptions{}
	if opts != nil {
		resolved = *opts
	}
	_ = mergo.Merge(&resolved, DefaultWriteOptions)

	var buf bytes.Buffer
	writeElement(&buf, e, newPrefixResolver(e), resolved.Indent, 0, true)
	doc = buf.String()

	if !strings.HasPrefix(doc, xmlDeclPrefix) {
		sep := ""
		if resolved.Indent != "" {
			sep = "\n"
		}
		doc = `<?xml version="1.0" encoding="` + resolved.Encoding + `"?>` + sep + doc
	}

	doc, err = transcode(doc, resolved.Encoding)
	if err != nil {
		trace.Error("serialize", err)
		return "", err
	}
	return doc, nil
}

// transcode converts doc from UTF-8 to the named character encoding.
func transcode(doc, name string) (string, error) {
	if strings.EqualFold(name, "UTF-8") {
		return doc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return "", errors.Wrapf(err, "unknown character encoding %q", name)
	}
	if enc == nil {
		// ianaindex knows the name but carries no transcoder for it;
		// emitting UTF-8 under that declaration would mislabel the document
		return "", errors.Errorf("unsupported character encoding %q", name)
	}
	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).String(doc)
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode document as %s", name)
	}
	return out, nil
}

// nsDecl is a single xmlns declaration; an empty prefix declares the
// default namespace.
type nsDecl struct {
	prefix string
	uri    string
}

// prefixResolver assigns serialization prefixes for every namespace URI
// used in a tree, preferring registered prefixes and generating the rest.
// Attributes never use the default namespace, so a URI registered with an
// empty prefix gets a generated prefix for attribute use.
type prefixResolver struct {
	elem  map[string]string
	attr  map[string]string
	decls []nsDecl
	used  map[string]bool
	reg   map[string]string
	next  int
	// plainElem records that the tree contains an element with no
	// namespace; a default namespace declaration would capture it on
	// re-parse, so empty-prefix registrations are demoted to generated
	// prefixes. defaultSet limits the default declaration to one URI.
	plainElem  bool
	defaultSet bool
}

func newPrefixResolver(root *Element) *prefixResolver {
	r := &prefixResolver{
		elem:      map[string]string{},
		attr:      map[string]string{},
		used:      map[string]bool{},
		reg:       Prefixes(),
		plainElem: hasPlainElement(root),
	}
	for _, p := range r.reg {
		if p != "" {
			r.used[p] = true
		}
	}
	r.collect(root)
	return r
}

func hasPlainElement(e *Element) bool {
	if uri, _ := Unqualify(e.Tag); uri == "" {
		return true
	}
	for _, c := range e.Children {
		if hasPlainElement(c) {
			return true
		}
	}
	return false
}

func (r *prefixResolver) collect(e *Element) {
	if uri, _ := Unqualify(e.Tag); uri != "" {
		r.elemPrefix(uri)
	}
	for _, a := range e.Attrs {
		if uri, _ := Unqualify(a.Name); uri != "" {
			r.attrPrefix(uri)
		}
	}
	for _, c := range e.Children {
		r.collect(c)
	}
}

func (r *prefixResolver) elemPrefix(uri string) {
	if _, ok := r.elem[uri]; ok {
		return
	}
	if p, ok := r.attr[uri]; ok {
		// already declared for attribute use
		r.elem[uri] = p
		return
	}
	p, ok := r.reg[uri]
	switch {
	case !ok:
		p = r.generated()
	case p == "":
		if r.plainElem || r.defaultSet {
			p = r.generated()
		} else {
			r.defaultSet = true
		}
	}
	r.elem[uri] = p
	if p != "" {
		r.attr[uri] = p
	}
	r.decls = append(r.decls, nsDecl{prefix: p, uri: uri})
}

func (r *prefixResolver) attrPrefix(uri string) {
	if _, ok := r.attr[uri]; ok {
		return
	}
	p, ok := r.reg[uri]
	if !ok || p == "" {
		p = r.generated()
	}
	r.attr[uri] = p
	r.decls = append(r.decls, nsDecl{prefix: p, uri: uri})
}

func (r *prefixResolver) generated() string {
	for {
		p := fmt.Sprintf("ns%d", r.next)
		r.next++
		if !r.used[p] {
			r.used[p] = true
			return p
		}
	}
}

func (r *prefixResolver) elemName(tag string) string {
	uri, local := Unqualify(tag)
	if uri == "" {
		return local
	}
	if p := r.elem[uri]; p != "" {
		return p + ":" + local
	}
	// default namespace
	return local
}

func (r *prefixResolver) attrName(name string) string {
	uri, local := Unqualify(name)
	if uri == "" {
		return local
	}
	return r.attr[uri] + ":" + local
}

func writeElement(buf *bytes.Buffer, e *Element, r *prefixResolver, indent string, depth int, isRoot bool) {
	name := r.elemName(e.Tag)
	buf.WriteByte('<')
	buf.WriteString(name)
	if isRoot {
		for _, d := range r.decls {
			if d.prefix == "" {
				buf.WriteString(` xmlns="`)
			} else {
				buf.WriteString(" xmlns:")
				buf.WriteString(d.prefix)
				buf.WriteString(`="`)
			}
			writeEscaped(buf, d.uri)
			buf.WriteByte('"')
		}
	}
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(r.attrName(a.Name))
		buf.WriteString(`="`)
		writeEscaped(buf, a.Value)
		buf.WriteByte('"')
	}

	if e.Text == "" && len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	writeEscaped(buf, e.Text)

	pretty := indent != "" && !mixedContent(e)
	for _, c := range e.Children {
		if pretty {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(indent, depth+1))
		}
		writeElement(buf, c, r, indent, depth+1, false)
		writeEscaped(buf, c.Tail)
	}
	if pretty && len(e.Children) > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, depth))
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
}

// mixedContent reports whether e carries text interleaved with its
// children, in which case indentation would alter document content.
func mixedContent(e *Element) bool {
	if e.Text != "" {
		return true
	}
	for _, c := range e.Children {
		if c.Tail != "" {
			return true
		}
	}
	return false
}

func writeEscaped(buf *bytes.Buffer, s string) {
	if s == "" {
		return
	}
	_ = xml.EscapeText(buf, []byte(s))
}
