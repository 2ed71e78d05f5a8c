// Command ncxml is a developer utility over the ncxml library: it reads
// XML documents from files or stdin and pretty prints them, reports the
// root tag and attributes, validates the root against tag/attribute
// constraints, or wraps the payload in an rpc envelope.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/damianoneill/ncxml"
)

type cmdopts struct {
	Format   bool     `long:"format" description:"pretty print the document"`
	Indent   string   `long:"indent" default:"  " description:"indent used with --format"`
	Root     bool     `long:"root" description:"print only the root tag and its attributes"`
	Tags     []string `long:"tag" description:"require the root tag to be one of these names (Clark notation for namespaced tags); may repeat"`
	Attrs    []string `long:"attr" description:"require an attribute on the root; comma separates acceptable alternatives; may repeat"`
	Wrap     bool     `long:"wrap" description:"wrap the document in an <nc:rpc> envelope with a generated message-id"`
	Encoding string   `long:"encoding" default:"UTF-8" description:"character encoding for serialized output"`
}

func main() {
	os.Exit(_main(os.Args[1:]))
}

func showUsage() {
	fmt.Printf(`Usage : ncxml [options] XMLfiles ...
	Read the XML files (or stdin when no file is given) and write the
	result of the requested operation to stdout.
`)
}

func _main(argv []string) int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, argv)
	if err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		showUsage()
		return 1
	}

	ncxml.RegisterDefaultPrefixes()

	docs, err := readInputs(args)
	if err != nil {
		logrus.WithError(err).Error("failed to read input")
		return 1
	}

	for _, doc := range docs {
		if err := process(doc, &opts); err != nil {
			logrus.WithError(err).Error("failed to process document")
			return 1
		}
	}
	return 0
}

func readInputs(files []string) ([]string, error) {
	if len(files) == 0 {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []string{string(raw)}, nil
	}
	docs := make([]string, 0, len(files))
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, string(raw))
	}
	return docs, nil
}

func process(doc string, opts *cmdopts) error {
	if opts.Root {
		tag, attrs, err := ncxml.ParseRoot(doc)
		if err != nil {
			return err
		}
		fmt.Println(tag)
		for name, value := range attrs {
			fmt.Printf("  %s=%q\n", name, value)
		}
		return nil
	}

	ele, err := ncxml.ValidatedElement(ncxml.Raw(doc), opts.Tags, alternatives(opts.Attrs))
	if err != nil {
		return err
	}

	if opts.Wrap {
		envelope := ncxml.NewElement(ncxml.Qualify("rpc"),
			map[string]string{"message-id": uuid.New().String()})
		envelope.AddChild(ele)
		ele = envelope
	}

	indent := ""
	if opts.Format {
		indent = opts.Indent
	}
	out, err := ncxml.ToXML(ele, &ncxml.WriteOptions{Encoding: opts.Encoding, Indent: indent})
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// alternatives turns repeated --attr values into the attribute constraint
// form used by ValidatedElement, splitting each value on commas.
func alternatives(attrs []string) [][]string {
	var constraint [][]string
	for _, a := range attrs {
		constraint = append(constraint, strings.Split(a, ","))
	}
	return constraint
}
