// Package threaddoc models a CAD thread-table document as an ordered element
// tree and provides typed views over the ThreadType catalog it contains.
//
// The tree is backed by etree so element order, attributes and unknown
// children survive a parse/serialize round trip untouched.
package threaddoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
)

// RootTag is the element every thread document must have as its root.
const RootTag = "ThreadType"

// indentSpaces matches conventional pretty-printed markup.
const indentSpaces = 2

var declAttr = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// Declaration is the parsed <?xml ...?> processing instruction.
type Declaration struct {
	Version    float64
	Encoding   string
	Standalone string

	inst *etree.ProcInst
}

// render produces the instruction body with the version fixed to one decimal.
func (d *Declaration) render() string {
	var b strings.Builder
	b.WriteString(`version="`)
	b.WriteString(strconv.FormatFloat(d.Version, 'f', 1, 64))
	b.WriteString(`"`)
	if d.Encoding != "" {
		b.WriteString(` encoding="`)
		b.WriteString(d.Encoding)
		b.WriteString(`"`)
	}
	if d.Standalone != "" {
		b.WriteString(` standalone="`)
		b.WriteString(d.Standalone)
		b.WriteString(`"`)
	}
	return b.String()
}

// Document is a parsed thread-table document.
type Document struct {
	doc         *etree.Document
	Declaration *Declaration
	root        *ThreadType
}

// Parse decodes raw document text. It fails with a MalformedDocument error
// when the text is not well-formed or the root element is not ThreadType.
func Parse(text string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, tterrors.MalformedDocument("not well-formed markup", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, tterrors.MalformedDocument("document has no root element", nil)
	}
	if root.Tag != RootTag {
		return nil, tterrors.MalformedDocument(fmt.Sprintf("root element is <%s>, want <%s>", root.Tag, RootTag), nil)
	}

	return &Document{
		doc:         doc,
		Declaration: parseDeclaration(doc),
		root:        &ThreadType{el: root},
	}, nil
}

func parseDeclaration(doc *etree.Document) *Declaration {
	for _, tok := range doc.Child {
		pi, ok := tok.(*etree.ProcInst)
		if !ok || pi.Target != "xml" {
			continue
		}
		decl := &Declaration{Version: 1, inst: pi}
		for _, m := range declAttr.FindAllStringSubmatch(pi.Inst, -1) {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			switch m[1] {
			case "version":
				// The decoder rejects any version but 1.0 before we get here.
				if v, ok := ParseScalar(value).Float(); ok {
					decl.Version = v
				}
			case "encoding":
				decl.Encoding = value
			case "standalone":
				decl.Standalone = value
			}
		}
		return decl
	}
	return nil
}

// ThreadType returns the catalog root.
func (d *Document) ThreadType() *ThreadType {
	return d.root
}

// String renders the document with two-space indentation. The declaration
// version is always written with exactly one fractional digit.
func (d *Document) String() (string, error) {
	if d.Declaration != nil && d.Declaration.inst != nil {
		d.Declaration.inst.Inst = d.Declaration.render()
	}
	d.doc.Indent(indentSpaces)
	out, err := d.doc.WriteToString()
	if err != nil {
		return "", tterrors.SerializeFailed(err)
	}
	return out, nil
}
