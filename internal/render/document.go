package render

import (
	"io"

	"golang.org/x/net/html"
)

// Section locates a rendered section in its document. LineStart and
// LineEnd are 0-based and inclusive indexes into the lines of Text, the
// full document source.
type Section struct {
	Text      string
	LineStart int
	LineEnd   int
}

// Component is a child whose lifetime is bound to a rendered section.
type Component interface {
	Unload()
}

// Context is handed to post-processors along with each section.
type Context interface {
	// SourcePath is the path of the document, if known.
	SourcePath() string
	// SectionInfo resolves the source lines of a section element. It fails
	// for elements that are not section containers of this document and
	// for sections that were not rendered from source lines.
	SectionInfo(el *html.Node) (Section, bool)
	// AddChild binds child to the section being processed; it is unloaded
	// with the document.
	AddChild(child Component)
}

// Document is the result of a render pass.
type Document struct {
	Frontmatter map[string]interface{}

	sourcePath string
	text       string
	sections   []*section
}

type section struct {
	el       *html.Node
	info     Section
	resolved bool
	children []Component
}

// Sections returns the section containers in document order.
func (d *Document) Sections() []*html.Node {
	els := make([]*html.Node, 0, len(d.sections))
	for _, sec := range d.sections {
		els = append(els, sec.el)
	}

	return els
}

// WriteHTML writes every section container, one per line.
func (d *Document) WriteHTML(w io.Writer) error {
	for _, sec := range d.sections {
		if err := html.Render(w, sec.el); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

// Unload tears down the children registered by post-processors, last
// registered first.
func (d *Document) Unload() {
	for i := len(d.sections) - 1; i >= 0; i-- {
		sec := d.sections[i]

		for j := len(sec.children) - 1; j >= 0; j-- {
			sec.children[j].Unload()
		}

		sec.children = nil
	}
}

type sectionContext struct {
	doc     *Document
	section *section
}

func (c *sectionContext) SourcePath() string {
	return c.doc.sourcePath
}

func (c *sectionContext) SectionInfo(el *html.Node) (Section, bool) {
	for _, sec := range c.doc.sections {
		if sec.el == el {
			return sec.info, sec.resolved
		}
	}

	return Section{}, false
}

func (c *sectionContext) AddChild(child Component) {
	c.section.children = append(c.section.children, child)
}
