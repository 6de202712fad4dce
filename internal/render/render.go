// Package render turns a Markdown document into HTML one top-level block
// at a time and hands every rendered block to the registered
// post-processors, the way a note-taking application renders a note.
package render

import (
	"bytes"
	"fmt"

	"github.com/ezerfernandes/codelabel/internal/fence"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PostProcessor is invoked once for every rendered section. It may mutate el
// in place.
type PostProcessor func(el *html.Node, ctx Context)

// Renderer renders Markdown documents into sections.
type Renderer struct {
	md         goldmark.Markdown
	sourcePath string
	processors []PostProcessor
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSourcePath records the path of the rendered document, reported to
// post-processors through Context.SourcePath.
func WithSourcePath(path string) Option {
	return func(r *Renderer) {
		r.sourcePath = path
	}
}

// New returns a Renderer for GitHub Flavored Markdown with YAML front matter.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, meta.Meta),
		),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterPostProcessor adds p to the processors run over every section.
// Processors run in registration order.
func (r *Renderer) RegisterPostProcessor(p PostProcessor) {
	r.processors = append(r.processors, p)
}

// Render parses source and renders each top-level block into its own
// <div> section, running the post-processors on each section as soon as it
// is rendered. Front matter is not rendered; it is returned in
// Document.Frontmatter.
func (r *Renderer) Render(source []byte) (*Document, error) {
	pc := parser.NewContext()
	root := r.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	frontmatter, err := meta.TryGet(pc)
	if err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}

	doc := &Document{
		Frontmatter: frontmatter,
		sourcePath:  r.sourcePath,
		text:        string(source),
	}

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		sec, err := r.renderSection(doc, node, source)
		if err != nil {
			return nil, err
		}

		doc.sections = append(doc.sections, sec)

		ctx := &sectionContext{doc: doc, section: sec}
		for _, p := range r.processors {
			p(sec.el, ctx)
		}
	}

	return doc, nil
}

func (r *Renderer) renderSection(doc *Document, node ast.Node, source []byte) (*section, error) {
	var buf bytes.Buffer

	if err := r.md.Renderer().Render(&buf, source, node); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", node.Kind(), err)
	}

	el := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

	nodes, err := html.ParseFragment(&buf, el)
	if err != nil {
		return nil, fmt.Errorf("parsing rendered %s: %w", node.Kind(), err)
	}

	for _, n := range nodes {
		el.AppendChild(n)
	}

	sec := &section{el: el}
	if start, end, ok := sectionLines(node, source); ok {
		sec.info = Section{Text: doc.text, LineStart: start, LineEnd: end}
		sec.resolved = true
	}

	return sec, nil
}

// sectionLines returns the source lines a top-level block was rendered from.
func sectionLines(node ast.Node, source []byte) (int, int, bool) {
	if fcb, ok := node.(*ast.FencedCodeBlock); ok {
		return fence.Span(fcb, source)
	}

	first, last := -1, -1

	extend := func(start, end int) {
		if first < 0 || start < first {
			first = start
		}

		if end > last {
			last = end
		}
	}

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}

		if fcb, ok := n.(*ast.FencedCodeBlock); ok {
			if start, end, ok := fence.Span(fcb, source); ok {
				extend(start, end)
			}

			return ast.WalkSkipChildren, nil
		}

		lines := n.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		head, tail := lines.At(0), lines.At(lines.Len()-1)

		stop := tail.Stop
		if stop > tail.Start {
			stop--
		}

		extend(fence.LineAt(source, head.Start), fence.LineAt(source, stop))

		return ast.WalkContinue, nil
	})

	if first < 0 {
		return 0, 0, false
	}

	return first, last, true
}
