// Package label attaches a visible label to rendered fenced code blocks.
// The label comes from a {...} directive on the opening fence or, when
// enabled, from the language of the block.
package label

import (
	"github.com/ezerfernandes/codelabel/internal/render"
	"github.com/ezerfernandes/codelabel/internal/settings"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// LabelClass is set on the inserted label element.
	LabelClass = "codeblock-label"
	// MarkerClass is added to the section of every labeled block.
	MarkerClass = "labeled-codeblock"
	// LanguageAttr holds the raw language of a labeled block.
	LanguageAttr = "data-language"
)

// Process labels the rendered section el when it holds a fenced code block
// that deserves a label. Anything else leaves el untouched: it runs over
// every section of every document and never fails.
func Process(el *html.Node, ctx render.Context, s settings.Settings) {
	if el == nil || !hasCodeBlock(el) {
		return
	}

	sec, ok := ctx.SectionInfo(el)
	if !ok {
		return
	}

	d := Decide(sec.Text, sec.LineStart, sec.LineEnd, s)

	switch d.Outcome {
	case Ignored:
		logrus.WithFields(logrus.Fields{
			"language": d.Language,
			"source":   ctx.SourcePath(),
			"line":     sec.LineStart + 1,
		}).Debug("Skipping code block with ignored language")
	case Labeled:
		ctx.AddChild(Apply(el, d))
	}
}

// PostProcessor returns a render.PostProcessor labeling with the settings
// s points to. The settings are read again for every section.
func PostProcessor(s *settings.Settings) render.PostProcessor {
	return func(el *html.Node, ctx render.Context) {
		Process(el, ctx, *s)
	}
}

// Label is a label inserted into a rendered section.
type Label struct {
	el      *html.Node
	section *html.Node
}

var _ render.Component = (*Label)(nil)

// Apply prepends a label element for d to el and marks el as labeled.
func Apply(el *html.Node, d Decision) *Label {
	label := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: LabelClass}},
	}
	label.AppendChild(&html.Node{Type: html.TextNode, Data: d.Label})

	el.InsertBefore(label, el.FirstChild)
	addClass(el, MarkerClass)
	setAttr(el, LanguageAttr, d.Language)

	return &Label{el: label, section: el}
}

// Text returns the label text.
func (l *Label) Text() string {
	if c := l.el.FirstChild; c != nil {
		return c.Data
	}

	return ""
}

// Unload removes the label and the markers Apply left on the section.
func (l *Label) Unload() {
	if l.el.Parent != nil {
		l.el.Parent.RemoveChild(l.el)
	}

	removeClass(l.section, MarkerClass)
	removeAttr(l.section, LanguageAttr)
}
