package label

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ezerfernandes/codelabel/internal/render"
	"github.com/ezerfernandes/codelabel/internal/settings"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type fakeContext struct {
	sections map[*html.Node]render.Section
	children []render.Component
}

func (c *fakeContext) SourcePath() string { return "note.md" }

func (c *fakeContext) SectionInfo(el *html.Node) (render.Section, bool) {
	sec, ok := c.sections[el]

	return sec, ok
}

func (c *fakeContext) AddChild(child render.Component) {
	c.children = append(c.children, child)
}

func section(t *testing.T, fragment string) *html.Node {
	t.Helper()

	el := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), el)
	require.NoError(t, err)

	for _, n := range nodes {
		el.AppendChild(n)
	}

	return el
}

func renderNode(t *testing.T, n *html.Node) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))

	return buf.String()
}

const codeFragment = `<pre><code class="language-python">print(1)</code></pre>`

func newContext(el *html.Node, text string, start, end int) *fakeContext {
	return &fakeContext{
		sections: map[*html.Node]render.Section{
			el: {Text: text, LineStart: start, LineEnd: end},
		},
	}
}

func TestProcessLabelsBlock(t *testing.T) {
	t.Parallel()

	el := section(t, codeFragment)
	ctx := newContext(el, "```python {My Script}\nprint(1)\n```\n", 0, 2)

	Process(el, ctx, settings.Defaults())

	assert.Equal(t,
		`<div class="labeled-codeblock" data-language="python">`+
			`<div class="codeblock-label">My Script</div>`+
			`<pre><code class="language-python">print(1)</code></pre></div>`,
		renderNode(t, el))

	require.Len(t, ctx.children, 1)

	l, ok := ctx.children[0].(*Label)
	require.True(t, ok)
	assert.Equal(t, "My Script", l.Text())
}

func TestProcessLeavesOtherSectionsAlone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		text     string
		resolved bool
	}{
		{name: "no code block", fragment: "<p>```python</p>", text: "```python\nx\n```", resolved: true},
		{name: "inline code only", fragment: "<p><code>x</code></p>", text: "```python\nx\n```", resolved: true},
		{name: "unresolved section", fragment: codeFragment, text: "```python\nx\n```", resolved: false},
		{name: "ignored language", fragment: codeFragment, text: "```dataview\nx\n```", resolved: true},
		{name: "nothing to show", fragment: codeFragment, text: "```\nx\n```", resolved: true},
		{name: "tilde fence", fragment: codeFragment, text: "~~~python\nx\n~~~", resolved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			el := section(t, tt.fragment)
			before := renderNode(t, el)

			ctx := &fakeContext{sections: map[*html.Node]render.Section{}}
			if tt.resolved {
				ctx = newContext(el, tt.text, 0, 2)
			}

			Process(el, ctx, settings.Defaults())

			assert.Equal(t, before, renderNode(t, el))
			assert.Empty(t, ctx.children)
		})
	}
}

func TestProcessNilSection(t *testing.T) {
	t.Parallel()

	ctx := &fakeContext{}

	assert.NotPanics(t, func() { Process(nil, ctx, settings.Defaults()) })
	assert.Empty(t, ctx.children)
}

func TestProcessLogsIgnoredLanguage(t *testing.T) {
	hook := test.NewGlobal()
	level := logrus.GetLevel()

	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logrus.SetLevel(level)
		hook.Reset()
	})

	el := section(t, codeFragment)
	ctx := newContext(el, "```dataview\nTABLE x\n```", 0, 2)

	Process(el, ctx, settings.Defaults())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "dataview", entry.Data["language"])
	assert.Equal(t, "note.md", entry.Data["source"])
	assert.Empty(t, ctx.children)
}

func TestApplyAndUnload(t *testing.T) {
	t.Parallel()

	el := section(t, codeFragment)
	setAttr(el, "class", "section")
	before := renderNode(t, el)

	l := Apply(el, Decision{Outcome: Labeled, Label: "Output"})

	assert.True(t, hasClass(el, MarkerClass))
	assert.True(t, hasClass(el, "section"))

	lang, ok := attr(el, LanguageAttr)
	assert.True(t, ok)
	assert.Empty(t, lang)

	first := el.FirstChild
	require.NotNil(t, first)
	assert.Equal(t, atom.Div, first.DataAtom)
	assert.True(t, hasClass(first, LabelClass))

	l.Unload()
	assert.Equal(t, before, renderNode(t, el))

	assert.NotPanics(t, l.Unload)
}

func TestApplyToEmptySection(t *testing.T) {
	t.Parallel()

	el := section(t, "")

	l := Apply(el, Decision{Outcome: Labeled, Language: "go", HasLanguage: true, Label: "go"})

	assert.Equal(t, `<div class="labeled-codeblock" data-language="go"><div class="codeblock-label">go</div></div>`, renderNode(t, el))

	l.Unload()
	assert.Equal(t, "<div></div>", renderNode(t, el))
}

func TestLabelTextIsEscaped(t *testing.T) {
	t.Parallel()

	el := section(t, codeFragment)
	ctx := newContext(el, "```html {<b>&</b>}\nx\n```", 0, 2)

	Process(el, ctx, settings.Defaults())

	assert.Contains(t, renderNode(t, el), `<div class="codeblock-label">&lt;b&gt;&amp;&lt;/b&gt;</div>`)
}

func TestPostProcessorRendersDocument(t *testing.T) {
	t.Parallel()

	source := "# Scripts\n" +
		"\n" +
		"```python\n" +
		"print(1)\n" +
		"```\n" +
		"\n" +
		"```python {My Script}\n" +
		"print(2)\n" +
		"```\n" +
		"\n" +
		"```dataview\n" +
		"LIST\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"plain\n" +
		"```\n" +
		"\n" +
		"> ```go\n" +
		"> x\n" +
		"> ```\n"

	s := settings.Defaults()

	r := render.New(render.WithSourcePath("scripts.md"))
	r.RegisterPostProcessor(PostProcessor(&s))

	doc, err := r.Render([]byte(source))
	require.NoError(t, err)

	sections := doc.Sections()
	require.Len(t, sections, 6)

	labels := make([]string, 0, len(sections))
	for _, el := range sections {
		if first := el.FirstChild; first != nil && hasClass(first, LabelClass) {
			labels = append(labels, first.FirstChild.Data)
		}
	}

	assert.Equal(t, []string{"python", "My Script"}, labels)

	lang, _ := attr(sections[2], LanguageAttr)
	assert.Equal(t, "python", lang)
	assert.False(t, hasClass(sections[3], MarkerClass))
	assert.False(t, hasClass(sections[4], MarkerClass))
	assert.False(t, hasClass(sections[5], MarkerClass))

	doc.Unload()

	for _, el := range sections {
		assert.False(t, hasClass(el, MarkerClass))
	}
}

func TestPostProcessorReadsCurrentSettings(t *testing.T) {
	t.Parallel()

	s := settings.Defaults()

	r := render.New()
	r.RegisterPostProcessor(PostProcessor(&s))

	source := []byte("```mermaid\ngraph TD\n```\n")

	doc, err := r.Render(source)
	require.NoError(t, err)
	assert.True(t, hasClass(doc.Sections()[0], MarkerClass))

	s.IgnoreLanguages = "mermaid"

	doc, err = r.Render(source)
	require.NoError(t, err)
	assert.False(t, hasClass(doc.Sections()[0], MarkerClass))
}
