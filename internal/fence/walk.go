package fence

import (
	"bytes"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var reInfo = regexp.MustCompile(`^\s*([^\s{]+)?\s*(.*?)\s*$`)

// Walker is a callback invoked for each fenced code block found in a Markdown
// document. Returning an error stops the walk.
type Walker func(block *Block) error

// Walk parses a Markdown document and calls walker for every fenced code
// block, in document order. Blocks nested in lists or block quotes are
// included. The source is never modified.
func Walk(source []byte, walker Walker) error {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	index := 0

	return ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb := asFencedCodeBlock(node, entering)
		if fcb == nil {
			return ast.WalkContinue, nil
		}

		block, ok := extractBlock(fcb, source)
		if !ok {
			return ast.WalkContinue, nil
		}

		block.Index = index
		index++

		if err := walker(block); err != nil {
			return ast.WalkStop, err
		}

		return ast.WalkContinue, nil
	})
}

func asFencedCodeBlock(node ast.Node, entering bool) *ast.FencedCodeBlock {
	if !entering || node.Kind() != ast.KindFencedCodeBlock {
		return nil
	}

	if fcb, ok := node.(*ast.FencedCodeBlock); ok {
		return fcb
	}

	return nil
}

func extractBlock(fcb *ast.FencedCodeBlock, source []byte) (*Block, bool) {
	start, end, ok := Span(fcb, source)
	if !ok {
		return nil, false
	}

	lang, meta := extractInfo(fcb, source)

	return &Block{
		Lang:      lang,
		Meta:      meta,
		Code:      extractCode(fcb, source),
		StartLine: start,
		EndLine:   end,
		TopLevel:  isTopLevel(fcb),
	}, true
}

func isTopLevel(node ast.Node) bool {
	parent := node.Parent()

	return parent != nil && parent.Kind() == ast.KindDocument
}

// Span returns the 0-based, inclusive line range of a fenced code block,
// from its opening fence to its closing fence. A fence left open at the end
// of the document ends on the last line. The span of a block with neither an
// info string nor any content cannot be recovered from the AST, and ok is
// false for it.
func Span(fcb *ast.FencedCodeBlock, source []byte) (start, end int, ok bool) {
	lines := fcb.Lines()

	switch {
	case fcb.Info != nil:
		start = LineAt(source, fcb.Info.Segment.Start)
	case lines.Len() > 0:
		start = LineAt(source, lines.At(0).Start) - 1
	default:
		return 0, 0, false
	}

	end = start + 1

	if lines.Len() > 0 {
		last := lines.At(lines.Len() - 1)
		end = lastLineOf(source, last.Start, last.Stop) + 1
	}

	if final := LineAt(source, len(source)); end > final {
		end = final
	}

	return start, end, true
}

// LineAt returns the 0-based line number of the byte at offset.
func LineAt(source []byte, offset int) int {
	if offset < 0 {
		return 0
	}

	if offset > len(source) {
		offset = len(source)
	}

	return bytes.Count(source[:offset], []byte{'\n'})
}

func lastLineOf(source []byte, start, stop int) int {
	if stop > start {
		stop--
	}

	return LineAt(source, stop)
}

func extractCode(fcb *ast.FencedCodeBlock, source []byte) []byte {
	var buff bytes.Buffer

	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)

		buff.Write(seg.Value(source))
	}

	return buff.Bytes()
}

func extractInfo(fcb *ast.FencedCodeBlock, source []byte) (string, Meta) {
	if fcb.Info == nil {
		return "", make(Meta)
	}

	all := reInfo.FindSubmatch(fcb.Info.Segment.Value(source))
	if all == nil {
		return "", make(Meta)
	}

	lang := string(all[1])

	meta, err := parseMeta(all[2])
	if err != nil {
		// Label directives are free text and may not tokenize.
		logrus.WithError(err).WithField("language", lang).Debug("Ignoring unparsable code block metadata")

		return lang, make(Meta)
	}

	return lang, meta
}
