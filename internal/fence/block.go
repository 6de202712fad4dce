// Package fence locates fenced code blocks in a Markdown document.
package fence

// Block is a fenced code block found in a Markdown document.
//
// StartLine and EndLine are 0-based and inclusive. They cover the opening and
// the closing fence lines, so source lines StartLine..EndLine are exactly the
// block as written.
//
// TopLevel is false for blocks nested in another block, such as a list item
// or a block quote.
type Block struct {
	Index     int
	Lang      string
	Meta      Meta
	Code      []byte
	StartLine int
	EndLine   int
	TopLevel  bool
}

type Blocks []*Block
