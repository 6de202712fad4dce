package cmd

import (
	"github.com/ezerfernandes/codelabel/internal/fence"
	"github.com/ezerfernandes/codelabel/internal/label"
	"github.com/ezerfernandes/codelabel/internal/settings"
)

type labelWalker func(block *fence.Block, decision label.Decision) error

// walk calls walker with the label decision of every fenced block passing
// filter. Only top-level blocks are rendered as sections of their own, so
// nested blocks are always skipped.
func walk(source []byte, s settings.Settings, filter filterFunc, walker labelWalker) error {
	text := string(source)

	return fence.Walk(source, func(block *fence.Block) error {
		if !filter(block.Lang, block.Meta) {
			return nil
		}

		decision := label.Decision{Outcome: label.Skipped}
		if block.TopLevel {
			decision = label.Decide(text, block.StartLine, block.EndLine, s)
		}

		return walker(block, decision)
	})
}
