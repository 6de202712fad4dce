package label

import (
	"strings"

	"github.com/ezerfernandes/codelabel/internal/settings"
)

const fence = "```"

// Outcome is what Decide concluded for a block.
type Outcome int

const (
	// Skipped spans are not backtick fenced code blocks.
	Skipped Outcome = iota
	// Ignored blocks have a language on the ignore list.
	Ignored
	// Unlabeled blocks have nothing to show.
	Unlabeled
	// Labeled blocks get a label.
	Labeled
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Ignored:
		return "ignored"
	case Unlabeled:
		return "unlabeled"
	case Labeled:
		return "labeled"
	default:
		return "unknown"
	}
}

// Decision is the label chosen for a block, computed before anything is
// rendered.
type Decision struct {
	Outcome     Outcome
	Language    string
	HasLanguage bool
	Label       string
}

// Decide chooses the label for the block spanning lines start..end
// (0-based, inclusive) of text. It depends on nothing but its arguments.
//
// An explicit label wins over the language and is kept exactly as written
// between the braces. An empty directive {} counts as no label, so the language is shown instead when
// ShowLanguageAsLabel is set.
func Decide(text string, start, end int, s settings.Settings) Decision {
	lines := spanLines(text, start, end)

	if len(lines) < 2 || !strings.HasPrefix(lines[0], fence) || !strings.HasSuffix(lines[len(lines)-1], fence) {
		return Decision{Outcome: Skipped}
	}

	header, ok := ParseHeader(lines[0])
	if !ok {
		return Decision{Outcome: Skipped}
	}

	d := Decision{Language: header.Language, HasLanguage: header.HasLanguage}

	if header.HasLanguage && s.Ignores(header.Language) {
		d.Outcome = Ignored

		return d
	}

	d.Label = header.Label
	if len(d.Label) == 0 && s.ShowLanguageAsLabel {
		d.Label = header.Language
	}

	if len(d.Label) == 0 {
		d.Outcome = Unlabeled

		return d
	}

	d.Outcome = Labeled

	return d
}

func spanLines(text string, start, end int) []string {
	all := strings.Split(text, "\n")

	if end >= len(all) {
		end = len(all) - 1
	}

	if start < 0 || start > end {
		return nil
	}

	lines := make([]string, 0, end-start+1)
	for _, line := range all[start : end+1] {
		lines = append(lines, strings.TrimSpace(line))
	}

	return lines
}
