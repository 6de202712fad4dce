package label

import "regexp"

// reHeader matches the opening fence of a labeled block:
//
//	```lang {label}
//
// The language is any run of characters other than whitespace and '{'
// right after the backticks. The label directive is optional.
var reHeader = regexp.MustCompile("^```(?P<lang>[^\\s{]+)?(?:\\s*\\{(?P<label>.*)\\})?")

var (
	langGroup  = reHeader.SubexpIndex("lang")
	labelGroup = reHeader.SubexpIndex("label")
)

// Header is the parsed opening line of a fenced code block.
type Header struct {
	Language    string
	HasLanguage bool
	Label       string
	// HasLabel is set for any label directive, including an empty {}.
	HasLabel bool
}

// ParseHeader parses the trimmed first line of a fenced code block.
func ParseHeader(line string) (Header, bool) {
	loc := reHeader.FindStringSubmatchIndex(line)
	if loc == nil {
		return Header{}, false
	}

	var h Header

	h.Language, h.HasLanguage = group(line, loc, langGroup)
	h.Label, h.HasLabel = group(line, loc, labelGroup)

	return h, true
}

func group(line string, loc []int, index int) (string, bool) {
	start, end := loc[2*index], loc[2*index+1]
	if start < 0 {
		return "", false
	}

	return line[start:end], true
}
