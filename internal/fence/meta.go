package fence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Meta holds key-value metadata written after the language of a fenced code
// block, either as a JSON object or as shell-quoted key=value words:
//
//	```go {file=main.go}
//	```go {"file": "main.go"}
type Meta map[string]interface{}

// Get returns the metadata value for the given key as a string.
// It returns an empty string if the key is missing or the Meta is nil.
func (m Meta) Get(name string) string {
	value, has := m[name]
	if !has {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

var (
	reJSON   = regexp.MustCompile(`^\s*{\s*["}]`)
	reBraces = regexp.MustCompile(`^\s*{(.*)}\s*$`)
)

func parseMeta(input []byte) (Meta, error) {
	meta := make(Meta)

	if len(bytes.TrimSpace(input)) == 0 {
		return meta, nil
	}

	if reJSON.Match(input) {
		if err := json.Unmarshal(input, &meta); err != nil {
			return nil, fmt.Errorf("json metadata: %w", err)
		}

		return meta, nil
	}

	if subs := reBraces.FindSubmatch(input); subs != nil {
		input = subs[1]
	}

	words, err := shlex.Split(string(input))
	if err != nil {
		return nil, fmt.Errorf("metadata words: %w", err)
	}

	// Words without '=' are free text, e.g. a label directive like {My Script}.
	for _, word := range words {
		if key, value, found := strings.Cut(word, "="); found && len(key) > 0 {
			meta[key] = value
		}
	}

	return meta, nil
}
