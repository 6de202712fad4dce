// Package settings holds the code block labeling preferences, their
// persistence and the form used to edit them.
package settings

import (
	"errors"
	"slices"
	"strings"
)

const (
	keyIgnoreLanguages     = "ignoreLanguages"
	keyShowLanguageAsLabel = "showLanguageAsLabel"
)

var defaultIgnoreLanguages = []string{"dataview", "dataviewjs", "tasks"}

// Settings are the labeling preferences shared by every rendered block.
type Settings struct {
	// IgnoreLanguages is a newline separated list of languages whose code
	// blocks are never labeled. Matching is exact and case-sensitive.
	IgnoreLanguages string `json:"ignoreLanguages" mapstructure:"ignoreLanguages"`
	// ShowLanguageAsLabel labels blocks that carry no explicit label with
	// their language.
	ShowLanguageAsLabel bool `json:"showLanguageAsLabel" mapstructure:"showLanguageAsLabel"`
}

// Defaults returns the settings used when nothing has been persisted yet.
func Defaults() Settings {
	return Settings{
		IgnoreLanguages:     strings.Join(defaultIgnoreLanguages, "\n"),
		ShowLanguageAsLabel: true,
	}
}

// IgnoreList splits IgnoreLanguages into its entries. Blank lines are
// dropped, so an empty setting yields an empty list.
func (s Settings) IgnoreList() []string {
	var list []string

	for _, line := range strings.Split(strings.TrimSpace(s.IgnoreLanguages), "\n") {
		if lang := strings.TrimSpace(line); len(lang) > 0 {
			list = append(list, lang)
		}
	}

	return list
}

// Ignores reports whether lang is on the ignore list.
func (s Settings) Ignores(lang string) bool {
	return slices.Contains(s.IgnoreList(), lang)
}

var (
	// ErrUnknownKey is returned when setting a key that does not exist.
	ErrUnknownKey = errors.New("unknown setting")
	// ErrInvalidValue is returned when a value cannot be converted to the
	// type of its setting.
	ErrInvalidValue = errors.New("invalid setting value")
)
