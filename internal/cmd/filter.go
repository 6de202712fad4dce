package cmd

import (
	"fmt"

	"github.com/ezerfernandes/codelabel/internal/fence"
	"github.com/gobwas/glob"
)

type filterFunc func(lang string, meta fence.Meta) bool

// filter matches blocks whose language matches any of the lang patterns and
// whose metadata matches every meta pattern. No lang patterns match every
// language.
func filter(lang []string, meta map[string]string) (filterFunc, error) {
	langGlobs := make([]glob.Glob, 0, len(lang))

	for _, pattern := range lang {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid language pattern %q: %w", pattern, err)
		}

		langGlobs = append(langGlobs, g)
	}

	metaGlobs := make(map[string]glob.Glob, len(meta))

	for key, pattern := range meta {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", key, pattern, err)
		}

		metaGlobs[key] = g
	}

	return func(lang string, meta fence.Meta) bool {
		if len(langGlobs) > 0 && !matchAny(langGlobs, lang) {
			return false
		}

		for key, g := range metaGlobs {
			if !g.Match(meta.Get(key)) {
				return false
			}
		}

		return true
	}, nil
}

func matchAny(globs []glob.Glob, value string) bool {
	for _, g := range globs {
		if g.Match(value) {
			return true
		}
	}

	return false
}
