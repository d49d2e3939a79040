// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"regexp"
	"strings"

	"github.com/pdiddy/noteforge/pkg/types"
)

var (
	// sourceLineRe matches explicit reference lines: "Source: ...",
	// "Ref: ...", "From: ...".
	sourceLineRe = regexp.MustCompile(`(?mi)^\s*(?:source|ref(?:erence)?|from)\s*:\s*(.+)$`)

	// bookRe matches "Title" by Author constructions.
	bookRe = regexp.MustCompile(`["“]([^"“”\n]{3,80})["”]\s+by\s+([A-Z][A-Za-z. ]+)`)
)

// Sources finds referenced works: explicit source lines, scheme-qualified
// URLs, and "Title" by Author book references. Ordering follows the
// declared pattern order; duplicates across patterns are kept.
func Sources(text string) []types.Source {
	var sources []types.Source

	for _, m := range sourceLineRe.FindAllStringSubmatch(text, -1) {
		value := strings.TrimSpace(m[1])
		src := types.Source{
			ID:   stableID("source", value, len(sources)),
			Kind: types.SourceOther,
		}
		if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
			src.URL = value
			src.Kind = types.SourceWeb
		} else {
			src.Title = value
		}
		sources = append(sources, src)
	}

	for _, hit := range URLs(text) {
		sources = append(sources, types.Source{
			ID:   stableID("source", hit.Normalized, len(sources)),
			URL:  hit.Normalized,
			Kind: types.SourceWeb,
		})
	}

	for _, m := range bookRe.FindAllStringSubmatch(text, -1) {
		sources = append(sources, types.Source{
			ID:    stableID("source", m[1], len(sources)),
			Title: strings.TrimSpace(m[1]) + " by " + strings.TrimSpace(m[2]),
			Kind:  types.SourceBook,
		})
	}

	return sources
}
