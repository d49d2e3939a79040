// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"regexp"
	"strings"

	"github.com/pdiddy/noteforge/pkg/types"
)

var (
	mentionRe = regexp.MustCompile(`(?:^|\s)(@[a-zA-Z0-9_.-]+)`)
	hashtagRe = regexp.MustCompile(`(?:^|\s)(#[a-zA-Z][a-zA-Z0-9_-]*)`)
)

// Mentions finds @name references. Normalized values drop the sigil and
// lowercase the handle.
func Mentions(text string) []types.Hit {
	var hits []types.Hit
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		span := m[1]
		hits = append(hits, types.Hit{
			Text:       span,
			Normalized: strings.ToLower(strings.TrimPrefix(span, "@")),
		})
	}
	return hits
}

// Hashtags finds #tag references. Normalized values drop the sigil and
// lowercase the tag.
func Hashtags(text string) []types.Hit {
	var hits []types.Hit
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		span := m[1]
		hits = append(hits, types.Hit{
			Text:       span,
			Normalized: strings.ToLower(strings.TrimPrefix(span, "#")),
		})
	}
	return hits
}
