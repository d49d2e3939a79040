// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entity provides the pattern-matching entity extractors shared by
// all format engines: dates, URLs, emails, phone numbers, mentions,
// hashtags, citations, quotes, and sources.
//
// Every extractor is a pure function over its input text. Patterns within an
// extractor are tried in a fixed declared order and all matches from all
// patterns are unioned, so a single span may be captured by more than one
// pattern. Extractors never fail; the worst case is an empty result.
package entity

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/pdiddy/noteforge/pkg/types"
)

// stableID generates a deterministic identifier from an entity kind and its
// raw text plus ordinal. The ID is the first 12 hex characters of the
// SHA-256 digest, consistent across re-runs of unchanged input.
func stableID(kind, text string, ordinal int) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte(text))
	fmt.Fprintf(h, "%d", ordinal)
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// extractContext returns a snippet of surrounding text around a match,
// up to 40 characters on each side, trimmed to word boundaries.
func extractContext(text string, start, end int) string {
	const window = 40
	ctxStart := start - window
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + window
	if ctxEnd > len(text) {
		ctxEnd = len(text)
	}
	snippet := text[ctxStart:ctxEnd]
	if ctxStart > 0 {
		if i := strings.IndexByte(snippet, ' '); i >= 0 && i < window {
			snippet = snippet[i+1:]
		}
	}
	if ctxEnd < len(text) {
		if i := strings.LastIndexByte(snippet, ' '); i >= 0 && i > len(snippet)-window {
			snippet = snippet[:i]
		}
	}
	return strings.TrimSpace(snippet)
}

// Common runs every format-independent extractor over text and groups the
// hits. Safe on empty input.
func Common(text string) types.CommonEntities {
	return types.CommonEntities{
		Dates:        Dates(text),
		URLs:         URLs(text),
		Emails:       Emails(text),
		PhoneNumbers: PhoneNumbers(text),
		Mentions:     Mentions(text),
		Hashtags:     Hashtags(text),
	}
}
