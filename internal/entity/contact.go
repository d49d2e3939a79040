// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"regexp"
	"strings"

	"github.com/pdiddy/noteforge/pkg/types"
)

// URL patterns, tried in declared order.
var urlPatterns = []*regexp.Regexp{
	// Scheme-qualified URLs.
	regexp.MustCompile(`\bhttps?://[^\s<>()\[\]{}'"]+`),

	// Bare www hosts.
	regexp.MustCompile(`\bwww\.[a-zA-Z0-9-]+\.[a-zA-Z]{2,}(?:/[^\s<>()\[\]{}'"]*)?`),
}

// URLs finds URL spans. Normalized values are scheme-qualified and stripped
// of trailing punctuation.
func URLs(text string) []types.Hit {
	var hits []types.Hit
	for _, re := range urlPatterns {
		for _, span := range re.FindAllString(text, -1) {
			normalized := strings.TrimRight(span, ".,;:!?")
			if !strings.HasPrefix(normalized, "http") {
				normalized = "https://" + normalized
			}
			hits = append(hits, types.Hit{Text: span, Normalized: normalized})
		}
	}
	return hits
}

var emailRe = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

// Emails finds email addresses. Normalized values are lowercased.
func Emails(text string) []types.Hit {
	var hits []types.Hit
	for _, span := range emailRe.FindAllString(text, -1) {
		hits = append(hits, types.Hit{Text: span, Normalized: strings.ToLower(span)})
	}
	return hits
}

// Phone patterns, tried in declared order.
var phonePatterns = []*regexp.Regexp{
	// International: +1 555 123 4567, +44-20-7946-0958.
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?(?:[-.\s]?\d{2,4}){2,3}`),

	// North American: (555) 123-4567, 555-123-4567, 555.123.4567.
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b`),
}

// PhoneNumbers finds phone-number spans. Normalized values keep digits and
// a leading plus only.
func PhoneNumbers(text string) []types.Hit {
	var hits []types.Hit
	for _, re := range phonePatterns {
		for _, span := range re.FindAllString(text, -1) {
			hits = append(hits, types.Hit{Text: span, Normalized: normalizePhone(span)})
		}
	}
	return hits
}

func normalizePhone(span string) string {
	var b strings.Builder
	for i, r := range span {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
