// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"regexp"

	"github.com/araddon/dateparse"

	"github.com/pdiddy/noteforge/pkg/types"
)

// Date patterns, tried in declared order. All matches are unioned; a span
// matched by two patterns is reported once per pattern.
var datePatterns = []*regexp.Regexp{
	// ISO dates: 2024-01-15, 2024/01/15.
	regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b`),

	// Slash/dot dates: 1/15/2024, 15.01.2024.
	regexp.MustCompile(`\b\d{1,2}[/.]\d{1,2}[/.]\d{2,4}\b`),

	// Written month: January 15, 2024 / Jan 15 / 15 January 2024.
	regexp.MustCompile(`\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`),
	regexp.MustCompile(`\b\d{1,2}(?:st|nd|rd|th)?\s+(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?(?:,?\s+\d{4})?\b`),

	// Weekday references: Monday, Tuesday, ... optionally prefixed by next/this.
	regexp.MustCompile(`\b(?:next\s+|this\s+)?(?:Mon|Tues?|Wednes|Thurs?|Fri|Satur|Sun)day\b`),
}

// Dates finds date spans in text. Each span is parsed with dateparse where
// possible; spans that do not parse keep the zero time rather than being
// dropped.
func Dates(text string) []types.DateHit {
	var hits []types.DateHit
	for _, re := range datePatterns {
		for _, span := range re.FindAllString(text, -1) {
			hit := types.DateHit{Text: span}
			if t, err := dateparse.ParseAny(span); err == nil {
				hit.Parsed = t
			}
			hits = append(hits, hit)
		}
	}
	return hits
}
