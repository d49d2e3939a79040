// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"regexp"

	"github.com/pdiddy/noteforge/pkg/types"
)

// Quote patterns, tried in declared order. The minimum span lengths keep
// apostrophes and short scare quotes out of the results.
var quotePatterns = []*regexp.Regexp{
	// Straight double quotes.
	regexp.MustCompile(`"([^"\n]{10,})"`),

	// Curly double quotes.
	regexp.MustCompile(`“([^”\n]{10,})”`),

	// Long single-quoted passages.
	regexp.MustCompile(`'([^'\n]{25,})'`),
}

// speakerAfterRe matches a dash attribution following a quote: — Author.
var speakerAfterRe = regexp.MustCompile(`^\s*[—–-]{1,2}\s*([A-Z][A-Za-z. ]{1,40})`)

// speakerBeforeRe matches a verb attribution preceding a quote: Smith said,
var speakerBeforeRe = regexp.MustCompile(`([A-Z][A-Za-z.]+(?:\s+[A-Z][A-Za-z.]+)?)\s+(?:said|says|wrote|writes|noted|notes|argued|argues)[,:]?\s*$`)

// Quotes finds quoted passages with best-effort speaker attribution and a
// context snippet.
func Quotes(text string) []types.Quote {
	var quotes []types.Quote
	for _, re := range quotePatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			body := text[m[2]:m[3]]
			q := types.Quote{
				ID:      stableID("quote", body, len(quotes)),
				Text:    body,
				Context: extractContext(text, m[0], m[1]),
			}
			if sp := speakerAfterRe.FindStringSubmatch(text[m[1]:]); sp != nil {
				q.Speaker = trimSpeaker(sp[1])
			} else if sp := speakerBeforeRe.FindStringSubmatch(text[:m[0]]); sp != nil {
				q.Speaker = trimSpeaker(sp[1])
			}
			quotes = append(quotes, q)
		}
	}
	return quotes
}

func trimSpeaker(s string) string {
	for len(s) > 0 {
		last := s[len(s)-1]
		if last == ' ' || last == '.' {
			s = s[:len(s)-1]
			continue
		}
		break
	}
	return s
}
