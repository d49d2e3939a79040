// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// citations.go detects citation spans in one of four bibliographic styles
// plus a generic bracketed fallback.
package entity

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/noteforge/pkg/types"
)

// citationRule pairs a style's matcher with the extractor that pulls
// bibliographic fields from its capture groups. Rules run in declared order
// and every match from every rule is kept: a span satisfying two styles is
// reported once per style, by design of the over-capture policy.
type citationRule struct {
	style types.CitationStyle
	re    *regexp.Regexp
	parse func(m []string) types.CitationSource
}

var citationRules = []citationRule{
	{
		// APA narrative: Smith et al. (2023), Smith and Jones (2021).
		style: types.StyleAPA,
		re:    regexp.MustCompile(`\b([A-Z][A-Za-z'-]+(?:\s+(?:et\s+al\.|(?:and|&)\s+[A-Z][A-Za-z'-]+))?)\s+\(((?:19|20)\d{2})\)`),
		parse: func(m []string) types.CitationSource {
			return types.CitationSource{Author: m[1], Year: parseYear(m[2])}
		},
	},
	{
		// APA parenthetical: (Smith, 2023), (Smith & Jones, 2023, p. 45).
		style: types.StyleAPA,
		re:    regexp.MustCompile(`\(([A-Z][A-Za-z'-]+(?:\s+et\s+al\.)?(?:\s*[&]\s*[A-Z][A-Za-z'-]+)?),\s*((?:19|20)\d{2})(?:,\s*pp?\.\s*\d+(?:\s*[-–]\s*\d+)?)?\)`),
		parse: func(m []string) types.CitationSource {
			return types.CitationSource{Author: m[1], Year: parseYear(m[2])}
		},
	},
	{
		// MLA parenthetical: (Smith 45) — author plus page, no year.
		style: types.StyleMLA,
		re:    regexp.MustCompile(`\(([A-Z][A-Za-z'-]+)\s+(\d{1,3})\)`),
		parse: func(m []string) types.CitationSource {
			return types.CitationSource{Author: m[1]}
		},
	},
	{
		// Chicago footnote: 1. Jane Smith, Title of Work (Publisher, 2019).
		style: types.StyleChicago,
		re:    regexp.MustCompile(`(?m)^\s*\d{1,3}\.\s+([A-Z][A-Za-z'-]+(?:\s+[A-Z][A-Za-z'-]+)*),\s+([^(]+?)\s*\(([^)]*?((?:19|20)\d{2})[^)]*)\)`),
		parse: func(m []string) types.CitationSource {
			return types.CitationSource{
				Author:      m[1],
				Title:       strings.TrimRight(strings.TrimSpace(m[2]), ","),
				Publication: strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[3]), m[4])),
				Year:        parseYear(m[4]),
			}
		},
	},
	{
		// Harvard: (Smith 2023), (Smith et al. 2023) — year, no comma.
		style: types.StyleHarvard,
		re:    regexp.MustCompile(`\(([A-Z][A-Za-z'-]+(?:\s+et\s+al\.)?)\s+((?:19|20)\d{2})\)`),
		parse: func(m []string) types.CitationSource {
			return types.CitationSource{Author: m[1], Year: parseYear(m[2])}
		},
	},
	{
		// Generic bracketed reference: [Smith 2023], [Smith, 2023].
		style: types.StyleCustom,
		re:    regexp.MustCompile(`\[([A-Z][A-Za-z'-]+(?:\s+et\s+al\.)?),?\s+((?:19|20)\d{2})\]`),
		parse: func(m []string) types.CitationSource {
			return types.CitationSource{Author: m[1], Year: parseYear(m[2])}
		},
	},
}

// Citations scans text with every style rule and unions the matches. The
// publication cleanup strips trailing publisher commas; fields that fail to
// parse stay zero-valued.
func Citations(text string) []types.Citation {
	var citations []types.Citation
	for _, rule := range citationRules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			src := rule.parse(m)
			src.Publication = strings.TrimRight(src.Publication, ", ")
			citations = append(citations, types.Citation{
				ID:     stableID("citation", m[0], len(citations)),
				Text:   m[0],
				Style:  rule.style,
				Source: src,
			})
		}
	}
	return citations
}

// parseYear converts a 4-digit year string; failures return 0.
func parseYear(s string) int {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return y
}
