// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Hit is a single pattern match: the raw text span plus a best-effort
// normalized value. Normalization failures leave Normalized empty rather
// than dropping the hit.
type Hit struct {
	// Text is the original matched span, preserved verbatim.
	Text string `json:"text" yaml:"text"`

	// Normalized is the cleaned-up value (lowercased email, scheme-qualified
	// URL, digits-only phone number). Empty when normalization failed.
	Normalized string `json:"normalized,omitempty" yaml:"normalized,omitempty"`
}

// DateHit is a date span with its parsed value. Parsed is the zero time
// when the span could not be parsed.
type DateHit struct {
	Text   string    `json:"text" yaml:"text"`
	Parsed time.Time `json:"parsed,omitempty" yaml:"parsed,omitempty"`
}

// CommonEntities groups the format-independent entity hits found in an input.
type CommonEntities struct {
	Dates        []DateHit `json:"dates,omitempty" yaml:"dates,omitempty"`
	URLs         []Hit     `json:"urls,omitempty" yaml:"urls,omitempty"`
	Emails       []Hit     `json:"emails,omitempty" yaml:"emails,omitempty"`
	PhoneNumbers []Hit     `json:"phone_numbers,omitempty" yaml:"phone_numbers,omitempty"`
	Mentions     []Hit     `json:"mentions,omitempty" yaml:"mentions,omitempty"`
	Hashtags     []Hit     `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`
}

// Count returns the total number of common entity hits.
func (c CommonEntities) Count() int {
	return len(c.Dates) + len(c.URLs) + len(c.Emails) +
		len(c.PhoneNumbers) + len(c.Mentions) + len(c.Hashtags)
}

// CitationStyle identifies which citation pattern matched a span.
type CitationStyle string

const (
	StyleAPA     CitationStyle = "apa"
	StyleMLA     CitationStyle = "mla"
	StyleChicago CitationStyle = "chicago"
	StyleHarvard CitationStyle = "harvard"
	StyleCustom  CitationStyle = "custom"
)

// CitationSource holds the bibliographic fields parsed out of a citation
// span. Fields that could not be parsed are left at their zero values.
type CitationSource struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Year        int    `json:"year,omitempty" yaml:"year,omitempty"`
	Publication string `json:"publication,omitempty" yaml:"publication,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Citation is a matched citation span. The same span may appear once per
// style pattern that matched it; overlapping matches are kept, not merged.
type Citation struct {
	// ID is a stable identifier referenced by Topic.CitationIDs.
	ID string `json:"id" yaml:"id"`

	// Text is the raw matched span.
	Text string `json:"text" yaml:"text"`

	// Style is the citation pattern that produced this match.
	Style CitationStyle `json:"style" yaml:"style"`

	// Source holds the parsed bibliographic fields.
	Source CitationSource `json:"source" yaml:"source"`
}

// Quote is a quoted passage with optional attribution.
type Quote struct {
	// ID is a stable identifier referenced by Topic.QuoteIDs.
	ID string `json:"id" yaml:"id"`

	// Text is the quoted content without the surrounding quote marks.
	Text string `json:"text" yaml:"text"`

	// Speaker is the attributed author, when one followed the quote.
	Speaker string `json:"speaker,omitempty" yaml:"speaker,omitempty"`

	// Context is a snippet of surrounding text.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// SourceKind categorizes a referenced source.
type SourceKind string

const (
	SourceWeb   SourceKind = "web"
	SourceBook  SourceKind = "book"
	SourceOther SourceKind = "other"
)

// Source is an external reference (URL, book, named work) found in the text.
type Source struct {
	ID    string     `json:"id" yaml:"id"`
	Title string     `json:"title,omitempty" yaml:"title,omitempty"`
	URL   string     `json:"url,omitempty" yaml:"url,omitempty"`
	Kind  SourceKind `json:"kind" yaml:"kind"`
}

// Topic is a pure index over the flat citation/quote arrays. It references
// entities by id and never holds authoritative entity data.
type Topic struct {
	// ID is a stable identifier for the topic.
	ID string `json:"id" yaml:"id"`

	// Name is the detected topic heading.
	Name string `json:"name" yaml:"name"`

	// Content is the accumulated body text under this topic.
	Content string `json:"content" yaml:"content"`

	// CitationIDs references Citation entries owned by the enclosing payload.
	CitationIDs []string `json:"citation_ids,omitempty" yaml:"citation_ids,omitempty"`

	// QuoteIDs references Quote entries owned by the enclosing payload.
	QuoteIDs []string `json:"quote_ids,omitempty" yaml:"quote_ids,omitempty"`
}
