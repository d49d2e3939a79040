// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package organize assembles classified lines and extracted entities into a
// normalized document model, one organizer per format. All organizers share
// the same accumulator state machine: content gathers under the current
// section until a new header is detected, the open section is finalized, and
// a fresh one starts. Inputs with no detected header land under the format's
// default section title; content is never dropped for lack of a topic.
package organize

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/pkg/types"
)

// Section is one finalized block of content under a heading.
type Section struct {
	Title   string
	Content string

	// RawLines is the number of input lines swept into this section,
	// including ones the cleaner removed.
	RawLines int

	// tag holds an organizer-owned value attached to this section. It rides
	// along through flush, so per-section state survives the accumulator's
	// decision to keep or drop the section.
	tag any
}

// Document is the normalized model handed to the renderer.
type Document struct {
	Format   types.FormatType
	Sections []Section
	Data     types.ExtractedData

	// Confidence is the heuristic quality score in [0,100].
	Confidence int

	// DuplicatesRemoved counts items merged away during deduplication.
	DuplicatesRemoved int
}

// Organizer turns labeled lines plus the common entities into a Document.
type Organizer interface {
	Organize(lines []classify.LabeledLine, common types.CommonEntities) *Document
}

// For returns the organizer for a format. Unknown formats get the
// research-notes organizer, the most general of the six.
func For(format types.FormatType, weights types.ScoreWeights) Organizer {
	switch format {
	case types.FormatMeetingNotes:
		return &meetingOrganizer{weights: weights}
	case types.FormatTaskLists:
		return &taskOrganizer{weights: weights}
	case types.FormatShoppingLists:
		return &shoppingOrganizer{weights: weights}
	case types.FormatJournalNotes:
		return &journalOrganizer{weights: weights}
	case types.FormatStudyNotes:
		return &studyOrganizer{weights: weights}
	default:
		return &researchOrganizer{weights: weights}
	}
}

// tripleNewlineRe collapses runs of three or more newlines down to two.
var tripleNewlineRe = regexp.MustCompile(`\n{3,}`)

// accumulator implements the shared section state machine.
type accumulator struct {
	defaultTitle string
	sections     []Section
	current      *Section
	buf          strings.Builder
	raw          int
}

func newAccumulator(defaultTitle string) *accumulator {
	return &accumulator{defaultTitle: defaultTitle}
}

// StartSection finalizes the open section and begins a new one.
func (a *accumulator) StartSection(title string) {
	a.flush()
	title = strings.TrimSpace(title)
	if title == "" {
		title = a.defaultTitle
	}
	a.current = &Section{Title: title}
}

// Add appends a cleaned content line to the open section, opening the
// default section first if none is active. Lines are separated by a blank
// line in the content buffer.
func (a *accumulator) Add(line string) {
	if a.current == nil {
		a.current = &Section{Title: a.defaultTitle}
	}
	a.raw++
	line = strings.TrimRight(line, " \t")
	if a.buf.Len() > 0 {
		a.buf.WriteString("\n\n")
	}
	a.buf.WriteString(line)
}

// SectionTag returns the value attached to the open section, or nil when no
// section is open or none was attached.
func (a *accumulator) SectionTag() any {
	if a.current == nil {
		return nil
	}
	return a.current.tag
}

// TagSection attaches a value to the open section, opening the default
// section first if none is active.
func (a *accumulator) TagSection(v any) {
	if a.current == nil {
		a.current = &Section{Title: a.defaultTitle}
	}
	a.current.tag = v
}

// Sweep counts a raw line into the open section without adding content.
func (a *accumulator) Sweep() {
	if a.current != nil {
		a.raw++
	}
}

// Finish finalizes the open section and returns all sections in discovery
// order.
func (a *accumulator) Finish() []Section {
	a.flush()
	return a.sections
}

// flush finalizes the current section: trailing blank runs are trimmed,
// triple newlines collapse to two, and a section whose cleaned content came
// out unexpectedly short relative to the lines swept in keeps the content as
// free-form notes instead of being discarded.
func (a *accumulator) flush() {
	if a.current == nil {
		return
	}
	content := a.buf.String()
	content = strings.TrimRight(content, "\n \t")
	content = tripleNewlineRe.ReplaceAllString(content, "\n\n")

	sec := *a.current
	sec.Content = content
	sec.RawLines = a.raw
	if content != "" || sec.Title != a.defaultTitle {
		a.sections = append(a.sections, sec)
	}

	a.current = nil
	a.buf.Reset()
	a.raw = 0
}

// cleanLine strips list markers, checkboxes, and quote prefixes from a
// content line.
func cleanLine(line string) string {
	s := classify.StripListMarker(line)
	s = strings.TrimPrefix(s, "> ")
	return strings.TrimSpace(s)
}

// stableID generates a deterministic identifier for an organized entity
// from its kind, text, and position in the owning array.
func stableID(kind, text string, ordinal int) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte(text))
	fmt.Fprintf(h, "%d", ordinal)
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}
