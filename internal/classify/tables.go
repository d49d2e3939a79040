// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// tables.go declares the per-format rule tables and the context passes that
// apply look-ahead headers to the lines beneath them.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/noteforge/pkg/types"
)

// tables holds the ordered rule list for each format. Order is the tie-break
// contract: earlier rules win.
var tables = map[types.FormatType][]Rule{
	types.FormatMeetingNotes: {
		{LabelAttendee, pattern(`(?i)^\s*(?:attendees|present|participants)\s*:\s*\S`)},
		{LabelHeader, isStrongHeader},
		{LabelActionItem, pattern(`(?i)^\s*(?:[-*•+]\s*)?(?:\[[ xX]\]\s*)?(?:action(?:\s+item)?|todo|follow[\s-]?up)\b\s*:?`)},
		{LabelDecision, pattern(`(?i)^\s*(?:[-*•+]\s*)?(?:decision|decided|agreed|resolved)\b`)},
		{LabelAgendaItem, IsListItem},
	},
	types.FormatTaskLists: {
		{LabelPriorityMarker, pattern(`(?i)^\s*(?:!{1,3}\s+|\[?(?:urgent|high|medium|low)\]?\s*:)`)},
		{LabelListItem, func(line string) bool {
			present, _ := CheckboxState(line)
			return present || IsListItem(line)
		}},
		{LabelCategoryHeader, isStrongHeader},
	},
	types.FormatShoppingLists: {
		{LabelCategoryHeader, isStrongHeader},
		{LabelListItem, func(line string) bool {
			return strings.TrimSpace(line) != ""
		}},
	},
	types.FormatJournalNotes: {
		{LabelDateHeader, isDateHeader},
		{LabelHeader, pattern(`^#{1,6}\s+\S`)},
		{LabelListItem, IsListItem},
	},
	types.FormatResearchNotes: {
		{LabelHeader, IsHeaderLine},
		{LabelListItem, IsListItem},
	},
	types.FormatStudyNotes: {
		{LabelQuestion, pattern(`(?i)^\s*(?:q\d*\s*[:.)]|question\b)|\?\s*$`)},
		{LabelAnswer, pattern(`(?i)^\s*(?:a\d*\s*[:.)]|answer\b\s*:)`)},
		{LabelHeader, IsHeaderLine},
		{LabelDefinition, isDefinition},
		{LabelListItem, IsListItem},
	},
}

// isStrongHeader accepts only unambiguous headers (markdown, ALL-CAPS,
// colon-terminated). List-like formats use it so that title-case content
// lines ("Call Bob", "Milk") are not mistaken for section headers.
func isStrongHeader(line string) bool {
	return markdownHeaderRe.MatchString(line) || IsAllCaps(line) || IsColonTerminated(line)
}

// dateHeaderRe matches lines that are substantially a date, with optional
// weekday prefix and decoration: "2024-01-15", "Monday, January 15, 2024",
// "## Jan 3".
var dateHeaderRe = regexp.MustCompile(`(?i)^\s*(?:#{1,6}\s*)?(?:(?:mon|tues?|wednes|thurs?|fri|satur|sun)day,?\s+)?(?:\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[/.]\d{1,2}[/.]\d{2,4}|(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)\s*:?\s*$`)

func isDateHeader(line string) bool {
	return dateHeaderRe.MatchString(line)
}

// definitionRe matches "Term: meaning", "Term — meaning", "Term is meaning"
// with a short leading term.
var definitionRe = regexp.MustCompile(`^\s*[A-Za-z][A-Za-z0-9 ()'/-]{0,50}\s*(?::|—|–| - |\bis\b)\s+\S`)

func isDefinition(line string) bool {
	return definitionRe.MatchString(line)
}

// postPasses adjusts labels using a small context window after the per-line
// pass. Meeting notes use look-ahead headers: a section header names the
// role of the lines beneath it until the next header.
var postPasses = map[types.FormatType]func([]LabeledLine){
	types.FormatMeetingNotes: meetingContextPass,
	types.FormatStudyNotes:   studyContextPass,
}

// meetingSectionFor maps a header's text to the label its section body
// should carry. Returns LabelPlain when the header names no known section.
func meetingSectionFor(header string) Label {
	name := strings.ToLower(StripHeaderMarkup(header))
	switch {
	case strings.Contains(name, "attendee"), strings.Contains(name, "present"),
		strings.Contains(name, "participant"):
		return LabelAttendee
	case strings.Contains(name, "action"), strings.Contains(name, "todo"),
		strings.Contains(name, "next step"):
		return LabelActionItem
	case strings.Contains(name, "decision"):
		return LabelDecision
	case strings.Contains(name, "agenda"):
		return LabelAgendaItem
	}
	return LabelPlain
}

func meetingContextPass(lines []LabeledLine) {
	section := LabelPlain
	for i := range lines {
		switch lines[i].Label {
		case LabelHeader:
			section = meetingSectionFor(lines[i].Text)
		case LabelBlank:
			// Blank lines neither close nor open sections.
		case LabelAgendaItem, LabelPlain:
			// Only generic lines inherit the section role; explicit
			// action/decision/attendee matches keep their own label.
			if section != LabelPlain {
				lines[i].Label = section
			}
		}
	}
}

// studyContextPass labels the line following a question as its answer when
// it has no stronger label of its own.
func studyContextPass(lines []LabeledLine) {
	for i := 1; i < len(lines); i++ {
		if lines[i].Label != LabelPlain {
			continue
		}
		if prev := previousNonBlank(lines, i); prev >= 0 && lines[prev].Label == LabelQuestion {
			lines[i].Label = LabelAnswer
		}
	}
}

func previousNonBlank(lines []LabeledLine, i int) int {
	for j := i - 1; j >= 0; j-- {
		if lines[j].Label != LabelBlank {
			return j
		}
	}
	return -1
}
