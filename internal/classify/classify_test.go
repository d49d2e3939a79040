// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"
	"testing"

	"github.com/pdiddy/noteforge/pkg/types"
)

func labelsOf(lines []LabeledLine) []Label {
	out := make([]Label, len(lines))
	for i, l := range lines {
		out[i] = l.Label
	}
	return out
}

func TestClassify_MeetingNotes(t *testing.T) {
	input := strings.Split(strings.TrimSpace(`
Attendees: Alice, Bob
Agenda:
- budget review
- hiring plan

Decided to freeze hiring.
Action: Alice to circulate minutes
`), "\n")

	labeled := Classify(types.FormatMeetingNotes, input)
	want := []Label{
		LabelAttendee,
		LabelHeader,
		LabelAgendaItem,
		LabelAgendaItem,
		LabelBlank,
		LabelDecision,
		LabelActionItem,
	}
	got := labelsOf(labeled)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d (%q): label = %s, want %s", i+1, labeled[i].Text, got[i], want[i])
		}
	}
}

// A section header applies to the generic lines beneath it until the next
// header; explicit matches keep their own labels.
func TestClassify_MeetingLookaheadHeaders(t *testing.T) {
	input := []string{
		"Action Items:",
		"- send the report",
		"- book the room",
		"Decisions:",
		"- ship on Friday",
	}

	labeled := Classify(types.FormatMeetingNotes, input)
	want := []Label{LabelHeader, LabelActionItem, LabelActionItem, LabelHeader, LabelDecision}
	for i := range want {
		if labeled[i].Label != want[i] {
			t.Errorf("line %d: label = %s, want %s", i+1, labeled[i].Label, want[i])
		}
	}
}

func TestClassify_TaskLists(t *testing.T) {
	tests := []struct {
		line string
		want Label
	}{
		{"urgent: pay taxes", LabelPriorityMarker},
		{"!!! fix the build", LabelPriorityMarker},
		{"- [ ] write tests", LabelListItem},
		{"- [x] read spec", LabelListItem},
		{"2. call the vendor", LabelListItem},
		{"Work:", LabelCategoryHeader},
		{"ERRANDS", LabelCategoryHeader},
		{"just a note", LabelPlain},
		{"", LabelBlank},
	}
	for _, tt := range tests {
		got := Classify(types.FormatTaskLists, []string{tt.line})[0].Label
		if got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.line, got, tt.want)
		}
	}
}

func TestClassify_ShoppingLists(t *testing.T) {
	input := []string{"Produce:", "apples", "- milk (2%)", ""}
	labeled := Classify(types.FormatShoppingLists, input)
	want := []Label{LabelCategoryHeader, LabelListItem, LabelListItem, LabelBlank}
	for i := range want {
		if labeled[i].Label != want[i] {
			t.Errorf("line %d: label = %s, want %s", i+1, labeled[i].Label, want[i])
		}
	}
}

func TestClassify_JournalDateHeaders(t *testing.T) {
	tests := []struct {
		line string
		want Label
	}{
		{"2024-01-15", LabelDateHeader},
		{"Monday, January 15, 2024", LabelDateHeader},
		{"## Jan 3", LabelDateHeader},
		{"Went for a walk on 2024-01-15 and thought.", LabelPlain},
	}
	for _, tt := range tests {
		got := Classify(types.FormatJournalNotes, []string{tt.line})[0].Label
		if got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.line, got, tt.want)
		}
	}
}

// Research headers are detected in priority order: markdown, ALL-CAPS,
// short title-case, colon-terminated.
func TestClassify_ResearchHeaders(t *testing.T) {
	tests := []struct {
		line string
		want Label
	}{
		{"## Methods", LabelHeader},
		{"CLIMATE FINDINGS", LabelHeader},
		{"Crop Yields", LabelHeader},
		{"Background:", LabelHeader},
		{"- a bullet point", LabelListItem},
		{"The data suggests otherwise, frankly.", LabelPlain},
	}
	for _, tt := range tests {
		got := Classify(types.FormatResearchNotes, []string{tt.line})[0].Label
		if got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.line, got, tt.want)
		}
	}
}

func TestClassify_StudyNotes(t *testing.T) {
	input := []string{
		"Q: What is osmosis?",
		"Movement of water across a membrane.",
		"Osmosis: diffusion of water",
		"Photosynthesis is how plants make food.",
	}
	labeled := Classify(types.FormatStudyNotes, input)
	want := []Label{LabelQuestion, LabelAnswer, LabelDefinition, LabelDefinition}
	for i := range want {
		if labeled[i].Label != want[i] {
			t.Errorf("line %d (%q): label = %s, want %s", i+1, labeled[i].Text, got(labeled, i), want[i])
		}
	}
}

func got(lines []LabeledLine, i int) Label { return lines[i].Label }

func TestClassify_BlankNeverStartsSection(t *testing.T) {
	input := []string{"Action Items:", "", "- send the report"}
	labeled := Classify(types.FormatMeetingNotes, input)
	if labeled[1].Label != LabelBlank {
		t.Errorf("blank line labeled %s", labeled[1].Label)
	}
	if labeled[2].Label != LabelActionItem {
		t.Errorf("item after blank labeled %s, want %s", labeled[2].Label, LabelActionItem)
	}
}

func TestClassify_UnknownFormatFallsBack(t *testing.T) {
	labeled := Classify(types.FormatType("bogus"), []string{"## Heading"})
	if labeled[0].Label != LabelHeader {
		t.Errorf("label = %s, want %s", labeled[0].Label, LabelHeader)
	}
}

func TestCheckboxState(t *testing.T) {
	tests := []struct {
		line          string
		present, done bool
	}{
		{"- [ ] open", true, false},
		{"- [x] closed", true, true},
		{"[X] closed", true, true},
		{"- plain bullet", false, false},
	}
	for _, tt := range tests {
		present, done := CheckboxState(tt.line)
		if present != tt.present || done != tt.done {
			t.Errorf("CheckboxState(%q) = (%v,%v), want (%v,%v)", tt.line, present, done, tt.present, tt.done)
		}
	}
}

func TestStripListMarker(t *testing.T) {
	tests := []struct{ in, want string }{
		{"- [x] read spec", "read spec"},
		{"2. call the vendor", "call the vendor"},
		{"• bullet", "bullet"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := StripListMarker(tt.in); got != tt.want {
			t.Errorf("StripListMarker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
