// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/internal/entity"
	"github.com/pdiddy/noteforge/internal/organize"
	"github.com/pdiddy/noteforge/pkg/types"
)

func organizeText(format types.FormatType, text string) *organize.Document {
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	labeled := classify.Classify(format, lines)
	return organize.For(format, types.DefaultScoreWeights()).Organize(labeled, entity.Common(text))
}

func TestRender_Shopping(t *testing.T) {
	doc := organizeText(types.FormatShoppingLists, "2 lbs chicken\nmilk\nbread")
	out := Render(doc)

	if !strings.HasPrefix(out, "SHOPPING LIST\n=============\n") {
		t.Errorf("banner missing:\n%s", out)
	}
	for _, want := range []string{
		"Dairy\n-----\n- [ ] milk\n",
		"Meat & Seafood\n--------------\n- [ ] 2 lbs chicken\n",
		"Bakery\n------\n- [ ] bread\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Summary: 3 items") {
		t.Errorf("summary missing:\n%s", out)
	}
}

func TestRender_Meeting(t *testing.T) {
	input := strings.Join([]string{
		"Attendees: Alice, Bob",
		"",
		"Action Items:",
		"- Alice to send the recap",
	}, "\n")
	out := Render(organizeText(types.FormatMeetingNotes, input))

	if !strings.HasPrefix(out, "MEETING NOTES\n") {
		t.Errorf("banner missing:\n%s", out)
	}
	if !strings.Contains(out, "Attendees\n---------\n- Alice\n- Bob\n") {
		t.Errorf("attendee block missing:\n%s", out)
	}
	if !strings.Contains(out, "- [ ] Alice to send the recap (owner: Alice)") {
		t.Errorf("action item missing:\n%s", out)
	}
}

func TestRender_TasksSigils(t *testing.T) {
	out := Render(organizeText(types.FormatTaskLists, "- pay rent!!!\n- [x] book flights\n- read chapter"))

	if !strings.Contains(out, "- [ ] !!! pay rent!!!\n") {
		t.Errorf("urgent sigil missing:\n%s", out)
	}
	if !strings.Contains(out, "- [x] book flights\n") {
		t.Errorf("done checkbox missing:\n%s", out)
	}
}

func TestRender_Journal(t *testing.T) {
	out := Render(organizeText(types.FormatJournalNotes, "2024-01-15\n\nFeeling grateful for the quiet morning. #slowliving"))

	if !strings.Contains(out, "Monday, January 15, 2024\n") {
		t.Errorf("formatted date missing:\n%s", out)
	}
	if !strings.Contains(out, "Mood: grateful\n") {
		t.Errorf("mood line missing:\n%s", out)
	}
	if !strings.Contains(out, "Tags: slowliving\n") {
		t.Errorf("tags line missing:\n%s", out)
	}
}

func TestRender_Research(t *testing.T) {
	input := strings.Join([]string{
		"Findings",
		"Warming accelerated after 2000 (Smith, 2023, p. 45).",
		`"The signal is now unmistakable" — Dr. Jones`,
	}, "\n")
	out := Render(organizeText(types.FormatResearchNotes, input))

	if !strings.Contains(out, "Findings\n--------\n") {
		t.Errorf("topic heading missing:\n%s", out)
	}
	if !strings.Contains(out, "Citations:\n- (Smith, 2023, p. 45) [apa]\n") {
		t.Errorf("citation block missing:\n%s", out)
	}
	if !strings.Contains(out, `> "The signal is now unmistakable" — Dr. Jones`) {
		t.Errorf("quote block missing:\n%s", out)
	}
}

func TestRender_Study(t *testing.T) {
	input := strings.Join([]string{
		"Osmosis: diffusion of water across a membrane",
		"",
		"Q: What drives osmosis?",
		"A: The concentration gradient.",
	}, "\n")
	out := Render(organizeText(types.FormatStudyNotes, input))

	if !strings.Contains(out, "Definitions\n-----------\n- Osmosis: diffusion of water across a membrane\n") {
		t.Errorf("definitions missing:\n%s", out)
	}
	if !strings.Contains(out, "1. Q: What drives osmosis?\n   A: The concentration gradient.\n") {
		t.Errorf("qa block missing:\n%s", out)
	}
	if !strings.Contains(out, "Key Terms\n---------\nOsmosis\n") {
		t.Errorf("key terms missing:\n%s", out)
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	doc := organizeText(types.FormatResearchNotes, "")
	out := Render(doc)

	want := "RESEARCH NOTES\n==============\n\n---\nSummary: 0 items, confidence 0%\n"
	if out != want {
		t.Errorf("empty render = %q, want %q", out, want)
	}
}

func TestRender_Deterministic(t *testing.T) {
	doc := organizeText(types.FormatMeetingNotes, "Attendees: Alice\n\nDecided to ship on Friday")
	if first, second := Render(doc), Render(doc); first != second {
		t.Errorf("render not deterministic:\n%s\n%s", first, second)
	}
}
