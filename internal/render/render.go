// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns an organized document model back into clean,
// human-readable text. Rendering is a pure function of the model: same
// model, same output, with section order following discovery order and a
// summary footer computed from model counts only.
package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/noteforge/internal/organize"
	"github.com/pdiddy/noteforge/pkg/types"
)

// titles maps each format to its rendered banner.
var titles = map[types.FormatType]string{
	types.FormatMeetingNotes:  "MEETING NOTES",
	types.FormatTaskLists:     "TASK LIST",
	types.FormatShoppingLists: "SHOPPING LIST",
	types.FormatJournalNotes:  "JOURNAL",
	types.FormatResearchNotes: "RESEARCH NOTES",
	types.FormatStudyNotes:    "STUDY NOTES",
}

// Render produces the formatted text for a document. Empty documents render
// as just the banner and a zero-item summary.
func Render(doc *organize.Document) string {
	var b strings.Builder

	title := titles[doc.Format]
	if title == "" {
		title = "NOTES"
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(title)))
	b.WriteString("\n")

	switch doc.Format {
	case types.FormatMeetingNotes:
		renderMeeting(&b, doc.Data.Meeting, doc.Sections)
	case types.FormatTaskLists:
		renderTasks(&b, doc.Data.Tasks)
	case types.FormatShoppingLists:
		renderShopping(&b, doc.Data.Shopping)
	case types.FormatJournalNotes:
		renderJournal(&b, doc.Data.Journal)
	case types.FormatResearchNotes:
		renderResearch(&b, doc.Data.Research)
	case types.FormatStudyNotes:
		renderStudy(&b, doc.Data.Study)
	}

	fmt.Fprintf(&b, "\n---\nSummary: %d items, confidence %d%%\n",
		doc.Data.ItemCount(), doc.Confidence)
	return b.String()
}

func heading(b *strings.Builder, name string) {
	b.WriteString("\n")
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(name)))
	b.WriteString("\n")
}

func bullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
}

func renderMeeting(b *strings.Builder, data *types.MeetingNotesData, sections []organize.Section) {
	if data == nil {
		return
	}
	if len(data.Attendees) > 0 {
		heading(b, "Attendees")
		bullets(b, data.Attendees)
	}
	if len(data.Agenda) > 0 {
		heading(b, "Agenda")
		for i, item := range data.Agenda {
			fmt.Fprintf(b, "%d. %s\n", i+1, item)
		}
	}
	for _, sec := range sections {
		if strings.TrimSpace(sec.Content) == "" {
			continue
		}
		heading(b, sec.Title)
		b.WriteString(sec.Content)
		b.WriteString("\n")
	}
	if len(data.ActionItems) > 0 {
		heading(b, "Action Items")
		for _, item := range data.ActionItems {
			b.WriteString("- [ ] ")
			b.WriteString(item.Text)
			if item.Owner != "" {
				fmt.Fprintf(b, " (owner: %s)", item.Owner)
			}
			if item.DueText != "" {
				fmt.Fprintf(b, " (due: %s)", item.DueText)
			}
			b.WriteString("\n")
		}
	}
	if len(data.Decisions) > 0 {
		heading(b, "Decisions")
		bullets(b, data.Decisions)
	}
}

// prioritySigils marks rendered tasks by tier.
var prioritySigils = map[types.TaskPriority]string{
	types.TaskUrgent: "!!!",
	types.TaskHigh:   "!!",
	types.TaskMedium: "",
	types.TaskLow:    "",
}

func renderTasks(b *strings.Builder, data *types.TaskListsData) {
	if data == nil {
		return
	}
	byCategory := map[string][]types.TaskItem{}
	var order []string
	for _, t := range data.Tasks {
		if _, ok := byCategory[t.Category]; !ok {
			order = append(order, t.Category)
		}
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	for _, cat := range order {
		name := cat
		if name == "" {
			name = "Tasks"
		}
		heading(b, name)
		for _, t := range byCategory[cat] {
			box := "[ ]"
			if t.Done {
				box = "[x]"
			}
			b.WriteString("- ")
			b.WriteString(box)
			b.WriteString(" ")
			if sigil := prioritySigils[t.Priority]; sigil != "" {
				b.WriteString(sigil)
				b.WriteString(" ")
			}
			b.WriteString(t.Text)
			if t.DueText != "" {
				fmt.Fprintf(b, " (due: %s)", t.DueText)
			}
			b.WriteString("\n")
		}
	}
}

func renderShopping(b *strings.Builder, data *types.ShoppingListsData) {
	if data == nil {
		return
	}
	for _, cat := range data.Categories {
		heading(b, cat)
		for _, item := range data.Items {
			if item.Category != cat {
				continue
			}
			b.WriteString("- [ ] ")
			if item.Quantity > 0 {
				b.WriteString(strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", item.Quantity), "0"), "."))
				b.WriteString(" ")
				if item.Unit != "" {
					b.WriteString(item.Unit)
					b.WriteString(" ")
				}
			}
			b.WriteString(item.Name)
			if item.Note != "" {
				fmt.Fprintf(b, " (%s)", item.Note)
			}
			b.WriteString("\n")
		}
	}
}

func renderJournal(b *strings.Builder, data *types.JournalNotesData) {
	if data == nil {
		return
	}
	for _, e := range data.Entries {
		name := e.DateText
		if name == "" {
			name = "Entry"
		}
		if !e.Date.IsZero() {
			name = e.Date.Format("Monday, January 2, 2006")
		}
		heading(b, name)
		if e.Mood != "" {
			fmt.Fprintf(b, "Mood: %s\n\n", e.Mood)
		}
		b.WriteString(e.Content)
		b.WriteString("\n")
		if len(e.Tags) > 0 {
			fmt.Fprintf(b, "\nTags: %s\n", strings.Join(e.Tags, ", "))
		}
	}
}

func renderResearch(b *strings.Builder, data *types.ResearchNotesData) {
	if data == nil {
		return
	}
	citationsByID := make(map[string]types.Citation, len(data.Citations))
	for _, c := range data.Citations {
		citationsByID[c.ID] = c
	}

	for _, t := range data.Topics {
		heading(b, t.Name)
		if strings.TrimSpace(t.Content) != "" {
			b.WriteString(t.Content)
			b.WriteString("\n")
		}
		if len(t.CitationIDs) > 0 {
			b.WriteString("\nCitations:\n")
			for _, id := range t.CitationIDs {
				if c, ok := citationsByID[id]; ok {
					fmt.Fprintf(b, "- %s [%s]\n", c.Text, c.Style)
				}
			}
		}
	}

	if len(data.Quotes) > 0 {
		heading(b, "Quotes")
		for _, q := range data.Quotes {
			fmt.Fprintf(b, "> %q", q.Text)
			if q.Speaker != "" {
				fmt.Fprintf(b, " — %s", q.Speaker)
			}
			b.WriteString("\n")
		}
	}

	if len(data.Sources) > 0 {
		heading(b, "Sources")
		for _, s := range data.Sources {
			b.WriteString("- ")
			if s.Title != "" {
				b.WriteString(s.Title)
				if s.URL != "" {
					b.WriteString(" — ")
				}
			}
			if s.URL != "" {
				b.WriteString(s.URL)
			}
			b.WriteString("\n")
		}
	}
}

func renderStudy(b *strings.Builder, data *types.StudyNotesData) {
	if data == nil {
		return
	}
	for _, t := range data.Topics {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		heading(b, t.Name)
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	if len(data.Definitions) > 0 {
		heading(b, "Definitions")
		for _, d := range data.Definitions {
			fmt.Fprintf(b, "- %s: %s\n", d.Term, d.Meaning)
		}
	}
	if len(data.QAPairs) > 0 {
		heading(b, "Review Questions")
		for i, qa := range data.QAPairs {
			fmt.Fprintf(b, "%d. Q: %s\n", i+1, qa.Question)
			if qa.Answer != "" {
				fmt.Fprintf(b, "   A: %s\n", qa.Answer)
			}
		}
	}
	if len(data.KeyTerms) > 0 {
		heading(b, "Key Terms")
		b.WriteString(strings.Join(data.KeyTerms, ", "))
		b.WriteString("\n")
	}
}
