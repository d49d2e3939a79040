// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"strings"

	"github.com/araddon/dateparse"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/internal/entity"
	"github.com/pdiddy/noteforge/pkg/types"
)

const defaultJournalTopic = "Journal Entry"

// journalOrganizer splits content on date headers into dated entries, with
// mood detection and hashtag collection per entry.
type journalOrganizer struct {
	weights types.ScoreWeights
}

// moodKeywords maps detected words to a canonical mood. Checked in declared
// order; the first hit wins for an entry.
var moodKeywords = []struct {
	mood  string
	words []string
}{
	{"happy", []string{"happy", "joyful", "delighted", "wonderful", "fantastic"}},
	{"grateful", []string{"grateful", "thankful", "blessed"}},
	{"excited", []string{"excited", "thrilled", "can't wait", "cant wait"}},
	{"calm", []string{"calm", "peaceful", "relaxed", "serene"}},
	{"sad", []string{"sad", "down", "unhappy", "depressed", "miserable"}},
	{"anxious", []string{"anxious", "worried", "nervous", "stressed", "overwhelmed"}},
	{"angry", []string{"angry", "furious", "frustrated", "annoyed"}},
	{"tired", []string{"tired", "exhausted", "drained", "sleepy"}},
}

func (o *journalOrganizer) Organize(lines []classify.LabeledLine, common types.CommonEntities) *Document {
	acc := newAccumulator(defaultJournalTopic)

	for _, line := range lines {
		switch line.Label {
		case classify.LabelBlank:
			acc.Sweep()
		case classify.LabelDateHeader, classify.LabelHeader:
			acc.StartSection(classify.StripHeaderMarkup(line.Text))
		default:
			acc.Add(cleanLine(line.Text))
		}
	}

	sections := acc.Finish()
	data := &types.JournalNotesData{}

	for _, sec := range sections {
		entry := types.JournalEntry{Content: sec.Content, Mood: detectMood(sec.Content)}
		if sec.Title != defaultJournalTopic {
			entry.DateText = sec.Title
			if t, err := dateparse.ParseAny(sec.Title); err == nil {
				entry.Date = t
			}
		}
		for _, tag := range entity.Hashtags(sec.Content) {
			entry.Tags = append(entry.Tags, tag.Normalized)
		}
		data.Entries = append(data.Entries, entry)
	}

	doc := &Document{
		Format:   types.FormatJournalNotes,
		Sections: sections,
		Data: types.ExtractedData{
			Format:  types.FormatJournalNotes,
			Common:  common,
			Journal: data,
		},
	}

	entities := 0
	structural := false
	for _, e := range data.Entries {
		entities += len(e.Tags)
		if e.Mood != "" {
			entities++
		}
		if !e.Date.IsZero() {
			structural = true
		}
	}
	doc.Confidence = score(o.weights, entities, len(sections), structural)
	return doc
}

// detectMood scans entry content for mood words; the first table hit wins.
func detectMood(content string) string {
	lower := strings.ToLower(content)
	for _, m := range moodKeywords {
		for _, w := range m.words {
			if strings.Contains(lower, w) {
				return m.mood
			}
		}
	}
	return ""
}
