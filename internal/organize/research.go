// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"strings"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/internal/entity"
	"github.com/pdiddy/noteforge/pkg/types"
)

// defaultResearchTopic names the section used when no header is detected.
const defaultResearchTopic = "Introduction"

// researchOrganizer builds topics with by-reference citation/quote indexes.
// The flat Citations/Quotes/Sources arrays own the entities; each Topic
// holds only id lists into them.
type researchOrganizer struct {
	weights types.ScoreWeights
}

// topicDraft accumulates per-topic entity references while lines sweep in.
type topicDraft struct {
	citationIDs []string
	quoteIDs    []string
}

func (o *researchOrganizer) Organize(lines []classify.LabeledLine, common types.CommonEntities) *Document {
	acc := newAccumulator(defaultResearchTopic)

	data := &types.ResearchNotesData{}

	// The draft for the open section lives on the section itself, so a
	// dropped content-free lead-in can never shift references onto the
	// wrong topic.
	current := func() *topicDraft {
		if d, ok := acc.SectionTag().(*topicDraft); ok {
			return d
		}
		d := &topicDraft{}
		acc.TagSection(d)
		return d
	}

	for _, line := range lines {
		switch line.Label {
		case classify.LabelBlank:
			acc.Sweep()
		case classify.LabelHeader:
			acc.StartSection(classify.StripHeaderMarkup(line.Text))
		default:
			// Scan before cleaning so citation/quote punctuation survives.
			d := current()
			for _, c := range entity.Citations(line.Text) {
				c.ID = stableID("citation", c.Text, len(data.Citations))
				data.Citations = append(data.Citations, c)
				d.citationIDs = append(d.citationIDs, c.ID)
			}
			for _, q := range entity.Quotes(line.Text) {
				q.ID = stableID("quote", q.Text, len(data.Quotes))
				data.Quotes = append(data.Quotes, q)
				d.quoteIDs = append(d.quoteIDs, q.ID)
			}
			for _, s := range entity.Sources(line.Text) {
				s.ID = stableID("source", s.Title+s.URL, len(data.Sources))
				data.Sources = append(data.Sources, s)
			}
			acc.Add(cleanLine(line.Text))
		}
	}

	sections := acc.Finish()

	for i, sec := range sections {
		topic := types.Topic{
			ID:      stableID("topic", sec.Title, i),
			Name:    sec.Title,
			Content: sec.Content,
		}
		if d, ok := sec.tag.(*topicDraft); ok {
			topic.CitationIDs = d.citationIDs
			topic.QuoteIDs = d.quoteIDs
		}
		data.Topics = append(data.Topics, topic)
	}

	doc := &Document{
		Format:   types.FormatResearchNotes,
		Sections: sections,
		Data: types.ExtractedData{
			Format:   types.FormatResearchNotes,
			Common:   common,
			Research: data,
		},
	}

	entities := len(data.Citations) + len(data.Quotes) + len(data.Sources)
	doc.Confidence = score(o.weights, entities, len(sections), o.hasAcademicEntry(data))
	return doc
}

// hasAcademicEntry reports whether at least one topic carries both content
// and a citation or quote reference, the structural signal for the bonus.
func (o *researchOrganizer) hasAcademicEntry(data *types.ResearchNotesData) bool {
	for _, t := range data.Topics {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		if len(t.CitationIDs) > 0 || len(t.QuoteIDs) > 0 {
			return true
		}
	}
	return false
}
