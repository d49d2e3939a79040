// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/internal/entity"
	"github.com/pdiddy/noteforge/pkg/types"
)

const defaultMeetingTopic = "Discussion"

// meetingOrganizer collects attendees, agenda items, action items, and
// decisions into the meeting payload; remaining discussion lines accumulate
// under their headers.
type meetingOrganizer struct {
	weights types.ScoreWeights
}

var (
	// attendeePrefixRe strips the "Attendees:" style lead-in.
	attendeePrefixRe = regexp.MustCompile(`(?i)^\s*(?:attendees|present|participants)\s*:\s*`)

	// actionPrefixRe strips action keywords from the front of an item.
	actionPrefixRe = regexp.MustCompile(`(?i)^\s*(?:action(?:\s+item)?|todo|follow[\s-]?up)\s*:?\s*`)

	// decisionPrefixRe strips decision keywords from the front of an item.
	decisionPrefixRe = regexp.MustCompile(`(?i)^\s*(?:decision\s*:?|decided\s*(?:to|that)?|agreed\s*(?:to|that)?|resolved\s*(?:to|that)?)\s*`)

	// ownerRe reads "Alice to circulate minutes" style ownership.
	ownerRe = regexp.MustCompile(`^([A-Z][A-Za-z.-]*(?:\s+[A-Z][A-Za-z.-]*)?)\s+(?:to|will|should)\s+\S`)
)

func (o *meetingOrganizer) Organize(lines []classify.LabeledLine, common types.CommonEntities) *Document {
	acc := newAccumulator(defaultMeetingTopic)
	data := &types.MeetingNotesData{}

	for _, line := range lines {
		switch line.Label {
		case classify.LabelBlank:
			acc.Sweep()
		case classify.LabelHeader:
			acc.StartSection(classify.StripHeaderMarkup(line.Text))
		case classify.LabelAttendee:
			acc.Sweep()
			o.addAttendees(data, line.Text)
		case classify.LabelActionItem:
			acc.Sweep()
			data.ActionItems = append(data.ActionItems, o.parseAction(line.Text))
		case classify.LabelDecision:
			acc.Sweep()
			text := decisionPrefixRe.ReplaceAllString(cleanLine(line.Text), "")
			if text = strings.TrimSpace(text); text != "" {
				data.Decisions = append(data.Decisions, text)
			}
		case classify.LabelAgendaItem:
			acc.Sweep()
			if item := cleanLine(line.Text); item != "" {
				data.Agenda = append(data.Agenda, item)
			}
		default:
			acc.Add(cleanLine(line.Text))
		}
	}

	sections := acc.Finish()
	doc := &Document{
		Format:   types.FormatMeetingNotes,
		Sections: sections,
		Data: types.ExtractedData{
			Format:  types.FormatMeetingNotes,
			Common:  common,
			Meeting: data,
		},
	}

	entities := len(data.Attendees) + len(data.Agenda) + len(data.ActionItems) + len(data.Decisions)
	structural := len(data.ActionItems) > 0 && len(data.Attendees) > 0
	doc.Confidence = score(o.weights, entities, len(sections), structural)
	return doc
}

// addAttendees splits an attendee line on commas, keeping non-empty names in
// input order without duplicates.
func (o *meetingOrganizer) addAttendees(data *types.MeetingNotesData, line string) {
	body := attendeePrefixRe.ReplaceAllString(cleanLine(line), "")
	seen := make(map[string]bool, len(data.Attendees))
	for _, a := range data.Attendees {
		seen[strings.ToLower(a)] = true
	}
	for _, part := range strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ';' }) {
		name := strings.TrimSpace(part)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		data.Attendees = append(data.Attendees, name)
	}
}

// parseAction builds an ActionItem: keyword prefix stripped, owner read from
// a "Name to verb" lead, due date from the first parseable date span.
func (o *meetingOrganizer) parseAction(line string) types.ActionItem {
	text := actionPrefixRe.ReplaceAllString(cleanLine(line), "")
	item := types.ActionItem{Text: strings.TrimSpace(text)}

	if m := ownerRe.FindStringSubmatch(item.Text); m != nil {
		item.Owner = m[1]
	}
	for _, d := range entity.Dates(item.Text) {
		item.DueText = d.Text
		item.DueDate = d.Parsed
		break
	}
	return item
}
