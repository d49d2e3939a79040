// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/pkg/types"
)

const defaultStudyTopic = "General"

// studyOrganizer collects topics, definitions, and question/answer pairs.
// Key terms aggregate the definition terms, deduplicated and sorted.
type studyOrganizer struct {
	weights types.ScoreWeights
}

var (
	// defSplitRe separates a definition line into term and meaning.
	defSplitRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9 ()'/-]{0,50}?)\s*(?::|—|–| - |\bis\b)\s+(\S.*)$`)

	// qaPrefixRe strips "Q:", "Q1.", "Question:" style prefixes.
	qaPrefixRe = regexp.MustCompile(`(?i)^\s*(?:q\d*\s*[:.)]|question\s*:?)\s*`)

	// ansPrefixRe strips "A:", "A1.", "Answer:" style prefixes.
	ansPrefixRe = regexp.MustCompile(`(?i)^\s*(?:a\d*\s*[:.)]|answer\s*:?)\s*`)
)

func (o *studyOrganizer) Organize(lines []classify.LabeledLine, common types.CommonEntities) *Document {
	acc := newAccumulator(defaultStudyTopic)
	data := &types.StudyNotesData{}

	for _, line := range lines {
		switch line.Label {
		case classify.LabelBlank:
			acc.Sweep()
		case classify.LabelHeader:
			acc.StartSection(classify.StripHeaderMarkup(line.Text))
		case classify.LabelQuestion:
			acc.Sweep()
			q := strings.TrimSpace(qaPrefixRe.ReplaceAllString(cleanLine(line.Text), ""))
			if q != "" {
				data.QAPairs = append(data.QAPairs, types.QAPair{Question: q})
			}
		case classify.LabelAnswer:
			acc.Sweep()
			a := strings.TrimSpace(ansPrefixRe.ReplaceAllString(cleanLine(line.Text), ""))
			if a == "" {
				continue
			}
			if n := len(data.QAPairs); n > 0 && data.QAPairs[n-1].Answer == "" {
				data.QAPairs[n-1].Answer = a
			} else {
				data.QAPairs = append(data.QAPairs, types.QAPair{Answer: a})
			}
		case classify.LabelDefinition:
			acc.Sweep()
			if m := defSplitRe.FindStringSubmatch(cleanLine(line.Text)); m != nil {
				data.Definitions = append(data.Definitions, types.Definition{
					Term:    strings.TrimSpace(m[1]),
					Meaning: strings.TrimSpace(m[2]),
				})
			} else {
				acc.Add(cleanLine(line.Text))
			}
		default:
			acc.Add(cleanLine(line.Text))
		}
	}

	sections := acc.Finish()
	for i, sec := range sections {
		data.Topics = append(data.Topics, types.Topic{
			ID:      stableID("topic", sec.Title, i),
			Name:    sec.Title,
			Content: sec.Content,
		})
	}
	data.KeyTerms = collectKeyTerms(data.Definitions)

	doc := &Document{
		Format:   types.FormatStudyNotes,
		Sections: sections,
		Data: types.ExtractedData{
			Format: types.FormatStudyNotes,
			Common: common,
			Study:  data,
		},
	}

	entities := len(data.Definitions) + len(data.QAPairs)
	structural := len(data.Definitions) > 0 && len(data.QAPairs) > 0
	doc.Confidence = score(o.weights, entities, len(sections), structural)
	return doc
}

// collectKeyTerms returns the unique definition terms, sorted
// alphabetically.
func collectKeyTerms(defs []types.Definition) []string {
	seen := make(map[string]bool, len(defs))
	var terms []string
	for _, d := range defs {
		key := strings.ToLower(d.Term)
		if d.Term == "" || seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, d.Term)
	}
	sort.Slice(terms, func(i, j int) bool {
		return strings.ToLower(terms[i]) < strings.ToLower(terms[j])
	})
	return terms
}
