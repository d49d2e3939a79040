// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify labels the lines of an input per document format. Each
// format owns an ordered rule table; the first matching rule wins, which
// keeps classification deterministic without any scoring. Blank lines are
// always labeled blank and never start a section.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/noteforge/pkg/types"
)

// Label is the classification assigned to one input line.
type Label string

const (
	LabelHeader         Label = "header"
	LabelDateHeader     Label = "date-header"
	LabelCategoryHeader Label = "category-header"
	LabelPriorityMarker Label = "priority-marker"
	LabelListItem       Label = "list-item"
	LabelAttendee       Label = "attendee-line"
	LabelAgendaItem     Label = "agenda-item"
	LabelActionItem     Label = "action-item"
	LabelDecision       Label = "decision"
	LabelDefinition     Label = "definition"
	LabelQuestion       Label = "question"
	LabelAnswer         Label = "answer"
	LabelPlain          Label = "plain"
	LabelBlank          Label = "blank"
)

// LabeledLine pairs an input line with its label and original position.
type LabeledLine struct {
	Number int
	Text   string
	Label  Label
}

// Matcher decides whether a rule applies to a line.
type Matcher func(line string) bool

// Rule pairs a label with its matcher. Rules are evaluated in table order;
// the first match assigns the label.
type Rule struct {
	Label Label
	Match Matcher
}

// pattern builds a Matcher from a regular expression.
func pattern(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// Header detection helpers, in the priority order shared by the
// research-notes and study-notes tables: markdown header, ALL-CAPS line,
// short title-case line, colon-terminated line.

var markdownHeaderRe = regexp.MustCompile(`^#{1,6}\s+\S`)

// IsAllCaps reports whether a line is an ALL-CAPS heading: at least two
// letters, no lowercase, not overly long.
func IsAllCaps(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 || len(trimmed) > 60 {
		return false
	}
	letters := 0
	for _, r := range trimmed {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			letters++
		}
	}
	return letters >= 2
}

// IsTitleCaseShort reports whether a line is a short title-case heading:
// every word capitalized, at most six words, no terminal punctuation.
func IsTitleCaseShort(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	if strings.ContainsAny(trimmed, ".!?,;") {
		return false
	}
	words := strings.Fields(trimmed)
	if len(words) < 1 || len(words) > 6 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsColonTerminated reports whether a line is a short heading ending in a
// colon, like "Produce:" before an indented block.
func IsColonTerminated(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ":") {
		return false
	}
	body := strings.TrimSuffix(trimmed, ":")
	return body != "" && len(body) <= 50 && !strings.Contains(body, ":")
}

// IsHeaderLine applies the shared header rules in priority order.
func IsHeaderLine(line string) bool {
	return markdownHeaderRe.MatchString(line) ||
		IsAllCaps(line) ||
		IsTitleCaseShort(line) ||
		IsColonTerminated(line)
}

// StripHeaderMarkup removes markdown hashes and the trailing colon from a
// header line, leaving the heading text.
func StripHeaderMarkup(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#")
	trimmed = strings.TrimSpace(trimmed)
	return strings.TrimSuffix(trimmed, ":")
}

// bulletRe matches list bullets and numbered list prefixes.
var bulletRe = regexp.MustCompile(`^\s*(?:[-*•+]|\d{1,3}[.)])\s+`)

// IsListItem reports whether a line carries a list marker.
func IsListItem(line string) bool {
	return bulletRe.MatchString(line)
}

// StripListMarker removes bullet, numbering, and checkbox prefixes.
func StripListMarker(line string) string {
	s := bulletRe.ReplaceAllString(line, "")
	s = checkboxRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

var checkboxRe = regexp.MustCompile(`^\s*\[([ xX])\]\s*`)

// CheckboxState reports whether a line has a checkbox and whether it is
// checked.
func CheckboxState(line string) (present, done bool) {
	m := checkboxRe.FindStringSubmatch(StripBullet(line))
	if m == nil {
		return false, false
	}
	return true, m[1] != " "
}

// StripBullet removes only the bullet/number prefix, keeping any checkbox.
func StripBullet(line string) string {
	return bulletRe.ReplaceAllString(line, "")
}

// Classify labels lines for the given format. Unknown formats fall back to
// the research-notes table, the most general of the six.
func Classify(format types.FormatType, lines []string) []LabeledLine {
	rules, ok := tables[format]
	if !ok {
		rules = tables[types.FormatResearchNotes]
	}

	labeled := make([]LabeledLine, len(lines))
	for i, line := range lines {
		labeled[i] = LabeledLine{Number: i + 1, Text: line, Label: classifyLine(rules, line)}
	}

	if post, ok := postPasses[format]; ok {
		post(labeled)
	}
	return labeled
}

func classifyLine(rules []Rule, line string) Label {
	if strings.TrimSpace(line) == "" {
		return LabelBlank
	}
	for _, r := range rules {
		if r.Match(line) {
			return r.Label
		}
	}
	return LabelPlain
}
