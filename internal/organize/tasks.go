// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/internal/entity"
	"github.com/pdiddy/noteforge/pkg/types"
)

const defaultTaskCategory = "Tasks"

// taskOrganizer builds a prioritized task list. Priority markers apply to
// the lines that follow them; category headers group tasks. Sorting is
// stable: priority tier, then due date, then input order.
type taskOrganizer struct {
	weights types.ScoreWeights
}

var (
	// priorityLineRe reads a standalone or prefixed priority marker.
	priorityLineRe = regexp.MustCompile(`(?i)^\s*(?:(!{1,3})\s+|\[?(urgent|high|medium|low)\]?\s*:\s*)`)

	// inlinePriorityRe reads a priority word inside a task line.
	inlinePriorityRe = regexp.MustCompile(`(?i)\b(urgent|asap|high priority|low priority)\b|(!{1,3})\s*$`)
)

func (o *taskOrganizer) Organize(lines []classify.LabeledLine, common types.CommonEntities) *Document {
	acc := newAccumulator(defaultTaskCategory)
	data := &types.TaskListsData{}

	category := ""
	pending := types.TaskPriority("")
	seenCategories := map[string]bool{}

	addTask := func(text string, pri types.TaskPriority, done bool) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		task := types.TaskItem{Text: text, Priority: pri, Done: done, Category: category}
		for _, d := range entity.Dates(text) {
			task.DueText = d.Text
			task.DueDate = d.Parsed
			break
		}
		data.Tasks = append(data.Tasks, task)
	}

	for _, line := range lines {
		switch line.Label {
		case classify.LabelBlank:
			acc.Sweep()
		case classify.LabelCategoryHeader:
			name := classify.StripHeaderMarkup(line.Text)
			acc.StartSection(name)
			category = name
			pending = ""
			if !seenCategories[name] {
				seenCategories[name] = true
				data.Categories = append(data.Categories, name)
			}
		case classify.LabelPriorityMarker:
			acc.Sweep()
			m := priorityLineRe.FindStringSubmatch(line.Text)
			pri := markerPriority(m)
			rest := priorityLineRe.ReplaceAllString(line.Text, "")
			if strings.TrimSpace(rest) == "" {
				// Bare marker: applies to the items that follow.
				pending = pri
			} else {
				addTask(cleanLine(rest), pri, false)
			}
		case classify.LabelListItem:
			acc.Sweep()
			_, done := classify.CheckboxState(line.Text)
			text := cleanLine(line.Text)
			pri := pending
			if pri == "" {
				pri = inlinePriority(text)
			}
			addTask(text, pri, done)
		default:
			// Free-form lines in a task list are tasks too.
			acc.Sweep()
			pri := pending
			if pri == "" {
				pri = inlinePriority(line.Text)
			}
			addTask(cleanLine(line.Text), pri, false)
		}
	}
	acc.Finish()

	o.sortTasks(data.Tasks)

	doc := &Document{
		Format: types.FormatTaskLists,
		Data: types.ExtractedData{
			Format: types.FormatTaskLists,
			Common: common,
			Tasks:  data,
		},
	}
	doc.Sections = taskSections(data)

	structural := false
	for _, t := range data.Tasks {
		if t.Priority == types.TaskUrgent || t.Priority == types.TaskHigh {
			structural = true
			break
		}
	}
	doc.Confidence = score(o.weights, len(data.Tasks), len(doc.Sections), structural)
	return doc
}

// markerPriority maps a priority marker match to a tier: !!! is urgent,
// !! high, ! medium; keywords map to themselves.
func markerPriority(m []string) types.TaskPriority {
	if m == nil {
		return types.TaskMedium
	}
	if bangs := m[1]; bangs != "" {
		switch len(bangs) {
		case 3:
			return types.TaskUrgent
		case 2:
			return types.TaskHigh
		default:
			return types.TaskMedium
		}
	}
	switch strings.ToLower(m[2]) {
	case "urgent":
		return types.TaskUrgent
	case "high":
		return types.TaskHigh
	case "low":
		return types.TaskLow
	default:
		return types.TaskMedium
	}
}

// inlinePriority reads priority cues inside a task's own text; tasks with no
// cue are medium.
func inlinePriority(text string) types.TaskPriority {
	m := inlinePriorityRe.FindStringSubmatch(text)
	if m == nil {
		return types.TaskMedium
	}
	switch strings.ToLower(m[1]) {
	case "urgent", "asap":
		return types.TaskUrgent
	case "high priority":
		return types.TaskHigh
	case "low priority":
		return types.TaskLow
	}
	if len(m[2]) == 3 {
		return types.TaskUrgent
	}
	if len(m[2]) == 2 {
		return types.TaskHigh
	}
	return types.TaskMedium
}

// sortTasks orders by priority tier, then detected due date (undated last),
// then original input order. The sort is stable so ties preserve input order.
func (o *taskOrganizer) sortTasks(tasks []types.TaskItem) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if a, b := tasks[i].Priority.Rank(), tasks[j].Priority.Rank(); a != b {
			return a < b
		}
		di, dj := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case di.IsZero() && dj.IsZero():
			return false
		case di.IsZero():
			return false
		case dj.IsZero():
			return true
		default:
			return di.Before(dj)
		}
	})
}

// taskSections regroups the sorted tasks by category for rendering.
func taskSections(data *types.TaskListsData) []Section {
	if len(data.Tasks) == 0 {
		return nil
	}
	order := data.Categories
	if len(order) == 0 {
		order = []string{""}
	} else {
		hasUncategorized := false
		for _, t := range data.Tasks {
			if t.Category == "" {
				hasUncategorized = true
				break
			}
		}
		if hasUncategorized {
			order = append([]string{""}, order...)
		}
	}

	var sections []Section
	for _, cat := range order {
		title := cat
		if title == "" {
			title = defaultTaskCategory
		}
		var b strings.Builder
		for _, t := range data.Tasks {
			if t.Category != cat {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(t.Text)
		}
		if b.Len() > 0 {
			sections = append(sections, Section{Title: title, Content: b.String()})
		}
	}
	return sections
}
