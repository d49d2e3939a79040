// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// TaskPriority is the urgency tier detected for a task-list item.
type TaskPriority string

const (
	TaskUrgent TaskPriority = "urgent"
	TaskHigh   TaskPriority = "high"
	TaskMedium TaskPriority = "medium"
	TaskLow    TaskPriority = "low"
)

// Rank orders priorities for sorting: urgent first, low last.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskUrgent:
		return 0
	case TaskHigh:
		return 1
	case TaskMedium:
		return 2
	case TaskLow:
		return 3
	}
	return 2
}

// ActionItem is a meeting follow-up with optional owner and due date.
type ActionItem struct {
	Text    string    `json:"text" yaml:"text"`
	Owner   string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	DueDate time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	DueText string    `json:"due_text,omitempty" yaml:"due_text,omitempty"`
}

// MeetingNotesData is the structured payload for meeting-notes inputs.
type MeetingNotesData struct {
	Attendees   []string     `json:"attendees,omitempty" yaml:"attendees,omitempty"`
	Agenda      []string     `json:"agenda,omitempty" yaml:"agenda,omitempty"`
	ActionItems []ActionItem `json:"action_items,omitempty" yaml:"action_items,omitempty"`
	Decisions   []string     `json:"decisions,omitempty" yaml:"decisions,omitempty"`
}

// TaskItem is a single task-list entry after organization.
type TaskItem struct {
	Text     string       `json:"text" yaml:"text"`
	Priority TaskPriority `json:"priority" yaml:"priority"`
	Done     bool         `json:"done" yaml:"done"`
	DueDate  time.Time    `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	DueText  string       `json:"due_text,omitempty" yaml:"due_text,omitempty"`
	Category string       `json:"category,omitempty" yaml:"category,omitempty"`
}

// TaskListsData is the structured payload for task-lists inputs.
type TaskListsData struct {
	Tasks      []TaskItem `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Categories []string   `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// ShoppingItem is a consolidated shopping-list entry.
type ShoppingItem struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Note     string  `json:"note,omitempty" yaml:"note,omitempty"`
	Category string  `json:"category" yaml:"category"`
}

// ShoppingListsData is the structured payload for shopping-lists inputs.
type ShoppingListsData struct {
	Items      []ShoppingItem `json:"items,omitempty" yaml:"items,omitempty"`
	Categories []string       `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// JournalEntry is one dated journal block.
type JournalEntry struct {
	Date     time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	DateText string    `json:"date_text,omitempty" yaml:"date_text,omitempty"`
	Mood     string    `json:"mood,omitempty" yaml:"mood,omitempty"`
	Tags     []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Content  string    `json:"content" yaml:"content"`
}

// JournalNotesData is the structured payload for journal-notes inputs.
type JournalNotesData struct {
	Entries []JournalEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// ResearchNotesData is the structured payload for research-notes inputs.
// Citations, Quotes, and Sources are the authoritative flat arrays; Topics
// reference them by id.
type ResearchNotesData struct {
	Topics    []Topic    `json:"topics,omitempty" yaml:"topics,omitempty"`
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`
	Quotes    []Quote    `json:"quotes,omitempty" yaml:"quotes,omitempty"`
	Sources   []Source   `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Definition is a term/meaning pair found in study notes.
type Definition struct {
	Term    string `json:"term" yaml:"term"`
	Meaning string `json:"meaning" yaml:"meaning"`
}

// QAPair is a question with its following answer.
type QAPair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer,omitempty" yaml:"answer,omitempty"`
}

// StudyNotesData is the structured payload for study-notes inputs.
type StudyNotesData struct {
	Topics      []Topic      `json:"topics,omitempty" yaml:"topics,omitempty"`
	Definitions []Definition `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	QAPairs     []QAPair     `json:"qa_pairs,omitempty" yaml:"qa_pairs,omitempty"`
	KeyTerms    []string     `json:"key_terms,omitempty" yaml:"key_terms,omitempty"`
}

// ExtractedData is the tagged union of per-format payloads plus the
// format-independent entities. Exactly one payload pointer is non-nil and it
// matches Format.
type ExtractedData struct {
	Format FormatType     `json:"format" yaml:"format"`
	Common CommonEntities `json:"common" yaml:"common"`

	Meeting  *MeetingNotesData  `json:"meeting,omitempty" yaml:"meeting,omitempty"`
	Tasks    *TaskListsData     `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Shopping *ShoppingListsData `json:"shopping,omitempty" yaml:"shopping,omitempty"`
	Journal  *JournalNotesData  `json:"journal,omitempty" yaml:"journal,omitempty"`
	Research *ResearchNotesData `json:"research,omitempty" yaml:"research,omitempty"`
	Study    *StudyNotesData    `json:"study,omitempty" yaml:"study,omitempty"`
}

// ItemCount returns the number of format-specific structured items.
func (d ExtractedData) ItemCount() int {
	switch d.Format {
	case FormatMeetingNotes:
		if m := d.Meeting; m != nil {
			return len(m.Attendees) + len(m.Agenda) + len(m.ActionItems) + len(m.Decisions)
		}
	case FormatTaskLists:
		if t := d.Tasks; t != nil {
			return len(t.Tasks)
		}
	case FormatShoppingLists:
		if s := d.Shopping; s != nil {
			return len(s.Items)
		}
	case FormatJournalNotes:
		if j := d.Journal; j != nil {
			return len(j.Entries)
		}
	case FormatResearchNotes:
		if r := d.Research; r != nil {
			return len(r.Topics) + len(r.Citations) + len(r.Quotes) + len(r.Sources)
		}
	case FormatStudyNotes:
		if s := d.Study; s != nil {
			return len(s.Topics) + len(s.Definitions) + len(s.QAPairs)
		}
	}
	return 0
}
