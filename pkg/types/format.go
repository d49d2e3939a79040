// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for noteforge: input and output
// envelopes, extracted entities, the per-format payload union, processing
// tasks, and configuration.
package types

import "time"

// FormatType identifies one of the six supported document categories.
type FormatType string

const (
	FormatMeetingNotes  FormatType = "meeting-notes"
	FormatTaskLists     FormatType = "task-lists"
	FormatShoppingLists FormatType = "shopping-lists"
	FormatJournalNotes  FormatType = "journal-notes"
	FormatResearchNotes FormatType = "research-notes"
	FormatStudyNotes    FormatType = "study-notes"
)

// AllFormats lists the supported format types in display order.
var AllFormats = []FormatType{
	FormatMeetingNotes,
	FormatTaskLists,
	FormatShoppingLists,
	FormatJournalNotes,
	FormatResearchNotes,
	FormatStudyNotes,
}

// Valid reports whether f is one of the supported format types.
func (f FormatType) Valid() bool {
	switch f {
	case FormatMeetingNotes, FormatTaskLists, FormatShoppingLists,
		FormatJournalNotes, FormatResearchNotes, FormatStudyNotes:
		return true
	}
	return false
}

// InputSource records how the raw text entered the system.
type InputSource string

const (
	SourceType   InputSource = "type"
	SourcePaste  InputSource = "paste"
	SourceUpload InputSource = "upload"
)

// InputMetadata describes the origin of a TextInput.
type InputMetadata struct {
	// Source is how the text was provided: typed, pasted, or uploaded.
	Source InputSource `json:"source" yaml:"source"`

	// Timestamp is when the input was captured.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Size is the input length in bytes.
	Size int `json:"size" yaml:"size"`
}

// TextInput is the immutable raw-text envelope handed to a format engine.
type TextInput struct {
	// Content is the raw free-form text, arbitrary length.
	Content string `json:"content" yaml:"content"`

	// Metadata describes where the content came from.
	Metadata InputMetadata `json:"metadata" yaml:"metadata"`
}

// NewTextInput builds a TextInput with populated metadata.
func NewTextInput(content string, source InputSource) TextInput {
	return TextInput{
		Content: content,
		Metadata: InputMetadata{
			Source:    source,
			Timestamp: time.Now().UTC(),
			Size:      len(content),
		},
	}
}

// ProcessingStats counts the work performed while formatting one input.
// Invariant: ItemsExtracted >= DuplicatesRemoved >= 0.
type ProcessingStats struct {
	// LinesProcessed is the number of non-empty input lines.
	LinesProcessed int `json:"lines_processed" yaml:"lines_processed"`

	// PatternsMatched is the number of organized entries produced.
	PatternsMatched int `json:"patterns_matched" yaml:"patterns_matched"`

	// ItemsExtracted is the total entity hits across all extractors.
	ItemsExtracted int `json:"items_extracted" yaml:"items_extracted"`

	// DuplicatesRemoved counts items merged away during deduplication.
	DuplicatesRemoved int `json:"duplicates_removed" yaml:"duplicates_removed"`

	// ChangesApplied counts entries plus auxiliary sections emitted.
	ChangesApplied int `json:"changes_applied" yaml:"changes_applied"`
}

// ProcessingMetadata describes one format() run.
type ProcessingMetadata struct {
	// ProcessedAt is when formatting completed.
	ProcessedAt time.Time `json:"processed_at" yaml:"processed_at"`

	// Duration is the elapsed wall time in milliseconds.
	Duration float64 `json:"duration_ms" yaml:"duration_ms"`

	// Confidence is a heuristic quality score in [0,100]. It is a pure
	// function of the input, not a probability.
	Confidence int `json:"confidence" yaml:"confidence"`

	// ItemCount is the number of structured items in the output data.
	ItemCount int `json:"item_count" yaml:"item_count"`

	// Stats breaks down the processing counters.
	Stats ProcessingStats `json:"stats" yaml:"stats"`
}

// FormattedOutput is the immutable result of one format() call.
type FormattedOutput struct {
	// Format is the document category the input was formatted as.
	Format FormatType `json:"format" yaml:"format"`

	// Content is the rendered, human-readable text.
	Content string `json:"content" yaml:"content"`

	// Metadata carries timing, confidence, and counters.
	Metadata ProcessingMetadata `json:"metadata" yaml:"metadata"`

	// Data holds the structured entities extracted from the input.
	Data ExtractedData `json:"data" yaml:"data"`
}
