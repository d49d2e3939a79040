// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine is the format-engine facade: it orchestrates line
// classification, organization (entity extraction runs inline), and
// rendering into one Format call, wrapping timing and statistics.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/pdiddy/noteforge/internal/classify"
	"github.com/pdiddy/noteforge/internal/entity"
	"github.com/pdiddy/noteforge/internal/organize"
	"github.com/pdiddy/noteforge/internal/render"
	"github.com/pdiddy/noteforge/pkg/types"
)

// Checkpoints are the pipeline progress percentages reported between
// stages. Cancellation is observed at these points only; work inside a
// stage is not interruptible.
var Checkpoints = []int{0, 20, 40, 60, 80, 100}

// Engine runs the formatting pipeline for any supported format.
type Engine struct {
	cfg types.EngineConfig
}

// New builds an Engine with the given configuration.
func New(cfg types.EngineConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Format runs the full pipeline. Malformed or empty input degrades to a
// minimal valid output with confidence 0; the only error paths are context
// cancellation and an unsupported format type.
func (e *Engine) Format(ctx context.Context, format types.FormatType, input types.TextInput) (*types.FormattedOutput, error) {
	return e.run(ctx, format, input, nil)
}

// FormatWithProgress is Format with checkpoint reporting. onProgress
// receives each percentage from Checkpoints in order as the pipeline
// advances.
func (e *Engine) FormatWithProgress(ctx context.Context, format types.FormatType, input types.TextInput, onProgress func(int)) (*types.FormattedOutput, error) {
	return e.run(ctx, format, input, onProgress)
}

func (e *Engine) run(ctx context.Context, format types.FormatType, input types.TextInput, onProgress func(int)) (*types.FormattedOutput, error) {
	if !format.Valid() {
		return nil, types.NewTaskError(types.CodeProcessing, "unsupported format %q", format)
	}

	started := time.Now()
	report := func(pct int) {
		if onProgress != nil {
			onProgress(pct)
		}
	}
	checkpoint := func(pct int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report(pct)
		return nil
	}

	if err := checkpoint(0); err != nil {
		return nil, err
	}

	lines := splitLines(input.Content)
	if err := checkpoint(20); err != nil {
		return nil, err
	}

	labeled := classify.Classify(format, lines)
	if err := checkpoint(40); err != nil {
		return nil, err
	}

	common := entity.Common(input.Content)
	organizer := organize.For(format, e.cfg.WeightsFor(format))
	doc := organizer.Organize(labeled, common)
	if err := checkpoint(60); err != nil {
		return nil, err
	}

	content := render.Render(doc)
	if err := checkpoint(80); err != nil {
		return nil, err
	}

	stats := assembleStats(lines, doc)
	out := &types.FormattedOutput{
		Format:  format,
		Content: content,
		Data:    doc.Data,
		Metadata: types.ProcessingMetadata{
			ProcessedAt: time.Now().UTC(),
			Duration:    float64(time.Since(started)) / float64(time.Millisecond),
			Confidence:  doc.Confidence,
			ItemCount:   doc.Data.ItemCount(),
			Stats:       stats,
		},
	}
	report(100)
	return out, nil
}

// splitLines splits raw content on newlines, tolerating CRLF endings. Empty
// content yields no lines.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	return lines
}

// assembleStats derives the processing counters from the organized model:
// lines processed is the non-empty input line count, patterns matched the
// entry count, items extracted the total entity hits before deduplication,
// and changes applied the entries plus auxiliary output sections.
func assembleStats(lines []string, doc *organize.Document) types.ProcessingStats {
	nonEmpty := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty++
		}
	}
	extracted := doc.Data.Common.Count() + doc.Data.ItemCount() + doc.DuplicatesRemoved
	return types.ProcessingStats{
		LinesProcessed:    nonEmpty,
		PatternsMatched:   len(doc.Sections),
		ItemsExtracted:    extracted,
		DuplicatesRemoved: doc.DuplicatesRemoved,
		ChangesApplied:    len(doc.Sections) + auxiliarySections(doc),
	}
}

// auxiliarySections counts the extra rendered blocks that do not come from
// discovered sections (attendee lists, citation blocks, summaries).
func auxiliarySections(doc *organize.Document) int {
	n := 1 // summary footer
	switch doc.Format {
	case types.FormatMeetingNotes:
		if m := doc.Data.Meeting; m != nil {
			n += countNonEmpty(len(m.Attendees), len(m.Agenda), len(m.ActionItems), len(m.Decisions))
		}
	case types.FormatResearchNotes:
		if r := doc.Data.Research; r != nil {
			n += countNonEmpty(len(r.Quotes), len(r.Sources))
		}
	case types.FormatStudyNotes:
		if s := doc.Data.Study; s != nil {
			n += countNonEmpty(len(s.Definitions), len(s.QAPairs), len(s.KeyTerms))
		}
	}
	return n
}

func countNonEmpty(counts ...int) int {
	n := 0
	for _, c := range counts {
		if c > 0 {
			n++
		}
	}
	return n
}
