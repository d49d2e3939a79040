// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history declares the contracts for the persistence collaborators
// that record formatting runs and user templates. noteforge only consumes
// these interfaces; storage lives with the hosting application.
package history

import (
	"context"
	"time"

	"github.com/pdiddy/noteforge/pkg/types"
)

// Entry is one recorded formatting run.
type Entry struct {
	ID            string           `json:"id" yaml:"id"`
	Format        types.FormatType `json:"format" yaml:"format"`
	OriginalText  string           `json:"original_text" yaml:"original_text"`
	FormattedText string           `json:"formatted_text" yaml:"formatted_text"`
	Confidence    int              `json:"confidence" yaml:"confidence"`
	CreatedAt     time.Time        `json:"created_at" yaml:"created_at"`
}

// Template is a saved formatting preset: a format plus tuned weights.
type Template struct {
	ID        string             `json:"id" yaml:"id"`
	Name      string             `json:"name" yaml:"name"`
	Format    types.FormatType   `json:"format" yaml:"format"`
	Weights   types.ScoreWeights `json:"weights" yaml:"weights"`
	Options   types.TaskOptions  `json:"options" yaml:"options"`
	CreatedAt time.Time          `json:"created_at" yaml:"created_at"`
}

// Service records and retrieves formatting history.
type Service interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	Delete(ctx context.Context, id string) error
}

// TemplateService manages saved formatting presets.
type TemplateService interface {
	Save(ctx context.Context, tpl Template) error
	List(ctx context.Context) ([]Template, error)
	Get(ctx context.Context, id string) (Template, error)
	Delete(ctx context.Context, id string) error
}
