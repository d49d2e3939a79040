// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/noteforge/pkg/types"
)

func newEngine() *Engine {
	return New(types.EngineConfig{})
}

func TestFormat_MeetingNotes(t *testing.T) {
	input := types.NewTextInput(
		"Attendees: Alice, Bob\n\nAction Items:\n- Alice to send the recap\n",
		types.SourcePaste,
	)

	out, err := newEngine().Format(context.Background(), types.FormatMeetingNotes, input)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, types.FormatMeetingNotes, out.Format)
	assert.Contains(t, out.Content, "MEETING NOTES")
	assert.Contains(t, out.Content, "- Alice")
	require.NotNil(t, out.Data.Meeting)
	assert.Equal(t, []string{"Alice", "Bob"}, out.Data.Meeting.Attendees)

	stats := out.Metadata.Stats
	assert.Equal(t, 3, stats.LinesProcessed)
	assert.GreaterOrEqual(t, stats.ItemsExtracted, stats.DuplicatesRemoved)
	assert.Greater(t, out.Metadata.Confidence, 0)
	assert.Equal(t, out.Data.ItemCount(), out.Metadata.ItemCount)
}

func TestFormat_EmptyInput(t *testing.T) {
	out, err := newEngine().Format(context.Background(), types.FormatShoppingLists, types.NewTextInput("", types.SourceType))
	require.NoError(t, err)

	assert.Equal(t, 0, out.Metadata.Confidence)
	assert.Equal(t, 0, out.Metadata.ItemCount)
	assert.Contains(t, out.Content, "SHOPPING LIST")
	assert.Zero(t, out.Metadata.Stats.LinesProcessed)
}

func TestFormat_AllFormatsNeverError(t *testing.T) {
	garbage := "   ???!!!\n\x00\x01 weird bytes\n\n\t\t  \nplain tail"
	for _, format := range types.AllFormats {
		out, err := newEngine().Format(context.Background(), format, types.NewTextInput(garbage, types.SourceUpload))
		require.NoError(t, err, "format %s", format)
		require.NotNil(t, out, "format %s", format)
		assert.Equal(t, format, out.Format)
	}
}

func TestFormat_InvalidFormat(t *testing.T) {
	_, err := newEngine().Format(context.Background(), types.FormatType("poetry"), types.NewTextInput("x", types.SourceType))
	require.Error(t, err)

	var taskErr *types.TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Equal(t, types.CodeProcessing, taskErr.Code)
}

func TestFormat_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := newEngine().Format(ctx, types.FormatJournalNotes, types.NewTextInput("2024-01-15\nfine day", types.SourceType))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatWithProgress_Checkpoints(t *testing.T) {
	var seen []int
	_, err := newEngine().FormatWithProgress(
		context.Background(),
		types.FormatTaskLists,
		types.NewTextInput("- one\n- two", types.SourceType),
		func(pct int) { seen = append(seen, pct) },
	)
	require.NoError(t, err)
	assert.Equal(t, Checkpoints, seen)
}

func TestFormat_Deterministic(t *testing.T) {
	input := types.NewTextInput("Findings\nPrior work (Lee, 2021) was inconclusive.", types.SourceType)

	first, err := newEngine().Format(context.Background(), types.FormatResearchNotes, input)
	require.NoError(t, err)
	second, err := newEngine().Format(context.Background(), types.FormatResearchNotes, input)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	if !reflect.DeepEqual(first.Data, second.Data) {
		t.Errorf("structured data differs between runs")
	}
}
