// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/noteforge/pkg/types"
)

// formatDescriptions summarizes what each format organizes.
var formatDescriptions = map[types.FormatType]string{
	types.FormatMeetingNotes:  "attendees, agenda, action items, decisions",
	types.FormatTaskLists:     "prioritized tasks with due dates and categories",
	types.FormatShoppingLists: "consolidated items grouped by store section",
	types.FormatJournalNotes:  "dated entries with mood and tags",
	types.FormatResearchNotes: "topics with citations, quotes, and sources",
	types.FormatStudyNotes:    "topics, definitions, and review questions",
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported document formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range types.AllFormats {
			fmt.Printf("%-16s %s\n", f, formatDescriptions[f])
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
