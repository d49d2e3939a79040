// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/noteforge/internal/engine"
	"github.com/pdiddy/noteforge/pkg/types"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format one document (reads stdin when no file is given)",
	Long: `Format runs the full pipeline on a single input: entity extraction, line
classification, organization, and rendering. The formatted text goes to
stdout; --output json or --output yaml emits the full result envelope with
the structured data and processing metadata instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringP("format", "f", string(types.FormatResearchNotes), "target format (see \"noteforge formats\")")
	formatCmd.Flags().StringP("output", "o", "text", "output mode: text, json, or yaml")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := parseFormat(formatFlag)
	if err != nil {
		return err
	}

	content, source, err := readInput(args)
	if err != nil {
		return err
	}

	eng := engine.New(loadConfig().Engine)
	out, err := eng.Format(context.Background(), format, types.NewTextInput(content, source))
	if err != nil {
		return err
	}

	mode, _ := cmd.Flags().GetString("output")
	return writeOutput(os.Stdout, out, mode)
}

// readInput loads the document from the file argument, or stdin when absent.
func readInput(args []string) (string, types.InputSource, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), types.SourcePaste, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), types.SourceUpload, nil
}

func writeOutput(w io.Writer, out *types.FormattedOutput, mode string) error {
	switch mode {
	case "text":
		_, err := io.WriteString(w, out.Content)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown output mode %q (want text, json, or yaml)", mode)
	}
}
