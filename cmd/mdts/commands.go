// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/markdown-ts/cmd/mdts/config"
	"github.com/AleutianAI/markdown-ts/pkg/logging"
	"github.com/AleutianAI/markdown-ts/services/markdown"
	"github.com/AleutianAI/markdown-ts/services/markdown/highlight"
	"github.com/AleutianAI/markdown-ts/services/markdown/outline"
	"github.com/AleutianAI/markdown-ts/services/markdown/syntax"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mdts",
		Short: "A CLI for tree-sitter backed markdown annotation",
		Long: `mdts highlights markdown documents and extracts heading outlines
using the split block/inline tree-sitter grammars.`,
	}

	highlightCmd = &cobra.Command{
		Use:   "highlight [file]",
		Short: "Print a document with its highlight categories applied",
		Long:  `Parses the file (or stdin when the argument is "-") and renders it with each category-tagged span styled for the terminal. With --json the raw spans are printed instead.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runHighlight,
	}
	jsonOutput   bool
	colorMode    string
	featureNames []string

	outlineCmd = &cobra.Command{
		Use:   "outline [file]",
		Short: "Print the heading outline of a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runOutline,
	}

	watchCmd = &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a document's highlights whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
)

func init() {
	highlightCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit spans as JSON instead of styled text")
	highlightCmd.Flags().StringVar(&colorMode, "color", "", "Color mode: auto, always, never (overrides config)")
	highlightCmd.Flags().StringSliceVar(&featureNames, "features", nil, "Highlight features to enable (default: all)")
	outlineCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the outline as JSON")
	watchCmd.Flags().StringVar(&colorMode, "color", "", "Color mode: auto, always, never (overrides config)")
	watchCmd.Flags().StringSliceVar(&featureNames, "features", nil, "Highlight features to enable (default: all)")

	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(watchCmd)
}

// newAnnotationService builds the service from the loaded config plus flags.
func newAnnotationService() *markdown.Service {
	cfg := markdown.DefaultServiceConfig()
	if mb := config.Global.Highlight.MaxDocumentSizeMB; mb > 0 {
		cfg.MaxDocumentSize = mb * 1024 * 1024
	}
	if len(config.Global.Highlight.Features) > 0 {
		cfg.EnabledFeatures = config.Global.Highlight.Features
	}
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Service: "mdts"})
	return markdown.NewService(cfg, logger)
}

// readInput reads the named file, or stdin when the name is "-".
//
// Files without a markdown extension are still read, with a warning; the
// grammars parse any text, the warning just flags a likely mistake.
func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	if !isMarkdownPath(name) {
		fmt.Fprintf(os.Stderr, "warning: %s does not look like a markdown file\n", name)
	}
	return os.ReadFile(name)
}

// isMarkdownPath reports whether the path carries a known markdown extension.
func isMarkdownPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range syntax.Extensions() {
		if ext == known {
			return true
		}
	}
	return false
}

func runHighlight(cmd *cobra.Command, args []string) error {
	content, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	svc := newAnnotationService()
	highlights, err := svc.Highlight(context.Background(), content, featureNames)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeHighlightJSON(os.Stdout, highlights)
	}

	renderer := NewRenderer(config.Global.Render, colorMode, os.Stdout)
	_, err = io.WriteString(os.Stdout, renderer.Render(content, highlights))
	return err
}

func runOutline(cmd *cobra.Command, args []string) error {
	content, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	svc := newAnnotationService()
	o, err := svc.Outline(context.Background(), content)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	}

	for _, group := range o.Groups {
		fmt.Printf("%s:\n", group.Label)
		for _, entry := range group.Entries {
			fmt.Printf("  %s  %s\n", entry.Span.StartPoint.Display(), entry.Name)
		}
	}
	return nil
}

// writeHighlightJSON emits one span per line for easy piping into jq.
func writeHighlightJSON(w io.Writer, highlights []highlight.Highlight) error {
	enc := json.NewEncoder(w)
	for _, h := range highlights {
		if err := enc.Encode(h); err != nil {
			return err
		}
	}
	return nil
}

// printOutlineCount is shared by watch mode's status line.
func printOutlineCount(o outline.Outline) string {
	return fmt.Sprintf("%d headings", len(o.Entries()))
}
