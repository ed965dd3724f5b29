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
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/AleutianAI/markdown-ts/cmd/mdts/config"
	"github.com/AleutianAI/markdown-ts/services/markdown/highlight"
)

// defaultStyles maps each category to its built-in terminal style.
func defaultStyles() map[highlight.Category]lipgloss.Style {
	return map[highlight.Category]lipgloss.Style{
		highlight.CategoryKeyword:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		highlight.CategoryString:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		highlight.CategoryShadow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		highlight.CategoryDoc:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		highlight.CategoryLink:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true),
		highlight.CategoryUnderline: lipgloss.NewStyle().Underline(true),
		highlight.CategoryBold:      lipgloss.NewStyle().Bold(true),
	}
}

// Renderer turns a document plus its highlights into terminal output.
type Renderer struct {
	styles map[highlight.Category]lipgloss.Style
	color  bool
}

// NewRenderer builds a renderer from the render config and the --color flag.
//
// The flag, when non-empty, overrides the config's color mode. "auto"
// enables color only when out is a terminal.
func NewRenderer(cfg config.RenderConfig, flagMode string, out *os.File) *Renderer {
	mode := cfg.Color
	if flagMode != "" {
		mode = flagMode
	}

	var color bool
	switch mode {
	case "always":
		color = true
	case "never":
		color = false
	default:
		color = isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	}

	styles := defaultStyles()
	for name, value := range cfg.Styles {
		category := highlight.Category(name)
		if !category.Valid() || value == "" {
			continue
		}
		styles[category] = styles[category].Foreground(lipgloss.Color(value))
	}

	return &Renderer{styles: styles, color: color}
}

// Render returns the source with each highlighted span styled.
//
// Overlapping spans are resolved per byte: outer spans are painted first so
// a nested span (a bracket token inside a link, say) keeps its own style.
func (r *Renderer) Render(source []byte, highlights []highlight.Highlight) string {
	if !r.color || len(highlights) == 0 {
		return string(source)
	}

	categories := highlight.Categories()
	index := make(map[highlight.Category]byte, len(categories))
	for i, c := range categories {
		index[c] = byte(i + 1) // 0 = unclaimed
	}

	ordered := make([]highlight.Highlight, len(highlights))
	copy(ordered, highlights)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Span.Len() > ordered[j].Span.Len()
	})

	stylePerByte := make([]byte, len(source))
	for _, h := range ordered {
		start, end := int(h.Span.StartByte), int(h.Span.EndByte)
		if start < 0 || end > len(source) || start > end {
			continue
		}
		idx := index[h.Category]
		for i := start; i < end; i++ {
			stylePerByte[i] = idx
		}
	}

	var b strings.Builder
	for start := 0; start < len(source); {
		idx := stylePerByte[start]
		end := start + 1
		for end < len(source) && stylePerByte[end] == idx {
			end++
		}
		chunk := string(source[start:end])
		if idx == 0 {
			b.WriteString(chunk)
		} else {
			b.WriteString(r.styles[categories[idx-1]].Render(chunk))
		}
		start = end
	}
	return b.String()
}
