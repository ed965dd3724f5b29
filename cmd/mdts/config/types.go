// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

type MdtsConfig struct {
	// Render: terminal output behavior
	Render RenderConfig `yaml:"render"`

	// Highlight: which features run and how big a file may be
	Highlight HighlightConfig `yaml:"highlight"`

	// Watch: live re-render behavior
	Watch WatchConfig `yaml:"watch"`
}

type RenderConfig struct {
	// Color can be "auto", "always", or "never". "auto" colors only when
	// stdout is a terminal.
	Color string `yaml:"color"`

	// Styles maps category names to terminal colors (ANSI number or hex).
	// Unlisted categories fall back to built-in defaults.
	Styles map[string]string `yaml:"styles,omitempty"`
}

type HighlightConfig struct {
	// Features lists the enabled highlight features. Empty means all.
	Features []string `yaml:"features,omitempty"`

	// MaxDocumentSizeMB caps how large a file the CLI will annotate.
	MaxDocumentSizeMB int `yaml:"max_document_size_mb"`
}

type WatchConfig struct {
	// DebounceMs is how long to wait for more writes before re-rendering.
	DebounceMs int `yaml:"debounce_ms"`
}

// DefaultConfig returns the config written on first run.
func DefaultConfig() MdtsConfig {
	return MdtsConfig{
		Render: RenderConfig{
			Color: "auto",
		},
		Highlight: HighlightConfig{
			MaxDocumentSizeMB: 10,
		},
		Watch: WatchConfig{
			DebounceMs: 100,
		},
	}
}
