// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package syntax

// Markdown Tree-sitter Node Types
//
// This file documents the tree-sitter node types produced by the split
// markdown grammar (one grammar for block structure, one for inline spans).
// Both the highlight engine and the outline extractor match against these
// constants rather than raw string literals.
//
// Reference: https://github.com/tree-sitter-grammars/tree-sitter-markdown

// Block grammar node types.
const (
	// Top-level nodes
	NodeDocument = "document"
	NodeSection  = "section"

	// Heading nodes
	NodeATXHeading    = "atx_heading"
	NodeSetextHeading = "setext_heading"
	NodeH1Marker      = "atx_h1_marker"
	NodeH2Marker      = "atx_h2_marker"
	NodeH3Marker      = "atx_h3_marker"
	NodeH4Marker      = "atx_h4_marker"
	NodeH5Marker      = "atx_h5_marker"
	NodeH6Marker      = "atx_h6_marker"
	NodeSetextH1      = "setext_h1_underline"
	NodeSetextH2      = "setext_h2_underline"
	NodeInline        = "inline"

	// Code block nodes
	NodeFencedCodeBlock   = "fenced_code_block"
	NodeCodeBlockDelim    = "fenced_code_block_delimiter"
	NodeInfoString        = "info_string"
	NodeLanguage          = "language"
	NodeCodeFenceContent  = "code_fence_content"
	NodeIndentedCodeBlock = "indented_code_block"

	// List nodes
	NodeList            = "list"
	NodeListItem        = "list_item"
	NodeListMarkerMinus = "list_marker_minus"
	NodeListMarkerPlus  = "list_marker_plus"
	NodeListMarkerStar  = "list_marker_star"
	NodeListMarkerDot   = "list_marker_dot"
	NodeListMarkerParen = "list_marker_parenthesis"

	// Block elements
	NodeParagraph        = "paragraph"
	NodeBlockQuote       = "block_quote"
	NodeBlockQuoteMarker = "block_quote_marker"
	NodeThematicBreak    = "thematic_break"
)

// Inline grammar node types.
const (
	NodeEmphasis         = "emphasis"
	NodeStrongEmphasis   = "strong_emphasis"
	NodeCodeSpan         = "code_span"
	NodeInlineLink       = "inline_link"
	NodeShortcutLink     = "shortcut_link"
	NodeImageDescription = "image_description"
	NodeLinkText         = "link_text"
	NodeLinkDestination  = "link_destination"
	NodeLinkLabel        = "link_label"
)

// Field names used by the block grammar.
const (
	// FieldHeadingContent is the named field on atx_heading/setext_heading
	// nodes holding the heading text.
	FieldHeadingContent = "heading_content"
)

// HeadingTypes lists the block node types that introduce a heading section.
// A section qualifies for the outline when its first named child has one of
// these types.
var HeadingTypes = []string{NodeATXHeading, NodeSetextHeading}

// IsHeadingType reports whether typ is one of HeadingTypes.
func IsHeadingType(typ string) bool {
	for _, t := range HeadingTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// Block Grammar Structure Reference
//
// document
// └── section
//     ├── atx_heading
//     │   ├── atx_h1_marker (# / ## / ### / etc.)
//     │   └── inline (field: heading_content)
//     │
//     ├── paragraph
//     │   └── inline (re-parsed by the inline grammar)
//     │
//     ├── fenced_code_block
//     │   ├── fenced_code_block_delimiter (```)
//     │   ├── info_string
//     │   │   └── language
//     │   ├── code_fence_content
//     │   └── fenced_code_block_delimiter (```)
//     │
//     ├── list
//     │   └── list_item
//     │       ├── list_marker_minus/plus/star/dot
//     │       └── paragraph
//     │
//     ├── block_quote
//     │   ├── block_quote_marker (>)
//     │   └── paragraph
//     │
//     └── thematic_break (---)
//
// The inline grammar parses the spans covered by the block tree's `inline`
// leaves and produces emphasis, strong_emphasis, code_span, inline_link
// (link_text + link_destination children), shortcut_link, and image nodes,
// along with anonymous token nodes for the literal bracket characters.
