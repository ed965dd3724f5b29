// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package highlight

// Category is an opaque display tag assigned to a span of text.
//
// A category is a label, not a style: resolution to an actual visual
// treatment (a terminal color, an editor face) belongs to the host. The
// vocabulary is closed; hosts must be able to render every value below.
type Category string

const (
	// CategoryKeyword marks structural markers: headings, list markers.
	CategoryKeyword Category = "keyword"

	// CategoryString marks literal content: code blocks, code spans,
	// quoted paragraphs, link destinations.
	CategoryString Category = "string"

	// CategoryShadow marks de-emphasized punctuation: thematic breaks,
	// bracket and parenthesis delimiters.
	CategoryShadow Category = "shadow"

	// CategoryDoc marks fence delimiters (the doc/annotation category).
	CategoryDoc Category = "doc"

	// CategoryLink marks link text and image descriptions.
	CategoryLink Category = "link"

	// CategoryUnderline marks emphasized spans.
	CategoryUnderline Category = "underline"

	// CategoryBold marks strongly emphasized spans.
	CategoryBold Category = "bold"
)

// Categories lists the full closed vocabulary in a stable order.
func Categories() []Category {
	return []Category{
		CategoryKeyword,
		CategoryString,
		CategoryShadow,
		CategoryDoc,
		CategoryLink,
		CategoryUnderline,
		CategoryBold,
	}
}

// Valid reports whether c is part of the closed vocabulary.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
