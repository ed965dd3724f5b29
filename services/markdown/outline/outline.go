// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package outline extracts a navigable list of headings from the block tree.
//
// The extractor is a predicate/formatter pair: IsHeadingSection decides
// which block nodes qualify, HeadingName produces their display text. Both
// are total over well-formed trees; missing children and missing fields
// mean "not a heading here", never an error. The outline is recomputed
// fresh on every Extract call and never cached.
package outline

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/markdown-ts/services/markdown/syntax"
)

// GroupHeadings is the label of the single outline group.
const GroupHeadings = "Headings"

// Entry is one heading in the outline.
//
// Entries are pure projections of current heading nodes: they carry no
// identity of their own and are rebuilt from scratch on every Extract.
type Entry struct {
	// Name is the heading text, whitespace-trimmed.
	Name string `json:"name"`

	// Span locates the heading's section in the source.
	Span syntax.Span `json:"span"`

	// Depth is the entry's outline depth. All headings currently sit at
	// depth 0; nesting by heading level is not implemented.
	Depth int `json:"depth"`
}

// Group is a labeled, ordered list of entries.
type Group struct {
	// Label names the group.
	Label string `json:"label"`

	// Entries are in document order.
	Entries []Entry `json:"entries"`
}

// Outline is the result of one extraction.
type Outline struct {
	// Groups holds exactly one group, labeled "Headings".
	Groups []Group `json:"groups"`
}

// Entries returns the entries of the headings group.
func (o Outline) Entries() []Entry {
	for _, g := range o.Groups {
		if g.Label == GroupHeadings {
			return g.Entries
		}
	}
	return nil
}

// IsHeadingSection reports whether node is a heading section: a block-tree
// node whose first named child exists and has a heading type.
//
// Never faults: nil nodes, childless nodes, and nodes whose first named
// child is something else (a plain paragraph, say) all return false.
func IsHeadingSection(node *sitter.Node) bool {
	first := syntax.FirstNamedChild(node)
	return first != nil && syntax.IsHeadingType(first.Type())
}

// HeadingName returns the display name for a heading-section node.
//
// The name is the text of the first named child's heading-content field,
// whitespace-trimmed. The second return value is false — an explicit
// absent signal, never an empty string standing in for one — when the node
// has no first named child, the child has no heading-content field, or the
// field has no extractable text.
func HeadingName(node *sitter.Node, source []byte) (string, bool) {
	heading := syntax.FirstNamedChild(node)
	if heading == nil {
		return "", false
	}
	content := heading.ChildByFieldName(syntax.FieldHeadingContent)
	if content == nil {
		return "", false
	}
	name := strings.TrimSpace(content.Content(source))
	if name == "" {
		return "", false
	}
	return name, true
}

// Extract builds the outline for the snapshot's block tree.
//
// Description:
//
//	Walks the block tree in pre-order (which is document order; the grammar
//	never nests headings inside one another), collects every node passing
//	IsHeadingSection, and names each via HeadingName. Candidates for which
//	the name is absent are excluded entirely — silently, per the contract.
//
// Inputs:
//
//	snap - Snapshot whose block tree is walked. A nil snapshot or missing
//	       block tree yields an empty outline.
//
// Outputs:
//
//	Outline - One flat "Headings" group, entries in document order.
func Extract(snap *syntax.Snapshot) Outline {
	group := Group{Label: GroupHeadings, Entries: []Entry{}}
	if snap != nil {
		syntax.Walk(snap.Root(syntax.TreeBlock), func(n *sitter.Node) {
			if !IsHeadingSection(n) {
				return
			}
			name, ok := HeadingName(n, snap.Source)
			if !ok {
				return
			}
			group.Entries = append(group.Entries, Entry{
				Name: name,
				Span: syntax.NodeSpan(n),
			})
		})
	}
	return Outline{Groups: []Group{group}}
}
