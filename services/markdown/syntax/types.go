// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package syntax owns the dual-grammar markdown syntax trees.
//
// The package wraps tree-sitter's split markdown grammar: a block grammar
// for document structure (headings, lists, quotes, code blocks) and an
// inline grammar for span-level structure (emphasis, links, code spans).
// It produces immutable Snapshot values that the highlight and outline
// packages consume by reference.
//
// Design principles:
//   - Snapshots are read-only after Parse; consumers never mutate trees
//   - Missing children/fields are ordinary conditions, not errors
//   - Byte offsets and points follow tree-sitter conventions
//     (0-indexed rows and columns)
package syntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// TreeKind identifies which of the two syntax trees a value refers to.
type TreeKind int

const (
	// TreeBlock is the block-structure tree (headings, lists, quotes,
	// code blocks).
	TreeBlock TreeKind = iota

	// TreeInline is the inline-span tree (emphasis, links, code spans).
	// Its roots are embedded within the block tree's `inline` leaves.
	TreeInline
)

// String returns "block" or "inline".
func (k TreeKind) String() string {
	switch k {
	case TreeBlock:
		return "block"
	case TreeInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Point is a row/column position within the source.
//
// Rows and columns are 0-indexed, matching tree-sitter. Use Display()
// when formatting for humans or editors.
type Point struct {
	// Row is the 0-indexed line number.
	Row uint32 `json:"row"`

	// Column is the 0-indexed column (byte offset within the line).
	Column uint32 `json:"column"`
}

// Display returns the point formatted as "line:col" with a 1-indexed line.
func (p Point) Display() string {
	return fmt.Sprintf("%d:%d", p.Row+1, p.Column)
}

// Span is a byte range within the source with its row/column endpoints.
//
// Spans are half-open: [StartByte, EndByte). A zero-length span
// (StartByte == EndByte) is valid; the grammar produces them for empty
// fence content, for example.
type Span struct {
	// StartByte is the inclusive start offset.
	StartByte uint32 `json:"start_byte"`

	// EndByte is the exclusive end offset.
	EndByte uint32 `json:"end_byte"`

	// StartPoint is the row/column of StartByte.
	StartPoint Point `json:"start_point"`

	// EndPoint is the row/column of EndByte.
	EndPoint Point `json:"end_point"`
}

// NodeSpan returns the span covered by a tree-sitter node.
func NodeSpan(n *sitter.Node) Span {
	return Span{
		StartByte:  n.StartByte(),
		EndByte:    n.EndByte(),
		StartPoint: Point{Row: n.StartPoint().Row, Column: n.StartPoint().Column},
		EndPoint:   Point{Row: n.EndPoint().Row, Column: n.EndPoint().Column},
	}
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	if s.EndByte < s.StartByte {
		return 0
	}
	return int(s.EndByte - s.StartByte)
}

// Text returns the source bytes covered by the span.
//
// Returns "" if the span is out of range for the given source; a span taken
// from a snapshot's own trees is always in range.
func (s Span) Text(source []byte) string {
	if int(s.EndByte) > len(source) || s.StartByte > s.EndByte {
		return ""
	}
	return string(source[s.StartByte:s.EndByte])
}

// String returns a human-readable representation, e.g. "3:0-3:7".
func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.StartPoint.Display(), s.EndPoint.Display())
}

// Snapshot is an immutable pair of syntax trees over one version of a
// document.
//
// A Snapshot is produced by DualParser.Parse and handed to the highlight
// engine and outline extractor by reference. The trees are owned by the
// snapshot; callers must not mutate them and must not use the snapshot
// concurrently with Close.
//
// Thread Safety:
//
//	Read access from multiple goroutines is safe as long as no goroutine
//	calls Close during a read. The snapshot itself never changes after
//	Parse returns.
type Snapshot struct {
	// Source is the document bytes both trees were parsed from.
	Source []byte

	// Block is the block-structure tree. Never nil on a parsed snapshot.
	Block *sitter.Tree

	// Inline is the inline-span tree, parsed over the block tree's
	// `inline` leaf ranges. Never nil on a parsed snapshot.
	Inline *sitter.Tree
}

// Root returns the root node of the requested tree, or nil if the snapshot
// does not carry that tree.
func (s *Snapshot) Root(kind TreeKind) *sitter.Node {
	if s == nil {
		return nil
	}
	switch kind {
	case TreeBlock:
		if s.Block != nil {
			return s.Block.RootNode()
		}
	case TreeInline:
		if s.Inline != nil {
			return s.Inline.RootNode()
		}
	}
	return nil
}

// Valid reports whether the snapshot carries both trees.
//
// Components that require both trees (the highlight engine evaluates block
// and inline rules in one call) should refuse snapshots for which Valid is
// false rather than walking a nil tree.
func (s *Snapshot) Valid() bool {
	return s != nil && s.Block != nil && s.Inline != nil
}

// Close releases the tree-sitter trees held by the snapshot.
//
// After Close the snapshot must not be used. Close is idempotent.
func (s *Snapshot) Close() {
	if s == nil {
		return
	}
	if s.Block != nil {
		s.Block.Close()
		s.Block = nil
	}
	if s.Inline != nil {
		s.Inline.Close()
		s.Inline = nil
	}
}

// Walk visits every node of the tree rooted at n in pre-order, anonymous
// token nodes included, calling visit for each.
//
// Anonymous nodes matter here: the inline grammar surfaces the literal
// bracket characters as unnamed token nodes, and the delimiter highlight
// feature matches them by their literal type.
func Walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), visit)
	}
}

// FirstNamedChild returns the node's first named child, or nil when the
// node has no named children. Safe to call on nil.
func FirstNamedChild(n *sitter.Node) *sitter.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}
