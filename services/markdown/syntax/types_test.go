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

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestTreeKindString(t *testing.T) {
	tests := []struct {
		kind TreeKind
		want string
	}{
		{TreeBlock, "block"},
		{TreeInline, "inline"},
		{TreeKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("TreeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPointDisplay(t *testing.T) {
	p := Point{Row: 2, Column: 5}
	if got := p.Display(); got != "3:5" {
		t.Errorf("Display() = %q, want %q (1-indexed line)", got, "3:5")
	}
}

func TestSpanLen(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want int
	}{
		{"normal", Span{StartByte: 3, EndByte: 10}, 7},
		{"zero-length", Span{StartByte: 5, EndByte: 5}, 0},
		{"inverted", Span{StartByte: 10, EndByte: 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSpanText(t *testing.T) {
	source := []byte("# Title\ntext\n")

	tests := []struct {
		name string
		span Span
		want string
	}{
		{"heading", Span{StartByte: 0, EndByte: 7}, "# Title"},
		{"zero-length", Span{StartByte: 4, EndByte: 4}, ""},
		{"out of range", Span{StartByte: 0, EndByte: 100}, ""},
		{"inverted", Span{StartByte: 7, EndByte: 0}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Text(source); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpanString(t *testing.T) {
	s := Span{
		StartPoint: Point{Row: 0, Column: 0},
		EndPoint:   Point{Row: 0, Column: 7},
	}
	if got := s.String(); got != "1:0-1:7" {
		t.Errorf("String() = %q, want %q", got, "1:0-1:7")
	}
}

func TestIsHeadingType(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{NodeATXHeading, true},
		{NodeSetextHeading, true},
		{NodeParagraph, false},
		{NodeSection, false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsHeadingType(tt.typ); got != tt.want {
			t.Errorf("IsHeadingType(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestSnapshotNilSafety(t *testing.T) {
	var snap *Snapshot
	if snap.Valid() {
		t.Error("nil snapshot reports valid")
	}
	if snap.Root(TreeBlock) != nil {
		t.Error("nil snapshot returned a root")
	}
}

func TestWalkNilNode(t *testing.T) {
	called := false
	Walk(nil, func(n *sitter.Node) { called = true })
	if called {
		t.Error("Walk(nil, ...) invoked the visitor")
	}
}

func TestFirstNamedChildNil(t *testing.T) {
	if FirstNamedChild(nil) != nil {
		t.Error("FirstNamedChild(nil) returned non-nil")
	}
}

func TestWalkVisitsAnonymousNodes(t *testing.T) {
	snap := mustParse(t, "A [link](x) here.\n")

	sawOpenBracket := false
	Walk(snap.Root(TreeInline), func(n *sitter.Node) {
		if n.Type() == "[" {
			sawOpenBracket = true
		}
	})
	if !sawOpenBracket {
		t.Error("walk never visited the anonymous [ token node")
	}
}
