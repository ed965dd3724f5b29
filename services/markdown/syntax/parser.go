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
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	tree_sitter_markdown_inline "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown-inline"
)

// DefaultMaxDocumentSize is the maximum document size the parser will
// accept (10MB).
const DefaultMaxDocumentSize = 10 * 1024 * 1024

// DualParserOption configures a DualParser instance.
type DualParserOption func(*DualParser)

// WithMaxDocumentSize sets the maximum document size the parser will accept.
//
// Parameters:
//   - bytes: Maximum size in bytes. Must be positive.
func WithMaxDocumentSize(bytes int) DualParserOption {
	return func(p *DualParser) {
		if bytes > 0 {
			p.maxDocumentSize = bytes
		}
	}
}

// DualParser parses markdown into the two syntax trees the annotation
// layer operates on.
//
// Description:
//
//	DualParser wraps tree-sitter's split markdown grammar. A Parse call
//	first builds the block-structure tree, then re-parses the source with
//	the inline grammar restricted to the block tree's `inline` leaf ranges,
//	so the inline tree's roots land exactly inside the block leaves that
//	carry span-level content.
//
// Thread Safety:
//
//	DualParser is safe for concurrent use. Each Parse call creates its own
//	tree-sitter parser instances.
//
// Example:
//
//	parser := NewDualParser()
//	if !parser.Ready() {
//	    return ErrGrammarNotReady
//	}
//	snap, err := parser.Parse(ctx, content)
//	if err != nil {
//	    return fmt.Errorf("parse: %w", err)
//	}
//	defer snap.Close()
type DualParser struct {
	maxDocumentSize int
	blockLang       *sitter.Language
	inlineLang      *sitter.Language
}

// NewDualParser creates a DualParser with both grammars loaded.
//
// The returned parser may not be ready if either grammar failed to load;
// check Ready before use. Hosts are expected to gate the whole feature on
// that check and surface "feature unavailable" rather than calling Parse.
func NewDualParser(opts ...DualParserOption) *DualParser {
	p := &DualParser{
		maxDocumentSize: DefaultMaxDocumentSize,
		blockLang:       tree_sitter_markdown.GetLanguage(),
		inlineLang:      tree_sitter_markdown_inline.GetLanguage(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ready reports whether both grammars are available.
//
// Parse refuses to run when Ready is false.
func (p *DualParser) Ready() bool {
	return p.blockLang != nil && p.inlineLang != nil
}

// Extensions returns the file extensions this parser handles.
func (p *DualParser) Extensions() []string {
	return Extensions()
}

// Extensions returns the file extensions associated with markdown documents.
func Extensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

// Parse builds a fresh Snapshot from the given document content.
//
// Description:
//
//	Parses content with the block grammar, collects the byte ranges of the
//	resulting `inline` leaves, and parses the same content with the inline
//	grammar restricted to those ranges. The returned snapshot owns both
//	trees; callers release them with Snapshot.Close.
//
// Inputs:
//
//	ctx     - Context for cancellation. Checked before and between parses.
//	content - Raw markdown bytes. Must be valid UTF-8.
//
// Outputs:
//
//	*Snapshot - Both trees plus the source. Never nil on success.
//	error     - Non-nil only for precondition violations (grammar not
//	            ready, content too large or not UTF-8, cancellation).
//
// Thread Safety:
//
//	Safe for concurrent use.
func (p *DualParser) Parse(ctx context.Context, content []byte) (*Snapshot, error) {
	if !p.Ready() {
		return nil, ErrGrammarNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("markdown parse canceled before start: %w", err)
	}
	if len(content) > p.maxDocumentSize {
		return nil, ErrFileTooLarge
	}
	if !utf8.Valid(content) {
		return nil, ErrInvalidContent
	}

	start := time.Now()
	snap, err := p.parse(ctx, content)
	recordParseMetrics(ctx, time.Since(start), len(content), err == nil)
	return snap, err
}

// parse performs the two-pass parse after Parse has validated the input.
func (p *DualParser) parse(ctx context.Context, content []byte) (*Snapshot, error) {
	blockParser := sitter.NewParser()
	blockParser.SetLanguage(p.blockLang)

	blockTree, err := blockParser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("block grammar: %w", err)
	}
	if blockTree == nil {
		return nil, ErrParseFailed
	}

	if err := ctx.Err(); err != nil {
		blockTree.Close()
		return nil, fmt.Errorf("markdown parse canceled after block tree: %w", err)
	}

	inlineParser := sitter.NewParser()
	inlineParser.SetLanguage(p.inlineLang)
	inlineParser.SetIncludedRanges(inlineRanges(blockTree.RootNode()))

	inlineTree, err := inlineParser.ParseCtx(ctx, nil, content)
	if err != nil {
		blockTree.Close()
		return nil, fmt.Errorf("inline grammar: %w", err)
	}
	if inlineTree == nil {
		blockTree.Close()
		return nil, ErrParseFailed
	}

	return &Snapshot{
		Source: content,
		Block:  blockTree,
		Inline: inlineTree,
	}, nil
}

// Reparse replaces a snapshot with a fresh parse of new content.
//
// The old snapshot is closed before the new one is returned. On error the
// old snapshot is left open so the caller can keep rendering the previous
// version of the document.
func (p *DualParser) Reparse(ctx context.Context, old *Snapshot, content []byte) (*Snapshot, error) {
	snap, err := p.Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	old.Close()
	return snap, nil
}

// inlineRanges collects the source ranges of the block tree's `inline`
// leaves for the inline grammar's included-range restriction.
//
// An empty range list would tell tree-sitter to parse the whole document,
// so a document with no inline content gets a single empty range instead,
// yielding an empty inline tree.
func inlineRanges(root *sitter.Node) []sitter.Range {
	var ranges []sitter.Range
	Walk(root, func(n *sitter.Node) {
		if n.Type() != NodeInline {
			return
		}
		ranges = append(ranges, sitter.Range{
			StartPoint: n.StartPoint(),
			EndPoint:   n.EndPoint(),
			StartByte:  n.StartByte(),
			EndByte:    n.EndByte(),
		})
	})
	if len(ranges) == 0 {
		ranges = []sitter.Range{{}}
	}
	return ranges
}
