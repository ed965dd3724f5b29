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

import (
	"github.com/AleutianAI/markdown-ts/services/markdown/syntax"
)

// Feature names. Features are independently toggleable groups of rules.
const (
	// FeatureDelimiter shadows the literal bracket and parenthesis
	// characters in the inline tree. It is the only override feature:
	// its assignments win over any block-tree assignment on the same span.
	FeatureDelimiter = "delimiter"

	// FeatureParagraph covers block-structure categories: headings,
	// breaks, code blocks, list markers, block quotes.
	FeatureParagraph = "paragraph"

	// FeatureParagraphInline covers span-level categories: emphasis,
	// links, code spans.
	FeatureParagraphInline = "paragraph-inline"
)

// FeatureNames lists all feature names in declaration order.
func FeatureNames() []string {
	return []string{FeatureDelimiter, FeatureParagraph, FeatureParagraphInline}
}

// FeatureSet is the set of enabled feature names passed into Evaluate.
//
// Represented as an explicit value rather than engine state so evaluation
// stays re-entrant and independently testable.
type FeatureSet map[string]struct{}

// NewFeatureSet builds a FeatureSet from feature names.
func NewFeatureSet(names ...string) FeatureSet {
	set := make(FeatureSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// AllFeatures returns a FeatureSet with every known feature enabled.
func AllFeatures() FeatureSet {
	return NewFeatureSet(FeatureNames()...)
}

// Has reports whether the named feature is enabled.
func (s FeatureSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Rule maps a tree-node shape to a category.
//
// A rule anchors on a node whose type is in Anchor (a disjunction). If
// Parent is set, the anchor's parent must additionally have that type. If
// Children is empty the category lands on the anchor node itself; otherwise
// it lands on each direct child of the anchor whose type is in Children
// (the anchor only selects the context, as with list markers).
//
// A missing parent or absent child is never an error: the rule simply does
// not match.
type Rule struct {
	// Anchor is the disjunction of node types the rule anchors on.
	Anchor []string

	// Parent, when non-empty, requires the anchor's parent node to have
	// this type.
	Parent string

	// Children, when non-empty, moves the match target to the anchor's
	// direct children of these types.
	Children []string

	// Category is assigned to every span the rule matches.
	Category Category
}

// Feature is a named, independently toggleable group of rules evaluated
// against one of the two trees.
type Feature struct {
	// Name identifies the feature for toggling.
	Name string

	// Tree selects which syntax tree the feature's rules run against.
	Tree syntax.TreeKind

	// Override makes this feature's assignments win over any non-override
	// assignment covering the same span, regardless of declaration order.
	Override bool

	// Rules are evaluated independently per node; their order within the
	// feature does not affect which nodes match.
	Rules []Rule
}

// DefaultFeatures returns the rule tables, in declaration order.
//
// Declaration order is the layering order: when two non-override features
// assign to the same span, the later feature paints over the earlier one.
func DefaultFeatures() []Feature {
	return []Feature{
		{
			Name:     FeatureDelimiter,
			Tree:     syntax.TreeInline,
			Override: true,
			Rules: []Rule{
				// The literal bracket characters surface as anonymous
				// token nodes whose type is the character itself.
				{Anchor: []string{"[", "]", "(", ")"}, Category: CategoryShadow},
			},
		},
		{
			Name: FeatureParagraph,
			Tree: syntax.TreeBlock,
			Rules: []Rule{
				{Anchor: []string{syntax.NodeSetextHeading, syntax.NodeATXHeading}, Category: CategoryKeyword},
				{Anchor: []string{syntax.NodeThematicBreak}, Category: CategoryShadow},
				{Anchor: []string{syntax.NodeIndentedCodeBlock}, Category: CategoryString},
				{
					Anchor: []string{syntax.NodeListItem},
					Children: []string{
						syntax.NodeListMarkerStar,
						syntax.NodeListMarkerPlus,
						syntax.NodeListMarkerMinus,
						syntax.NodeListMarkerDot,
					},
					Category: CategoryKeyword,
				},
				{
					Anchor:   []string{syntax.NodeFencedCodeBlock},
					Children: []string{syntax.NodeCodeBlockDelim},
					Category: CategoryDoc,
				},
				{
					Anchor:   []string{syntax.NodeFencedCodeBlock},
					Children: []string{syntax.NodeCodeFenceContent},
					Category: CategoryString,
				},
				{Anchor: []string{syntax.NodeBlockQuoteMarker}, Category: CategoryString},
				{Anchor: []string{syntax.NodeParagraph}, Parent: syntax.NodeBlockQuote, Category: CategoryString},
				// Matches the marker again through the nested-quote parent
				// context. The two marker rules reach the node through
				// different paths and both must stay; nested block quotes
				// produce shapes only one of them sees.
				{Anchor: []string{syntax.NodeBlockQuoteMarker}, Parent: syntax.NodeBlockQuote, Category: CategoryString},
			},
		},
		{
			Name: FeatureParagraphInline,
			Tree: syntax.TreeInline,
			Rules: []Rule{
				{Anchor: []string{syntax.NodeImageDescription}, Category: CategoryLink},
				{Anchor: []string{syntax.NodeLinkDestination}, Category: CategoryString},
				{Anchor: []string{syntax.NodeCodeSpan}, Category: CategoryString},
				{Anchor: []string{syntax.NodeEmphasis}, Category: CategoryUnderline},
				{Anchor: []string{syntax.NodeStrongEmphasis}, Category: CategoryBold},
				{
					Anchor:   []string{syntax.NodeInlineLink},
					Children: []string{syntax.NodeLinkText},
					Category: CategoryLink,
				},
				{
					Anchor:   []string{syntax.NodeInlineLink},
					Children: []string{syntax.NodeLinkDestination},
					Category: CategoryString,
				},
				{
					Anchor:   []string{syntax.NodeShortcutLink},
					Children: []string{syntax.NodeLinkText},
					Category: CategoryLink,
				},
			},
		},
	}
}
