// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package highlight maps tree-node shapes to display categories.
//
// The rule set is data (see rules.go): an ordered list of features, each a
// group of (anchor types, parent context, child targets, category) records,
// interpreted by one generic matcher. The engine is a pure function of the
// snapshot: no state is retained between Evaluate calls and two calls over
// the same snapshot yield the same sequence.
package highlight

import (
	"context"
	"sort"
	"time"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/markdown-ts/services/markdown/syntax"
)

// Highlight is one category-tagged span of the document.
type Highlight struct {
	// Span is the byte range the category applies to.
	Span syntax.Span `json:"span"`

	// Category is the assigned display tag.
	Category Category `json:"category"`
}

// EngineOption configures an Engine instance.
type EngineOption func(*Engine)

// WithFeatures replaces the default rule tables.
//
// Intended for tests; production callers use DefaultFeatures.
func WithFeatures(features []Feature) EngineOption {
	return func(e *Engine) {
		e.features = features
	}
}

// Engine evaluates the highlight rule tables against a snapshot.
//
// Description:
//
//	Evaluate walks both trees, collects every rule match, and resolves
//	per-span precedence: an override feature's assignment wins on any span
//	it matches; otherwise the last matching rule in feature-declaration
//	order wins. Nodes matched by no rule receive no category and are simply
//	absent from the output.
//
// Thread Safety:
//
//	Engine is safe for concurrent use as long as the snapshot it is given
//	is not closed or mutated during the call. The engine itself holds only
//	the immutable rule tables.
type Engine struct {
	features []Feature
}

// NewEngine creates an Engine with the default rule tables.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{features: DefaultFeatures()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Features returns the engine's feature tables in declaration order.
func (e *Engine) Features() []Feature {
	return e.features
}

// Evaluate returns the category-tagged spans for the snapshot, restricted
// to the enabled features, in document order.
//
// Inputs:
//
//	ctx     - Context for tracing/metrics only; evaluation is synchronous
//	          and completes before returning.
//	snap    - Snapshot carrying both trees. Must be valid (a contract of
//	          the parser); an invalid snapshot yields nil.
//	enabled - Set of enabled feature names. An empty set yields nil.
//
// Outputs:
//
//	[]Highlight - Sorted by start byte, then end byte. Each span appears
//	              at most once. Nil when nothing matched.
func (e *Engine) Evaluate(ctx context.Context, snap *syntax.Snapshot, enabled FeatureSet) []Highlight {
	if !snap.Valid() || len(enabled) == 0 {
		return nil
	}

	ctx, span := startEvaluateSpan(ctx, len(enabled))
	defer span.End()
	start := time.Now()

	var matches []match
	for layer, feature := range e.features {
		if !enabled.Has(feature.Name) {
			continue
		}
		root := snap.Root(feature.Tree)
		syntax.Walk(root, func(n *sitter.Node) {
			for ruleIdx, rule := range feature.Rules {
				collectRuleMatches(n, rule, layer, ruleIdx, feature.Override, &matches)
			}
		})
	}

	highlights := resolveMatches(matches)
	recordEvaluateMetrics(ctx, time.Since(start), len(highlights))
	setEvaluateSpanResult(span, len(highlights))
	return highlights
}

// match is one raw rule hit before precedence resolution.
type match struct {
	span     syntax.Span
	category Category
	layer    int
	rule     int
	override bool
}

// collectRuleMatches appends the spans rule claims at node n.
//
// The anchor's type (and parent context, when required) must line up; the
// category then lands on the anchor itself or on its designated children.
// Absent children mean the rule contributes nothing for this node.
func collectRuleMatches(n *sitter.Node, rule Rule, layer, ruleIdx int, override bool, out *[]match) {
	if !typeIn(n.Type(), rule.Anchor) {
		return
	}
	if rule.Parent != "" {
		parent := n.Parent()
		if parent == nil || parent.Type() != rule.Parent {
			return
		}
	}
	if len(rule.Children) == 0 {
		*out = append(*out, match{
			span:     syntax.NodeSpan(n),
			category: rule.Category,
			layer:    layer,
			rule:     ruleIdx,
			override: override,
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !typeIn(child.Type(), rule.Children) {
			continue
		}
		*out = append(*out, match{
			span:     syntax.NodeSpan(child),
			category: rule.Category,
			layer:    layer,
			rule:     ruleIdx,
			override: override,
		})
	}
}

// typeIn reports whether typ is in the disjunction types.
func typeIn(typ string, types []string) bool {
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}

// spanKey identifies a span for per-span precedence resolution.
type spanKey struct {
	start uint32
	end   uint32
}

// resolveMatches applies the tie-break policy and returns the final
// sequence in document order.
//
// Policy: for each span, an override match beats every non-override match;
// among matches of the same override class, the later (feature, rule)
// declaration position wins.
func resolveMatches(matches []match) []Highlight {
	if len(matches) == 0 {
		return nil
	}

	// Keying by exact (start, end) makes matches on the same span compete,
	// which is the point. Distinct nodes could only collide on a key if
	// both were zero-length at one offset, and no rule targets a node the
	// grammars emit as zero-length.
	winners := make(map[spanKey]match, len(matches))
	for _, m := range matches {
		key := spanKey{start: m.span.StartByte, end: m.span.EndByte}
		prev, seen := winners[key]
		if !seen || wins(m, prev) {
			winners[key] = m
		}
	}

	highlights := make([]Highlight, 0, len(winners))
	for _, m := range winners {
		highlights = append(highlights, Highlight{Span: m.span, Category: m.category})
	}
	sort.Slice(highlights, func(i, j int) bool {
		if highlights[i].Span.StartByte != highlights[j].Span.StartByte {
			return highlights[i].Span.StartByte < highlights[j].Span.StartByte
		}
		return highlights[i].Span.EndByte < highlights[j].Span.EndByte
	})
	return highlights
}

// wins reports whether candidate m replaces the current winner prev for the
// same span.
func wins(m, prev match) bool {
	if m.override != prev.override {
		return m.override
	}
	if m.layer != prev.layer {
		return m.layer > prev.layer
	}
	return m.rule >= prev.rule
}
