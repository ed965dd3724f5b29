// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package markdown

import (
	"github.com/AleutianAI/markdown-ts/services/markdown/highlight"
	"github.com/AleutianAI/markdown-ts/services/markdown/outline"
)

// Version is the service version reported by the health endpoint.
const Version = "1.0.0"

// HighlightRequest is the request for POST /v1/markdown/highlight.
type HighlightRequest struct {
	// Content is the markdown document to annotate.
	Content string `json:"content" binding:"required"`

	// Features restricts evaluation to the named features.
	// Empty means all features.
	Features []string `json:"features,omitempty"`
}

// HighlightSpan is one category-tagged range in wire format.
type HighlightSpan struct {
	// StartByte is the inclusive start offset.
	StartByte uint32 `json:"start_byte"`

	// EndByte is the exclusive end offset.
	EndByte uint32 `json:"end_byte"`

	// StartLine is the 0-indexed line of StartByte.
	StartLine uint32 `json:"start_line"`

	// StartCol is the 0-indexed column of StartByte.
	StartCol uint32 `json:"start_col"`

	// EndLine is the 0-indexed line of EndByte.
	EndLine uint32 `json:"end_line"`

	// EndCol is the 0-indexed column of EndByte.
	EndCol uint32 `json:"end_col"`

	// Category is the display tag from the closed vocabulary.
	Category highlight.Category `json:"category"`
}

// HighlightResponse is the response for POST /v1/markdown/highlight.
type HighlightResponse struct {
	// Highlights are in document order.
	Highlights []HighlightSpan `json:"highlights"`

	// Count is len(Highlights), for quick client-side sanity checks.
	Count int `json:"count"`

	// DurationMs is how long parse plus evaluation took.
	DurationMs int64 `json:"duration_ms"`
}

// OutlineRequest is the request for POST /v1/markdown/outline.
type OutlineRequest struct {
	// Content is the markdown document to outline.
	Content string `json:"content" binding:"required"`
}

// OutlineResponse is the response for POST /v1/markdown/outline.
type OutlineResponse struct {
	// Groups holds the single "Headings" group.
	Groups []outline.Group `json:"groups"`

	// DurationMs is how long parse plus extraction took.
	DurationMs int64 `json:"duration_ms"`
}

// HealthResponse is the response for GET /v1/markdown/health.
type HealthResponse struct {
	// Status is "healthy" or "degraded".
	Status string `json:"status"`

	// Version is the service version.
	Version string `json:"version"`
}

// ReadyResponse is the response for GET /v1/markdown/ready.
type ReadyResponse struct {
	// Ready is true when both grammars initialized and requests will be
	// served. False surfaces as "feature unavailable" to clients.
	Ready bool `json:"ready"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`

	// Details provides additional error context (optional).
	Details string `json:"details,omitempty"`
}

// highlightSpansToWire converts engine output to wire format.
func highlightSpansToWire(hs []highlight.Highlight) []HighlightSpan {
	out := make([]HighlightSpan, 0, len(hs))
	for _, h := range hs {
		out = append(out, HighlightSpan{
			StartByte: h.Span.StartByte,
			EndByte:   h.Span.EndByte,
			StartLine: h.Span.StartPoint.Row,
			StartCol:  h.Span.StartPoint.Column,
			EndLine:   h.Span.EndPoint.Row,
			EndCol:    h.Span.EndPoint.Column,
			Category:  h.Category,
		})
	}
	return out
}
