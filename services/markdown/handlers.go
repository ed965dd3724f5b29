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
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/markdown-ts/services/markdown/syntax"
)

// Handlers contains the HTTP handlers for the markdown service.
//
// Thread Safety: Handlers is safe for concurrent use.
type Handlers struct {
	svc *Service
}

// NewHandlers creates handlers wrapping the service.
//
// Parameters:
//   - svc: The markdown service. Must not be nil.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// HandleHighlight handles POST /v1/markdown/highlight.
func (h *Handlers) HandleHighlight(c *gin.Context) {
	var req HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Code:    "invalid_request",
			Details: err.Error(),
		})
		return
	}

	start := time.Now()
	highlights, err := h.svc.Highlight(c.Request.Context(), []byte(req.Content), req.Features)
	if err != nil {
		status, code := annotateErrorStatus(err)
		c.JSON(status, ErrorResponse{
			Error: err.Error(),
			Code:  code,
		})
		return
	}

	c.JSON(http.StatusOK, HighlightResponse{
		Highlights: highlightSpansToWire(highlights),
		Count:      len(highlights),
		DurationMs: time.Since(start).Milliseconds(),
	})
}

// HandleOutline handles POST /v1/markdown/outline.
func (h *Handlers) HandleOutline(c *gin.Context) {
	var req OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Code:    "invalid_request",
			Details: err.Error(),
		})
		return
	}

	start := time.Now()
	o, err := h.svc.Outline(c.Request.Context(), []byte(req.Content))
	if err != nil {
		status, code := annotateErrorStatus(err)
		c.JSON(status, ErrorResponse{
			Error: err.Error(),
			Code:  code,
		})
		return
	}

	c.JSON(http.StatusOK, OutlineResponse{
		Groups:     o.Groups,
		DurationMs: time.Since(start).Milliseconds(),
	})
}

// HandleHealth handles GET /v1/markdown/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	status := "healthy"
	if !h.svc.Ready() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:  status,
		Version: Version,
	})
}

// HandleReady handles GET /v1/markdown/ready.
//
// Readiness is the grammar gate: the service refuses annotation work until
// both grammars are initialized, and this endpoint is how orchestration
// finds out.
func (h *Handlers) HandleReady(c *gin.Context) {
	ready := h.svc.Ready()
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, ReadyResponse{Ready: ready})
}

// annotateErrorStatus maps service errors to HTTP status and error code.
func annotateErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, syntax.ErrGrammarNotReady):
		return http.StatusServiceUnavailable, "feature_unavailable"
	case errors.Is(err, syntax.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "document_too_large"
	case errors.Is(err, syntax.ErrInvalidContent):
		return http.StatusBadRequest, "invalid_content"
	case strings.Contains(err.Error(), "unknown highlight feature"):
		return http.StatusBadRequest, "unknown_feature"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
