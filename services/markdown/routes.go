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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all markdown routes with the router.
//
// Description:
//
//	Registers all /v1/markdown/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
//
// Endpoints:
//
//	POST /v1/markdown/highlight - Category-tagged spans for a document
//	POST /v1/markdown/outline - Heading outline for a document
//	GET  /v1/markdown/health - Health check
//	GET  /v1/markdown/ready - Readiness check (grammar gate)
//
// Example:
//
//	svc := markdown.NewService(markdown.DefaultServiceConfig(), logger)
//	handlers := markdown.NewHandlers(svc)
//
//	v1 := router.Group("/v1")
//	markdown.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	md := rg.Group("/markdown")
	{
		// Annotation
		md.POST("/highlight", handlers.HandleHighlight)
		md.POST("/outline", handlers.HandleOutline)

		// Health checks
		md.GET("/health", handlers.HandleHealth)
		md.GET("/ready", handlers.HandleReady)
	}
}
