// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command markdownd starts a standalone markdown annotation API server.
//
// Usage:
//
//	go run ./cmd/markdownd
//	go run ./cmd/markdownd -port 9090
//
// Example requests:
//
//	# Health check
//	curl http://localhost:8080/v1/markdown/health
//
//	# Highlight a document
//	curl -X POST http://localhost:8080/v1/markdown/highlight \
//	  -H "Content-Type: application/json" \
//	  -d '{"content": "# Title\n\nSome *text*.\n"}'
//
//	# Extract the heading outline
//	curl -X POST http://localhost:8080/v1/markdown/outline \
//	  -H "Content-Type: application/json" \
//	  -d '{"content": "# Title\n\n## Section\n"}'
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/markdown-ts/pkg/logging"
	"github.com/AleutianAI/markdown-ts/pkg/telemetry"
	"github.com/AleutianAI/markdown-ts/services/markdown"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	debug := flag.Bool("debug", false, "Enable debug mode")
	metrics := flag.Bool("metrics", false, "Export metrics to stdout")
	logDir := flag.String("log-dir", "", "Directory for JSON log files (disabled when empty)")
	flag.Parse()

	// Set Gin mode
	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	level := logging.LevelInfo
	if *debug {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{
		Level:   level,
		LogDir:  *logDir,
		Service: "markdownd",
	})
	defer logger.Close()

	if *metrics {
		cfg := telemetry.DefaultConfig()
		cfg.MetricExporter = "stdout"
		shutdown, err := telemetry.Init(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to init telemetry: %v", err)
		}
		defer shutdown(context.Background())
	}

	// Create service with default config
	svc := markdown.NewService(markdown.DefaultServiceConfig(), logger)
	if !svc.Ready() {
		logger.Warn("markdown grammars failed to initialize; annotation endpoints will report unavailable")
	}

	// Create handlers
	handlers := markdown.NewHandlers(svc)

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	if *debug {
		router.Use(gin.Logger())
	}

	// Register routes
	v1 := router.Group("/v1")
	markdown.RegisterRoutes(v1, handlers)

	// Print startup banner
	printBanner(*port)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\nShutting down markdown server...")
		logger.Close()
		os.Exit(0)
	}()

	// Start server
	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Starting markdown server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printBanner(port int) {
	banner := `
╔═══════════════════════════════════════════════════════════════════╗
║                   MARKDOWN ANNOTATION SERVER                      ║
╠═══════════════════════════════════════════════════════════════════╣
║                                                                   ║
║  Tree-sitter backed highlighting and outlines for markdown.       ║
║                                                                   ║
║  Quick Start:                                                     ║
║  ┌─────────────────────────────────────────────────────────────┐  ║
║  │ # Health check                                              │  ║
║  │ curl http://localhost:%d/v1/markdown/health               │  ║
║  │                                                             │  ║
║  │ # Highlight a document                                      │  ║
║  │ curl -X POST http://localhost:%d/v1/markdown/highlight \  │  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"content": "# Title"}'                               │  ║
║  └─────────────────────────────────────────────────────────────┘  ║
║                                                                   ║
║  Endpoints:                                                       ║
║  ├── POST /highlight   category-tagged spans                      ║
║  ├── POST /outline     flat heading outline                       ║
║  ├── GET  /health      liveness                                   ║
║  └── GET  /ready       grammar gate                               ║
║                                                                   ║
║  Press Ctrl+C to stop                                             ║
╚═══════════════════════════════════════════════════════════════════╝
`
	fmt.Printf(banner, port, port)
}
