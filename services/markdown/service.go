// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package markdown provides the markdown annotation HTTP service.
//
// The service exposes endpoints for:
//   - Highlighting a document (category-tagged spans)
//   - Extracting the heading outline
//   - Health and readiness checks (readiness is the grammar gate)
package markdown

import (
	"context"
	"fmt"
	"time"

	"github.com/AleutianAI/markdown-ts/pkg/logging"
	"github.com/AleutianAI/markdown-ts/services/markdown/highlight"
	"github.com/AleutianAI/markdown-ts/services/markdown/outline"
	"github.com/AleutianAI/markdown-ts/services/markdown/syntax"
)

// ServiceConfig configures the markdown service.
type ServiceConfig struct {
	// MaxDocumentSize is the maximum document size in bytes to accept.
	// Default: 10MB
	MaxDocumentSize int

	// RequestTimeout bounds one parse-plus-annotate operation.
	// Default: 10s
	RequestTimeout time.Duration

	// EnabledFeatures names the highlight features evaluated when a
	// request does not restrict them. Default: all features.
	EnabledFeatures []string
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxDocumentSize: syntax.DefaultMaxDocumentSize,
		RequestTimeout:  10 * time.Second,
		EnabledFeatures: highlight.FeatureNames(),
	}
}

// Service is the markdown annotation service.
//
// Description:
//
//	Service wires the dual-grammar parser, the highlight rule engine, and
//	the outline extractor behind a request-per-document model: each request
//	parses a fresh snapshot, annotates it, and closes it. Every operation
//	is gated on the grammar-ready check; when a grammar failed to
//	initialize the service stays up but reports not-ready and refuses
//	annotation requests.
//
// Thread Safety:
//
//	Service is safe for concurrent use. The parser and engine are
//	stateless between calls; snapshots are request-scoped.
type Service struct {
	config ServiceConfig
	parser *syntax.DualParser
	engine *highlight.Engine
	logger *logging.Logger
}

// NewService creates the service with the given config.
//
// Parameters:
//   - cfg: Service configuration (see ServiceConfig).
//   - logger: Structured logger. Must not be nil.
func NewService(cfg ServiceConfig, logger *logging.Logger) *Service {
	if cfg.MaxDocumentSize <= 0 {
		cfg.MaxDocumentSize = syntax.DefaultMaxDocumentSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if len(cfg.EnabledFeatures) == 0 {
		cfg.EnabledFeatures = highlight.FeatureNames()
	}
	return &Service{
		config: cfg,
		parser: syntax.NewDualParser(syntax.WithMaxDocumentSize(cfg.MaxDocumentSize)),
		engine: highlight.NewEngine(),
		logger: logger,
	}
}

// Ready reports whether both grammars initialized and the service can
// annotate documents.
func (s *Service) Ready() bool {
	return s.parser.Ready()
}

// Highlight parses content and returns its category-tagged spans.
//
// Inputs:
//
//	ctx      - Context for cancellation; bounded by RequestTimeout.
//	content  - Raw markdown bytes.
//	features - Feature names to evaluate; empty means the configured set.
//
// Outputs:
//
//	[]highlight.Highlight - Document-ordered spans; nil when nothing matched.
//	error                 - Precondition violations only (grammar gate,
//	                        size, encoding, unknown feature name).
func (s *Service) Highlight(ctx context.Context, content []byte, features []string) ([]highlight.Highlight, error) {
	if !s.Ready() {
		return nil, syntax.ErrGrammarNotReady
	}
	enabled, err := s.featureSet(features)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	snap, err := s.parser.Parse(ctx, content)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	highlights := s.engine.Evaluate(ctx, snap, enabled)
	s.logger.Debug("highlight evaluated",
		"bytes", len(content),
		"spans", len(highlights),
	)
	return highlights, nil
}

// Outline parses content and returns its heading outline.
func (s *Service) Outline(ctx context.Context, content []byte) (outline.Outline, error) {
	if !s.Ready() {
		return outline.Outline{}, syntax.ErrGrammarNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	snap, err := s.parser.Parse(ctx, content)
	if err != nil {
		return outline.Outline{}, err
	}
	defer snap.Close()

	o := outline.Extract(snap)
	s.logger.Debug("outline extracted",
		"bytes", len(content),
		"headings", len(o.Entries()),
	)
	return o, nil
}

// featureSet resolves requested feature names against the known features.
//
// An empty request means the configured default set. Unknown names are
// rejected rather than silently ignored so clients notice typos.
func (s *Service) featureSet(requested []string) (highlight.FeatureSet, error) {
	if len(requested) == 0 {
		requested = s.config.EnabledFeatures
	}
	known := highlight.AllFeatures()
	for _, name := range requested {
		if !known.Has(name) {
			return nil, fmt.Errorf("unknown highlight feature %q", name)
		}
	}
	return highlight.NewFeatureSet(requested...), nil
}
