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
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for highlight evaluation.
var (
	tracer = otel.Tracer("markdownts.highlight")
	meter  = otel.Meter("markdownts.highlight")
)

// Metrics for evaluate operations.
var (
	evaluateLatency metric.Float64Histogram
	evaluateTotal   metric.Int64Counter
	spansEmitted    metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		evaluateLatency, err = meter.Float64Histogram(
			"markdown_highlight_duration_seconds",
			metric.WithDescription("Duration of highlight evaluations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		evaluateTotal, err = meter.Int64Counter(
			"markdown_highlight_total",
			metric.WithDescription("Total number of highlight evaluations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		spansEmitted, err = meter.Int64Histogram(
			"markdown_highlight_spans",
			metric.WithDescription("Category-tagged spans emitted per evaluation"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordEvaluateMetrics records metrics for one evaluation.
func recordEvaluateMetrics(ctx context.Context, duration time.Duration, spanCount int) {
	if err := initMetrics(); err != nil {
		return // Silently skip if metrics init failed
	}

	evaluateLatency.Record(ctx, duration.Seconds())
	evaluateTotal.Add(ctx, 1)
	spansEmitted.Record(ctx, int64(spanCount))
}

// startEvaluateSpan creates a trace span for one evaluation.
func startEvaluateSpan(ctx context.Context, featureCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Engine.Evaluate",
		trace.WithAttributes(
			attribute.Int("highlight.enabled_features", featureCount),
		),
	)
}

// setEvaluateSpanResult sets the result attributes on an evaluation span.
func setEvaluateSpanResult(span trace.Span, spanCount int) {
	span.SetAttributes(attribute.Int("highlight.span_count", spanCount))
}
