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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for dual-grammar parsing.
var parseMeter = otel.Meter("markdownts.syntax")

// Metrics for parse operations.
var (
	parseLatency metric.Float64Histogram
	parseTotal   metric.Int64Counter
	parseBytes   metric.Int64Histogram

	parseMetricsOnce sync.Once
	parseMetricsErr  error
)

// initParseMetrics initializes the metrics. Safe to call multiple times.
func initParseMetrics() error {
	parseMetricsOnce.Do(func() {
		var err error

		parseLatency, err = parseMeter.Float64Histogram(
			"markdown_parse_duration_seconds",
			metric.WithDescription("Duration of dual-grammar parse operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			parseMetricsErr = err
			return
		}

		parseTotal, err = parseMeter.Int64Counter(
			"markdown_parse_total",
			metric.WithDescription("Total number of parse operations"),
		)
		if err != nil {
			parseMetricsErr = err
			return
		}

		parseBytes, err = parseMeter.Int64Histogram(
			"markdown_parse_bytes",
			metric.WithDescription("Document size per parse in bytes"),
			metric.WithUnit("By"),
		)
		if err != nil {
			parseMetricsErr = err
			return
		}
	})
	return parseMetricsErr
}

// recordParseMetrics records metrics for a parse operation.
func recordParseMetrics(ctx context.Context, duration time.Duration, size int, success bool) {
	if err := initParseMetrics(); err != nil {
		return // Silently skip if metrics init failed
	}

	attrs := metric.WithAttributes(attribute.Bool("success", success))

	parseLatency.Record(ctx, duration.Seconds(), attrs)
	parseTotal.Add(ctx, 1, attrs)
	if success {
		parseBytes.Record(ctx, int64(size))
	}
}
