// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// roundFunc performs one unit of churn against a shared list and reports
// how long it took.
type roundFunc func(ctx context.Context) (time.Duration, error)

// loggedRound wraps a round with structured logging of its start, duration,
// and any error, following the same inside-out wrapping convention as the
// tracing and metrics wrappers below.
func loggedRound(operationName string, round roundFunc) roundFunc {
	return func(ctx context.Context) (time.Duration, error) {
		logger := zap.L()
		logger.Debug("starting round",
			zap.String("operation", operationName))

		d, err := round(ctx)

		if err != nil {
			logger.Error("round failed",
				zap.String("operation", operationName),
				zap.Duration("duration", d),
				zap.Error(err))
		} else {
			logger.Debug("round completed",
				zap.String("operation", operationName),
				zap.Duration("duration", d))
		}
		return d, err
	}
}

// metricsRound records a counter, a duration histogram, and an error
// counter for each invocation of round via the global OpenTelemetry meter
// provider.
func metricsRound(metricName string, round roundFunc) roundFunc {
	meter := otel.GetMeterProvider().Meter("auxlist/bench")
	roundCounter, _ := meter.Int64Counter(metricName + ".count")
	roundDuration, _ := meter.Float64Histogram(metricName + ".duration")
	errorCounter, _ := meter.Int64Counter(metricName + ".errors")

	return func(ctx context.Context) (time.Duration, error) {
		roundCounter.Add(ctx, 1)

		d, err := round(ctx)

		roundDuration.Record(ctx, d.Seconds())
		if err != nil {
			errorCounter.Add(ctx, 1)
		}
		return d, err
	}
}

// tracedRound wraps round in a span named operationName.
func tracedRound(operationName string, round roundFunc) roundFunc {
	tracer := otel.Tracer("auxlist/bench")
	return func(ctx context.Context) (time.Duration, error) {
		ctx, span := tracer.Start(ctx, operationName)
		defer span.End()
		return round(ctx)
	}
}

// instrumentedRound combines logging, metrics, and tracing for a round,
// applied inside-out so that the outermost span covers the logged and
// measured execution.
func instrumentedRound(operationName string, round roundFunc) roundFunc {
	logged := loggedRound(operationName, round)
	measured := metricsRound(operationName, logged)
	return tracedRound(operationName, measured)
}
