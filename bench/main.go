// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

// Command bench drives a shared auxlist.List through concurrent
// insert/delete churn and reports round-trip latency. It exists purely to
// exercise the public cursor API under load and is not part of the core
// algorithm.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/concurrentkit/auxlist"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func main() {
	goroutines := flag.Int("goroutines", 8, "number of concurrent workers")
	iterations := flag.Int("iterations", 10000, "insert/delete rounds per worker")
	quiet := flag.Bool("quiet", false, "suppress per-round debug logging")
	flag.Parse()

	shutdown, err := setupTracing()
	if err != nil {
		log.Fatalf("bench: failed to set up tracing: %v", err)
	}
	defer shutdown(context.Background())

	logger, err := newLogger(*quiet)
	if err != nil {
		log.Fatalf("bench: failed to set up logging: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	list := auxlist.New[int]()
	sink := newSampleSink()

	round := instrumentedRound("churn", func(ctx context.Context) (time.Duration, error) {
		start := time.Now()

		c, err := list.First()
		if err != nil {
			return 0, err
		}
		if err := c.Insert(1); err != nil {
			return 0, err
		}

		c, err = list.First()
		if err != nil {
			return 0, err
		}
		if _, err := c.Delete(); err != nil {
			return 0, err
		}

		return time.Since(start), nil
	})

	var wg sync.WaitGroup
	ctx := context.Background()
	for i := 0; i < *goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < *iterations; j++ {
				d, err := round(ctx)
				if err != nil {
					zap.L().Error("round failed", zap.Error(err))
					continue
				}
				sink.record(d)
			}
		}()
	}
	wg.Wait()

	stats := summarize(sink.drain())
	fmt.Printf("rounds=%d min=%s max=%s mean=%s\n",
		stats.Count, stats.Min, stats.Max, stats.Mean)

	finalCursor, err := list.First()
	if err != nil {
		log.Fatalf("bench: failed to verify final state: %v", err)
	}
	count := 0
	for {
		ok, err := finalCursor.Next()
		if err != nil {
			log.Fatalf("bench: failed to traverse final list: %v", err)
		}
		if !ok {
			break
		}
		count++
	}
	fmt.Printf("remaining data cells=%d (should be 0)\n", count)
}

func newLogger(quiet bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func setupTracing() (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	provider := trace.NewTracerProvider(trace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
