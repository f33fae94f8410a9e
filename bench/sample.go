// Copyright (c) auxlist authors. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"sync/atomic"
	"time"
)

// sampleNode is one entry in a lock-free LIFO that collects round
// durations from many concurrent workers. A sample set has no ordering
// requirement the way the list's own spine does, so there's no need for
// the counted pointers a FIFO needs to stay ABA-safe under reuse — a
// single atomic head, CAS'd on push and swapped to nil on drain, is
// enough.
type sampleNode struct {
	value time.Duration
	next  *sampleNode
}

type sampleSink struct {
	head atomic.Pointer[sampleNode]
}

func newSampleSink() *sampleSink {
	return &sampleSink{}
}

func (s *sampleSink) record(d time.Duration) {
	n := &sampleNode{value: d}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// drain atomically detaches every sample collected so far and returns
// them.
func (s *sampleSink) drain() []time.Duration {
	n := s.head.Swap(nil)
	var out []time.Duration
	for n != nil {
		out = append(out, n.value)
		n = n.next
	}
	return out
}

type sampleStats struct {
	Count int
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

func summarize(samples []time.Duration) sampleStats {
	if len(samples) == 0 {
		return sampleStats{}
	}
	stats := sampleStats{Count: len(samples), Min: samples[0], Max: samples[0]}
	var total time.Duration
	for _, d := range samples {
		if d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
		total += d
	}
	stats.Mean = total / time.Duration(len(samples))
	return stats
}
