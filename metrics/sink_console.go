//
//
// Tencent is pleased to support the open source community by making tRPC available.
//
// Copyright (C) 2023 THL A29 Limited, a Tencent company.
// All rights reserved.
//
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the  Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// ConsoleSink aggregates metrics in memory and writes them out on demand.
type ConsoleSink struct {
	mu       sync.Mutex
	counters map[string]float64
	gauges   map[string]float64
	timers   map[string]timerStat
}

type timerStat struct {
	count int
	total time.Duration
	max   time.Duration
}

// NewConsoleSink creates a new console sink.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{
		counters: make(map[string]float64),
		gauges:   make(map[string]float64),
		timers:   make(map[string]timerStat),
	}
}

// Name returns console sink name.
func (c *ConsoleSink) Name() string {
	return "console"
}

// Report reports a record.
func (c *ConsoleSink) Report(rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range rec.metrics {
		switch m.policy {
		case PolicySUM:
			c.counters[m.name] += m.value
		case PolicySET:
			c.gauges[m.name] = m.value
		case PolicyTimer:
			d := time.Duration(m.value)
			s := c.timers[m.name]
			s.count++
			s.total += d
			if d > s.max {
				s.max = d
			}
			c.timers[m.name] = s
		default:
			// not supported policies
		}
	}
	return nil
}

// CounterValue returns the sum reported to counter name.
func (c *ConsoleSink) CounterValue(name string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[name]
}

// Lines renders every metric as one line, sorted by name.
func (c *ConsoleSink) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]string, 0, len(c.counters)+len(c.gauges)+len(c.timers))
	for k, v := range c.counters {
		lines = append(lines, fmt.Sprintf("counter %s = %v", k, v))
	}
	for k, v := range c.gauges {
		lines = append(lines, fmt.Sprintf("gauge %s = %v", k, v))
	}
	for k, s := range c.timers {
		lines = append(lines, fmt.Sprintf("timer %s count=%d total=%v max=%v", k, s.count, s.total, s.max))
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i][strings.IndexByte(lines[i], ' ')+1:] < lines[j][strings.IndexByte(lines[j], ' ')+1:]
	})
	return lines
}

// WriteTo writes Lines to w.
func (c *ConsoleSink) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, l := range c.Lines() {
		m, err := fmt.Fprintln(w, l)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
