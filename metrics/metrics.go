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

// Package metrics defines counters and timers reported to pluggable sinks.
//
//	metrics.IncrCounter("stack.push", 1)
//	metrics.RecordTimer("script.run", time.Since(start))
//
// Nothing is recorded until a Sink is registered.
package metrics

import (
	"fmt"
	"sync"
	"time"
)

var (
	metricsSinksMutex = sync.RWMutex{}
	metricsSinks      = map[string]Sink{}

	countersMutex = sync.RWMutex{}
	counters      = map[string]ICounter{}

	timersMutex = sync.RWMutex{}
	timers      = map[string]ITimer{}
)

// RegisterMetricsSink registers a Sink, replacing any sink of the same name.
func RegisterMetricsSink(sink Sink) {
	metricsSinksMutex.Lock()
	metricsSinks[sink.Name()] = sink
	metricsSinksMutex.Unlock()
}

// UnregisterMetricsSink removes the sink named name.
func UnregisterMetricsSink(name string) {
	metricsSinksMutex.Lock()
	delete(metricsSinks, name)
	metricsSinksMutex.Unlock()
}

// GetMetricsSink gets a Sink by name.
func GetMetricsSink(name string) (Sink, bool) {
	metricsSinksMutex.RLock()
	sink, ok := metricsSinks[name]
	metricsSinksMutex.RUnlock()
	return sink, ok
}

// Counter creates a named counter.
func Counter(name string) ICounter {
	countersMutex.RLock()
	c, ok := counters[name]
	countersMutex.RUnlock()
	if ok {
		return c
	}

	countersMutex.Lock()
	defer countersMutex.Unlock()
	if c, ok = counters[name]; ok {
		return c
	}
	c = &counter{name: name}
	counters[name] = c
	return c
}

// Timer creates a named timer.
func Timer(name string) ITimer {
	timersMutex.RLock()
	t, ok := timers[name]
	timersMutex.RUnlock()
	if ok {
		return t
	}

	timersMutex.Lock()
	defer timersMutex.Unlock()
	if t, ok = timers[name]; ok {
		return t
	}
	t = &timer{name: name}
	timers[name] = t
	return t
}

// IncrCounter increases counter key by value.
func IncrCounter(key string, value float64) {
	Counter(key).IncrBy(value)
}

// RecordTimer records timer named key with duration.
func RecordTimer(key string, duration time.Duration) {
	Timer(key).RecordDuration(duration)
}

// Report reports a record to every registered sink.
func Report(rec Record) error {
	var errs []error
	for _, sink := range sinks() {
		if err := sink.Report(rec); err != nil {
			errs = append(errs, fmt.Errorf("sink-%s error: %v", sink.Name(), err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("metrics sink error: %v", errs)
}

func sinks() []Sink {
	metricsSinksMutex.RLock()
	defer metricsSinksMutex.RUnlock()
	if len(metricsSinks) == 0 {
		return nil
	}
	s := make([]Sink, 0, len(metricsSinks))
	for _, sink := range metricsSinks {
		s = append(s, sink)
	}
	return s
}

// SetGauge sets gauge key to value. A gauge retains the last set value.
func SetGauge(key string, value float64) {
	_ = Report(NewSingleDimensionMetrics(key, value, PolicySET))
}
