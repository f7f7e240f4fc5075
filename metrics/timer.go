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

import "time"

// ITimer is the interface that emits timer metrics.
type ITimer interface {
	// RecordDuration records duration into the timer.
	RecordDuration(duration time.Duration)

	// RecordSince records the time passed since start.
	RecordSince(start time.Time) time.Duration
}

type timer struct {
	name string
}

// RecordDuration reports duration to every sink.
func (t *timer) RecordDuration(duration time.Duration) {
	_ = Report(NewSingleDimensionMetrics(t.name, float64(duration), PolicyTimer))
}

// RecordSince reports and returns the time passed since start.
func (t *timer) RecordSince(start time.Time) time.Duration {
	d := time.Since(start)
	t.RecordDuration(d)
	return d
}
