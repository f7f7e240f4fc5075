//
//
// Copyright (C) 2026 The ChristmasQueue Authors.
// All rights reserved.
//
// Licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

package script

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"github.com/christmasqueue/collections/errs"
	"github.com/christmasqueue/collections/log"
	"github.com/christmasqueue/collections/metrics"
	"github.com/christmasqueue/collections/stack"
)

// Runner runs scripts, each against its own fresh stack.
// A Runner may serve concurrent Run calls; it must not be copied after first use.
type Runner struct {
	// Capacity of the stack built for every run.
	Capacity int
	// Strict stops a run at the first rejected push, pop or peek.
	Strict bool
	// Logger receives one debug line per command. nil means the default logger.
	Logger log.Logger

	executed atomic.Int64
	rejected atomic.Int64
}

// Executed returns the number of commands run so far.
func (r *Runner) Executed() int64 {
	return r.executed.Load()
}

// Rejected returns the number of commands the stacks rejected so far.
func (r *Runner) Rejected() int64 {
	return r.rejected.Load()
}

func (r *Runner) logger() log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.GetDefaultLogger()
}

// Run executes cmds in order against a new stack and reports every step.
// The report is returned even when err is not nil, holding the steps run so far.
func (r *Runner) Run(ctx context.Context, name string, cmds []Command) (*Report, error) {
	st := stack.New(r.Capacity)
	rep := &Report{
		Name:     name,
		Capacity: r.Capacity,
		Steps:    make([]Step, 0, len(cmds)),
	}
	logger := r.logger().With(log.Field{Key: "script", Value: name})

	start := time.Now()
	err := r.run(ctx, st, rep, cmds, logger)
	metrics.RecordTimer("script.run", time.Since(start))
	rep.finish(st)
	if err != nil {
		rep.Error = errs.Msg(err)
		logger.Debugf("stopped: %v", err)
	}
	return rep, err
}

func (r *Runner) run(ctx context.Context, st *stack.Stack, rep *Report, cmds []Command, logger log.Logger) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, ok := cmd.apply(st)
		r.executed.Inc()
		metrics.IncrCounter("stack."+cmd.Op.String(), 1)
		if !ok {
			r.rejected.Inc()
			metrics.IncrCounter("stack."+cmd.Op.String()+".rejected", 1)
		}
		rep.Steps = append(rep.Steps, Step{
			Line:    cmd.Line,
			Command: cmd.String(),
			Outcome: outcome,
			OK:      ok,
		})
		logger.Debugf("line %d: %s -> %s (size %d)", cmd.Line, cmd, outcome, st.Size())

		if cmd.HasExpect && outcome != cmd.Expect {
			return errs.Newf(errs.RetExpectMismatch, "%s:%d: %s: got %s, want %s",
				rep.Name, cmd.Line, cmd, outcome, cmd.Expect)
		}
		if r.Strict && !ok {
			return errs.Newf(cmd.rejectCode(), "%s:%d: %s rejected: %s", rep.Name, cmd.Line, cmd, outcome)
		}
	}
	return nil
}
