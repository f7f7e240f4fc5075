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
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/christmasqueue/collections/errs"
	"github.com/christmasqueue/collections/metrics"
)

// RunFiles parses and runs every script in paths with at most parallel runs at once;
// parallel <= 0 means GOMAXPROCS. Reports come back in the order of paths. A script that
// fails to parse leaves a nil report. The first error cancels the runs not yet finished
// and is returned along with the reports gathered so far.
func RunFiles(ctx context.Context, r *Runner, paths []string, parallel int) ([]*Report, error) {
	if err := checkStdin(paths); err != nil {
		return nil, err
	}
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}
	metrics.SetGauge("runner.parallel", float64(parallel))
	reports := make([]*Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			cmds, err := ParseFile(path)
			if err != nil {
				return err
			}
			rep, err := r.Run(ctx, path, cmds)
			reports[i] = rep
			return err
		})
	}
	return reports, g.Wait()
}

// ParseFiles parses every script in paths without running them.
// The result holds one command list per path, in the order of paths.
func ParseFiles(paths []string) ([][]Command, error) {
	if err := checkStdin(paths); err != nil {
		return nil, err
	}
	scripts := make([][]Command, 0, len(paths))
	for _, path := range paths {
		cmds, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, cmds)
	}
	return scripts, nil
}

func checkStdin(paths []string) error {
	n := 0
	for _, p := range paths {
		if p == Stdin {
			n++
		}
	}
	if n > 1 {
		return errs.Newf(errs.RetParseFail, "standard input (%s) given %d times", Stdin, n)
	}
	return nil
}
