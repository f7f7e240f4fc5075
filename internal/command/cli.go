//
//
// Copyright (C) 2026 The ChristmasQueue Authors.
// All rights reserved.
//
// Licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

// Package command implements the stackctl command line.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/christmasqueue/collections/config"
	"github.com/christmasqueue/collections/errs"
	"github.com/christmasqueue/collections/log"
	"github.com/christmasqueue/collections/metrics"
	"github.com/christmasqueue/collections/script"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitFail  = 1 // a script failed or was rejected in strict mode.
	ExitUsage = 2 // bad flags, config or script syntax.
)

var confFlag = &cli.StringFlag{
	Name:    "conf",
	Aliases: []string{"c"},
	Usage:   "config file (.yaml, .toml or .json); defaults to $" + config.EnvConfigPath + " or " + config.DefaultConfigPath,
}

func cliApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "stackctl",
		Usage:           "run operation scripts against bounded stacks",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run scripts and print a report for each",
				ArgsUsage: "script... (- reads standard input)",
				UsageText: `
stackctl run [options] script...

Every script runs against its own empty stack. Each line is one command:

  push <value>   pop   peek [depth]   empty   full   homogeneous   size   cap   reset

A command may end with "=> outcome"; the run fails when the outcome differs.
`,
				Flags: []cli.Flag{
					confFlag,
					&cli.IntFlag{
						Name:  "capacity",
						Usage: "stack capacity, overrides stack.capacity",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "stop a script at the first rejected push, pop or peek",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "report format, text or json",
					},
					&cli.IntFlag{
						Name:    "parallel",
						Aliases: []string{"p"},
						Usage:   "scripts run at once, 0 for GOMAXPROCS",
					},
					&cli.BoolFlag{
						Name:  "metrics",
						Usage: "print operation counters to stderr after the run",
					},
					&cli.StringSliceFlag{
						Name:  "set",
						Usage: "override a config key, as key=value; may be repeated",
					},
				},
				OnUsageError: onUsageError,
				Action: func(c *cli.Context) error {
					if c.Args().Len() == 0 {
						return usageError(cli.ShowCommandHelp(c, "run"))
					}
					return run(c, stdout, stderr)
				},
			},
			{
				Name:         "check",
				Usage:        "Validate the config and parse scripts without running them",
				ArgsUsage:    "[script...]",
				Flags:        []cli.Flag{confFlag},
				OnUsageError: onUsageError,
				Action: func(c *cli.Context) error {
					return check(c, stdout)
				},
			},
		},
	}
}

// Run runs stackctl with args, os.Args style, and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := cliApp(stdout, stderr)
	err := app.RunContext(ctx, args)
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(stderr, "stackctl: %v\n", err)
	var ue *usageErr
	if errors.As(err, &ue) {
		return ExitUsage
	}
	switch errs.Code(err) {
	case errs.RetParseFail, errs.RetConfigInvalid:
		return ExitUsage
	default:
		return ExitFail
	}
}

func run(c *cli.Context, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return usageError(err)
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	logger := log.NewZapLog(cfg.Log)
	log.SetLogger(log.WithCallerSkip(logger, 1))
	defer func() { _ = logger.Sync() }()
	if undo, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err == nil {
		defer undo()
	}
	config.SetGlobalConfig(cfg)

	if cfg.Capacity() <= 0 {
		logger.Warnf("stack capacity %d: every push will be rejected", cfg.Capacity())
	}
	if cfg.Runner.Metrics {
		sink := metrics.NewConsoleSink()
		metrics.RegisterMetricsSink(sink)
		defer func() {
			metrics.UnregisterMetricsSink(sink.Name())
			_, _ = sink.WriteTo(stderr)
		}()
	}
	r := &script.Runner{
		Capacity: cfg.Capacity(),
		Strict:   cfg.Runner.Strict,
		Logger:   logger,
	}
	paths := c.Args().Slice()
	reports, runErr := script.RunFiles(c.Context, r, paths, cfg.Runner.Parallel)
	if err := script.WriteReports(stdout, cfg.Runner.Output, reports); err != nil {
		return err
	}
	logger.Infof("ran %d script(s): %d command(s), %d rejected", len(paths), r.Executed(), r.Rejected())
	return runErr
}

func check(c *cli.Context, stdout io.Writer) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return usageError(err)
	}
	scripts, err := script.ParseFiles(c.Args().Slice())
	if err != nil {
		return err
	}
	n := 0
	for _, cmds := range scripts {
		n += len(cmds)
	}
	_, err = fmt.Fprintf(stdout, "ok: capacity %d, %d script(s), %d command(s)\n", cfg.Capacity(), len(scripts), n)
	return err
}

// loadConfig loads the config named by --conf or the environment. A missing default
// config file is not an error; the built-in defaults are used instead.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String(confFlag.Name)
	explicit := c.IsSet(confFlag.Name)
	if !explicit {
		path = config.Path()
		explicit = path != config.DefaultConfigPath
	}
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.LoadConfig(path)
}

func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("capacity") {
		if err := cfg.Set("stack.capacity", c.Int("capacity")); err != nil {
			return err
		}
	}
	if c.IsSet("strict") {
		if err := cfg.Set("runner.strict", c.Bool("strict")); err != nil {
			return err
		}
	}
	if c.IsSet("output") {
		if err := cfg.Set("runner.output", c.String("output")); err != nil {
			return err
		}
	}
	if c.IsSet("metrics") {
		if err := cfg.Set("runner.metrics", c.Bool("metrics")); err != nil {
			return err
		}
	}
	if c.IsSet("parallel") {
		if err := cfg.Set("runner.parallel", c.Int("parallel")); err != nil {
			return err
		}
	}
	if err := cfg.SetAll(c.StringSlice("set")); err != nil {
		return err
	}
	return config.Validate(cfg)
}

type usageErr struct{ err error }

func (e *usageErr) Error() string {
	if e.err == nil {
		return "missing arguments"
	}
	return e.err.Error()
}

func (e *usageErr) Unwrap() error { return e.err }

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return usageError(err)
}

func usageError(err error) error {
	return &usageErr{err: err}
}
