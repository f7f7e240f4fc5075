//
//
// Copyright (C) 2026 The ChristmasQueue Authors.
// All rights reserved.
//
// Licensed under the Apache 2.0 License,
// A copy of the Apache 2.0 License is included in this file.
//
//

// Command stackctl runs operation scripts against bounded stacks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/christmasqueue/collections/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := command.Run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
