// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Flags)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			pipeline.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Flags)
	if !opts.Disassemble {
		pipeline.PrintBanner(logger, opts, version, commit, date)
	}

	p := pipeline.New(logger)
	if err := p.Execute(ctx, opts, os.Stdout); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			// Handle context cancellation (Ctrl+C) gracefully
			logger.Info("Operation cancelled")
		case errors.Is(err, machine.ErrBreakpoint):
			logger.Info("Execution stopped", log.Err(err))
		default:
			logger.Error("Running ROM failed", log.Err(err))
			os.Exit(1)
		}
	}
}
