// Package main implements the main entry point for a fixed column 6502 assembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/fixasm/internal/cli"
	"github.com/retroenv/fixasm/internal/config"
	"github.com/retroenv/fixasm/internal/fileprocessor"
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

	opts, asmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if !errors.As(err, &usageErr) {
			logger.Fatal(err.Error())
		}

		usageErr.ShowUsage()
		if usageErr.Misuse() {
			logger.Error(usageErr.Error())
			os.Exit(1)
		}
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	batch := opts.Batch != ""
	listing := opts.Listing
	var failed bool

	for _, file := range files {
		opts.Input = file
		if batch || opts.Output == "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}
		if batch && listing != "" {
			opts.Listing = fileprocessor.GenerateListingFilename(file)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts, asmOptions); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Assembling failed", log.Err(err))
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
