// Package main implements the main entry point for the CHIP-8 emulator
package main

import (
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/throttle"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const name = "retrochip8"

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags(os.Args)
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts.Quiet, name, version, commit, date)
			logger.Error(usageErr.Error())
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts.Quiet, name, version, commit, date)

	frontend, closeFrontend, err := createFrontend(logger, opts)
	if err != nil {
		logger.Fatal("Creating terminal frontend failed", log.Err(err))
	}

	p := pipeline.New(logger, throttle.SystemClock{})
	_, err = p.Execute(ctx, opts, frontend, os.Stdout)
	if closeErr := closeFrontend(); closeErr != nil {
		logger.Error("Restoring terminal failed", log.Err(closeErr))
	}
	if err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

// createFrontend opens the terminal frontend unless running headless.
func createFrontend(logger *log.Logger, opts options.Program) (emulator.Frontend, func() error, error) {
	if opts.Headless {
		return emulator.Frontend{}, func() error { return nil }, nil
	}

	term, err := terminal.Open(logger, terminal.Config{
		HoldPolls: int(opts.Hz / 5),
	})
	if err != nil {
		return emulator.Frontend{}, nil, err
	}

	frontend := emulator.Frontend{
		Display: term,
		Audio:   term,
		Input:   term,
	}
	return frontend, term.Close, nil
}
