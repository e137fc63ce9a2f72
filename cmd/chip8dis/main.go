// Package main implements a CHIP-8 ROM disassembler
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const name = "chip8dis"

func main() {
	opts, err := cli.ParseDisasmFlags(os.Args)
	logger := config.CreateLogger(false, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts.Quiet, name, version, commit, date)
			logger.Error(usageErr.Error())
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	app.PrintBanner(logger, opts.Quiet, name, version, commit, date)

	if err := disasmFile(logger, opts, os.Stdout); err != nil {
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}

// disasmFile writes the listing of the input ROM to the output file, or to
// stdout if no output file is set. Only a file opened here is closed.
func disasmFile(logger *log.Logger, opts options.Disassembler, stdout io.Writer) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	detector.New(logger).Detect(opts.Input, rom)

	if opts.Output == "" {
		return disasm.Listing(stdout, rom, machine.ProgramStart)
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", opts.Output, err)
	}
	if err := disasm.Listing(file, rom, machine.ProgramStart); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
