// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/throttle"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	clock    throttle.Clock
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline using the given clock for pacing.
func New(logger *log.Logger, clock throttle.Clock) *Pipeline {
	return &Pipeline{
		logger:   logger,
		clock:    clock,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the ROM and runs it until the context is canceled, the
// frontend requests to quit, the cycle limit is reached or a fault occurs.
// In headless mode the final framebuffer is written to writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, frontend emulator.Frontend,
	writer io.Writer) (*emulator.Emulator, error) {

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading rom: %w", err)
	}

	report := p.detector.Detect(opts.Input, rom)
	app.PrintInfo(p.logger, opts, rom, report)

	emu, err := emulator.New(p.logger, emulatorOptions(opts), p.clock, frontend)
	if err != nil {
		return nil, fmt.Errorf("creating emulator: %w", err)
	}
	if err := emu.LoadROM(rom); err != nil {
		return nil, err
	}

	runErr := emu.Run(ctx, opts.Cycles)
	if runErr != nil {
		p.logger.Error("Emulation stopped",
			log.Err(runErr),
			log.Hex("pc", emu.State().PC),
			log.Int("cycles", int(emu.Cycles())))
	}

	if opts.Headless {
		if _, err := io.WriteString(writer, emu.State().Display.String()); err != nil {
			return emu, fmt.Errorf("writing framebuffer: %w", err)
		}
	}

	if runErr != nil {
		return emu, fmt.Errorf("running emulation: %w", runErr)
	}
	return emu, nil
}

func emulatorOptions(opts options.Program) emulator.Options {
	return emulator.Options{
		Hz:                  opts.Hz,
		StrictOpcodes:       opts.Strict,
		LegacyCollisionFlag: opts.LegacyVF,
		Trace:               opts.Trace,
	}
}
