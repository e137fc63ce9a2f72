// Package app provides the main application helpers for the emulator and
// the disassembler.
package app

import (
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner logs the application name and version information.
func PrintBanner(logger *log.Logger, quiet bool, name, version, commit, date string) {
	if quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo logs the information about the ROM and the emulation settings.
func PrintInfo(logger *log.Logger, opts options.Program, rom []byte, report detector.Report) {
	if opts.Quiet {
		return
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.Int("hz", int(opts.Hz)),
	)
	if opts.Strict {
		logger.Info("Unsupported opcodes stop the emulation")
	}
	if opts.LegacyVF {
		logger.Info("Using legacy collision flag behavior")
	}
	if len(report.Extensions) > 0 {
		logger.Warn("Emulation will likely misbehave, extension instructions are treated as unsupported opcodes")
	}
}
