// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/timer"
)

// ParseFlags parses the emulator command line arguments. The ROM file can be
// passed with -i or as the only positional argument.
func ParseFlags(args []string) (options.Program, error) {
	flags := newFlagSet("retrochip8 [options] <ROM file>")
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args[1:]); err != nil {
		return opts, &UsageError{flags: flags, usage: flags.Name()}
	}

	input, err := inputFile(flags, opts.Input)
	if err != nil {
		return opts, err
	}
	opts.Input = input

	if opts.Hz == 0 || opts.Hz%timer.Frequency != 0 {
		return opts, fmt.Errorf("%w: %d Hz, must be a multiple of %d",
			timer.ErrInvalidRate, opts.Hz, timer.Frequency)
	}
	if opts.Headless && opts.Cycles == 0 {
		return opts, &UsageError{flags: flags, usage: flags.Name(), msg: "headless mode requires -cycles"}
	}

	return opts, nil
}

// ParseDisasmFlags parses the disassembler command line arguments.
func ParseDisasmFlags(args []string) (options.Disassembler, error) {
	flags := newFlagSet("chip8dis [options] <ROM file>")
	var opts options.Disassembler
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	if err := flags.Parse(args[1:]); err != nil {
		return opts, &UsageError{flags: flags, usage: flags.Name()}
	}

	input, err := inputFile(flags, opts.Input)
	if err != nil {
		return opts, err
	}
	opts.Input = input
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid arguments"
	}
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: %s\n\n", e.usage)
	e.flags.PrintDefaults()
	fmt.Println()
}

// newFlagSet returns a flag set that reports errors to the caller instead
// of exiting. The usage line is kept as the flag set name.
func newFlagSet(usage string) *flag.FlagSet {
	flags := flag.NewFlagSet(usage, flag.ContinueOnError)
	flags.Usage = func() {}
	return flags
}

// inputFile returns the ROM file from the -i flag or the positional
// arguments.
func inputFile(flags *flag.FlagSet, input string) (string, error) {
	args := flags.Args()

	switch {
	case input != "" && len(args) == 0:
		return input, nil

	case input == "" && len(args) == 1:
		return args[0], nil

	case len(args) > 1:
		for _, arg := range args[1:] {
			if len(arg) > 0 && arg[0] == '-' {
				return "", &UsageError{
					flags: flags,
					usage: flags.Name(),
					msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument",
						arg),
				}
			}
		}
		return "", &UsageError{flags: flags, usage: flags.Name(), msg: "only one ROM file can be passed"}

	case input != "":
		return "", &UsageError{flags: flags, usage: flags.Name(), msg: "ROM file passed both with -i and as argument"}

	default:
		return "", &UsageError{flags: flags, usage: flags.Name(), msg: "no ROM file given"}
	}
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.UintVar(&opts.Hz, "hz", emulator.DefaultHz, "instructions per second, must be a multiple of 60")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given number of cycles, 0 runs until quit")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal frontend and print the final screen")
	flags.BoolVar(&opts.Strict, "strict", false, "fail on unsupported opcodes instead of ignoring them")
	flags.BoolVar(&opts.LegacyVF, "legacy-vf", false, "keep VF unchanged when a draw causes no collision")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
