// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Hz       uint   `flag:"hz" usage:"instructions per second, must be a multiple of 60"`
	Cycles   uint64 `flag:"cycles" usage:"stop after the given number of cycles (default: unlimited)"`
	Headless bool   `flag:"headless" usage:"run without terminal frontend and print the final screen"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// EmulationFlags contains options that change the emulated behavior.
type EmulationFlags struct {
	Strict   bool `flag:"strict" usage:"fail on unsupported opcodes instead of ignoring them"`
	LegacyVF bool `flag:"legacy-vf" usage:"keep VF unchanged when a draw causes no collision"`
	Trace    bool `flag:"trace" usage:"log every executed instruction (requires -debug)"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	EmulationFlags
}

// Disassembler contains the options of the standalone disassembler.
type Disassembler struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file (default: stdout)"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}
