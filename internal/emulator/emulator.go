// Package emulator drives the CHIP-8 stepping loop.
package emulator

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/executor"
	"github.com/retroenv/retrochip8/internal/instruction"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/throttle"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// DefaultHz is the default instruction rate.
const DefaultHz = 600

// Display presents the framebuffer.
type Display interface {
	Present(fb *machine.Framebuffer) error
}

// Audio turns the tone on or off.
type Audio interface {
	SetTone(on bool)
}

// Input updates the keypad and reports whether the user requested to quit.
type Input interface {
	Poll(keys *machine.Keypad) (bool, error)
}

// Frontend bundles the collaborators of the emulator. Nil members are
// skipped.
type Frontend struct {
	Display Display
	Audio   Audio
	Input   Input
}

// Options configures the emulator.
type Options struct {
	Hz                  uint
	StrictOpcodes       bool
	LegacyCollisionFlag bool
	Trace               bool

	Random func() uint8 // optional source for RND
}

// Emulator executes a loaded program one instruction per cycle.
type Emulator struct {
	logger   *log.Logger
	opts     Options
	clock    throttle.Clock
	frontend Frontend

	state     *machine.State
	executor  *executor.Executor
	regulator *timer.Regulator
	throttle  *throttle.Throttle

	cycles uint64

	measureStart time.Time
	ips          float64
}

// New returns a new emulator with a freshly reset machine state.
func New(logger *log.Logger, opts Options, clock throttle.Clock, frontend Frontend) (*Emulator, error) {
	if opts.Hz == 0 {
		opts.Hz = DefaultHz
	}
	regulator, err := timer.New(opts.Hz)
	if err != nil {
		return nil, fmt.Errorf("creating timer regulator: %w", err)
	}

	e := &Emulator{
		logger:    logger,
		opts:      opts,
		clock:     clock,
		frontend:  frontend,
		state:     machine.New(),
		regulator: regulator,
		throttle:  throttle.New(logger, clock, opts.Hz),
		executor: executor.New(executor.Options{
			StrictOpcodes:       opts.StrictOpcodes,
			LegacyCollisionFlag: opts.LegacyCollisionFlag,
			Random:              opts.Random,
		}),
		measureStart: clock.Now(),
	}
	return e, nil
}

// LoadROM copies the program into memory.
func (e *Emulator) LoadROM(rom []byte) error {
	if err := e.state.LoadROM(rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	e.logger.Debug("Loaded rom", log.Int("size", len(rom)))
	return nil
}

// State returns the machine state.
func (e *Emulator) State() *machine.State {
	return e.state
}

// Cycles returns the number of executed cycles.
func (e *Emulator) Cycles() uint64 {
	return e.cycles
}

// IPS returns the instruction rate of the last completed measurement window.
func (e *Emulator) IPS() float64 {
	return e.ips
}

// Run steps the emulator until the context is canceled, the input requests
// to quit, a fault occurs or maxCycles cycles were executed. A maxCycles of
// 0 means no limit.
func (e *Emulator) Run(ctx context.Context, maxCycles uint64) error {
	for executed := uint64(0); maxCycles == 0 || executed < maxCycles; executed++ {
		select {
		case <-ctx.Done():
			e.logger.Debug("Emulation canceled", log.Int("cycles", int(e.cycles)))
			return nil
		default:
		}

		quit, err := e.Step()
		if err != nil {
			return err
		}
		if quit {
			e.logger.Debug("Quit requested", log.Int("cycles", int(e.cycles)))
			return nil
		}
	}
	return nil
}

// Step executes a single cycle. It returns true if the input requested to
// quit, in which case no instruction was executed.
func (e *Emulator) Step() (bool, error) {
	if e.frontend.Input != nil {
		quit, err := e.frontend.Input.Poll(&e.state.Keypad)
		if err != nil {
			return false, fmt.Errorf("polling input: %w", err)
		}
		if quit {
			return true, nil
		}
	}

	pc := e.state.PC
	word, err := e.state.Fetch()
	if err != nil {
		return false, fmt.Errorf("fetching instruction: %w", err)
	}

	ins := instruction.Decode(word)
	if e.opts.Trace {
		e.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.String("instruction", disasm.Format(ins)))
	}

	if err := e.executor.Execute(e.state, ins); err != nil {
		return false, fmt.Errorf("executing opcode $%04X at $%03X: %w", word, pc, err)
	}

	e.cycles++
	e.regulator.Tick(e.state, e.cycles)

	if e.frontend.Audio != nil {
		e.frontend.Audio.SetTone(e.state.ToneActive())
	}

	if err := e.present(); err != nil {
		return false, err
	}

	e.throttle.Sleep()
	e.measure()
	return false, nil
}

func (e *Emulator) present() error {
	if !e.state.Display.Dirty() {
		return nil
	}
	if e.frontend.Display != nil {
		if err := e.frontend.Display.Present(&e.state.Display); err != nil {
			return fmt.Errorf("presenting framebuffer: %w", err)
		}
	}
	e.state.Display.Presented()
	return nil
}

// measure calculates the instructions per second every hz cycles.
func (e *Emulator) measure() {
	if e.cycles%uint64(e.opts.Hz) != 0 {
		return
	}

	now := e.clock.Now()
	elapsed := now.Sub(e.measureStart)
	e.measureStart = now
	if elapsed <= 0 {
		return
	}

	e.ips = float64(e.opts.Hz) / elapsed.Seconds()
	e.logger.Debug("Instructions per second",
		log.Int("ips", int(e.ips)),
		log.Int("target", int(e.opts.Hz)))
}
