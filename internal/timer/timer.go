// Package timer decrements the CHIP-8 delay and sound timers at 60 Hz,
// independent of the configured instruction rate.
package timer

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/machine"
)

// Frequency is the rate in Hz at which the timers count down.
const Frequency = 60

// ErrInvalidRate is returned for instruction rates that can not drive the
// timers at exactly 60 Hz.
var ErrInvalidRate = errors.New("invalid instruction rate")

// Regulator gates the timer decrement on the cycle counter.
type Regulator struct {
	interval uint64 // cycles per timer tick
}

// New returns a regulator for the given instruction rate in Hz. The rate has
// to be a multiple of 60 as the timer tick is derived from the cycle count.
func New(hz uint) (*Regulator, error) {
	if hz == 0 || hz%Frequency != 0 {
		return nil, fmt.Errorf("%w: %d Hz is not a multiple of %d Hz", ErrInvalidRate, hz, Frequency)
	}
	return &Regulator{interval: uint64(hz / Frequency)}, nil
}

// Tick decrements both timers, saturating at 0, if the cycle falls on a
// timer tick.
func (r *Regulator) Tick(s *machine.State, cycle uint64) {
	if cycle%r.interval != 0 {
		return
	}
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}
	if s.SoundTimer > 0 {
		s.SoundTimer--
	}
}
