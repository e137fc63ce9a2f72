// Package throttle paces the emulation to a target instruction rate.
//
// Sleeping once per instruction does not work for high rates, as the sleep
// granularity of the operating system exceeds the duration of a single
// instruction. The throttle instead accumulates the time the emulation ran
// ahead of the target as sleep debt and only sleeps once the debt exceeds a
// threshold. When the emulation falls behind, accumulated debt is spent to
// absorb the slowdown instead of speeding up to catch up.
package throttle

import (
	"time"

	"github.com/retroenv/retrogolib/log"
)

// DefaultThreshold is the sleep debt that has to accumulate before sleeping.
const DefaultThreshold = 25 * time.Millisecond

// Throttle implements the sleep debt pacing.
type Throttle struct {
	logger *log.Logger
	clock  Clock

	dutyCycle time.Duration // target duration of one instruction
	threshold time.Duration
	debt      time.Duration
	timer     time.Time // start of the current measurement window
}

// New returns a throttle for the given instruction rate in Hz.
func New(logger *log.Logger, clock Clock, hz uint) *Throttle {
	return &Throttle{
		logger:    logger,
		clock:     clock,
		dutyCycle: time.Second / time.Duration(hz),
		threshold: DefaultThreshold,
		timer:     clock.Now(),
	}
}

// DutyCycle returns the target duration of one instruction.
func (t *Throttle) DutyCycle() time.Duration {
	return t.dutyCycle
}

// Debt returns the currently accumulated sleep debt.
func (t *Throttle) Debt() time.Duration {
	return t.debt
}

// Sleep is called once per emulated instruction. It accounts the time spent
// since the previous call against the duty cycle and sleeps when enough debt
// has accumulated.
func (t *Throttle) Sleep() {
	elapsed := t.clock.Now().Sub(t.timer)

	if elapsed > t.dutyCycle {
		t.absorbSlowdown(elapsed - t.dutyCycle)
		t.timer = t.clock.Now()
		return
	}

	t.debt += t.dutyCycle - elapsed

	if t.debt > t.threshold {
		t.logger.Debug("Sleeping", log.Stringer("debt", t.debt))
		t.clock.Sleep(t.debt)
		t.debt = 0
	}
	t.timer = t.clock.Now()
}

// absorbSlowdown spends accumulated debt to compensate for an instruction
// that took longer than the duty cycle. If the debt does not cover the
// slowdown the loss is accepted and the debt reset.
func (t *Throttle) absorbSlowdown(slowdown time.Duration) {
	if t.debt >= slowdown {
		t.logger.Debug("Running slow, reducing sleep debt",
			log.Stringer("slowdown", slowdown),
			log.Stringer("debt", t.debt))
		t.debt -= slowdown
		return
	}

	t.logger.Debug("Running too slow to compensate, resetting sleep debt",
		log.Stringer("slowdown", slowdown))
	t.debt = 0
}
