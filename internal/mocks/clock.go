// Package mocks provides mock implementations of the emulator collaborators for testing.
package mocks

import "time"

// Clock is a manually advanced clock. Sleeping advances the clock by the
// requested duration and records it.
type Clock struct {
	now    time.Time
	Sleeps []time.Duration
}

// NewClock creates a new mock clock starting at a fixed point in time.
func NewClock() *Clock {
	return &Clock{
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Now returns the current mock time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Sleep records the duration and advances the clock by it.
func (c *Clock) Sleep(d time.Duration) {
	c.Sleeps = append(c.Sleeps, d)
	c.now = c.now.Add(d)
}

// Advance moves the clock forward without recording a sleep.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
