package throttle

import "time"

// Clock provides the current time and the ability to sleep. It is injected
// so that pacing can be tested without real delays.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the Clock backed by the time package.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep pauses the current goroutine for at least the duration d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
