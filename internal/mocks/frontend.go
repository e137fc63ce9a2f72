package mocks

import (
	"github.com/retroenv/retrochip8/internal/machine"
)

// Display records presented frames.
type Display struct {
	Frames []string
	Err    error
}

// Present records the framebuffer as text.
func (d *Display) Present(fb *machine.Framebuffer) error {
	if d.Err != nil {
		return d.Err
	}
	d.Frames = append(d.Frames, fb.String())
	return nil
}

// Audio records tone state changes.
type Audio struct {
	On      bool
	Changes int
}

// SetTone records the tone state.
func (a *Audio) SetTone(on bool) {
	if on != a.On {
		a.Changes++
	}
	a.On = on
}

// KeyEvent is a scripted key transition applied on a given poll.
type KeyEvent struct {
	Poll    int
	Key     uint8
	Pressed bool
}

// Input replays scripted key events and requests to quit after QuitAfter polls.
type Input struct {
	Events    []KeyEvent
	QuitAfter int
	Err       error

	polls int
}

// Poll applies the key events scheduled for the current poll.
func (in *Input) Poll(keys *machine.Keypad) (bool, error) {
	if in.Err != nil {
		return false, in.Err
	}
	in.polls++
	for _, ev := range in.Events {
		if ev.Poll != in.polls {
			continue
		}
		if ev.Pressed {
			keys.Press(ev.Key)
		} else {
			keys.Release(ev.Key)
		}
	}
	return in.QuitAfter > 0 && in.polls >= in.QuitAfter, nil
}

// Polls returns the number of polls so far.
func (in *Input) Polls() int {
	return in.polls
}
