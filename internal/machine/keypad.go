package machine

// KeyCount is the number of logical keys 0x0-0xF.
const KeyCount = 16

// Keypad holds the pressed state of the 16 logical keys and the most recent
// key release event.
type Keypad struct {
	keys        [KeyCount]bool
	released    uint8
	hasReleased bool
}

// Press marks the key as pressed. A press replaces any pending release event.
func (k *Keypad) Press(key uint8) {
	if key >= KeyCount {
		return
	}
	k.keys[key] = true
	k.hasReleased = false
}

// Release marks the key as released. If the key was pressed before, it
// becomes the pending release event, otherwise the pending event is dropped.
func (k *Keypad) Release(key uint8) {
	if key >= KeyCount {
		return
	}
	wasPressed := k.keys[key]
	k.keys[key] = false
	k.released = key
	k.hasReleased = wasPressed
}

// Pressed returns whether the key is currently pressed.
func (k *Keypad) Pressed(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return k.keys[key]
}

// Clear marks the key as not pressed without generating a release event.
func (k *Keypad) Clear(key uint8) {
	if key < KeyCount {
		k.keys[key] = false
	}
}

// Released returns the pending release event.
func (k *Keypad) Released() (uint8, bool) {
	return k.released, k.hasReleased
}

// ClearReleased consumes the pending release event.
func (k *Keypad) ClearReleased() {
	k.hasReleased = false
}
