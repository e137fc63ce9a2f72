package terminal

// Keymap maps input bytes to logical CHIP-8 keys.
type Keymap map[byte]uint8

// DefaultKeymap maps the 4x4 block of a QWERTY keyboard to the COSMAC VIP
// hex keypad layout:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
func DefaultKeymap() Keymap {
	layout := []struct {
		keys    string
		logical [4]uint8
	}{
		{"1234", [4]uint8{0x1, 0x2, 0x3, 0xC}},
		{"qwer", [4]uint8{0x4, 0x5, 0x6, 0xD}},
		{"asdf", [4]uint8{0x7, 0x8, 0x9, 0xE}},
		{"zxcv", [4]uint8{0xA, 0x0, 0xB, 0xF}},
	}

	keymap := make(Keymap, 2*16)
	for _, row := range layout {
		for i := range row.keys {
			key := row.keys[i]
			keymap[key] = row.logical[i]
			if key >= 'a' && key <= 'z' {
				keymap[key-'a'+'A'] = row.logical[i]
			}
		}
	}
	return keymap
}
