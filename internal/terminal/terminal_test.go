package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDefaultKeymap(t *testing.T) {
	keymap := DefaultKeymap()
	assert.Len(t, keymap, 28)

	expected := map[byte]uint8{
		'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
		'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
		'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
		'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
		'Q': 0x4, 'V': 0xF,
	}
	for b, key := range expected {
		assert.Equal(t, key, keymap[b], "byte %q", b)
	}

	// every logical key is reachable
	var reachable [machine.KeyCount]bool
	for _, key := range keymap {
		reachable[key] = true
	}
	for key, ok := range reachable {
		assert.True(t, ok, "key %X", key)
	}
}

func TestPollPressAndAutoRelease(t *testing.T) {
	in := &bytes.Buffer{}
	term := New(log.NewTestLogger(t), in, &bytes.Buffer{}, Config{HoldPolls: 3})
	var keys machine.Keypad

	in.WriteString("w")
	quit, err := term.Poll(&keys)
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, keys.Pressed(0x5))

	for i := 0; i < 2; i++ {
		_, err = term.Poll(&keys)
		assert.NoError(t, err)
		assert.True(t, keys.Pressed(0x5))
		_, pending := keys.Released()
		assert.False(t, pending)
	}

	_, err = term.Poll(&keys)
	assert.NoError(t, err)
	assert.False(t, keys.Pressed(0x5))
	key, pending := keys.Released()
	assert.True(t, pending)
	assert.Equal(t, uint8(0x5), key)
}

func TestPollRepeatExtendsHold(t *testing.T) {
	in := &bytes.Buffer{}
	term := New(log.NewTestLogger(t), in, &bytes.Buffer{}, Config{HoldPolls: 2})
	var keys machine.Keypad

	in.WriteString("v")
	_, _ = term.Poll(&keys)
	in.WriteString("V")
	_, _ = term.Poll(&keys)
	_, _ = term.Poll(&keys)
	assert.True(t, keys.Pressed(0xF))

	_, _ = term.Poll(&keys)
	assert.False(t, keys.Pressed(0xF))
}

func TestPollQuit(t *testing.T) {
	for _, input := range []string{"\x1b", "\x03", "q\x1b"} {
		term := New(log.NewTestLogger(t), strings.NewReader(input), &bytes.Buffer{}, Config{})
		var keys machine.Keypad

		quit, err := term.Poll(&keys)
		assert.NoError(t, err)
		assert.True(t, quit, "input %q", input)
	}
}

func TestPollWithoutInput(t *testing.T) {
	term := New(log.NewTestLogger(t), nil, &bytes.Buffer{}, Config{})
	var keys machine.Keypad
	quit, err := term.Poll(&keys)
	assert.NoError(t, err)
	assert.False(t, quit)

	// unmapped bytes and end of input are ignored
	term = New(log.NewTestLogger(t), strings.NewReader("k"), &bytes.Buffer{}, Config{})
	for i := 0; i < 2; i++ {
		quit, err = term.Poll(&keys)
		assert.NoError(t, err)
		assert.False(t, quit)
	}
	for key := uint8(0); key < machine.KeyCount; key++ {
		assert.False(t, keys.Pressed(key))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("input closed")
}

func TestPollReadError(t *testing.T) {
	term := New(log.NewTestLogger(t), failingReader{}, &bytes.Buffer{}, Config{})
	var keys machine.Keypad
	_, err := term.Poll(&keys)
	assert.ErrorContains(t, err, "input closed")
}

func TestRender(t *testing.T) {
	var fb machine.Framebuffer
	fb.Flip(0, 0)
	fb.Flip(1, 1)
	fb.Flip(2, 0)
	fb.Flip(2, 1)
	fb.Flip(63, 31)

	output := Render(&fb)
	assert.True(t, strings.HasPrefix(output, cursorHome))

	lines := strings.Split(strings.TrimPrefix(output, cursorHome), "\r\n")
	assert.Len(t, lines, machine.ScreenHeight/2+1)

	blank := strings.Repeat(" ", machine.ScreenWidth)
	expected := make([]string, 0, machine.ScreenHeight/2+1)
	expected = append(expected, "▀▄█"+strings.Repeat(" ", machine.ScreenWidth-3))
	for i := 1; i < machine.ScreenHeight/2-1; i++ {
		expected = append(expected, blank)
	}
	expected = append(expected, strings.Repeat(" ", machine.ScreenWidth-1)+"▄", "")

	if diff := cmp.Diff(expected, lines); diff != "" {
		t.Errorf("rendered frame mismatch (-want +got):\n%s", diff)
	}
}

func TestPresent(t *testing.T) {
	out := &bytes.Buffer{}
	term := New(log.NewTestLogger(t), nil, out, Config{})
	var fb machine.Framebuffer

	assert.NoError(t, term.Present(&fb))
	assert.Equal(t, Render(&fb), out.String())
}

func TestSetTone(t *testing.T) {
	out := &bytes.Buffer{}
	term := New(log.NewTestLogger(t), nil, out, Config{})

	term.SetTone(false)
	term.SetTone(true)
	term.SetTone(true)
	term.SetTone(false)
	term.SetTone(true)
	assert.Equal(t, bell+bell, out.String())
}

func TestStartAndClose(t *testing.T) {
	out := &bytes.Buffer{}
	restored := false
	term := New(log.NewTestLogger(t), nil, out, Config{})
	term.restore = func() error {
		restored = true
		return nil
	}

	assert.NoError(t, term.start())
	assert.NoError(t, term.Close())
	assert.True(t, restored)
	assert.Equal(t, clearScreen+hideCursor+showCursor+"\r\n", out.String())

	// closing twice does not restore again
	restored = false
	assert.NoError(t, term.Close())
	assert.False(t, restored)
}
