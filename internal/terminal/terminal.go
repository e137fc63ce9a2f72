// Package terminal implements the emulator frontend for ANSI terminals.
//
// The framebuffer is rendered with Unicode half block characters, two pixel
// rows per text line. Terminals only report key presses, so every key is
// considered held for a number of polls after its last press and then
// released.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B

	bell = "\a"

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// DefaultHoldPolls is the number of polls a key stays pressed after its
// last press event.
const DefaultHoldPolls = 120

// Config controls the terminal frontend.
type Config struct {
	Keymap    Keymap
	HoldPolls int
}

// Terminal is the display, audio and input frontend.
type Terminal struct {
	logger *log.Logger
	in     io.Reader
	out    io.Writer
	cfg    Config

	hold    [machine.KeyCount]int // remaining polls until the key is released
	tone    bool
	buf     []byte
	restore func() error
}

// New returns a terminal frontend reading keys from in and writing to out.
// A nil reader disables the keyboard input.
func New(logger *log.Logger, in io.Reader, out io.Writer, cfg Config) *Terminal {
	if cfg.Keymap == nil {
		cfg.Keymap = DefaultKeymap()
	}
	if cfg.HoldPolls <= 0 {
		cfg.HoldPolls = DefaultHoldPolls
	}
	return &Terminal{
		logger: logger,
		in:     in,
		out:    out,
		cfg:    cfg,
		buf:    make([]byte, 32),
	}
}

// Open returns a terminal frontend for the standard input and output. If the
// standard input is a terminal it is switched to raw mode, otherwise the
// keyboard input is disabled.
func Open(logger *log.Logger, cfg Config) (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		logger.Warn("Standard input is not a terminal, keyboard input disabled")
		t := New(logger, nil, os.Stdout, cfg)
		return t, t.start()
	}

	restore, err := makeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("entering raw terminal mode: %w", err)
	}

	t := New(logger, os.Stdin, os.Stdout, cfg)
	t.restore = restore
	if err := t.start(); err != nil {
		_ = restore()
		return nil, err
	}
	return t, nil
}

func (t *Terminal) start() error {
	if _, err := io.WriteString(t.out, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	return nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	var errs []error
	if _, err := io.WriteString(t.out, showCursor+"\r\n"); err != nil {
		errs = append(errs, fmt.Errorf("showing cursor: %w", err))
	}
	if t.restore != nil {
		if err := t.restore(); err != nil {
			errs = append(errs, err)
		}
		t.restore = nil
	}
	return errors.Join(errs...)
}

// Poll reads the pending input bytes and updates the keypad. It returns
// true if escape or Ctrl+C was pressed.
func (t *Terminal) Poll(keys *machine.Keypad) (bool, error) {
	t.releaseExpired(keys)

	if t.in == nil {
		return false, nil
	}

	n, err := t.in.Read(t.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading keyboard input: %w", err)
	}

	for _, b := range t.buf[:n] {
		switch b {
		case keyEscape, keyCtrlC:
			return true, nil
		}

		key, ok := t.cfg.Keymap[b]
		if !ok {
			continue
		}
		keys.Press(key)
		t.hold[key] = t.cfg.HoldPolls
	}
	return false, nil
}

// releaseExpired releases the keys whose hold window ended.
func (t *Terminal) releaseExpired(keys *machine.Keypad) {
	for key := range t.hold {
		if t.hold[key] == 0 {
			continue
		}
		t.hold[key]--
		if t.hold[key] == 0 {
			keys.Release(uint8(key))
		}
	}
}

// Present renders the framebuffer.
func (t *Terminal) Present(fb *machine.Framebuffer) error {
	if _, err := io.WriteString(t.out, Render(fb)); err != nil {
		return fmt.Errorf("rendering framebuffer: %w", err)
	}
	return nil
}

// Render returns the escape sequence that draws the framebuffer at the top
// left of the terminal.
func Render(fb *machine.Framebuffer) string {
	rows := fb.Rows()

	var sb strings.Builder
	sb.WriteString(cursorHome)
	for y := 0; y < machine.ScreenHeight; y += 2 {
		for x := 0; x < machine.ScreenWidth; x++ {
			sb.WriteString(halfBlock(rows[y][x], rows[y+1][x]))
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}

func halfBlock(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	default:
		return " "
	}
}

// SetTone rings the terminal bell when the tone starts.
func (t *Terminal) SetTone(on bool) {
	if on && !t.tone {
		if _, err := io.WriteString(t.out, bell); err != nil {
			t.logger.Debug("Ringing bell failed", log.Err(err))
		}
	}
	t.tone = on
}
