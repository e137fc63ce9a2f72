package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/mocks"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger, mocks.NewClock())

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.clock)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

// drawProgram draws the font glyph of V1 at V2,V3 and loops forever.
var drawProgram = []byte{
	0x61, 0x08, // ld V1, $08
	0x62, 0x02, // ld V2, $02
	0x63, 0x01, // ld V3, $01
	0xF1, 0x29, // ld F, V1
	0xD2, 0x35, // drw V2, V3, $5
	0x12, 0x0A, // jp $20A
}

func headlessOptions(input string, cycles uint64) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags: options.Flags{
			Hz:       emulator.DefaultHz,
			Cycles:   cycles,
			Headless: true,
		},
	}
}

func TestExecuteHeadless(t *testing.T) {
	p := New(log.NewTestLogger(t), mocks.NewClock())
	input := createTempFile(t, drawProgram)

	var out bytes.Buffer
	emu, err := p.Execute(context.Background(), headlessOptions(input, 10), emulator.Frontend{}, &out)
	assert.NoError(t, err)
	assert.Equal(t, uint64(10), emu.Cycles())

	lines := strings.Split(out.String(), "\n")
	assert.Len(t, lines, machine.ScreenHeight+1)
	// glyph 8 is F0 90 F0 90 F0
	assert.Equal(t, "..####..", lines[1][:8])
	assert.Equal(t, "..#..#..", lines[2][:8])
	assert.Equal(t, "..####..", lines[3][:8])
	assert.Equal(t, "..####..", lines[5][:8])
	assert.Equal(t, strings.Repeat(".", machine.ScreenWidth), lines[0])
}

func TestExecuteWithFrontend(t *testing.T) {
	p := New(log.NewTestLogger(t), mocks.NewClock())
	input := createTempFile(t, drawProgram)

	display := &mocks.Display{}
	frontend := emulator.Frontend{
		Display: display,
		Audio:   &mocks.Audio{},
		Input:   &mocks.Input{QuitAfter: 20},
	}
	opts := headlessOptions(input, 0)
	opts.Headless = false

	var out bytes.Buffer
	emu, err := p.Execute(context.Background(), opts, frontend, &out)
	assert.NoError(t, err)
	assert.Equal(t, uint64(19), emu.Cycles())
	assert.Len(t, display.Frames, 1)
	assert.Equal(t, 0, out.Len())
}

func TestExecuteErrors(t *testing.T) {
	p := New(log.NewTestLogger(t), mocks.NewClock())

	t.Run("missing file", func(t *testing.T) {
		_, err := p.Execute(context.Background(), headlessOptions("/nonexistent/rom.ch8", 1), emulator.Frontend{}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty file", func(t *testing.T) {
		input := createTempFile(t, nil)
		_, err := p.Execute(context.Background(), headlessOptions(input, 1), emulator.Frontend{}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, loader.ErrEmptyROM))
	})

	t.Run("fault writes screen", func(t *testing.T) {
		input := createTempFile(t, []byte{0x00, 0xE0, 0x00, 0xEE})
		var out bytes.Buffer
		emu, err := p.Execute(context.Background(), headlessOptions(input, 5), emulator.Frontend{}, &out)
		assert.True(t, errors.Is(err, machine.ErrStackUnderflow))
		assert.Equal(t, uint64(1), emu.Cycles())
		assert.NotEmpty(t, out.String())
	})

	t.Run("strict mode", func(t *testing.T) {
		input := createTempFile(t, []byte{0x01, 0x23})
		opts := headlessOptions(input, 5)
		opts.Strict = true
		_, err := p.Execute(context.Background(), opts, emulator.Frontend{}, &bytes.Buffer{})
		assert.True(t, errors.Is(err, machine.ErrUnsupportedInstruction))
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
